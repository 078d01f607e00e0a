package valuation

import (
	"io"
	"strconv"

	"github.com/cespare/xxhash"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/replacement"
)

// Value is one (player, position) entry of the value table.
type Value struct {
	PlayerID string            `yaml:"player_id"`
	Name     string            `yaml:"name"`
	Position position.Position `yaml:"position"`
	// FOM is above replacement, after any usability discount.
	FOM     float64 `yaml:"fom"`
	Dollars float64 `yaml:"dollars"`
}

// Rounded is the value to the nearest dollar, for display.
func (v Value) Rounded() decimal.Decimal {
	return decimal.NewFromFloat(v.Dollars).Round(0)
}

// Overall is a player's value at their best hitting position plus their
// best pitching role.
type Overall struct {
	PlayerID         string            `yaml:"player_id"`
	Name             string            `yaml:"name"`
	HittingPosition  position.Position `yaml:"hitting_position,omitempty"`
	Hitting          float64           `yaml:"hitting,omitempty"`
	PitchingPosition position.Position `yaml:"pitching_position,omitempty"`
	Pitching         float64           `yaml:"pitching,omitempty"`
	Dollars          float64           `yaml:"dollars"`
}

func (o Overall) Rounded() decimal.Decimal {
	return decimal.NewFromFloat(o.Dollars).Round(0)
}

// Summary describes the dollars at one position over players at or above
// replacement there.
type Summary struct {
	Position position.Position `yaml:"position"`
	Players  int               `yaml:"players"`
	Total    float64           `yaml:"total"`
	Mean     float64           `yaml:"mean"`
	Stdev    float64           `yaml:"stdev"`
	Max      float64           `yaml:"max"`
}

// Result is the output of one valuation run.
type Result struct {
	Pool float64 `yaml:"pool"`
	// Allocated is the dollars handed out above the one-dollar floor at
	// each player's best positions. It matches Pool up to rounding.
	Allocated   float64 `yaml:"allocated"`
	Rate        float64 `yaml:"rate,omitempty"`
	HitterRate  float64 `yaml:"hitter_rate"`
	PitcherRate float64 `yaml:"pitcher_rate"`
	HitterFOM   float64 `yaml:"hitter_fom"`
	PitcherFOM  float64 `yaml:"pitcher_fom"`

	Converged  bool                   `yaml:"converged"`
	Status     replacement.Status     `yaml:"status"`
	Iterations int                    `yaml:"iterations"`
	ZPasses    int                    `yaml:"z_passes,omitempty"`
	States     []position.State       `yaml:"states"`
	Values     []Value                `yaml:"values"`
	Overall    []Overall              `yaml:"overall"`
	Summaries  []Summary              `yaml:"summaries"`
	Excluded   []projection.Exclusion `yaml:"excluded,omitempty"`
}

// Value looks up one entry of the value table.
func (r *Result) Value(playerID string, pos position.Position) (Value, bool) {
	for _, v := range r.Values {
		if v.PlayerID == playerID && v.Position == pos {
			return v, true
		}
	}
	return Value{}, false
}

// Fingerprint hashes the value table and the position diagnostics. Two
// runs over the same input yield the same fingerprint.
func (r *Result) Fingerprint() uint64 {
	h := xxhash.New()
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	for _, v := range r.Values {
		io.WriteString(h, v.PlayerID+"|"+string(v.Position)+"|"+f(v.FOM)+"|"+f(v.Dollars)+"\n")
	}
	for _, st := range r.States {
		io.WriteString(h, string(st.Position)+"|"+strconv.Itoa(st.Count)+"|"+f(st.Rate)+"\n")
	}
	return h.Sum64()
}

func (r *Result) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
