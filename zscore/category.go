// Package zscore values players in category leagues. A player's composite
// z-score depends on who is above replacement, so scoring and the
// replacement search are iterated to a fixed point.
package zscore

import (
	"errors"
	"fmt"

	"github.com/rostervalue/rostervalue/fom"
	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/stats"
)

var ErrUnknownFormat = errors.New("unknown category format")

// Category is one scoring category. Counting categories have no
// denominator; rate categories are ratios of summed stats.
type Category struct {
	Name string
	Num  func(projection.Stats) float64
	// Den is nil for counting categories.
	Den func(projection.Stats) float64
	// Scale multiplies a rate, e.g. 9 for per-nine-innings rates.
	Scale float64
	// Lower is set where a lower value is better.
	Lower    bool
	Requires []projection.Stat
}

func (c Category) IsRate() bool {
	return c.Den != nil
}

// Value is the category value for one stat line.
func (c Category) Value(st projection.Stats) float64 {
	if !c.IsRate() {
		return c.Num(st)
	}
	return c.Scale * stats.SafeDiv(c.Num(st), c.Den(st))
}

func sum(sts ...projection.Stat) func(projection.Stats) float64 {
	return func(st projection.Stats) float64 {
		t := 0.0
		for _, s := range sts {
			t += st.Get(s)
		}
		return t
	}
}

func counting(name string, s projection.Stat) Category {
	return Category{Name: name, Num: sum(s), Requires: []projection.Stat{s}}
}

// SF and HBP are optional in OBP; HBP is imputed upstream.
var (
	avg = Category{Name: "AVG", Num: sum(projection.H), Den: sum(projection.AB), Scale: 1,
		Requires: []projection.Stat{projection.H, projection.AB}}
	obp = Category{Name: "OBP",
		Num:      sum(projection.H, projection.BB, projection.HBP),
		Den:      sum(projection.AB, projection.BB, projection.HBP, projection.SF),
		Scale:    1,
		Requires: []projection.Stat{projection.H, projection.AB, projection.BB}}
	slg = Category{Name: "SLG",
		Num: func(st projection.Stats) float64 {
			return st.Get(projection.H) + st.Get(projection.Double) + 2*st.Get(projection.Triple) +
				3*st.Get(projection.HR)
		},
		Den:      sum(projection.AB),
		Scale:    1,
		Requires: []projection.Stat{projection.H, projection.AB, projection.Double, projection.Triple, projection.HR}}

	era = Category{Name: "ERA", Num: sum(projection.ER), Den: sum(projection.IP), Scale: 9, Lower: true,
		Requires: []projection.Stat{projection.ER, projection.IP}}
	whip = Category{Name: "WHIP", Num: sum(projection.H, projection.BB), Den: sum(projection.IP), Scale: 1,
		Lower: true, Requires: []projection.Stat{projection.H, projection.BB, projection.IP}}
	hr9 = Category{Name: "HR/9", Num: sum(projection.HR), Den: sum(projection.IP), Scale: 9, Lower: true,
		Requires: []projection.Stat{projection.HR, projection.IP}}
)

// Categories returns the categories scored for one side in a format.
func Categories(format fom.Scoring, side projection.Side) ([]Category, error) {
	switch format {
	case fom.Roto4x4:
		if side == projection.Hitting {
			return []Category{obp, slg, counting("HR", projection.HR), counting("R", projection.R)}, nil
		}
		return []Category{counting("SO", projection.SO), era, whip, hr9}, nil
	case fom.Roto5x5:
		if side == projection.Hitting {
			return []Category{avg, counting("HR", projection.HR), counting("R", projection.R),
				counting("RBI", projection.RBI), counting("SB", projection.SB)}, nil
		}
		// Saves default to 0 where not projected.
		return []Category{counting("W", projection.W), {Name: "SV", Num: sum(projection.SV)},
			counting("SO", projection.SO), era, whip}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// Required lists the stats a row needs to be scored on one side.
func Required(format fom.Scoring, side projection.Side) ([]projection.Stat, error) {
	cats, err := Categories(format, side)
	if err != nil {
		return nil, err
	}
	var out []projection.Stat
	seen := map[projection.Stat]bool{}
	for _, c := range cats {
		for _, s := range c.Requires {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out, nil
}

// Proxy is the ranking metric used before any z-score exists: runs for
// hitters, negated WHIP for pitchers.
func Proxy(side projection.Side, st projection.Stats) float64 {
	if side == projection.Hitting {
		return st.Get(projection.R)
	}
	return -whip.Value(st)
}
