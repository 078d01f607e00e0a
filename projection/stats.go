package projection

import (
	"maps"
	"strings"
)

// Stat names a recognized projection column.
type Stat string

const (
	PA     Stat = "PA"
	AB     Stat = "AB"
	H      Stat = "H"
	Double Stat = "2B"
	Triple Stat = "3B"
	HR     Stat = "HR"
	R      Stat = "R"
	RBI    Stat = "RBI"
	BB     Stat = "BB"
	HBP    Stat = "HBP"
	SO     Stat = "SO"
	SB     Stat = "SB"
	CS     Stat = "CS"
	SF     Stat = "SF"
	G      Stat = "G"

	IP  Stat = "IP"
	GS  Stat = "GS"
	W   Stat = "W"
	SV  Stat = "SV"
	HLD Stat = "HLD"
	ER  Stat = "ER"
	QS  Stat = "QS"
)

var statAliases = map[string]Stat{
	"PA":  PA,
	"AB":  AB,
	"H":   H,
	"2B":  Double,
	"3B":  Triple,
	"HR":  HR,
	"R":   R,
	"RBI": RBI,
	"BB":  BB,
	"HBP": HBP,
	"SO":  SO,
	"K":   SO,
	"SB":  SB,
	"CS":  CS,
	"SF":  SF,
	"G":   G,
	"IP":  IP,
	"GS":  GS,
	"W":   W,
	"SV":  SV,
	"HLD": HLD,
	"HD":  HLD,
	"ER":  ER,
	"QS":  QS,
}

// ParseStat maps a column header onto a recognized stat. Unrecognized
// columns are ignored by loaders.
func ParseStat(name string) (Stat, bool) {
	s, ok := statAliases[strings.ToUpper(strings.TrimSpace(name))]
	return s, ok
}

// Stats is a player's set of projected stat values. A missing key means the
// source did not project that stat, which is different from projecting 0.
type Stats map[Stat]float64

func (s Stats) Has(st Stat) bool {
	_, ok := s[st]
	return ok
}

func (s Stats) Lookup(st Stat) (float64, bool) {
	v, ok := s[st]
	return v, ok
}

// Get returns the projected value, or 0 for a stat that is not projected.
// Use it only where 0 is the documented fallback.
func (s Stats) Get(st Stat) float64 {
	return s[st]
}

// Require returns a DataError naming the first missing stat.
func (s Stats) Require(playerID string, sts ...Stat) error {
	for _, st := range sts {
		if !s.Has(st) {
			return &DataError{PlayerID: playerID, Stat: st, Reason: "required stat missing"}
		}
	}
	return nil
}

func (s Stats) Clone() Stats {
	return maps.Clone(s)
}

// Scale multiplies every stat present by f.
func (s Stats) Scale(f float64) Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v * f
	}
	return out
}
