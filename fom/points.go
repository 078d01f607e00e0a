package fom

import (
	"github.com/rostervalue/rostervalue/projection"
)

// Hit-by-pitch regression on walks, used when a source omits HBP.
const (
	hbpPerWalk   = 0.0951
	hbpIntercept = 0.4181
)

// Calculator turns a stat line into a fantasy points total.
type Calculator interface {
	Points(st projection.Stats) float64
	// Required lists the stats that have no fallback.
	Required() []projection.Stat
}

// Term is one stat's weight in a linear points formula.
type Term struct {
	Stat  projection.Stat
	Coeff float64
}

// Coefficients is a linear points formula. Terms are summed in order so
// totals are reproducible to the last bit.
type Coefficients []Term

var (
	HittingCoefficients = Coefficients{
		{projection.AB, -1.0},
		{projection.H, 5.6},
		{projection.Double, 2.9},
		{projection.Triple, 5.7},
		{projection.HR, 9.4},
		{projection.BB, 3.0},
		{projection.HBP, 3.0},
		{projection.SB, 1.9},
		{projection.CS, -2.8},
	}
	StandardPitchingCoefficients = Coefficients{
		{projection.IP, 7.4},
		{projection.SO, 2.0},
		{projection.H, -2.6},
		{projection.BB, -3.0},
		{projection.HBP, -3.0},
		{projection.HR, -12.3},
		{projection.SV, 5.0},
		{projection.HLD, 4.0},
	}
	SABRPitchingCoefficients = Coefficients{
		{projection.IP, 5.0},
		{projection.SO, 2.0},
		{projection.BB, -3.0},
		{projection.HBP, -3.0},
		{projection.HR, -13.0},
		{projection.SV, 5.0},
		{projection.HLD, 4.0},
	}
)

type linear struct {
	coeffs   Coefficients
	required []projection.Stat
}

// Points applies the formula. SB, CS, SV and HLD count as 0 when not
// projected; HBP falls back to the walk regression.
func (l linear) Points(st projection.Stats) float64 {
	total := 0.0
	for _, t := range l.coeffs {
		v := st.Get(t.Stat)
		if t.Stat == projection.HBP {
			v = HBP(st)
		}
		total += t.Coeff * v
	}
	return total
}

func (l linear) Required() []projection.Stat {
	return l.required
}

func HittingCalculator() Calculator {
	return linear{
		coeffs: HittingCoefficients,
		required: []projection.Stat{projection.PA, projection.AB, projection.H, projection.Double,
			projection.Triple, projection.HR, projection.BB},
	}
}

func PitchingCalculator(s Scoring) Calculator {
	if s == SABRPoints {
		return linear{
			coeffs:   SABRPitchingCoefficients,
			required: []projection.Stat{projection.IP, projection.SO, projection.BB, projection.HR},
		}
	}
	return linear{
		coeffs:   StandardPitchingCoefficients,
		required: []projection.Stat{projection.IP, projection.SO, projection.H, projection.BB, projection.HR},
	}
}

// HBP returns projected hit-by-pitch, imputing it from walks when absent.
func HBP(st projection.Stats) float64 {
	if v, ok := st.Lookup(projection.HBP); ok {
		return v
	}
	if !st.Has(projection.BB) {
		return 0
	}
	return hbpPerWalk*st.Get(projection.BB) + hbpIntercept
}

// FillHBP stores the imputed HBP on a line that lacks one so later role
// lines scale the imputed value instead of re-imputing it.
func FillHBP(st projection.Stats) {
	if !st.Has(projection.HBP) && st.Has(projection.BB) {
		st[projection.HBP] = HBP(st)
	}
}
