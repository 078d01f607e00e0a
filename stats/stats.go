// Package stats holds the small numeric helpers shared by the valuation
// packages.
package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// SafeDiv divides num by den, returning 0 when den is 0. Every rate with a
// playing-time denominator goes through here.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Statistic is a running mean/stdev (Welford's algorithm) with a sum. It
// summarizes dollar values and FOM totals for diagnostics.
type Statistic struct {
	n   int
	sum float64
	min float64
	max float64

	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	s.sum += val
	if s.n == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
		s.min = val
		s.max = val
		return
	}
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
	s.newM = s.oldM + (val-s.oldM)/float64(s.n)
	s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
	s.oldM = s.newM
	s.oldS = s.newS
}

func (s *Statistic) Mean() float64 {
	if s.n > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.newS / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Sum() float64 { return s.sum }
func (s *Statistic) Min() float64 { return s.min }
func (s *Statistic) Max() float64 { return s.max }
func (s *Statistic) Count() int   { return s.n }
