package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		values []float64
		mean   float64
		stdev  float64
		sum    float64
	}
	cases := []tc{
		{[]float64{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 144},
		{[]float64{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 472},
		{[]float64{1}, 1, 0, 1},
		{[]float64{}, 0, 0, 0},
		{[]float64{1, 1}, 1, 0, 2},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, v := range c.values {
			s.Push(v)
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.True(FuzzyEqual(s.Sum(), c.sum))
		is.Equal(s.Count(), len(c.values))
	}
}

func TestMinMax(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{3, -2, 8, 1} {
		s.Push(v)
	}
	is.Equal(s.Min(), -2.0)
	is.Equal(s.Max(), 8.0)
}

func TestSafeDiv(t *testing.T) {
	is := is.New(t)
	is.Equal(SafeDiv(10, 0), 0.0)
	is.Equal(SafeDiv(0, 0), 0.0)
	is.Equal(SafeDiv(10, 4), 2.5)
}

func TestClamp(t *testing.T) {
	is := is.New(t)
	is.Equal(Clamp(1.2, 0, 1), 1.0)
	is.Equal(Clamp(-0.1, 0, 1), 0.0)
	is.Equal(Clamp(0.4, 0, 1), 0.4)
}
