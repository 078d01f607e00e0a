package zscore

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/stats"
)

// Line is one scored stat line: a hitter, or one role of a pitcher.
type Line struct {
	Stats projection.Stats
	// Above marks lines at or above replacement; only they shape the
	// category means and spreads.
	Above bool
}

// Scorer sums standardized category deltas into a composite z-score.
type Scorer struct {
	Categories []Category
	// Lineup is the team sample size a player is substituted into when
	// measuring a rate category's delta.
	Lineup int
}

func NewScorer(cats []Category, lineup int) *Scorer {
	return &Scorer{Categories: cats, Lineup: max(lineup, 1)}
}

// Score returns one composite z-score per line. With no line above
// replacement every line is used as the reference population.
func (s *Scorer) Score(lines []Line) []float64 {
	z := make([]float64, len(lines))
	ref := make([]int, 0, len(lines))
	for i, l := range lines {
		if l.Above {
			ref = append(ref, i)
		}
	}
	if len(ref) == 0 {
		for i := range lines {
			ref = append(ref, i)
		}
	}
	if len(ref) == 0 {
		return z
	}

	for _, c := range s.Categories {
		deltas := s.deltas(c, lines, ref)
		if deltas == nil {
			continue
		}
		sample := make([]float64, len(ref))
		for j, i := range ref {
			sample[j] = deltas[i]
		}
		sd := stat.StdDev(sample, nil)
		if math.IsNaN(sd) || sd < stats.Epsilon {
			continue
		}
		for i := range z {
			z[i] += deltas[i] / sd
		}
	}
	return z
}

// deltas measures each line's effect on the category, signed so higher is
// better. It returns nil when the reference population gives no baseline.
func (s *Scorer) deltas(c Category, lines []Line, ref []int) []float64 {
	out := make([]float64, len(lines))
	sign := 1.0
	if c.Lower {
		sign = -1
	}

	if !c.IsRate() {
		vals := make([]float64, len(ref))
		for j, i := range ref {
			vals[j] = c.Num(lines[i].Stats)
		}
		mean := stat.Mean(vals, nil)
		for i, l := range lines {
			out[i] = sign * (c.Num(l.Stats) - mean)
		}
		return out
	}

	rates := make([]float64, len(ref))
	dens := make([]float64, len(ref))
	total := 0.0
	for j, i := range ref {
		n, d := c.Num(lines[i].Stats), c.Den(lines[i].Stats)
		rates[j] = stats.SafeDiv(n, d)
		dens[j] = d
		total += d
	}
	if total <= 0 {
		return nil
	}
	baseline := stat.Mean(rates, dens)
	meanDen := stat.Mean(dens, nil)
	// The rest of the lineup, at the baseline rate.
	restDen := float64(s.Lineup-1) * meanDen
	restNum := baseline * restDen
	for i, l := range lines {
		n, d := c.Num(l.Stats), c.Den(l.Stats)
		team := stats.SafeDiv(restNum+n, restDen+d)
		if restDen+d <= 0 {
			team = baseline
		}
		out[i] = sign * c.Scale * (team - baseline)
	}
	return out
}
