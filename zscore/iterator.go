package zscore

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/rostervalue/rostervalue/fom"
	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/progress"
	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/replacement"
	"github.com/rostervalue/rostervalue/stats"
)

const (
	DefaultMaxIterations = 50
	DefaultTolerance     = 2.0
)

// Searcher re-runs the replacement search over the current slot bases.
type Searcher interface {
	Solve(ctx context.Context) (*replacement.Solution, error)
}

// Iterator alternates scoring and replacement search until the league's
// total FOM above replacement settles.
type Iterator struct {
	Hitters  *Scorer
	Pitchers *Scorer

	MaxIterations int
	Tolerance     float64
	Reporter      progress.Reporter
}

// NewIterator builds scorers for both sides of a category format.
func NewIterator(format fom.Scoring, hitterLineup, pitcherLineup int) (*Iterator, error) {
	hc, err := Categories(format, projection.Hitting)
	if err != nil {
		return nil, err
	}
	pc, err := Categories(format, projection.Pitching)
	if err != nil {
		return nil, err
	}
	return &Iterator{
		Hitters:       NewScorer(hc, hitterLineup),
		Pitchers:      NewScorer(pc, pitcherLineup),
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		Reporter:      progress.Nop{},
	}, nil
}

// Outcome is the final replacement solution plus the iteration's own
// termination.
type Outcome struct {
	Solution *replacement.Solution
	Passes   int
	Status   replacement.Status
	Totals   []float64
}

// Run ranks by proxy metrics, then repeatedly scores the league against
// the current above-replacement population and re-solves. It stops when
// the total moves by no more than the tolerance, when it returns to the
// value from two passes earlier, or at the iteration cap.
func (it *Iterator) Run(ctx context.Context, search Searcher, hitters, pitchers []*projection.Player) (*Outcome, error) {
	logger := zerolog.Ctx(ctx)
	reporter := it.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}
	maxIter := it.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	reporter.SetTaskTitle("Ranking by proxy metrics")
	for _, p := range hitters {
		setBasis(p, func(position.Position) float64 { return Proxy(projection.Hitting, p.Stats) })
	}
	for _, p := range pitchers {
		setBasis(p, func(role position.Position) float64 { return Proxy(projection.Pitching, p.Line(role)) })
	}
	sol, err := search.Solve(ctx)
	if err != nil {
		return nil, fmt.Errorf("proxy pass: %w", err)
	}

	out := &Outcome{Status: replacement.StatusCutoff}
	for pass := 1; pass <= maxIter; pass++ {
		reporter.SetTaskTitle(fmt.Sprintf("Z-score pass %d", pass))
		it.scoreHitters(hitters)
		it.scorePitchers(pitchers)
		sol, err = search.Solve(ctx)
		if err != nil {
			return nil, fmt.Errorf("pass %d: %w", pass, err)
		}
		out.Passes = pass
		out.Totals = append(out.Totals, sol.Total)
		reporter.SetCompletionPercent(100 * pass / maxIter)
		logger.Debug().Int("pass", pass).Float64("total", sol.Total).Msg("zscore-pass")

		n := len(out.Totals)
		if n >= 2 && math.Abs(out.Totals[n-1]-out.Totals[n-2]) <= it.Tolerance {
			out.Status = replacement.StatusConverged
			break
		}
		if n >= 3 && stats.FuzzyEqual(out.Totals[n-1], out.Totals[n-3]) {
			out.Status = replacement.StatusCycle
			break
		}
	}
	if out.Status != replacement.StatusConverged {
		logger.Warn().Int("passes", out.Passes).Str("status", string(out.Status)).
			Msg("z-score iteration did not converge")
	}
	out.Solution = sol
	return out, nil
}

func setBasis(p *projection.Player, basis func(position.Position) float64) {
	for pos, slot := range p.Slots {
		slot.Basis = basis(pos)
	}
}

func (it *Iterator) scoreHitters(hitters []*projection.Player) {
	lines := make([]Line, len(hitters))
	for i, p := range hitters {
		_, best, ok := p.Best()
		lines[i] = Line{Stats: p.Stats, Above: ok && best >= 0}
	}
	z := it.Hitters.Score(lines)
	for i, p := range hitters {
		setBasis(p, func(position.Position) float64 { return z[i] })
	}
}

// scorePitchers scores each role line separately, pooled across roles.
func (it *Iterator) scorePitchers(pitchers []*projection.Player) {
	type ref struct {
		p    *projection.Player
		role position.Position
	}
	var (
		lines []Line
		refs  []ref
	)
	for _, p := range pitchers {
		for _, role := range position.PitchingBase {
			slot, ok := p.Slots[role]
			if !ok {
				continue
			}
			lines = append(lines, Line{Stats: p.Line(role), Above: slot.FOM >= 0})
			refs = append(refs, ref{p: p, role: role})
		}
	}
	z := it.Pitchers.Score(lines)
	for i, r := range refs {
		r.p.Slots[r.role].Basis = z[i]
	}
}
