// Package valuation turns projections and league settings into a dollar
// value for every player at every position they can fill.
package valuation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rostervalue/rostervalue/fom"
	"github.com/rostervalue/rostervalue/progress"
	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/replacement"
	"github.com/rostervalue/rostervalue/zscore"
)

// Engine runs valuations for one set of settings. Each Run owns the rows
// it is given and keeps no state between runs.
type Engine struct {
	settings Settings
	reporter progress.Reporter
}

func NewEngine(settings Settings, reporter progress.Reporter) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Engine{settings: settings, reporter: reporter}, nil
}

func (e *Engine) Settings() Settings {
	return e.settings
}

// Run values the given rows. Rows missing a stat with no fallback, or
// below the playing-time floor, are left out and listed in
// Result.Excluded. The rows are enriched in place.
func (e *Engine) Run(ctx context.Context, hitters, pitchers []*projection.Player) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	s := e.settings
	assigner, err := fom.NewAssigner(s.Scoring, s.HitterBasis, s.PitcherBasis, s.Positions)
	if err != nil {
		return nil, configErr("basis", err)
	}
	var iterator *zscore.Iterator
	if !s.Scoring.IsPoints() {
		iterator, err = zscore.NewIterator(s.Scoring, s.HitterLineup, s.PitcherLineup)
		if err != nil {
			return nil, configErr("scoring", err)
		}
		iterator.MaxIterations = s.ZMaxIterations
		iterator.Tolerance = s.ZTolerance
		iterator.Reporter = e.reporter
	}

	r := &Result{}
	e.reporter.SetTaskTitle("Preparing projections")
	e.reporter.SetCompletionPercent(0)
	if hitters, err = e.prepare(r, hitters, assigner, projection.Hitting); err != nil {
		return nil, err
	}
	if pitchers, err = e.prepare(r, pitchers, assigner, projection.Pitching); err != nil {
		return nil, err
	}
	logger.Debug().Int("hitters", len(hitters)).Int("pitchers", len(pitchers)).
		Int("excluded", len(r.Excluded)).Msg("projections-prepared")

	solver := replacement.NewSolver(s.Params(), s.Positions, hitters, pitchers, e.reporter)
	var sol *replacement.Solution
	if iterator != nil {
		out, err := iterator.Run(ctx, solver, hitters, pitchers)
		if err != nil {
			return nil, err
		}
		sol = out.Solution
		r.ZPasses = out.Passes
		r.Status = sol.Status
		if r.Status == replacement.StatusConverged {
			r.Status = out.Status
		}
	} else {
		sol, err = solver.Solve(ctx)
		if err != nil {
			return nil, err
		}
		r.Status = sol.Status
	}
	r.Converged = r.Status == replacement.StatusConverged
	r.Iterations = sol.Iterations
	r.States = sol.States

	e.reporter.SetTaskTitle("Allocating dollars")
	e.allocate(ctx, r, hitters, pitchers)
	e.reporter.SetCompletionPercent(100)
	logger.Info().Float64("pool", r.Pool).Float64("hitter-rate", r.HitterRate).
		Float64("pitcher-rate", r.PitcherRate).Str("status", string(r.Status)).
		Int("values", len(r.Values)).Msg("valuation-complete")
	return r, nil
}

// prepare drops rows that cannot be valued and gives the rest their slots.
func (e *Engine) prepare(r *Result, players []*projection.Player, a *fom.Assigner,
	side projection.Side) ([]*projection.Player, error) {

	var required []projection.Stat
	if !e.settings.Scoring.IsPoints() {
		var err error
		if required, err = zscore.Required(e.settings.Scoring, side); err != nil {
			return nil, configErr("scoring", err)
		}
	}
	kept, excluded, err := projection.Filter(players, func(p *projection.Player) error {
		if p.Side != side {
			return fmt.Errorf("player %s listed with %s projections", p.ID, side)
		}
		if err := e.settings.Floor.Check(p); err != nil {
			return err
		}
		if err := p.Stats.Require(p.ID, required...); err != nil {
			return err
		}
		return a.Prepare(p)
	})
	if err != nil {
		return nil, err
	}
	r.Excluded = append(r.Excluded, excluded...)
	for _, p := range kept {
		a.Assign(p)
	}
	return kept, nil
}
