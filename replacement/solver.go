// Package replacement finds the replacement level at every roster position
// under one of several equilibrium schemes, and prices every player's
// figure of merit (FOM) against it.
package replacement

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/progress"
	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/rolesplit"
)

// Solution is the outcome of one solve.
type Solution struct {
	States     []position.State
	Status     Status
	Iterations int
	// Total is the league's summed best-position FOM above replacement.
	Total float64
}

func (s *Solution) Converged() bool {
	return s.Status == StatusConverged
}

func (s *Solution) State(pos position.Position) (position.State, bool) {
	return lo.Find(s.States, func(st position.State) bool { return st.Position == pos })
}

// Solver owns the working state of one valuation run. Players' slot
// bases must be populated before Solve; Solve writes FOM and ranks.
type Solver struct {
	params    Params
	positions []position.Position
	hitters   []*projection.Player
	pitchers  []*projection.Player
	reporter  progress.Reporter

	states map[position.Position]*position.State
	ranked map[position.Position][]*projection.Player
}

func NewSolver(params Params, positions []position.Position, hitters, pitchers []*projection.Player,
	reporter progress.Reporter) *Solver {

	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Solver{
		params:    params,
		positions: positions,
		hitters:   hitters,
		pitchers:  pitchers,
		reporter:  reporter,
	}
}

// side is one independently solved half of the player pool.
type side struct {
	name       string
	players    []*projection.Player
	searchable []position.Position
	composites []position.Composite
	pitching   bool
}

func (s *Solver) sides() []side {
	hitting := side{
		name:    "hitting",
		players: s.hitters,
		searchable: lo.Filter(position.HittingBase, func(p position.Position, _ int) bool {
			return slices.Contains(s.positions, p)
		}),
		composites: lo.Filter(position.Composites(), func(c position.Composite, _ int) bool {
			return slices.Contains(s.positions, c.Name)
		}),
	}
	pitching := side{
		name:    "pitching",
		players: s.pitchers,
		searchable: lo.Filter(position.PitchingBase, func(p position.Position, _ int) bool {
			return slices.Contains(s.positions, p)
		}),
		pitching: true,
	}
	return []side{hitting, pitching}
}

// Solve resets all working state, runs the configured scheme on each side
// and prices every player.
func (s *Solver) Solve(ctx context.Context) (*Solution, error) {
	logger := zerolog.Ctx(ctx)
	s.rank()
	sol := &Solution{Status: StatusConverged}

	for _, sd := range s.sides() {
		s.reporter.SetTaskTitle(fmt.Sprintf("Solving %s replacement levels (%s)", sd.name, s.params.Scheme))
		var (
			status Status
			iters  int
			err    error
		)
		switch s.params.Scheme {
		case FixedCount:
			status, err = s.fixedCount(sd)
		case FixedThreshold:
			status, err = s.fixedThreshold(sd)
		case FillTarget:
			status, iters, err = s.fillTarget(ctx, sd)
		case TotalRosterTarget:
			status, iters, err = s.totalRosterTarget(ctx, sd)
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, s.params.Scheme)
		}
		if err != nil {
			return nil, err
		}
		s.reprice(sd)
		if status != StatusConverged {
			logger.Warn().Str("side", sd.name).Str("status", string(status)).Int("iterations", iters).
				Msg("replacement search did not converge")
		}
		logger.Info().Str("side", sd.name).Str("scheme", s.params.Scheme.String()).Int("iterations", iters).
			Msg("replacement-solved")
		sol.Status = worse(sol.Status, status)
		sol.Iterations += iters
	}

	sol.States = s.snapshot()
	sol.Total = s.total()
	return sol, nil
}

// rank sorts every position's eligible players by basis, best first, and
// records ranks on their slots. Ties break on player ID.
func (s *Solver) rank() {
	s.states = make(map[position.Position]*position.State)
	s.ranked = make(map[position.Position][]*projection.Player)
	for _, pos := range s.positions {
		pool := s.hitters
		if pos.IsPitching() {
			pool = s.pitchers
		}
		eligible := lo.Filter(pool, func(p *projection.Player, _ int) bool { return p.Eligible(pos) })
		slices.SortStableFunc(eligible, func(a, b *projection.Player) int {
			ba, bb := a.Slots[pos].Basis, b.Slots[pos].Basis
			switch {
			case ba > bb:
				return -1
			case ba < bb:
				return 1
			}
			return strings.Compare(a.ID, b.ID)
		})
		for i, p := range eligible {
			p.Slots[pos].Rank = i + 1
		}
		s.ranked[pos] = eligible
		s.states[pos] = &position.State{Position: pos, Population: len(eligible)}
	}
}

// setCount moves pos to n rostered players, clamped to [1, population],
// and reads the replacement rate at index n-1.
func (s *Solver) setCount(pos position.Position, n int) {
	st := s.states[pos]
	if st.Population == 0 {
		st.Count, st.Rate = 0, 0
		return
	}
	n = min(max(n, 1), st.Population)
	st.Count = n
	st.Rate = s.ranked[pos][n-1].Slots[pos].Basis
}

// setRate fixes pos at rate and counts the eligible players at or above it.
func (s *Solver) setRate(pos position.Position, rate float64) {
	st := s.states[pos]
	st.Rate = rate
	st.Count = lo.CountBy(s.ranked[pos], func(p *projection.Player) bool {
		return p.Slots[pos].Basis >= rate
	})
}

// nextBasis is the basis of the best player not yet rostered at pos.
func (s *Solver) nextBasis(pos position.Position) float64 {
	st := s.states[pos]
	if st.Count >= st.Population {
		return math.Inf(-1)
	}
	return s.ranked[pos][st.Count].Slots[pos].Basis
}

// reprice derives composite rates from their components and recomputes
// FOM for the side's players.
func (s *Solver) reprice(sd side) {
	for _, c := range sd.composites {
		if t, ok := s.params.Thresholds[c.Name]; ok && s.params.Scheme == FixedThreshold {
			s.setRate(c.Name, t)
			continue
		}
		var rates []float64
		for _, comp := range c.Components {
			if st, ok := s.states[comp]; ok && st.Population > 0 {
				rates = append(rates, st.Rate)
			}
		}
		s.setRate(c.Name, s.params.Rule.Derive(rates))
	}
	for _, p := range sd.players {
		for pos, slot := range p.Slots {
			st, ok := s.states[pos]
			if !ok {
				continue
			}
			slot.FOM = (slot.Basis - st.Rate) * slot.Weight
		}
	}
}

// rostered counts the side's players at or above replacement at one of
// the searched positions.
func (s *Solver) rostered(sd side) int {
	return lo.CountBy(sd.players, func(p *projection.Player) bool {
		return lo.SomeBy(sd.searchable, func(pos position.Position) bool {
			return p.Eligible(pos) && p.FOM(pos) >= 0
		})
	})
}

// usableInnings sums role innings above replacement, discounted by each
// pitcher's usability at their rank.
func (s *Solver) usableInnings(sd side) float64 {
	total := 0.0
	for _, p := range sd.players {
		for _, role := range sd.searchable {
			slot, ok := p.Slots[role]
			if !ok || slot.FOM < 0 {
				continue
			}
			total += slot.Time * rolesplit.Usability(role, slot.Rank, s.params.Teams)
		}
	}
	return total
}

func (s *Solver) snapshot() []position.State {
	out := make([]position.State, 0, len(s.states))
	for _, pos := range s.positions {
		if st, ok := s.states[pos]; ok {
			out = append(out, *st)
		}
	}
	return out
}

func (s *Solver) total() float64 {
	sum := 0.0
	for _, p := range slices.Concat(s.hitters, s.pitchers) {
		if _, fom, ok := p.Best(); ok && fom > 0 {
			sum += fom
		}
	}
	return sum
}

// byRateDesc orders candidate positions by score, best first. Util loses
// ties so it is only chosen as a last resort.
func byRateDesc(score func(position.Position) float64) func(a, b position.Position) int {
	return func(a, b position.Position) int {
		sa, sb := score(a), score(b)
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		case a == position.Util:
			return 1
		case b == position.Util:
			return -1
		case position.Less(a, b):
			return -1
		case position.Less(b, a):
			return 1
		}
		return 0
	}
}
