package replacement

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/projection"
)

// fillTarget grows one position at a time until every position's credited
// playing time reaches target × teams or the position runs out of players.
func (s *Solver) fillTarget(ctx context.Context, sd side) (Status, int, error) {
	logger := zerolog.Ctx(ctx)
	for _, pos := range sd.searchable {
		s.states[pos].Target = s.params.Targets[pos] * float64(s.params.Teams)
		s.setCount(pos, 1)
	}
	for _, c := range sd.composites {
		if _, ok := s.params.Targets[c.Name]; ok {
			logger.Warn().Str("position", string(c.Name)).Msg("ignoring fill target on a composite position")
		}
	}

	status := StatusConverged
	maxIter := s.maxIterations()
	iter := 0
	for ; ; iter++ {
		s.reprice(sd)
		s.creditFill(sd)
		under := lo.Filter(sd.searchable, func(pos position.Position, _ int) bool {
			st := s.states[pos]
			return !st.Met() && !st.Capped()
		})
		if len(under) == 0 {
			break
		}
		if iter >= maxIter {
			status = StatusCutoff
			break
		}
		slices.SortFunc(under, byRateDesc(func(pos position.Position) float64 { return s.states[pos].Rate }))
		pick := under[0]
		s.setCount(pick, s.states[pick].Count+1)
		if iter%100 == 0 {
			logger.Debug().Int("iteration", iter).Str("position", string(pick)).
				Int("count", s.states[pick].Count).Float64("rate", s.states[pick].Rate).Msg("fill-target")
			s.reporter.IncrementCompletionPercent(1)
		}
	}

	if len(s.params.Surplus) > 0 {
		for _, pos := range sd.searchable {
			if extra, ok := s.params.Surplus[pos]; ok && extra != 0 {
				s.setCount(pos, s.states[pos].Count+extra)
			}
		}
		s.reprice(sd)
		s.creditFill(sd)
	}
	return status, iter, nil
}

// creditFill recomputes the playing time credited at each searched
// position. A hitter's games go to the eligible position with the highest
// non-negative FOM that still has room; a pitcher's innings go to each
// role they are above replacement in.
func (s *Solver) creditFill(sd side) {
	for _, pos := range sd.searchable {
		s.states[pos].Filled = 0
	}
	if sd.pitching {
		for _, p := range sd.players {
			for _, role := range sd.searchable {
				if slot, ok := p.Slots[role]; ok && slot.FOM >= 0 {
					s.states[role].Filled += slot.Time
				}
			}
		}
		return
	}

	order := slices.Clone(sd.players)
	slices.SortStableFunc(order, func(a, b *projection.Player) int {
		fa, fb := bestSearchable(a, sd.searchable), bestSearchable(b, sd.searchable)
		switch {
		case fa > fb:
			return -1
		case fa < fb:
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
	for _, p := range order {
		candidates := lo.Filter(sd.searchable, func(pos position.Position, _ int) bool {
			return p.Eligible(pos) && p.FOM(pos) >= 0
		})
		if len(candidates) == 0 {
			continue
		}
		slices.SortFunc(candidates, byRateDesc(p.FOM))
		for _, pos := range candidates {
			st := s.states[pos]
			if !st.Met() {
				st.Filled += p.Slots[pos].Time
				break
			}
		}
	}
}

func bestSearchable(p *projection.Player, searchable []position.Position) float64 {
	best := projection.NotEligible
	for _, pos := range searchable {
		if f := p.FOM(pos); f > best {
			best = f
		}
	}
	return best
}
