package replacement

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/rostervalue/rostervalue/position"
)

const defaultInningsGap = 200

type move struct {
	pos position.Position
	add bool
}

// totalRosterTarget adds and removes roster spots one at a time until the
// side rosters its target number of players and, for pitchers, reaches
// the usable-innings target.
func (s *Solver) totalRosterTarget(ctx context.Context, sd side) (Status, int, error) {
	logger := zerolog.Ctx(ctx)
	target := s.params.HitterTarget
	inningsTarget := 0.0
	if sd.pitching {
		target = s.params.PitcherTarget
		inningsTarget = s.params.InningsTarget
	}
	if len(sd.searchable) == 0 {
		return StatusConverged, 0, nil
	}
	if target <= 0 {
		return "", 0, fmt.Errorf("%w: %s roster target", ErrMissingParameter, sd.name)
	}
	gap := s.params.InningsGap
	if gap <= 0 {
		gap = defaultInningsGap
	}
	for _, pos := range sd.searchable {
		s.setCount(pos, 1)
	}

	var last move
	maxIter := s.maxIterations()
	iter := 0
	for ; ; iter++ {
		s.reprice(sd)
		n := s.rostered(sd)
		innings := 0.0
		if sd.pitching {
			innings = s.usableInnings(sd)
		}
		if iter%100 == 0 {
			logger.Debug().Str("side", sd.name).Int("iteration", iter).Int("rostered", n).
				Int("target", target).Float64("innings", innings).Msg("total-roster-target")
			s.reporter.IncrementCompletionPercent(1)
		}
		if iter >= maxIter {
			return StatusCutoff, iter, nil
		}

		switch {
		case n < target:
			preferStarter := inningsTarget > 0 && target-n <= 1 && inningsTarget-innings > gap
			pos, ok := s.nextAdd(sd, preferStarter)
			if !ok {
				return StatusExhausted, iter, nil
			}
			if last == (move{pos: pos, add: false}) {
				return StatusCycle, iter, nil
			}
			s.setCount(pos, s.states[pos].Count+1)
			last = move{pos: pos, add: true}

		case inningsTarget > 0 && innings < inningsTarget:
			// At the count target but short on innings: trade a reliever
			// slot for a starter slot.
			if !s.canAdd(position.SP) {
				return StatusExhausted, iter, nil
			}
			s.setCount(position.SP, s.states[position.SP].Count+1)
			if rp, ok := s.states[position.RP]; ok && rp.Count > 1 {
				s.setCount(position.RP, rp.Count-1)
			}
			last = move{pos: position.SP, add: true}

		case n > target:
			pos, ok := s.nextRemove(sd)
			if !ok {
				return StatusExhausted, iter, nil
			}
			if last == (move{pos: pos, add: true}) {
				return StatusCycle, iter, nil
			}
			s.setCount(pos, s.states[pos].Count-1)
			last = move{pos: pos, add: false}

		default:
			return StatusConverged, iter, nil
		}
	}
}

// canAdd reports whether pos has another eligible player and is not held
// back by a roster cap.
func (s *Solver) canAdd(pos position.Position) bool {
	st, ok := s.states[pos]
	if !ok || st.Capped() {
		return false
	}
	if pos == position.RP && s.params.MaxRelievers > 0 && st.Count >= s.params.MaxRelievers {
		return false
	}
	for _, c := range s.params.Caps {
		if c.Position != pos {
			continue
		}
		ref, ok := s.states[c.Reference]
		if ok && float64(st.Count+1) > c.Ratio*float64(ref.Count) {
			return false
		}
	}
	return true
}

// nextAdd picks the position whose best unrostered player has the highest
// basis.
func (s *Solver) nextAdd(sd side, preferStarter bool) (position.Position, bool) {
	candidates := lo.Filter(sd.searchable, func(pos position.Position, _ int) bool { return s.canAdd(pos) })
	if len(candidates) == 0 {
		return "", false
	}
	if preferStarter && slices.Contains(candidates, position.SP) {
		return position.SP, true
	}
	slices.SortFunc(candidates, byRateDesc(s.nextBasis))
	return candidates[0], true
}

// nextRemove picks the position whose current replacement player is worst.
func (s *Solver) nextRemove(sd side) (position.Position, bool) {
	candidates := lo.Filter(sd.searchable, func(pos position.Position, _ int) bool {
		return s.states[pos].Count > 1
	})
	if len(candidates) == 0 {
		return "", false
	}
	slices.SortFunc(candidates, byRateDesc(func(pos position.Position) float64 {
		return -s.states[pos].Rate
	}))
	return candidates[0], true
}
