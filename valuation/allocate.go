package valuation

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/rolesplit"
	"github.com/rostervalue/rostervalue/stats"
)

// usableFOM is the FOM at pos counted toward the pool: raw for hitters,
// discounted by role usability for pitchers.
func (e *Engine) usableFOM(p *projection.Player, pos position.Position) float64 {
	slot := p.Slots[pos]
	if p.Side == projection.Pitching {
		return slot.FOM * rolesplit.Usability(pos, slot.Rank, e.settings.Teams)
	}
	return slot.FOM
}

func (e *Engine) sideTotal(players []*projection.Player) float64 {
	total := 0.0
	for _, p := range players {
		if pos, f, ok := p.Best(); ok && f > 0 {
			total += e.usableFOM(p, pos)
		}
	}
	return total
}

// dollars prices one slot: a dollar plus FOM times the rate at or above
// replacement, and 0 or the negative FOM value below it.
func (e *Engine) dollars(fom, rate float64) float64 {
	switch {
	case fom >= 0:
		return fom*rate + 1
	case e.settings.NegativeValues:
		return fom * rate
	}
	return 0
}

// allocate converts FOM above replacement into dollars that exhaust the
// pool and fills in the value tables.
func (e *Engine) allocate(ctx context.Context, r *Result, hitters, pitchers []*projection.Player) {
	pool := e.settings.Pool()
	r.Pool = pool
	r.HitterFOM = e.sideTotal(hitters)
	r.PitcherFOM = e.sideTotal(pitchers)
	split := e.settings.HitterSplit
	if split > 0 && (r.HitterFOM <= 0 || r.PitcherFOM <= 0) {
		zerolog.Ctx(ctx).Warn().Float64("hitter-fom", r.HitterFOM).Float64("pitcher-fom", r.PitcherFOM).
			Float64("split", split).Msg("split-side-empty-using-single-rate")
		split = 0
	}
	if split > 0 {
		r.HitterRate = stats.SafeDiv(split*pool, r.HitterFOM)
		r.PitcherRate = stats.SafeDiv((1-split)*pool, r.PitcherFOM)
	} else {
		r.Rate = stats.SafeDiv(pool, r.HitterFOM+r.PitcherFOM)
		r.HitterRate, r.PitcherRate = r.Rate, r.Rate
	}

	overall := map[string]*Overall{}
	price := func(players []*projection.Player, rate float64) {
		for _, p := range players {
			for _, pos := range p.Positions() {
				f := e.usableFOM(p, pos)
				r.Values = append(r.Values, Value{
					PlayerID: p.ID, Name: p.Name, Position: pos, FOM: f, Dollars: e.dollars(f, rate),
				})
			}
			best, _, ok := p.Best()
			if !ok {
				continue
			}
			o, seen := overall[p.ID]
			if !seen {
				o = &Overall{PlayerID: p.ID, Name: p.Name}
				overall[p.ID] = o
			}
			f := e.usableFOM(p, best)
			d := e.dollars(f, rate)
			if p.Side == projection.Pitching {
				o.PitchingPosition, o.Pitching = best, d
			} else {
				o.HittingPosition, o.Hitting = best, d
			}
			o.Dollars = o.Hitting + o.Pitching
			if f > 0 {
				r.Allocated += f * rate
			}
		}
	}
	price(hitters, r.HitterRate)
	price(pitchers, r.PitcherRate)

	slices.SortFunc(r.Values, func(a, b Value) int {
		if c := strings.Compare(a.PlayerID, b.PlayerID); c != 0 {
			return c
		}
		switch {
		case position.Less(a.Position, b.Position):
			return -1
		case position.Less(b.Position, a.Position):
			return 1
		}
		return 0
	})
	r.Summaries = summarize(r.Values, e.settings.Positions)
	r.Overall = make([]Overall, 0, len(overall))
	for _, o := range overall {
		r.Overall = append(r.Overall, *o)
	}
	slices.SortFunc(r.Overall, func(a, b Overall) int { return cmp.Compare(a.PlayerID, b.PlayerID) })
}

func summarize(values []Value, positions []position.Position) []Summary {
	acc := make(map[position.Position]*stats.Statistic, len(positions))
	for _, v := range values {
		if v.FOM < 0 {
			continue
		}
		st, ok := acc[v.Position]
		if !ok {
			st = &stats.Statistic{}
			acc[v.Position] = st
		}
		st.Push(v.Dollars)
	}
	ordered := slices.Clone(positions)
	position.Sort(ordered)
	var out []Summary
	for _, pos := range ordered {
		st, ok := acc[pos]
		if !ok {
			continue
		}
		out = append(out, Summary{
			Position: pos, Players: st.Count(), Total: st.Sum(), Mean: st.Mean(), Stdev: st.Stdev(), Max: st.Max(),
		})
	}
	return out
}
