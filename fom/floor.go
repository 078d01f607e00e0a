package fom

import (
	"fmt"

	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/stats"
)

// Floor is the minimum projected playing time a player needs to be valued.
type Floor struct {
	MinPA   float64
	MinSPIP float64
	MinRPIP float64
}

// PitcherFloor interpolates between the reliever and starter floors by the
// share of games started.
func (f Floor) PitcherFloor(g, gs float64) float64 {
	startRatio := stats.Clamp(stats.SafeDiv(gs, g), 0, 1)
	return f.MinRPIP + (f.MinSPIP-f.MinRPIP)*startRatio
}

// Check returns a DataError for a player below the floor.
func (f Floor) Check(p *projection.Player) error {
	if p.Side == projection.Hitting {
		pa, ok := p.Stats.Lookup(projection.PA)
		if !ok {
			return &projection.DataError{PlayerID: p.ID, Stat: projection.PA, Reason: "required stat missing"}
		}
		if pa < f.MinPA {
			return &projection.DataError{PlayerID: p.ID, Stat: projection.PA,
				Reason: fmt.Sprintf("below playing-time floor %.0f", f.MinPA)}
		}
		return nil
	}
	if err := p.Stats.Require(p.ID, projection.IP, projection.G, projection.GS); err != nil {
		return err
	}
	floor := f.PitcherFloor(p.Stats.Get(projection.G), p.Stats.Get(projection.GS))
	if p.Stats.Get(projection.IP) < floor {
		return &projection.DataError{PlayerID: p.ID, Stat: projection.IP,
			Reason: fmt.Sprintf("below playing-time floor %.1f", floor)}
	}
	return nil
}
