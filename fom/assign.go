package fom

import (
	"fmt"
	"slices"

	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/rolesplit"
)

// Assigner prepares rows and gives each player a slot at every league
// position they can fill.
type Assigner struct {
	Scoring      Scoring
	HitterBasis  Basis
	PitcherBasis Basis
	Positions    []position.Position

	hitting  Calculator
	pitching Calculator
}

func NewAssigner(scoring Scoring, hitterBasis, pitcherBasis Basis, positions []position.Position) (*Assigner, error) {
	if !hitterBasis.ValidFor(projection.Hitting) {
		return nil, fmt.Errorf("%w: %s cannot rank hitters", ErrUnknownBasis, hitterBasis)
	}
	if !pitcherBasis.ValidFor(projection.Pitching) {
		return nil, fmt.Errorf("%w: %s cannot rank pitchers", ErrUnknownBasis, pitcherBasis)
	}
	for _, b := range []Basis{hitterBasis, pitcherBasis} {
		if scoring.IsPoints() == (b == ZScore) {
			return nil, fmt.Errorf("%w: %s cannot rank %s leagues", ErrUnknownBasis, b, scoring)
		}
	}
	return &Assigner{
		Scoring:      scoring,
		HitterBasis:  hitterBasis,
		PitcherBasis: pitcherBasis,
		Positions:    positions,
		hitting:      HittingCalculator(),
		pitching:     PitchingCalculator(scoring),
	}, nil
}

// Prepare checks required stats, fills fallbacks, computes points totals
// and splits pitchers into roles.
func (a *Assigner) Prepare(p *projection.Player) error {
	if p.Side == projection.Hitting {
		if err := p.Stats.Require(p.ID, projection.PA, projection.G); err != nil {
			return err
		}
		if a.Scoring.IsPoints() {
			if err := p.Stats.Require(p.ID, a.hitting.Required()...); err != nil {
				return err
			}
		}
		if stat := a.hitterTime(); p.Stats.Get(stat) <= 0 {
			return &projection.DataError{PlayerID: p.ID, Stat: stat, Reason: "no playing time projected"}
		}
		FillHBP(p.Stats)
		p.Points = a.hitting.Points(p.Stats)
		return nil
	}

	if a.Scoring.IsPoints() {
		if err := p.Stats.Require(p.ID, a.pitching.Required()...); err != nil {
			return err
		}
	}
	FillHBP(p.Stats)
	if err := rolesplit.Split(p); err != nil {
		return err
	}
	p.Points = a.pitching.Points(p.Stats)
	for pos, r := range p.Roles {
		if a.pitcherTime(r) <= 0 {
			delete(p.Roles, pos)
			continue
		}
		r.Points = a.pitching.Points(r.Stats)
	}
	if len(p.Roles) == 0 {
		return &projection.DataError{PlayerID: p.ID, Stat: projection.IP, Reason: "no playing time projected"}
	}
	return nil
}

// hitterTime is the stat a hitter's basis is weighted by.
func (a *Assigner) hitterTime() projection.Stat {
	if a.HitterBasis == PointsPerGame {
		return projection.G
	}
	return projection.PA
}

func (a *Assigner) pitcherTime(r *projection.Role) float64 {
	if a.PitcherBasis == PointsPerGame {
		return r.Games
	}
	return r.Innings
}

// Assign replaces the player's slots. With a z-score basis the slot basis
// is left at 0 for the z-score pass to fill in.
func (a *Assigner) Assign(p *projection.Player) {
	p.ResetSlots()
	if p.Side == projection.Hitting {
		tags := p.Tags
		if len(tags) == 0 {
			tags = []position.Position{position.Util}
		}
		for _, pos := range position.Expand(tags, a.Positions) {
			p.Slots[pos] = a.hitterSlot(p)
		}
		return
	}
	for _, role := range position.PitchingBase {
		r, ok := p.Roles[role]
		if !ok || !slices.Contains(a.Positions, role) {
			continue
		}
		p.Slots[role] = a.pitcherSlot(r)
	}
}

func (a *Assigner) hitterSlot(p *projection.Player) *projection.Slot {
	g := p.Stats.Get(projection.G)
	pa := p.Stats.Get(projection.PA)
	s := &projection.Slot{Time: g}
	switch a.HitterBasis {
	case PointsPerPA:
		s.Basis, s.Weight = PerPA(p.Points, pa), pa
	case ZScore:
		s.Weight = 1
	default:
		s.Basis, s.Weight = PerGame(p.Points, g), g
	}
	return s
}

func (a *Assigner) pitcherSlot(r *projection.Role) *projection.Slot {
	s := &projection.Slot{Time: r.Innings}
	switch a.PitcherBasis {
	case PointsPerGame:
		s.Basis, s.Weight = PerGame(r.Points, r.Games), r.Games
	case ZScore:
		s.Weight = 1
	default:
		s.Basis, s.Weight = PerInning(r.Points, r.Innings), r.Innings
	}
	return s
}
