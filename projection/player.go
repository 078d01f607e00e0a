// Package projection holds the per-player projection rows a valuation run
// works on. Rows are enriched in place as the run proceeds and are never
// persisted.
package projection

import (
	"fmt"
	"slices"

	"github.com/rostervalue/rostervalue/position"
)

// NotEligible is the FOM reported for a position the player cannot fill.
// Real FOM values never reach it.
const NotEligible = -999999.0

type Side int

const (
	Hitting Side = iota
	Pitching
)

func (s Side) String() string {
	if s == Pitching {
		return "pitching"
	}
	return "hitting"
}

// Slot is a player's working data at one position.
type Slot struct {
	// Basis is the ranking metric: points per game/PA/inning or z-score.
	Basis float64
	// Weight turns basis above replacement into FOM (PA, games, innings,
	// or 1 for z-scores).
	Weight float64
	// Time is the playing time (games or innings) credited to fill targets.
	Time float64
	FOM  float64
	Rank int
}

// Role is one half of a pitcher's projection after the SP/RP split.
type Role struct {
	Position position.Position
	Stats    Stats
	Innings  float64
	Games    float64
	Points   float64
}

type Player struct {
	ID    string
	Name  string
	Side  Side
	Stats Stats
	Tags  []position.Position

	Points float64
	Roles  map[position.Position]*Role
	Slots  map[position.Position]*Slot
}

func NewPlayer(id, name string, side Side, stats Stats) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Side:  side,
		Stats: stats,
		Roles: make(map[position.Position]*Role),
		Slots: make(map[position.Position]*Slot),
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("<%s %s (%s)>", p.ID, p.Name, p.Side)
}

func (p *Player) Eligible(pos position.Position) bool {
	_, ok := p.Slots[pos]
	return ok
}

// FOM returns the figure of merit at pos, or NotEligible.
func (p *Player) FOM(pos position.Position) float64 {
	s, ok := p.Slots[pos]
	if !ok {
		return NotEligible
	}
	return s.FOM
}

// Positions returns the eligible positions in reporting order.
func (p *Player) Positions() []position.Position {
	out := make([]position.Position, 0, len(p.Slots))
	for pos := range p.Slots {
		out = append(out, pos)
	}
	position.Sort(out)
	return out
}

// Best returns the eligible position with the highest FOM. Ties go to the
// position reported first.
func (p *Player) Best() (position.Position, float64, bool) {
	var best position.Position
	bestFOM := NotEligible
	found := false
	for _, pos := range p.Positions() {
		f := p.Slots[pos].FOM
		if !found || f > bestFOM {
			best, bestFOM, found = pos, f, true
		}
	}
	return best, bestFOM, found
}

// Line returns the stat line valued at pos: the role line for pitchers,
// the full projection for hitters.
func (p *Player) Line(pos position.Position) Stats {
	if r, ok := p.Roles[pos]; ok {
		return r.Stats
	}
	return p.Stats
}

// HasTag reports whether the eligibility source tagged the player at pos.
func (p *Player) HasTag(pos position.Position) bool {
	return slices.Contains(p.Tags, pos)
}

// ResetSlots drops every slot; the next pass repopulates them.
func (p *Player) ResetSlots() {
	p.Slots = make(map[position.Position]*Slot)
}
