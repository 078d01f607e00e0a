package rolesplit

import (
	"math"

	"github.com/rostervalue/rostervalue/position"
)

const (
	starterBlocks  = 6 // starters per team before usability decays
	starterDecay   = 0.05
	relieverBlocks = 5
	relieverDecay  = 0.15
	usabilityFloor = 0.5
)

// Usability is the share of a pitcher's workload a team can realistically
// use given the pitcher's rank within their role. The top blocks×teams
// arms keep everything; each further team-sized block loses decay, down
// to the floor.
func Usability(role position.Position, rank, teams int) float64 {
	if rank <= 0 || teams <= 0 {
		return 1
	}
	blocks, decay := starterBlocks, starterDecay
	if role == position.RP {
		blocks, decay = relieverBlocks, relieverDecay
	}
	over := rank - blocks*teams
	if over <= 0 {
		return 1
	}
	steps := math.Ceil(float64(over) / float64(teams))
	return math.Max(usabilityFloor, 1-decay*steps)
}
