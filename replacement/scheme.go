package replacement

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rostervalue/rostervalue/position"
)

var (
	ErrUnknownScheme    = errors.New("unknown replacement-level scheme")
	ErrMissingParameter = errors.New("missing scheme parameter")
)

type Scheme int

const (
	// FixedCount takes the number of rostered players per position.
	FixedCount Scheme = iota
	// FixedThreshold takes the replacement rate per position.
	FixedThreshold
	// FillTarget grows roster counts until each position's credited
	// playing time reaches its per-team target.
	FillTarget
	// TotalRosterTarget searches counts until a league-wide number of
	// rostered players (and, for pitchers, usable innings) is reached.
	TotalRosterTarget
)

func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(s) {
	case "fixed-count", "count":
		return FixedCount, nil
	case "fixed-threshold", "threshold":
		return FixedThreshold, nil
	case "fill-target", "fill", "games":
		return FillTarget, nil
	case "total-roster-target", "total", "roster":
		return TotalRosterTarget, nil
	}
	return FixedCount, fmt.Errorf("%w: %q", ErrUnknownScheme, s)
}

func (s Scheme) String() string {
	switch s {
	case FixedThreshold:
		return "fixed-threshold"
	case FillTarget:
		return "fill-target"
	case TotalRosterTarget:
		return "total-roster-target"
	}
	return "fixed-count"
}

// RatioCap keeps Position's roster count at or below Ratio times the
// count at Reference, e.g. no more than 1.5 first basemen per shortstop.
type RatioCap struct {
	Position  position.Position
	Reference position.Position
	Ratio     float64
}

// ParseCap parses "1B:SS:1.5".
func ParseCap(s string) (RatioCap, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return RatioCap{}, fmt.Errorf("cap %q: want POS:REF:RATIO", s)
	}
	pos, err := position.Parse(parts[0])
	if err != nil {
		return RatioCap{}, err
	}
	ref, err := position.Parse(parts[1])
	if err != nil {
		return RatioCap{}, err
	}
	ratio, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || ratio <= 0 {
		return RatioCap{}, fmt.Errorf("cap %q: bad ratio", s)
	}
	return RatioCap{Position: pos, Reference: ref, Ratio: ratio}, nil
}

// Params configures one solve.
type Params struct {
	Scheme Scheme
	Teams  int

	// League-wide roster counts for FixedCount.
	Counts map[position.Position]int
	// Replacement rates for FixedThreshold.
	Thresholds map[position.Position]float64
	// Per-team games (hitting) or innings (pitching) for FillTarget.
	Targets map[position.Position]float64
	// Added to FillTarget counts once the search converges.
	Surplus map[position.Position]int

	// League-wide rostered players for TotalRosterTarget.
	HitterTarget  int
	PitcherTarget int
	// League-wide usable innings; 0 disables the innings condition.
	InningsTarget float64
	// Innings shortfall past which the last open pitcher slot goes to a
	// starter.
	InningsGap   float64
	MaxRelievers int
	Caps         []RatioCap

	Rule          position.CompositeRule
	MaxIterations int
}
