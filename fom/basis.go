// Package fom computes each player's figure of merit inputs: points
// totals, rate bases, and the playing-time floor.
package fom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/stats"
)

var (
	ErrUnknownBasis   = errors.New("unknown ranking basis")
	ErrUnknownScoring = errors.New("unknown scoring format")
)

type Scoring int

const (
	StandardPoints Scoring = iota
	SABRPoints
	Roto4x4
	Roto5x5
)

func ParseScoring(s string) (Scoring, error) {
	switch strings.ToLower(s) {
	case "fgpoints", "points", "standard":
		return StandardPoints, nil
	case "sabr", "sabrpoints":
		return SABRPoints, nil
	case "4x4":
		return Roto4x4, nil
	case "5x5":
		return Roto5x5, nil
	}
	return StandardPoints, fmt.Errorf("%w: %q", ErrUnknownScoring, s)
}

func (s Scoring) IsPoints() bool {
	return s == StandardPoints || s == SABRPoints
}

func (s Scoring) String() string {
	switch s {
	case SABRPoints:
		return "sabr"
	case Roto4x4:
		return "4x4"
	case Roto5x5:
		return "5x5"
	}
	return "fgpoints"
}

// Basis is the metric players are ranked by at a position.
type Basis int

const (
	PointsPerGame Basis = iota
	PointsPerPA
	PointsPerInning
	ZScore
)

func ParseBasis(s string) (Basis, error) {
	switch strings.ToLower(s) {
	case "ppg":
		return PointsPerGame, nil
	case "pppa", "p/pa":
		return PointsPerPA, nil
	case "pip", "p/ip":
		return PointsPerInning, nil
	case "z", "zscore", "sgp":
		return ZScore, nil
	}
	return PointsPerGame, fmt.Errorf("%w: %q", ErrUnknownBasis, s)
}

func (b Basis) String() string {
	switch b {
	case PointsPerPA:
		return "pppa"
	case PointsPerInning:
		return "pip"
	case ZScore:
		return "zscore"
	}
	return "ppg"
}

// ValidFor reports whether the basis can rank the given side.
func (b Basis) ValidFor(side projection.Side) bool {
	switch b {
	case PointsPerPA:
		return side == projection.Hitting
	case PointsPerInning:
		return side == projection.Pitching
	}
	return true
}

func PerGame(points, games float64) float64 {
	return stats.SafeDiv(points, games)
}

func PerPA(points, pa float64) float64 {
	return stats.SafeDiv(points, pa)
}

func PerInning(points, ip float64) float64 {
	return stats.SafeDiv(points, ip)
}
