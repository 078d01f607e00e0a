package position

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// CompositeRule says how a composite's replacement rate is derived from
// the rates of its components.
type CompositeRule int

const (
	RuleMax CompositeRule = iota
	RuleMin
)

var ErrUnknownRule = errors.New("unknown composite rule")

func ParseRule(s string) (CompositeRule, error) {
	switch strings.ToLower(s) {
	case "", "max":
		return RuleMax, nil
	case "min":
		return RuleMin, nil
	}
	return RuleMax, fmt.Errorf("%w: %q", ErrUnknownRule, s)
}

func (r CompositeRule) Derive(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	v := rates[0]
	for _, x := range rates[1:] {
		if r == RuleMin {
			v = math.Min(v, x)
		} else {
			v = math.Max(v, x)
		}
	}
	return v
}

// State is the solver's per-position working state.
type State struct {
	Position   Position `yaml:"position"`
	Count      int      `yaml:"count"`
	Rate       float64  `yaml:"rate"`
	Population int      `yaml:"population"`
	Filled     float64  `yaml:"filled,omitempty"`
	Target     float64  `yaml:"target,omitempty"`
}

// Capped reports whether every eligible player is already rostered.
func (s *State) Capped() bool {
	return s.Count >= s.Population
}

// Met reports whether the filled playing time reaches the target.
func (s *State) Met() bool {
	return s.Filled >= s.Target
}

func (s State) String() string {
	return fmt.Sprintf("<%s count=%d/%d rate=%.4f filled=%.1f/%.1f>",
		s.Position, s.Count, s.Population, s.Rate, s.Filled, s.Target)
}
