// Package position defines roster positions, how eligibility tags map onto
// them, and the composite positions derived from their components.
package position

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Position string

const (
	C      Position = "C"
	First  Position = "1B"
	Second Position = "2B"
	Third  Position = "3B"
	SS     Position = "SS"
	OF     Position = "OF"
	Util   Position = "Util"
	MI     Position = "MI"
	CI     Position = "CI"
	INF    Position = "INF"
	SP     Position = "SP"
	RP     Position = "RP"
)

var ErrUnknownPosition = errors.New("unknown position")

// canonical is the reporting order of every position.
var canonical = []Position{C, First, Second, Third, SS, MI, CI, INF, OF, Util, SP, RP}

// Composite is a position filled by any player eligible at one of its
// components. Its replacement rate is derived rather than searched.
type Composite struct {
	Name       Position
	Components []Position
}

var composites = []Composite{
	{Name: MI, Components: []Position{Second, SS}},
	{Name: CI, Components: []Position{First, Third}},
	{Name: INF, Components: []Position{First, Second, Third, SS}},
}

// aliases maps eligibility tags as they appear in projection sources.
var aliases = map[string]Position{
	"C":    C,
	"1B":   First,
	"2B":   Second,
	"3B":   Third,
	"SS":   SS,
	"OF":   OF,
	"LF":   OF,
	"CF":   OF,
	"RF":   OF,
	"UTIL": Util,
	"UT":   Util,
	"DH":   Util,
	"MI":   MI,
	"CI":   CI,
	"INF":  INF,
	"IF":   INF,
	"SP":   SP,
	"RP":   RP,
}

// HittingBase lists the hitting positions the solver searches directly.
var HittingBase = []Position{C, First, Second, Third, SS, OF, Util}

// PitchingBase lists the pitching roles.
var PitchingBase = []Position{SP, RP}

func Parse(s string) (Position, error) {
	p, ok := aliases[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPosition, s)
	}
	return p, nil
}

// ParseTags parses an eligibility string such as "2B/SS/OF". Duplicates
// (LF/RF both mapping to OF) collapse into one tag.
func ParseTags(s string) ([]Position, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ',' || r == ' ' || r == ';'
	})
	tags := make([]Position, 0, len(fields))
	for _, f := range fields {
		p, err := Parse(f)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(tags, p) {
			tags = append(tags, p)
		}
	}
	Sort(tags)
	return tags, nil
}

func (p Position) IsPitching() bool {
	return p == SP || p == RP
}

func (p Position) IsComposite() bool {
	_, ok := CompositeFor(p)
	return ok
}

func CompositeFor(p Position) (Composite, bool) {
	for _, c := range composites {
		if c.Name == p {
			return c, true
		}
	}
	return Composite{}, false
}

// Composites returns the composite definitions in table order.
func Composites() []Composite {
	return slices.Clone(composites)
}

// Expand turns a hitter's raw tags into every hitting position they can
// fill out of the league's positions: their base tags, any composite
// containing one of them, and Util.
func Expand(tags []Position, league []Position) []Position {
	var out []Position
	add := func(p Position) {
		if slices.Contains(league, p) && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	for _, t := range tags {
		if t.IsPitching() || t.IsComposite() {
			continue
		}
		add(t)
	}
	for _, c := range composites {
		for _, comp := range c.Components {
			if slices.Contains(tags, comp) {
				add(c.Name)
				break
			}
		}
	}
	add(Util)
	Sort(out)
	return out
}

func index(p Position) int {
	return slices.Index(canonical, p)
}

// Less orders positions the way they are reported.
func Less(a, b Position) bool {
	return index(a) < index(b)
}

func Sort(ps []Position) {
	slices.SortFunc(ps, func(a, b Position) int { return index(a) - index(b) })
}
