package valuation

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/samber/lo"

	"github.com/rostervalue/rostervalue/config"
	"github.com/rostervalue/rostervalue/fom"
	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/replacement"
	"github.com/rostervalue/rostervalue/zscore"
)

// ConfigurationError is returned for settings that cannot drive a run. It
// is always reported before any search begins.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

var errOutOfRange = errors.New("out of range")

func configErr(field string, err error) error {
	return &ConfigurationError{Field: field, Err: err}
}

// Settings is everything a run needs besides the projections.
type Settings struct {
	Teams         int
	SalaryCap     float64
	RosterSpots   int
	NonProductive float64 // per team

	Scoring      fom.Scoring
	HitterBasis  fom.Basis
	PitcherBasis fom.Basis
	Positions    []position.Position
	Floor        fom.Floor

	// Replacement carries the scheme and its parameters. Teams and Rule
	// are filled in from the settings above.
	Replacement replacement.Params
	Rule        position.CompositeRule

	// HitterSplit is the hitters' share of the pool. 0 prices both sides
	// at one rate.
	HitterSplit    float64
	NegativeValues bool

	HitterLineup   int
	PitcherLineup  int
	ZMaxIterations int
	ZTolerance     float64
}

var defaultPositions = []position.Position{position.C, position.First, position.Second, position.SS,
	position.MI, position.Third, position.OF, position.Util, position.SP, position.RP}

// DefaultSettings is a 12-team Ottoneu-style points league with per-team
// games and innings targets.
func DefaultSettings() Settings {
	return Settings{
		Teams:         12,
		SalaryCap:     400,
		RosterSpots:   40,
		NonProductive: 48,
		Scoring:       fom.StandardPoints,
		HitterBasis:   fom.PointsPerGame,
		PitcherBasis:  fom.PointsPerInning,
		Positions:     slices.Clone(defaultPositions),
		Floor:         fom.Floor{MinPA: 1, MinSPIP: 1, MinRPIP: 1},
		Replacement: replacement.Params{
			Scheme: replacement.FillTarget,
			Targets: map[position.Position]float64{
				position.C: 162, position.First: 162, position.Second: 162, position.SS: 162,
				position.Third: 162, position.OF: 810, position.Util: 324,
				position.SP: 1150, position.RP: 350,
			},
			InningsGap:    200,
			MaxIterations: replacement.IterationsCutoff,
		},
		HitterLineup:   13,
		PitcherLineup:  10,
		ZMaxIterations: zscore.DefaultMaxIterations,
		ZTolerance:     zscore.DefaultTolerance,
	}
}

// Pool is the dollars distributed above the one-dollar roster floor.
func (s Settings) Pool() float64 {
	t := float64(s.Teams)
	return t*s.SalaryCap - t*s.NonProductive - t*float64(s.RosterSpots)
}

// Params returns the solver parameters for a run.
func (s Settings) Params() replacement.Params {
	p := s.Replacement
	p.Teams = s.Teams
	p.Rule = s.Rule
	return p
}

func (s Settings) Validate() error {
	switch {
	case s.Teams <= 0:
		return configErr(config.KeyTeams, fmt.Errorf("%w: %d", errOutOfRange, s.Teams))
	case s.SalaryCap <= 0:
		return configErr(config.KeySalaryCap, fmt.Errorf("%w: %g", errOutOfRange, s.SalaryCap))
	case s.RosterSpots <= 0:
		return configErr(config.KeyRosterSpots, fmt.Errorf("%w: %d", errOutOfRange, s.RosterSpots))
	case s.NonProductive < 0:
		return configErr(config.KeyNonProductive, fmt.Errorf("%w: %g", errOutOfRange, s.NonProductive))
	case s.Pool() <= 0:
		return configErr(config.KeySalaryCap, fmt.Errorf("%w: dollar pool %g", errOutOfRange, s.Pool()))
	case s.HitterSplit < 0 || s.HitterSplit >= 1:
		return configErr(config.KeyHitterSplit, fmt.Errorf("%w: %g", errOutOfRange, s.HitterSplit))
	case len(s.Positions) == 0:
		return configErr(config.KeyPositions, errors.New("no positions"))
	}
	if err := checkBasis(s.Scoring, s.HitterBasis, projection.Hitting); err != nil {
		return configErr(config.KeyHitterBasis, err)
	}
	if err := checkBasis(s.Scoring, s.PitcherBasis, projection.Pitching); err != nil {
		return configErr(config.KeyPitcherBasis, err)
	}
	if !s.Scoring.IsPoints() {
		if _, err := zscore.Categories(s.Scoring, projection.Hitting); err != nil {
			return configErr(config.KeyScoring, err)
		}
	}
	return s.validateScheme()
}

// checkBasis rejects a basis that cannot rank the side, and a points basis
// in a category league or the reverse.
func checkBasis(scoring fom.Scoring, b fom.Basis, side projection.Side) error {
	if !b.ValidFor(side) {
		return fmt.Errorf("%w: %s cannot rank %s", fom.ErrUnknownBasis, b, side)
	}
	if scoring.IsPoints() == (b == fom.ZScore) {
		return fmt.Errorf("%w: %s cannot rank %s leagues", fom.ErrUnknownBasis, b, scoring)
	}
	return nil
}

func (s Settings) validateScheme() error {
	p := s.Replacement
	hitting := lo.Intersect(position.HittingBase, s.Positions)
	pitching := lo.Intersect(position.PitchingBase, s.Positions)
	searchable := slices.Concat(hitting, pitching)
	missing := func(field string, has func(position.Position) bool) error {
		for _, pos := range searchable {
			if !has(pos) {
				return configErr(field, fmt.Errorf("%w: %s", replacement.ErrMissingParameter, pos))
			}
		}
		return nil
	}
	switch p.Scheme {
	case replacement.FixedCount:
		return missing(config.KeyCounts, func(pos position.Position) bool { _, ok := p.Counts[pos]; return ok })
	case replacement.FixedThreshold:
		return missing(config.KeyThresholds, func(pos position.Position) bool { _, ok := p.Thresholds[pos]; return ok })
	case replacement.FillTarget:
		return missing(config.KeyTargets, func(pos position.Position) bool { _, ok := p.Targets[pos]; return ok })
	case replacement.TotalRosterTarget:
		if len(hitting) > 0 && p.HitterTarget <= 0 {
			return configErr(config.KeyTotalHitters, replacement.ErrMissingParameter)
		}
		if len(pitching) > 0 && p.PitcherTarget <= 0 {
			return configErr(config.KeyTotalPitchers, replacement.ErrMissingParameter)
		}
		return nil
	}
	return configErr(config.KeyScheme, fmt.Errorf("%w: %d", replacement.ErrUnknownScheme, p.Scheme))
}

// SettingsFromConfig converts and validates a loaded config. Map-valued
// scheme parameters replace the defaults only when set.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	s := DefaultSettings()
	var err error

	s.Teams = cfg.GetInt(config.KeyTeams)
	s.SalaryCap = cfg.GetFloat64(config.KeySalaryCap)
	s.RosterSpots = cfg.GetInt(config.KeyRosterSpots)
	s.NonProductive = cfg.GetFloat64(config.KeyNonProductive)
	s.HitterSplit = cfg.GetFloat64(config.KeyHitterSplit)
	s.NegativeValues = cfg.GetBool(config.KeyNegative)
	s.Floor = fom.Floor{
		MinPA:   cfg.GetFloat64(config.KeyMinPA),
		MinSPIP: cfg.GetFloat64(config.KeyMinSPIP),
		MinRPIP: cfg.GetFloat64(config.KeyMinRPIP),
	}
	s.HitterLineup = cfg.GetInt(config.KeyHitterLineup)
	s.PitcherLineup = cfg.GetInt(config.KeyPitcherLineup)
	s.ZMaxIterations = cfg.GetInt(config.KeyZMaxIterations)
	s.ZTolerance = cfg.GetFloat64(config.KeyZTolerance)

	if s.Scoring, err = fom.ParseScoring(cfg.GetString(config.KeyScoring)); err != nil {
		return s, configErr(config.KeyScoring, err)
	}
	if s.HitterBasis, err = fom.ParseBasis(cfg.GetString(config.KeyHitterBasis)); err != nil {
		return s, configErr(config.KeyHitterBasis, err)
	}
	if s.PitcherBasis, err = fom.ParseBasis(cfg.GetString(config.KeyPitcherBasis)); err != nil {
		return s, configErr(config.KeyPitcherBasis, err)
	}
	// Category leagues always rank by z-score.
	if !s.Scoring.IsPoints() {
		s.HitterBasis, s.PitcherBasis = fom.ZScore, fom.ZScore
	}
	if s.Rule, err = position.ParseRule(cfg.GetString(config.KeyCompositeRule)); err != nil {
		return s, configErr(config.KeyCompositeRule, err)
	}
	s.Positions = nil
	for _, raw := range cfg.GetStringSlice(config.KeyPositions) {
		pos, err := position.Parse(raw)
		if err != nil {
			return s, configErr(config.KeyPositions, err)
		}
		if !slices.Contains(s.Positions, pos) {
			s.Positions = append(s.Positions, pos)
		}
	}
	position.Sort(s.Positions)

	p := &s.Replacement
	if p.Scheme, err = replacement.ParseScheme(cfg.GetString(config.KeyScheme)); err != nil {
		return s, configErr(config.KeyScheme, err)
	}
	p.HitterTarget = cfg.GetInt(config.KeyTotalHitters)
	p.PitcherTarget = cfg.GetInt(config.KeyTotalPitchers)
	p.InningsTarget = cfg.GetFloat64(config.KeyInningsTarget)
	p.InningsGap = cfg.GetFloat64(config.KeyInningsGap)
	p.MaxRelievers = cfg.GetInt(config.KeyMaxRelievers)
	p.MaxIterations = cfg.GetInt(config.KeyMaxIterations)
	for _, raw := range cfg.GetStringSlice(config.KeyCaps) {
		c, err := replacement.ParseCap(raw)
		if err != nil {
			return s, configErr(config.KeyCaps, err)
		}
		p.Caps = append(p.Caps, c)
	}

	if p.Counts, err = positionMap(cfg, config.KeyCounts, p.Counts, strconv.Atoi); err != nil {
		return s, err
	}
	if p.Surplus, err = positionMap(cfg, config.KeySurplus, p.Surplus, strconv.Atoi); err != nil {
		return s, err
	}
	parseFloat := func(v string) (float64, error) { return strconv.ParseFloat(v, 64) }
	if p.Thresholds, err = positionMap(cfg, config.KeyThresholds, p.Thresholds, parseFloat); err != nil {
		return s, err
	}
	if p.Targets, err = positionMap(cfg, config.KeyTargets, p.Targets, parseFloat); err != nil {
		return s, err
	}
	return s, s.Validate()
}

func positionMap[T any](cfg *config.Config, key string, fallback map[position.Position]T,
	parse func(string) (T, error)) (map[position.Position]T, error) {

	raw := cfg.GetStringMapString(key)
	if len(raw) == 0 {
		return fallback, nil
	}
	out := make(map[position.Position]T, len(raw))
	for _, k := range slices.Sorted(maps.Keys(raw)) {
		pos, err := position.Parse(k)
		if err != nil {
			return nil, configErr(key, err)
		}
		v, err := parse(raw[k])
		if err != nil {
			return nil, configErr(key, fmt.Errorf("%s: %w", pos, err))
		}
		out[pos] = v
	}
	return out, nil
}
