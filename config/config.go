// Package config loads valuation settings from flags, ROSTERVALUE_
// environment variables and an optional YAML file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyConfigFile    = "config"
	KeyDebug         = "debug"
	KeyOutput        = "output"
	KeyHittersPath   = "hitters-path"
	KeyPitchersPath  = "pitchers-path"
	KeyPositionsPath = "positions-path"

	KeyTeams         = "teams"
	KeySalaryCap     = "salary-cap"
	KeyRosterSpots   = "roster-spots"
	KeyNonProductive = "non-productive-dollars"
	KeyScoring       = "scoring"
	KeyHitterBasis   = "hitter-basis"
	KeyPitcherBasis  = "pitcher-basis"
	KeyPositions     = "positions"
	KeyCompositeRule = "composite-rule"
	KeyHitterSplit   = "hitter-split"
	KeyNegative      = "negative-values"
	KeyMinPA         = "min-pa"
	KeyMinSPIP       = "min-sp-ip"
	KeyMinRPIP       = "min-rp-ip"

	KeyScheme        = "scheme"
	KeyCounts        = "counts"
	KeyThresholds    = "thresholds"
	KeyTargets       = "targets"
	KeySurplus       = "surplus"
	KeyTotalHitters  = "total-hitters"
	KeyTotalPitchers = "total-pitchers"
	KeyInningsTarget = "innings-target"
	KeyInningsGap    = "innings-gap"
	KeyMaxRelievers  = "max-relievers"
	KeyCaps          = "caps"
	KeyMaxIterations = "max-iterations"

	KeyHitterLineup   = "hitter-lineup"
	KeyPitcherLineup  = "pitcher-lineup"
	KeyZMaxIterations = "z-max-iterations"
	KeyZTolerance     = "z-tolerance"
)

const EnvPrefix = "ROSTERVALUE"

var defaultPositions = []string{"C", "1B", "2B", "SS", "MI", "3B", "OF", "Util", "SP", "RP"}

type Config struct {
	*viper.Viper
	args []string
}

// DefaultConfig returns a config holding the defaults for a 12-team
// Ottoneu-style points league.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	fs := flagSet()
	fs.VisitAll(func(f *pflag.Flag) {
		c.SetDefault(f.Name, flagDefault(fs, f))
	})
	return c
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("valuate", pflag.ContinueOnError)
	fs.String(KeyConfigFile, "", "YAML file with settings")
	fs.Bool(KeyDebug, false, "debug logging")
	fs.String(KeyOutput, "table", "output format: table or yaml")
	fs.String(KeyHittersPath, "", "hitter projections CSV")
	fs.String(KeyPitchersPath, "", "pitcher projections CSV")
	fs.String(KeyPositionsPath, "", "position eligibility CSV")

	fs.Int(KeyTeams, 12, "number of teams")
	fs.Float64(KeySalaryCap, 400, "salary cap per team")
	fs.Int(KeyRosterSpots, 40, "roster spots per team")
	fs.Float64(KeyNonProductive, 48, "dollars per team held back for non-productive players")
	fs.String(KeyScoring, "fgpoints", "scoring format: fgpoints, sabr, 4x4, 5x5")
	fs.String(KeyHitterBasis, "ppg", "hitter ranking basis: ppg, pppa, zscore")
	fs.String(KeyPitcherBasis, "pip", "pitcher ranking basis: pip, ppg, zscore")
	fs.StringSlice(KeyPositions, defaultPositions, "league roster positions")
	fs.String(KeyCompositeRule, "max", "composite replacement rate rule: max or min")
	fs.Float64(KeyHitterSplit, 0, "share of the pool for hitters; 0 uses a single rate")
	fs.Bool(KeyNegative, false, "give sub-replacement players negative values")
	fs.Float64(KeyMinPA, 1, "minimum projected plate appearances")
	fs.Float64(KeyMinSPIP, 1, "minimum projected innings for a starter")
	fs.Float64(KeyMinRPIP, 1, "minimum projected innings for a reliever")

	fs.String(KeyScheme, "fill-target", "replacement scheme: fixed-count, fixed-threshold, fill-target, total-roster-target")
	fs.StringToString(KeyCounts, nil, "league-wide roster counts, e.g. C=24,SS=12")
	fs.StringToString(KeyThresholds, nil, "replacement rates per position")
	fs.StringToString(KeyTargets, nil, "per-team games or innings per position")
	fs.StringToString(KeySurplus, nil, "roster count adjustment per position after a fill-target search")
	fs.Int(KeyTotalHitters, 0, "league-wide rostered hitters")
	fs.Int(KeyTotalPitchers, 0, "league-wide rostered pitchers")
	fs.Float64(KeyInningsTarget, 0, "league-wide usable innings; 0 disables")
	fs.Float64(KeyInningsGap, 200, "innings shortfall past which the last pitcher slot goes to a starter")
	fs.Int(KeyMaxRelievers, 0, "cap on rostered relievers; 0 disables")
	fs.StringSlice(KeyCaps, nil, "ratio caps, e.g. 1B:SS:1.5")
	fs.Int(KeyMaxIterations, 5000, "replacement search iteration cap")

	fs.Int(KeyHitterLineup, 13, "hitters per team in a rate-category sample")
	fs.Int(KeyPitcherLineup, 10, "pitchers per team in a rate-category sample")
	fs.Int(KeyZMaxIterations, 50, "z-score pass cap")
	fs.Float64(KeyZTolerance, 2, "z-score convergence tolerance")
	return fs
}

func flagDefault(fs *pflag.FlagSet, f *pflag.Flag) any {
	switch f.Value.Type() {
	case "stringSlice":
		v, _ := fs.GetStringSlice(f.Name)
		return v
	case "stringToString":
		v, _ := fs.GetStringToString(f.Name)
		return v
	}
	return f.DefValue
}

// Load layers flags over environment variables over the optional config
// file over defaults.
func (c *Config) Load(args []string) error {
	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	c.SetEnvPrefix(EnvPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	if path := c.GetString(KeyConfigFile); path != "" {
		c.SetConfigFile(path)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return nil
}

// Args returns the positional arguments left after flag parsing.
func (c *Config) Args() []string {
	return c.args
}
