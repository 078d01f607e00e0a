package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rostervalue/rostervalue/config"
	"github.com/rostervalue/rostervalue/dataloaders"
	"github.com/rostervalue/rostervalue/progress"
	"github.com/rostervalue/rostervalue/valuation"
)

var (
	GitVersion string
)

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.KeyDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Str("version", GitVersion).Interface("settings", cfg.AllSettings()).Msg("loaded config")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	if err := run(ctx, cfg, os.Stdout); err != nil {
		log.Error().Err(err).Msg("valuation failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, w io.Writer) error {
	settings, err := valuation.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}
	league, err := dataloaders.LoadLeague(ctx, cfg.GetString(config.KeyHittersPath),
		cfg.GetString(config.KeyPitchersPath), cfg.GetString(config.KeyPositionsPath))
	if err != nil {
		return err
	}
	engine, err := valuation.NewEngine(settings, progress.NewLogReporter(*zerolog.Ctx(ctx)))
	if err != nil {
		return err
	}
	result, err := engine.Run(ctx, league.Hitters, league.Pitchers)
	if err != nil {
		return err
	}
	if !result.Converged {
		log.Warn().Str("status", string(result.Status)).Msg("values come from a search that did not converge")
	}

	switch cfg.GetString(config.KeyOutput) {
	case "yaml":
		return result.WriteYAML(w)
	case "table", "":
		writeTable(w, result)
		return nil
	}
	return fmt.Errorf("unknown output format %q", cfg.GetString(config.KeyOutput))
}

func writeTable(w io.Writer, r *valuation.Result) {
	fmt.Fprintf(w, "Pool $%.0f  hitter rate %.4f  pitcher rate %.4f  status %s  fingerprint %016x\n\n",
		r.Pool, r.HitterRate, r.PitcherRate, r.Status, r.Fingerprint())

	fmt.Fprintf(w, "%-5s %6s %6s %10s\n", "POS", "COUNT", "POP", "RATE")
	for _, st := range r.States {
		fmt.Fprintf(w, "%-5s %6d %6d %10.4f\n", st.Position, st.Count, st.Population, st.Rate)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-5s %6s %8s %8s %8s\n", "POS", "PLAYERS", "MEAN", "STDEV", "MAX")
	for _, sum := range r.Summaries {
		fmt.Fprintf(w, "%-5s %6d %8.2f %8.2f %8.2f\n", sum.Position, sum.Players, sum.Mean, sum.Stdev, sum.Max)
	}
	fmt.Fprintln(w)

	overall := slices.Clone(r.Overall)
	slices.SortStableFunc(overall, func(a, b valuation.Overall) int {
		switch {
		case a.Dollars > b.Dollars:
			return -1
		case a.Dollars < b.Dollars:
			return 1
		}
		return strings.Compare(a.PlayerID, b.PlayerID)
	})
	fmt.Fprintf(w, "%-10s %-24s %-5s %-5s %6s\n", "ID", "NAME", "HIT", "PIT", "VALUE")
	for _, o := range overall {
		fmt.Fprintf(w, "%-10s %-24s %-5s %-5s %6s\n", o.PlayerID, o.Name, o.HittingPosition,
			o.PitchingPosition, "$"+o.Rounded().String())
	}
	if len(r.Excluded) > 0 {
		fmt.Fprintf(w, "\n%d rows excluded:\n", len(r.Excluded))
		for _, x := range r.Excluded {
			fmt.Fprintf(w, "  %s (%s): %s\n", x.PlayerID, x.Side, x.Reason)
		}
	}
}
