package dataloaders

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/projection"
)

// League is the fully materialized input of a valuation run.
type League struct {
	Hitters  []*projection.Player
	Pitchers []*projection.Player
}

// LoadLeague reads the hitter, pitcher and eligibility tables
// concurrently. An empty path skips that table; without an eligibility
// table hitters are Util-only and pitchers are placed by their games.
func LoadLeague(ctx context.Context, hittersPath, pitchersPath, positionsPath string) (*League, error) {
	logger := zerolog.Ctx(ctx)
	league := &League{}
	var tags map[string][]position.Position

	g, _ := errgroup.WithContext(ctx)
	if hittersPath != "" {
		g.Go(func() error {
			var err error
			league.Hitters, err = readProjectionFile(hittersPath, projection.Hitting)
			return err
		})
	}
	if pitchersPath != "" {
		g.Go(func() error {
			var err error
			league.Pitchers, err = readProjectionFile(pitchersPath, projection.Pitching)
			return err
		})
	}
	if positionsPath != "" {
		g.Go(func() error {
			f, err := os.Open(positionsPath)
			if err != nil {
				return err
			}
			defer f.Close()
			tags, err = ReadEligibility(f)
			if err != nil {
				return fmt.Errorf("%s: %w", positionsPath, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	untagged := Tag(league.Hitters, tags) + Tag(league.Pitchers, tags)
	logger.Info().Int("hitters", len(league.Hitters)).Int("pitchers", len(league.Pitchers)).
		Int("untagged", untagged).Msg("league-loaded")
	return league, nil
}

func readProjectionFile(path string, side projection.Side) ([]*projection.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	players, err := ReadProjections(f, side)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return players, nil
}

// Tag attaches each player's eligibility for their side and returns how
// many players had none.
func Tag(players []*projection.Player, tags map[string][]position.Position) int {
	untagged := 0
	for _, p := range players {
		var mine []position.Position
		for _, t := range tags[p.ID] {
			if t.IsPitching() == (p.Side == projection.Pitching) {
				mine = append(mine, t)
			}
		}
		if len(mine) == 0 {
			untagged++
		}
		p.Tags = mine
	}
	return untagged
}
