package projection

import (
	"errors"
	"fmt"
)

// DataError means a row cannot be valued because a stat has no fallback.
type DataError struct {
	PlayerID string
	Stat     Stat
	Reason   string
}

func (e *DataError) Error() string {
	if e.Stat == "" {
		return fmt.Sprintf("player %s: %s", e.PlayerID, e.Reason)
	}
	return fmt.Sprintf("player %s: %s: %s", e.PlayerID, e.Reason, e.Stat)
}

// Exclusion records a row dropped from a run and why.
type Exclusion struct {
	PlayerID string `yaml:"player_id"`
	Name     string `yaml:"name"`
	Side     string `yaml:"side"`
	Reason   string `yaml:"reason"`
}

// Filter keeps the players check accepts. Players it rejects with a
// DataError are returned as exclusions; any other error aborts.
func Filter(players []*Player, check func(*Player) error) ([]*Player, []Exclusion, error) {
	kept := make([]*Player, 0, len(players))
	var excluded []Exclusion
	for _, p := range players {
		err := check(p)
		if err == nil {
			kept = append(kept, p)
			continue
		}
		var de *DataError
		if !errors.As(err, &de) {
			return nil, nil, err
		}
		excluded = append(excluded, Exclusion{
			PlayerID: p.ID,
			Name:     p.Name,
			Side:     p.Side.String(),
			Reason:   de.Error(),
		})
	}
	return kept, excluded, nil
}
