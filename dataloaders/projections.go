// Package dataloaders reads projection and eligibility tables from CSV.
package dataloaders

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/projection"
)

var ErrNoIDColumn = errors.New("no playerid column")

func isIDColumn(h string) bool {
	switch strings.ToLower(strings.TrimSpace(h)) {
	case "playerid", "player_id", "id":
		return true
	}
	return false
}

// ReadProjections reads one side's projection table. The header row names
// the columns; unrecognized stat columns are skipped and an empty cell
// means the stat is not projected.
func ReadProjections(r io.Reader, side projection.Side) ([]*projection.Player, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idCol, nameCol := -1, -1
	cols := make(map[int]projection.Stat)
	for i, h := range header {
		switch {
		case isIDColumn(h):
			idCol = i
		case strings.EqualFold(strings.TrimSpace(h), "name"):
			nameCol = i
		default:
			if st, ok := projection.ParseStat(h); ok {
				cols[i] = st
			} else {
				log.Debug().Str("column", h).Msg("skipping unrecognized column")
			}
		}
	}
	if idCol < 0 {
		return nil, ErrNoIDColumn
	}

	var players []*projection.Player
	seen := map[string]bool{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		id := strings.TrimSpace(record[idCol])
		if id == "" {
			return nil, fmt.Errorf("line %d: empty player id", line)
		}
		if seen[id] {
			return nil, fmt.Errorf("line %d: duplicate player id %s", line, id)
		}
		seen[id] = true
		name := id
		if nameCol >= 0 {
			name = strings.TrimSpace(record[nameCol])
		}
		stats := make(projection.Stats, len(cols))
		for i, st := range cols {
			cell := strings.TrimSpace(record[i])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, st, err)
			}
			stats[st] = v
		}
		players = append(players, projection.NewPlayer(id, name, side, stats))
	}
	log.Debug().Str("side", side.String()).Int("players", len(players)).Msg("loaded-projections")
	return players, nil
}

// ReadEligibility reads a playerid,positions table with tags separated by
// slashes, e.g. "2B/SS/OF".
func ReadEligibility(r io.Reader) (map[string][]position.Position, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idCol, posCol := -1, -1
	for i, h := range header {
		switch {
		case isIDColumn(h):
			idCol = i
		case strings.EqualFold(strings.TrimSpace(h), "positions"),
			strings.EqualFold(strings.TrimSpace(h), "pos"):
			posCol = i
		}
	}
	if idCol < 0 {
		return nil, ErrNoIDColumn
	}
	if posCol < 0 {
		return nil, errors.New("no positions column")
	}

	out := make(map[string][]position.Position)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		tags, err := position.ParseTags(record[posCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out[strings.TrimSpace(record[idCol])] = tags
	}
	return out, nil
}
