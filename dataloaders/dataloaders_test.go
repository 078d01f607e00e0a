package dataloaders

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/projection"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

const hittersCSV = `playerid,Name,PA,AB,H,2B,3B,HR,BB,SB,Team
1001,Ada Ruth,600,530,150,30,2,28,60,,NYY
1002,Bo Cobb,420,380,101,18,6,4,30,22,DET
`

const pitchersCSV = `PlayerId,Name,IP,G,GS,SO,H,BB,HR,SV,HLD
2001,Cy Young,190,31,31,200,160,45,20,,
1001,Ada Ruth,40,10,8,45,30,12,5,,
`

const positionsCSV = `playerid,positions
1001,OF/SP
1002,2B/SS/LF
2001,SP
`

func TestReadProjections(t *testing.T) {
	is := is.New(t)
	players, err := ReadProjections(strings.NewReader(hittersCSV), projection.Hitting)
	is.NoErr(err)
	is.Equal(len(players), 2)
	p := players[0]
	is.Equal(p.ID, "1001")
	is.Equal(p.Name, "Ada Ruth")
	is.Equal(p.Stats[projection.HR], 28.0)
	is.Equal(p.Stats[projection.Double], 30.0)
	is.True(!p.Stats.Has(projection.SB)) // empty cell
	is.True(!p.Stats.Has(projection.HBP))
	is.Equal(players[1].Stats[projection.SB], 22.0)
}

func TestReadProjectionsErrors(t *testing.T) {
	type tc struct {
		name, csv string
	}
	for _, c := range []tc{
		{"no id", "Name,PA\nA,1\n"},
		{"bad number", "playerid,PA\n1,lots\n"},
		{"duplicate", "playerid,PA\n1,5\n1,6\n"},
		{"empty id", "playerid,PA\n,5\n"},
	} {
		t.Run(c.name, func(t *testing.T) {
			_, err := ReadProjections(strings.NewReader(c.csv), projection.Hitting)
			assert.Error(t, err)
		})
	}
	_, err := ReadProjections(strings.NewReader("Name,PA\nA,1\n"), projection.Hitting)
	assert.True(t, errors.Is(err, ErrNoIDColumn))
}

func TestReadEligibility(t *testing.T) {
	tags, err := ReadEligibility(strings.NewReader(positionsCSV))
	require.NoError(t, err)
	assert.Equal(t, []position.Position{position.Second, position.SS, position.OF}, tags["1002"])

	_, err = ReadEligibility(strings.NewReader("playerid,positions\n1,QB\n"))
	assert.True(t, errors.Is(err, position.ErrUnknownPosition))
}

func TestTagBySide(t *testing.T) {
	tags := map[string][]position.Position{"x": {position.OF, position.SP}}
	h := projection.NewPlayer("x", "x", projection.Hitting, nil)
	p := projection.NewPlayer("x", "x", projection.Pitching, nil)
	q := projection.NewPlayer("y", "y", projection.Pitching, nil)
	assert.Equal(t, 0, Tag([]*projection.Player{h}, tags))
	assert.Equal(t, 1, Tag([]*projection.Player{p, q}, tags))
	assert.Equal(t, []position.Position{position.OF}, h.Tags)
	assert.Equal(t, []position.Position{position.SP}, p.Tags)
	assert.Empty(t, q.Tags)
}

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadLeague(t *testing.T) {
	dir := t.TempDir()
	league, err := LoadLeague(context.Background(),
		write(t, dir, "hitters.csv", hittersCSV),
		write(t, dir, "pitchers.csv", pitchersCSV),
		write(t, dir, "positions.csv", positionsCSV))
	require.NoError(t, err)
	require.Len(t, league.Hitters, 2)
	require.Len(t, league.Pitchers, 2)
	assert.Equal(t, []position.Position{position.OF}, league.Hitters[0].Tags)
	assert.Equal(t, []position.Position{position.SP}, league.Pitchers[1].Tags)
}

func TestLoadLeagueMissingFile(t *testing.T) {
	_, err := LoadLeague(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), "", "")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
