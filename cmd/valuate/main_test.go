package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostervalue/rostervalue/config"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

func writeLeague(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	var h, p, pos strings.Builder
	h.WriteString("playerid,name,PA,G,AB,H,2B,3B,HR,BB,SB,CS\n")
	p.WriteString("playerid,name,IP,G,GS,SO,H,BB,HR,SV,HLD\n")
	pos.WriteString("playerid,positions\n")
	tags := []string{"C", "1B", "2B", "SS", "3B", "OF", "OF/1B"}
	for i := 0; i < 28; i++ {
		f := 1 - 0.02*float64(i)
		fmt.Fprintf(&h, "h%d,Hitter %d,%.0f,140,%.0f,%.1f,%.1f,2,%.1f,%.1f,5,2\n",
			i, i, 600*f, 530*f, 150*f, 30*f, 25*f, 55*f)
		fmt.Fprintf(&pos, "h%d,%s\n", i, tags[i%len(tags)])
	}
	for i := 0; i < 12; i++ {
		f := 1 - 0.03*float64(i)
		if i%2 == 0 {
			fmt.Fprintf(&p, "p%d,Starter %d,%.0f,31,31,%.0f,%.0f,50,20,,\n", i, i, 180*f, 190*f, 170/f)
			fmt.Fprintf(&pos, "p%d,SP\n", i)
		} else {
			fmt.Fprintf(&p, "p%d,Reliever %d,65,65,0,%.0f,55,22,7,%d,10\n", i, i, 75*f, 30-i)
			fmt.Fprintf(&pos, "p%d,RP\n", i)
		}
	}
	paths := make([]string, 3)
	for i, body := range []string{h.String(), p.String(), pos.String()} {
		paths[i] = filepath.Join(dir, []string{"h.csv", "p.csv", "pos.csv"}[i])
		require.NoError(t, os.WriteFile(paths[i], []byte(body), 0o644))
	}
	return paths[0], paths[1], paths[2]
}

func TestRun(t *testing.T) {
	hp, pp, posp := writeLeague(t)
	for _, format := range []string{"yaml", "table"} {
		t.Run(format, func(t *testing.T) {
			cfg := config.DefaultConfig()
			require.NoError(t, cfg.Load([]string{
				"--teams", "2", "--output", format,
				"--hitters-path", hp, "--pitchers-path", pp, "--positions-path", posp,
			}))
			var out bytes.Buffer
			require.NoError(t, run(context.Background(), cfg, &out))
			if format == "yaml" {
				assert.Contains(t, out.String(), "pool: 624")
			} else {
				assert.Contains(t, out.String(), "Pool $624")
			}
			assert.Contains(t, out.String(), "h0")
		})
	}
}

func TestRunBadOutput(t *testing.T) {
	hp, pp, posp := writeLeague(t)
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Load([]string{"--teams", "2", "--output", "xml",
		"--hitters-path", hp, "--pitchers-path", pp, "--positions-path", posp}))
	assert.Error(t, run(context.Background(), cfg, &bytes.Buffer{}))
}
