package fom

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/stats"
)

var league = []position.Position{position.C, position.First, position.Second, position.SS,
	position.MI, position.Third, position.OF, position.Util, position.SP, position.RP}

func hitterStats() projection.Stats {
	return projection.Stats{
		projection.PA: 600, projection.AB: 530, projection.H: 150, projection.Double: 30,
		projection.Triple: 3, projection.HR: 25, projection.BB: 60, projection.HBP: 5,
		projection.SB: 10, projection.CS: 4, projection.G: 150,
	}
}

func TestHittingPoints(t *testing.T) {
	is := is.New(t)
	pts := HittingCalculator().Points(hitterStats())
	// -530 + 840 + 87 + 17.1 + 235 + 180 + 15 + 19 - 11.2
	is.True(stats.FuzzyEqual(pts, 851.9))
}

func TestPitchingPoints(t *testing.T) {
	st := projection.Stats{
		projection.IP: 180, projection.SO: 200, projection.H: 150, projection.BB: 50,
		projection.HBP: 6, projection.HR: 20,
	}
	assert.InDelta(t, 1332-390-150-18-246+400, PitchingCalculator(StandardPoints).Points(st), 1e-9)
	assert.InDelta(t, 900+400-150-18-260, PitchingCalculator(SABRPoints).Points(st), 1e-9)

	st[projection.SV] = 10
	st[projection.HLD] = 5
	assert.InDelta(t, 900+400-150-18-260+50+20, PitchingCalculator(SABRPoints).Points(st), 1e-9)
}

func TestHBPImputation(t *testing.T) {
	is := is.New(t)
	st := projection.Stats{projection.BB: 60}
	is.True(stats.FuzzyEqual(HBP(st), 0.0951*60+0.4181))
	is.Equal(HBP(projection.Stats{}), 0.0)
	is.Equal(HBP(projection.Stats{projection.HBP: 3, projection.BB: 60}), 3.0)

	FillHBP(st)
	is.True(st.Has(projection.HBP))
}

func TestRatesGuardZero(t *testing.T) {
	is := is.New(t)
	is.Equal(PerGame(100, 0), 0.0)
	is.Equal(PerPA(100, 0), 0.0)
	is.Equal(PerInning(100, 0), 0.0)
	is.Equal(PerInning(100, 50), 2.0)
}

func TestParse(t *testing.T) {
	_, err := ParseBasis("war")
	assert.True(t, errors.Is(err, ErrUnknownBasis))
	_, err = ParseScoring("6x6")
	assert.True(t, errors.Is(err, ErrUnknownScoring))
	b, err := ParseBasis("PPPA")
	require.NoError(t, err)
	assert.Equal(t, PointsPerPA, b)
}

func TestNewAssignerRejectsMismatchedBasis(t *testing.T) {
	_, err := NewAssigner(StandardPoints, PointsPerInning, PointsPerInning, league)
	assert.True(t, errors.Is(err, ErrUnknownBasis))
	_, err = NewAssigner(Roto5x5, PointsPerGame, ZScore, league)
	assert.True(t, errors.Is(err, ErrUnknownBasis))
	_, err = NewAssigner(StandardPoints, ZScore, PointsPerInning, league)
	assert.True(t, errors.Is(err, ErrUnknownBasis))
	_, err = NewAssigner(Roto4x4, ZScore, ZScore, league)
	assert.NoError(t, err)
}

func TestAssignHitter(t *testing.T) {
	a, err := NewAssigner(StandardPoints, PointsPerPA, PointsPerInning, league)
	require.NoError(t, err)
	p := projection.NewPlayer("h1", "Hitter", projection.Hitting, hitterStats())
	p.Tags = []position.Position{position.SS}
	require.NoError(t, a.Prepare(p))
	a.Assign(p)

	assert.Equal(t, []position.Position{position.SS, position.MI, position.Util}, p.Positions())
	slot := p.Slots[position.SS]
	assert.InDelta(t, 851.9/600, slot.Basis, 1e-9)
	assert.Equal(t, 600.0, slot.Weight)
	assert.Equal(t, 150.0, slot.Time)
	assert.Equal(t, projection.NotEligible, p.FOM(position.C))
}

func TestPrepareMissingStat(t *testing.T) {
	a, err := NewAssigner(StandardPoints, PointsPerGame, PointsPerInning, league)
	require.NoError(t, err)
	st := hitterStats()
	delete(st, projection.Triple)
	p := projection.NewPlayer("h1", "Hitter", projection.Hitting, st)
	err = a.Prepare(p)
	var de *projection.DataError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, projection.Triple, de.Stat)
}

func TestPrepareNoPlayingTime(t *testing.T) {
	for _, tc := range []struct {
		basis Basis
		st    projection.Stat
	}{
		{PointsPerGame, projection.G},
		{PointsPerPA, projection.PA},
	} {
		a, err := NewAssigner(StandardPoints, tc.basis, PointsPerInning, league)
		require.NoError(t, err)
		st := hitterStats()
		st[tc.st] = 0
		p := projection.NewPlayer("zg", "No Games", projection.Hitting, st)
		err = a.Prepare(p)
		var de *projection.DataError
		require.True(t, errors.As(err, &de), tc.basis)
		assert.Equal(t, tc.st, de.Stat)
	}
}

func TestAssignPitcherRoles(t *testing.T) {
	a, err := NewAssigner(SABRPoints, PointsPerGame, PointsPerInning, league)
	require.NoError(t, err)
	p := projection.NewPlayer("p1", "Swing", projection.Pitching, projection.Stats{
		projection.IP: 120, projection.G: 40, projection.GS: 16, projection.SO: 120,
		projection.BB: 40, projection.HR: 14,
	})
	require.NoError(t, a.Prepare(p))
	a.Assign(p)
	require.True(t, p.Eligible(position.SP))
	require.True(t, p.Eligible(position.RP))
	assert.Greater(t, p.Slots[position.RP].Basis, p.Slots[position.SP].Basis)
	assert.InDelta(t, 120, p.Slots[position.SP].Time+p.Slots[position.RP].Time, 1e-9)
	assert.InDelta(t, p.Points, p.Roles[position.SP].Points+p.Roles[position.RP].Points, 1e-6)
}

func TestFloor(t *testing.T) {
	f := Floor{MinPA: 100, MinSPIP: 40, MinRPIP: 20}
	assert.InDelta(t, 30, f.PitcherFloor(20, 10), 1e-9)
	assert.InDelta(t, 40, f.PitcherFloor(30, 30), 1e-9)
	assert.InDelta(t, 20, f.PitcherFloor(0, 0), 1e-9)

	h := projection.NewPlayer("h", "h", projection.Hitting, projection.Stats{projection.PA: 80})
	var de *projection.DataError
	require.True(t, errors.As(f.Check(h), &de))
	assert.Contains(t, de.Reason, "floor")

	sp := projection.NewPlayer("s", "s", projection.Pitching,
		projection.Stats{projection.IP: 35, projection.G: 10, projection.GS: 5})
	assert.NoError(t, f.Check(sp))
	sp.Stats[projection.IP] = 25
	assert.Error(t, f.Check(sp))
}
