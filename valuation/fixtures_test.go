package valuation

import (
	"fmt"
	"math"

	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/projection"
)

var tagCycle = [][]position.Position{
	{position.C}, {position.First}, {position.Second}, {position.SS}, {position.Third},
	{position.OF}, {position.OF}, {position.Second, position.SS}, {position.First, position.OF}, nil,
}

// quality falls with i, with a deterministic wobble so neighbours differ
// in more than scale.
func quality(i, n int) float64 {
	return 1.25 - 0.5*float64(i)/float64(n) + 0.04*math.Sin(1.7*float64(i))
}

func fixtureHitter(i, n int) *projection.Player {
	q := quality(i, n)
	pa := 350 + float64((i*37)%300)
	ab := 0.89 * pa
	h := ab * 0.26 * q
	sb := float64((i * 7) % 25)
	st := projection.Stats{
		projection.PA: pa, projection.G: math.Round(pa / 4.1), projection.AB: ab,
		projection.H: h, projection.Double: 0.2 * h, projection.Triple: 0.02 * h,
		projection.HR: 0.04 * ab * q, projection.R: 0.12 * pa * q, projection.RBI: 0.12 * pa * q,
		projection.BB: 0.085 * pa * q, projection.SO: 0.22 * pa, projection.SB: sb,
		projection.CS: 0.3 * sb, projection.SF: 4,
	}
	p := projection.NewPlayer(fmt.Sprintf("h%03d", i), fmt.Sprintf("Hitter %d", i), projection.Hitting, st)
	p.Tags = tagCycle[i%len(tagCycle)]
	return p
}

func fixturePitcher(j, n int) *projection.Player {
	q := quality(j, n)
	var g, gs, ip float64
	var tags []position.Position
	switch {
	case j%10 == 4:
		// swingman, untagged
		g, gs, ip = 40, 12, 110
	case j%3 == 0:
		g, gs, ip = 65, 0, 62+float64(j%8)
		tags = []position.Position{position.RP}
	default:
		g, gs, ip = 31, 31, 150+float64((j*13)%50)
		tags = []position.Position{position.SP}
	}
	st := projection.Stats{
		projection.G: g, projection.GS: gs, projection.IP: ip,
		projection.SO: ip * q, projection.H: 0.9 * ip / q, projection.BB: 0.33 * ip,
		projection.HR: 0.12 * ip / q, projection.ER: 0.45 * ip / q,
		projection.W: 0.35 * gs * q, projection.QS: 0.5 * gs * q,
	}
	if j%3 == 0 {
		st[projection.HLD] = 15
		if j%9 == 0 {
			st[projection.SV] = 30
		}
	}
	p := projection.NewPlayer(fmt.Sprintf("p%03d", j), fmt.Sprintf("Pitcher %d", j), projection.Pitching, st)
	p.Tags = tags
	return p
}

// fixtureLeague builds nh hitters and np pitchers, plus a two-way player
// listed on both sides and one unusable row on each side.
func fixtureLeague(nh, np int) (hitters, pitchers []*projection.Player) {
	for i := 0; i < nh; i++ {
		hitters = append(hitters, fixtureHitter(i, nh))
	}
	for j := 0; j < np; j++ {
		pitchers = append(pitchers, fixturePitcher(j, np))
	}

	tw := fixtureHitter(0, nh)
	tw.ID, tw.Name = "tw001", "Two Way"
	tw.Tags = []position.Position{position.Util}
	hitters = append(hitters, tw)
	twp := fixturePitcher(1, np)
	twp.ID, twp.Name = "tw001", "Two Way"
	pitchers = append(pitchers, twp)

	noPA := fixtureHitter(1, nh)
	noPA.ID = "nopa"
	delete(noPA.Stats, projection.PA)
	hitters = append(hitters, noPA)
	noIP := fixturePitcher(2, np)
	noIP.ID = "noip"
	delete(noIP.Stats, projection.IP)
	pitchers = append(pitchers, noIP)
	return hitters, pitchers
}
