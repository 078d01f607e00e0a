// Package rolesplit decomposes a pitcher's aggregate projection into a
// starting line and a relieving line, since replacement level is found
// separately for each role.
package rolesplit

import (
	"math"

	"github.com/rostervalue/rostervalue/position"
	"github.com/rostervalue/rostervalue/projection"
	"github.com/rostervalue/rostervalue/stats"
)

// Relief-innings regression on the share of games in relief.
const (
	reliefQuad  = 0.7851
	reliefLin   = 0.1937
	reliefConst = 0.0328

	minReliefRatio = 0.15 // below this, no relief innings
	maxReliefRatio = 0.85 // above this, every inning is a relief inning
)

// Role skill adjustment.
const (
	// ReliefFIPGain is the FIP improvement moving from the rotation to the
	// bullpen.
	ReliefFIPGain = 0.6
	fipHRWeight   = 13.0
	// eraPerFIP is the slope of the ERA-on-FIP regression.
	eraPerFIP = 0.893
)

// ReliefInnings estimates how many of ip innings come in relief from the
// games and games-started projection.
func ReliefInnings(ip, g, gs float64) float64 {
	if ip <= 0 || g <= 0 {
		return 0
	}
	x := stats.SafeDiv(g-gs, g)
	switch {
	case x < minReliefRatio:
		return 0
	case x > maxReliefRatio:
		return ip
	}
	frac := reliefQuad*x*x + reliefLin*x + reliefConst
	return stats.Clamp(ip*frac, 0, ip)
}

// Split populates p.Roles with an SP line, an RP line, or both. Innings
// in a role the pitcher is not tagged for fold into the tagged role. An
// untagged pitcher is eligible wherever the projection has games.
func Split(p *projection.Player) error {
	if err := p.Stats.Require(p.ID, projection.IP, projection.G, projection.GS); err != nil {
		return err
	}
	ip := p.Stats.Get(projection.IP)
	g := p.Stats.Get(projection.G)
	gs := math.Min(p.Stats.Get(projection.GS), g)
	if ip <= 0 || g <= 0 {
		return &projection.DataError{PlayerID: p.ID, Stat: projection.IP, Reason: "no innings projected"}
	}

	canSP, canRP := p.HasTag(position.SP), p.HasTag(position.RP)
	if !canSP && !canRP {
		canSP, canRP = gs > 0, g-gs > 0
	}

	rpip := ReliefInnings(ip, g, gs)
	spip := ip - rpip
	if !canSP {
		rpip, spip = ip, 0
	}
	if !canRP {
		rpip, spip = 0, ip
	}
	p.Roles = make(map[position.Position]*projection.Role)

	switch {
	case rpip == 0:
		p.Roles[position.SP] = &projection.Role{
			Position: position.SP, Stats: p.Stats.Clone(), Innings: ip, Games: g,
		}
	case spip == 0:
		p.Roles[position.RP] = &projection.Role{
			Position: position.RP, Stats: p.Stats.Clone(), Innings: ip, Games: g,
		}
	default:
		startShift := ReliefFIPGain * rpip / ip
		p.Roles[position.SP] = roleLine(p.Stats, position.SP, ip, spip, gs, gs, startShift)
		p.Roles[position.RP] = roleLine(p.Stats, position.RP, ip, rpip, g-gs, 0, startShift-ReliefFIPGain)
	}
	return nil
}

// roleLine scales the aggregate line to roleIP innings and shifts HR and
// ER so the role's FIP and ERA move by fipShift. The two role lines sum
// back to the aggregate.
func roleLine(agg projection.Stats, role position.Position, ip, roleIP, games, starts, fipShift float64) *projection.Role {
	f := roleIP / ip
	st := agg.Scale(f)
	st[projection.IP] = roleIP
	st[projection.G] = games
	st[projection.GS] = starts
	if agg.Has(projection.HR) {
		st[projection.HR] = math.Max(0, agg[projection.HR]*f+fipShift*roleIP/fipHRWeight)
	}
	if agg.Has(projection.ER) {
		st[projection.ER] = math.Max(0, agg[projection.ER]*f+eraPerFIP*fipShift*roleIP/9)
	}
	starterOnly := []projection.Stat{projection.W, projection.QS}
	relieverOnly := []projection.Stat{projection.SV, projection.HLD}
	keep, drop := starterOnly, relieverOnly
	if role == position.RP {
		keep, drop = relieverOnly, starterOnly
	}
	for _, s := range keep {
		if agg.Has(s) {
			st[s] = agg[s]
		}
	}
	for _, s := range drop {
		if agg.Has(s) {
			st[s] = 0
		}
	}
	return &projection.Role{Position: role, Stats: st, Innings: roleIP, Games: games}
}
