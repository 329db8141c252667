package game

import (
	"local/islanders/board"
	"local/islanders/log"
	"local/islanders/simple"
)

// Cloth villages: neutral settlements on the outlying islands.  A
// player establishes trade with a village by laying a ship against its
// node; established traders earn cloth on the village's dice number,
// worth 1 VP per 2.  The game ends early once too few villages still
// hold cloth.

// clothWinVillagesMin ends the game when fewer than this many
// villages still have cloth.
const clothWinVillagesMin = 4

// establishClothTrade checks a freshly laid ship for villages at its
// end nodes.  First contact adds the seat to the village's trader list
// and pays one cloth from the village's stock if any remains.
func (e *Engine) establishClothTrade(p *Player, edge board.Coord) {
	n1, n2 := e.Board.AdjacentNodesToEdge(edge)
	for _, node := range []board.Coord{n1, n2} {
		vi := e.Board.VillageAtNode(node)
		if vi < 0 || containsSeat(e.villageTraders[vi], p.Seat) {
			continue
		}
		e.villageTraders[vi] = append(e.villageTraders[vi], p.Seat)
		if e.Board.TakeVillageCloth(vi, 1) > 0 {
			p.Cloth++
		}
		log.Info("Seat %d established cloth trade with village %v", p.Seat, node)
	}
}

// distributeCloth pays one cloth to each trader of the village whose
// dice number was rolled, from the village's stock and then the
// general supply.  When even that is short, the current player takes
// first and the rest follow in establishment order.
func (e *Engine) distributeCloth(roll int) {
	for vi, v := range e.Board.Villages() {
		if v.Dice != roll || v.Cloth == 0 {
			continue
		}
		traders := e.villageTraders[vi]
		if len(traders) == 0 {
			continue
		}

		have := e.Board.TakeVillageCloth(vi, len(traders))
		if have < len(traders) {
			have += e.Board.TakeGeneralCloth(len(traders) - have)
		}

		if have > 0 && containsSeat(traders, e.current) {
			e.players[e.current].Cloth++
			have--
		}
		for _, s := range traders {
			if have == 0 {
				break
			}
			if s == e.current {
				continue
			}
			e.players[s].Cloth++
			have--
		}
		log.Debug("Village %v paid cloth on a %d", v.Node, roll)
	}
}

// checkClothGameEnd ends the game once fewer than clothWinVillagesMin
// villages have cloth left.  Unlike the normal win check this fires on
// anybody's turn: most VP wins, ties go to the most cloth, then to the
// seat closest after the current player.
func (e *Engine) checkClothGameEnd() bool {
	if len(e.Board.Villages()) == 0 {
		return false
	}
	withCloth := 0
	for _, v := range e.Board.Villages() {
		if v.Cloth > 0 {
			withCloth++
		}
	}
	if withCloth >= clothWinVillagesMin {
		return false
	}

	best, bestVP, bestCloth := -1, -1, -1
	for i := 0; i < len(e.players); i++ {
		s := (e.current + i) % len(e.players)
		p := e.players[s]
		if p == nil {
			continue
		}
		vp := e.VPForSeat(s)
		if vp > bestVP || (vp == bestVP && p.Cloth > bestCloth) {
			best, bestVP, bestCloth = s, vp, p.Cloth
		}
	}
	e.winner = best
	e.state = StateOver
	log.Info("Villages are out of cloth: seat %d wins with %d points", best, bestVP)
	return true
}

// RobClothOrResource resolves the thief's choice against a victim who
// holds both cloth and resource cards.  Cloth thefts are public, so
// the sentinel ClothStolen comes back instead of a card.
func (e *Engine) RobClothOrResource(seat int, stealCloth bool) (victim int, stolen simple.Resource, err error) {
	if err := e.require(seat, ActRobClothOrResource, false); err != nil {
		return -1, 0, err
	}

	victim = e.robClothVictim
	e.robClothVictim = -1
	if stealCloth {
		e.players[victim].Cloth--
		e.players[seat].Cloth++
		stolen = simple.ClothStolen
		log.Debug("Seat %d stole a cloth from seat %d", seat, victim)
	} else {
		stolen = e.stealRandom(seat, victim)
	}
	e.resumeAfterInterlude()
	return victim, stolen, nil
}

// resolveSteal takes from the victim now, or defers to the thief's
// cloth-or-resource choice when the victim holds both kinds.  done is
// false only in the deferred case.
func (e *Engine) resolveSteal(thief, victim int) (stolen simple.Resource, done bool) {
	v := e.players[victim]
	if e.Opts.ClothVillages && v.Cloth > 0 {
		if v.Resources.Total() > 0 {
			e.robClothVictim = victim
			e.state = StateWaitingForRobClothOrResource
			return 0, false
		}
		v.Cloth--
		e.players[thief].Cloth++
		log.Debug("Seat %d stole a cloth from seat %d", thief, victim)
		e.resumeAfterInterlude()
		return simple.ClothStolen, true
	}
	stolen = e.stealRandom(thief, victim)
	e.resumeAfterInterlude()
	return stolen, true
}

// stealable reports whether a seat has anything a robber can take.
func (e *Engine) stealable(p *Player) bool {
	return p.Resources.Total() > 0 || (e.Opts.ClothVillages && p.Cloth > 0)
}

func containsSeat(seats []int, seat int) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}
