package game

import (
	"golang.org/x/xerrors"

	"local/islanders/board"
	"local/islanders/log"
	"local/islanders/simple"
)

// ChooseRobberOrPirate resolves the sea-board choice after a 7 or a
// knight.
func (e *Engine) ChooseRobberOrPirate(seat int, pirate bool) error {
	if err := e.require(seat, ActChooseRobberOrPirate, false); err != nil {
		return err
	}
	if pirate {
		e.state = StatePlacingPirate
	} else {
		e.state = StatePlacingRobber
	}
	return nil
}

// MoveRobber puts the robber on a new land hex and begins the steal:
// one victim steals immediately, several go to a choice.
func (e *Engine) MoveRobber(seat int, hex board.Coord) (victim int, stolen simple.Resource, err error) {
	if err := e.require(seat, ActMoveRobber, false); err != nil {
		return -1, 0, err
	}
	if hex == e.Board.RobberHex() {
		return -1, 0, xerrors.New("the robber is already there")
	}
	if !e.Board.IsHexOnLand(hex) || e.Board.IsFogHex(hex) {
		return -1, 0, xerrors.Errorf("hex %v cannot hold the robber", hex)
	}

	e.Board.SetRobberHex(hex)
	log.Debug("Seat %d moved robber to %v", seat, hex)
	return e.beginSteal(seat, e.victimsAtHex(seat, hex))
}

// MovePirate puts the pirate on a water hex; victims are players with
// ships along that hex.
func (e *Engine) MovePirate(seat int, hex board.Coord) (victim int, stolen simple.Resource, err error) {
	if err := e.require(seat, ActMovePirate, false); err != nil {
		return -1, 0, err
	}
	if hex == e.Board.PirateHex() {
		return -1, 0, xerrors.New("the pirate is already there")
	}
	if e.Board.IsHexOnLand(hex) {
		return -1, 0, xerrors.Errorf("hex %v is not water", hex)
	}

	e.Board.SetPirateHex(hex)
	log.Debug("Seat %d moved pirate to %v", seat, hex)
	return e.beginSteal(seat, e.victimsAtPirateHex(seat, hex))
}

// beginSteal routes by victim count: none resumes play, one steals
// now, several wait for the mover's choice.  A lone victim holding
// cloth as well as cards defers to the cloth-or-resource choice; the
// caller sees victim -1 and no robbery happens yet.
func (e *Engine) beginSteal(seat int, victims []int) (int, simple.Resource, error) {
	switch len(victims) {
	case 0:
		e.resumeAfterInterlude()
		return -1, 0, nil
	case 1:
		stolen, done := e.resolveSteal(seat, victims[0])
		if !done {
			return -1, 0, nil
		}
		return victims[0], stolen, nil
	default:
		e.robVictims = victims
		e.state = StateWaitingForRobChoosePlayer
		return -1, 0, nil
	}
}

// ChooseVictim picks who to rob when several candidates ring the hex.
func (e *Engine) ChooseVictim(seat, victim int) (simple.Resource, error) {
	if err := e.require(seat, ActChooseVictim, false); err != nil {
		return 0, err
	}
	ok := false
	for _, v := range e.robVictims {
		if v == victim {
			ok = true
			break
		}
	}
	if !ok {
		return 0, xerrors.Errorf("seat %d is not a robbery candidate", victim)
	}

	e.robVictims = nil
	stolen, done := e.resolveSteal(seat, victim)
	if !done {
		return 0, nil
	}
	return stolen, nil
}

// victimsAtHex lists seats with a town on the hex, holding at least
// one card, excluding the thief.
func (e *Engine) victimsAtHex(thief int, hex board.Coord) []int {
	seen := map[int]bool{}
	var victims []int
	for _, node := range e.Board.AdjacentNodesToHex(hex) {
		p, ok := e.townAt(node)
		if !ok || p.Seat == thief || seen[p.Seat] {
			continue
		}
		seen[p.Seat] = true
		if e.stealable(p) {
			victims = append(victims, p.Seat)
		}
	}
	return victims
}

// victimsAtPirateHex lists seats with a ship on any edge of the hex.
func (e *Engine) victimsAtPirateHex(thief int, hex board.Coord) []int {
	seen := map[int]bool{}
	var victims []int
	for dir := 0; dir < 6; dir++ {
		n1 := e.Board.AdjacentNodeToHex(hex, dir)
		n2 := e.Board.AdjacentNodeToHex(hex, (dir+1)%6)
		edge := e.Board.EdgeBetweenAdjacentNodes(n1, n2)
		if edge == board.NoCoord {
			continue
		}
		for _, p := range e.players {
			if p == nil || p.Seat == thief || seen[p.Seat] {
				continue
			}
			if t, ok := p.Routes[edge]; ok && t == simple.Ship && e.stealable(p) {
				seen[p.Seat] = true
				victims = append(victims, p.Seat)
			}
		}
	}
	return victims
}

// stealRandom takes one card from the victim, uniform over every card
// in the hand, not per type.
func (e *Engine) stealRandom(thief, victim int) simple.Resource {
	v := e.players[victim]
	units := v.Resources.Units()
	if len(units) == 0 {
		return 0
	}
	r := units[e.rng.Intn(len(units))]
	v.Resources.Subtract(1, r)
	e.players[thief].Resources.Add(1, r)
	log.Debug("Seat %d stole %s from seat %d", thief, simple.ResourceNames[r], victim)
	return r
}
