package game

import (
	"golang.org/x/xerrors"

	"local/islanders/log"
)

// nextSeat returns the next occupied seat clockwise from seat, or -1
// if every other seat is vacant.
func (e *Engine) nextSeat(seat int) int {
	n := len(e.players)
	for i := 1; i <= n; i++ {
		s := (seat + i) % n
		if e.players[s] != nil {
			return s
		}
	}
	return -1
}

// prevSeat is nextSeat counterclockwise, for the reversed initial
// placement round.
func (e *Engine) prevSeat(seat int) int {
	n := len(e.players)
	for i := 1; i <= n; i++ {
		s := (seat - i + n) % n
		if e.players[s] != nil {
			return s
		}
	}
	return -1
}

// advanceTurn moves play to the next occupied seat and resets the
// per-turn flags.  A full pass by the first player bumps the round
// counter.
func (e *Engine) advanceTurn() {
	next := e.nextSeat(e.current)
	if next == -1 {
		log.Warn("advanceTurn: every other seat vacant, game over")
		e.state = StateOver
		return
	}
	e.current = next
	e.turns++
	if next == e.first {
		e.rounds++
	}

	p := e.players[next]
	p.PlayedDevCard = false
	p.AskedResetThisTurn = false
	p.DevCards.NewToOld()
}

// EndTurn ends the current player's turn.  In the special building
// phase it instead finishes the current builder's slot.
func (e *Engine) EndTurn(seat int) error {
	if err := e.require(seat, ActEndTurn, false); err != nil {
		return err
	}
	if e.state == StateSpecialBuilding {
		e.endSpecialBuild()
		return nil
	}

	e.endTurnCommon()
	return nil
}

// endTurnCommon is shared by EndTurn and ForceEndTurn: clear the
// table, check for a deferred win, then either start the special
// building phase or pass the dice.
func (e *Engine) endTurnCommon() {
	e.offer = nil
	if e.resetVoteOpen {
		e.cancelResetVote()
	}

	if e.startSpecialBuildIfAsked() {
		return
	}
	e.advanceTurn()
	e.state = StateRoll

	// A player who reached the target off-turn wins as their turn
	// starts.
	e.checkForWinner()
}

// startSpecialBuildIfAsked enters the 6-player special building phase
// if any non-current player asked for it this turn.
func (e *Engine) startSpecialBuildIfAsked() bool {
	if !e.Opts.SpecialBuilding() {
		return false
	}
	for s := e.nextSeat(e.current); s != e.current; s = e.nextSeat(s) {
		p := e.players[s]
		if p != nil && p.AskedSpecial && !p.SpecialBuilt {
			e.specialSeat = s
			e.state = StateSpecialBuilding
			return true
		}
	}
	return false
}

// endSpecialBuild moves to the next special builder or, when all are
// served, to the next normal turn.
func (e *Engine) endSpecialBuild() {
	p := e.players[e.specialSeat]
	p.SpecialBuilt = true

	for s := e.nextSeat(e.specialSeat); s != e.current; s = e.nextSeat(s) {
		q := e.players[s]
		if q != nil && q.AskedSpecial && !q.SpecialBuilt {
			e.specialSeat = s
			return
		}
	}

	for _, q := range e.players {
		if q != nil {
			q.AskedSpecial = false
			q.SpecialBuilt = false
		}
	}
	e.specialSeat = -1
	e.advanceTurn()
	e.state = StateRoll
	e.checkForWinner()
}

// AskSpecialBuild flags a non-current seat for the special building
// phase at the end of this turn.  6-player games only.
func (e *Engine) AskSpecialBuild(seat int) error {
	if !e.Opts.SpecialBuilding() {
		return xerrors.New("special building is only in 6-player games")
	}
	if err := e.require(seat, ActAskSpecialBuild, true); err != nil {
		return err
	}
	if seat == e.current {
		return xerrors.New("the current player builds normally")
	}
	e.players[seat].AskedSpecial = true
	return nil
}

// advanceInitialPlacement steps the start states after a successful
// initial placement: settlements hand off to the road state for the
// same seat; roads advance the seat, reversing direction for the
// second round.
func (e *Engine) advanceInitialPlacement() {
	switch e.state {
	case StateStart1A:
		e.state = StateStart1B
	case StateStart2A:
		e.state = StateStart2B
	case StateStart3A:
		e.state = StateStart3B

	case StateStart1B:
		// Last placer keeps the turn and starts the reversed round.
		if e.nextSeat(e.current) == e.first {
			e.state = StateStart2A
		} else {
			e.current = e.nextSeat(e.current)
			e.state = StateStart1A
		}

	case StateStart2B:
		if e.current == e.first {
			if e.Opts.ThirdSettlement {
				e.state = StateStart3A
			} else {
				e.beginPlay()
			}
		} else {
			e.current = e.prevSeat(e.current)
			e.state = StateStart2A
		}

	case StateStart3B:
		if e.nextSeat(e.current) == e.first {
			e.beginPlay()
		} else {
			e.current = e.nextSeat(e.current)
			e.state = StateStart3A
		}
	}
}

// beginPlay leaves initial placement; the first player rolls.  Turn
// and round numbering is 1-based from here.
func (e *Engine) beginPlay() {
	e.current = e.first
	e.state = StateRoll
	e.turns = 1
	e.rounds = 1
	for _, p := range e.players {
		if p != nil {
			p.PlayedDevCard = false
			p.DevCards.NewToOld()
		}
	}
	log.Info("Initial placement complete, seat %d rolls first", e.first)
}

// resumeAfterInterlude returns from a robber/discovery/monopoly/gold
// interlude to the state that triggered it.
func (e *Engine) resumeAfterInterlude() {
	s := e.oldState
	if s == 0 || s == e.state {
		s = StatePlay1
	}
	e.state = s
	e.oldState = 0
	if e.state.IsInitialPlacement() {
		e.advanceInitialPlacement()
	}
	e.checkForWinner()
}

// sendBackToOldState is used by placement cancels.
func (e *Engine) sendBackToOldState(fallback State) {
	if e.oldState != 0 {
		e.state = e.oldState
		e.oldState = 0
		return
	}
	e.state = fallback
}
