package game

import (
	"golang.org/x/xerrors"

	"local/islanders/log"
)

// Board-reset votes: any seated player may ask once per turn to throw
// the game away and redeal.  The requester votes yes implicitly;
// every other seated player must agree, and one no kills the vote.

// RequestReset opens a reset vote.
func (e *Engine) RequestReset(seat int) error {
	if e.state == StateNew || e.state == StateOver || e.state == StateResetOld {
		return xerrors.Errorf("cannot reset in state %s", e.state)
	}
	p := e.players[seat]
	if p == nil {
		return xerrors.Errorf("seat %d is vacant", seat)
	}
	if e.resetVoteOpen {
		return xerrors.New("a reset vote is already open")
	}
	if p.AskedResetThisTurn {
		return xerrors.New("you already asked this turn")
	}

	p.AskedResetThisTurn = true
	e.resetVoteOpen = true
	e.resetVoteRequester = seat
	for _, q := range e.players {
		if q != nil {
			q.ResetVote = 0
		}
	}
	p.ResetVote = 1
	log.Info("Seat %d opened a board-reset vote", seat)
	return nil
}

// VoteReset records one vote.  Returns done=true when the vote has
// concluded; passed is meaningful only then.
func (e *Engine) VoteReset(seat int, yes bool) (done, passed bool, err error) {
	if !e.resetVoteOpen {
		return false, false, xerrors.New("no reset vote is open")
	}
	p := e.players[seat]
	if p == nil {
		return false, false, xerrors.Errorf("seat %d is vacant", seat)
	}
	if p.ResetVote != 0 {
		return false, false, xerrors.New("you already voted")
	}

	if !yes {
		e.cancelResetVote()
		return true, false, nil
	}

	p.ResetVote = 1
	for _, q := range e.players {
		if q != nil && q.ResetVote == 0 {
			return false, false, nil // still waiting
		}
	}
	e.resetVoteOpen = false
	return true, true, nil
}

func (e *Engine) cancelResetVote() {
	e.resetVoteOpen = false
	e.resetVoteRequester = -1
	for _, q := range e.players {
		if q != nil {
			q.ResetVote = 0
		}
	}
}

// ResetAsCopy builds a fresh engine with the same seats and options;
// this engine becomes the dead ResetOld husk the server discards.
func (e *Engine) ResetAsCopy() *Engine {
	ne := NewEngine(e.Opts, e.rng)
	for seat, p := range e.players {
		if p == nil {
			continue
		}
		ne.players[seat] = NewPlayer(seat, p.Identity, p.Color)
	}
	e.state = StateResetOld
	log.Info("Game reset: new board for %d players", ne.seatedCount())
	return ne
}
