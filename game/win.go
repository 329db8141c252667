package game

import (
	"local/islanders/log"
)

// Winner is the winning seat, or -1 while play continues.
func (e *Engine) Winner() int { return e.winner }

// updateLargestArmy moves the bonus to seat if its knight count beats
// the sitting holder's.  Three knights minimum; ties never move it.
func (e *Engine) updateLargestArmy(seat int) {
	p := e.players[seat]
	if p.KnightsPlayed < 3 {
		return
	}
	if holder := e.largestArmyPlayer; holder != -1 {
		if e.players[holder] != nil && e.players[holder].KnightsPlayed >= p.KnightsPlayed {
			return
		}
	}
	e.largestArmyPlayer = seat
}

// checkForWinner ends the game if the current player has reached the
// target.  Only the current player can win: a player pushed over the
// target off-turn (by a bonus shift) wins as their next turn starts.
func (e *Engine) checkForWinner() {
	if e.state == StateOver {
		return
	}
	p := e.players[e.current]
	if p == nil {
		return
	}
	vp := p.TotalVP(e.largestArmyPlayer == e.current, e.longestRoutePlayer == e.current)
	if vp < e.Opts.VPTarget {
		return
	}
	e.winner = e.current
	e.state = StateOver
	log.Info("Seat %d wins with %d points", e.current, vp)
}

// VPForSeat is the seat's full score including hidden cards.
func (e *Engine) VPForSeat(seat int) int {
	p := e.players[seat]
	if p == nil {
		return 0
	}
	return p.TotalVP(e.largestArmyPlayer == seat, e.longestRoutePlayer == seat)
}

// PublicVPForSeat is the score visible to other players.
func (e *Engine) PublicVPForSeat(seat int) int {
	p := e.players[seat]
	if p == nil {
		return 0
	}
	return p.PublicVP(e.largestArmyPlayer == seat, e.longestRoutePlayer == seat)
}
