package game

import (
	"golang.org/x/xerrors"

	"local/islanders/board"
	"local/islanders/simple"
)

// A trial lays a route piece without paying for it, notifying anyone,
// or moving the state machine, so the effect on the longest route can
// be read off and then rolled back.  Trials nest; each undo removes
// the most recent one.

type trialPiece struct {
	seat       int
	edge       board.Coord
	piece      simple.PieceType
	prevHolder int
}

// PutTempPiece speculatively places a road or ship for seat.  The
// edge must pass the same geometry and connectivity checks as a real
// placement.  Fog stays hidden and no cloth trade is established; the
// only observable effect is on route lengths and the route bonus,
// both restored by UndoPutTempPiece.
func (e *Engine) PutTempPiece(seat int, piece simple.PieceType, edge board.Coord) error {
	if seat < 0 || seat >= len(e.players) || e.players[seat] == nil {
		return xerrors.Errorf("seat %d is empty", seat)
	}
	if piece != simple.Road && piece != simple.Ship {
		return xerrors.Errorf("cannot trial a %s", simple.PieceTypeNames[piece])
	}
	p := e.players[seat]
	if err := e.checkRoutePlacement(p, piece, edge); err != nil {
		return err
	}

	p.SaveRouteLen()
	prevHolder := e.longestRoutePlayer

	p.Inventory[piece]--
	p.Routes[edge] = piece
	e.updateLongestRoutePlayer()

	e.trials = append(e.trials, trialPiece{
		seat:       seat,
		edge:       edge,
		piece:      piece,
		prevHolder: prevHolder,
	})
	return nil
}

// UndoPutTempPiece removes the most recent trial piece, restoring the
// owner's route length and the route bonus holder.
func (e *Engine) UndoPutTempPiece() error {
	n := len(e.trials)
	if n == 0 {
		return xerrors.New("no trial piece to undo")
	}
	tr := e.trials[n-1]
	e.trials = e.trials[:n-1]

	p := e.players[tr.seat]
	delete(p.Routes, tr.edge)
	p.Inventory[tr.piece]++
	p.RestoreRouteLen()
	e.longestRoutePlayer = tr.prevHolder
	return nil
}
