package game

import (
	"local/islanders/message"
	"local/islanders/simple"
)

// SnapshotFor renders the game as seen by viewer (-1 for observers:
// no hands at all).
func (e *Engine) SnapshotFor(viewer int) message.GameSnapshot {
	s := message.GameSnapshot{
		State:        e.state.String(),
		Current:      e.current,
		Dice:         e.dice,
		Winner:       e.winner,
		LargestArmy:  e.largestArmyPlayer,
		LongestRoute: e.longestRoutePlayer,
		DeckSize:     len(e.devDeck),
		Board:        e.Board.Snapshot(),
	}
	for seat, p := range e.players {
		if p == nil {
			continue
		}
		ps := message.PlayerSnapshot{
			Seat:     seat,
			Identity: p.Identity,
			Color:    p.Color,
			PublicVP: e.PublicVPForSeat(seat),
			HandSize: p.Resources.Total(),
			DevCards: p.DevCards.Total(),
			Knights:  p.KnightsPlayed,
			Cloth:    p.Cloth,
			RouteLen: p.LongestRouteLen,
			Routes:   map[string]string{},
			Towns:    map[string]string{},
		}
		for edge, t := range p.Routes {
			ps.Routes[edge.String()] = simple.PieceTypeNames[t]
		}
		for node := range p.Settlements {
			ps.Towns[node.String()] = simple.PieceTypeNames[simple.Settlement]
		}
		for node := range p.Cities {
			ps.Towns[node.String()] = simple.PieceTypeNames[simple.City]
		}
		if seat == viewer {
			hand := p.Resources
			ps.Hand = &hand
			ps.OwedPicks = p.NeedToPickGold
		}
		s.Players = append(s.Players, ps)
	}
	return s
}
