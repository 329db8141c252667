package game

import (
	"local/islanders/board"
	"local/islanders/simple"
)

// calcLongestRoute finds the player's longest unbroken chain of roads
// and ships, in edges.  Another player's town blocks the chain at
// that node; a chain may switch between road and ship only at an own
// town.
func (e *Engine) calcLongestRoute(p *Player) int {
	// Gather candidate starting nodes: every end of every route edge.
	starts := map[board.Coord]bool{}
	for edge := range p.Routes {
		n1, n2 := e.Board.AdjacentNodesToEdge(edge)
		starts[n1] = true
		starts[n2] = true
	}

	best := 0
	visited := map[board.Coord]bool{}
	for node := range starts {
		if l := e.longestFrom(p, node, simple.NonePieceType, visited); l > best {
			best = l
		}
	}
	return best
}

// longestFrom extends a path from node, having arrived on a piece of
// type came (NonePieceType at the start).  visited holds edges on the
// current path.
func (e *Engine) longestFrom(p *Player, node board.Coord, came simple.PieceType, visited map[board.Coord]bool) int {
	if came != simple.NonePieceType {
		if owner, ok := e.townAt(node); ok && owner != p {
			return 0 // severed
		}
	}

	best := 0
	for _, edge := range e.Board.AdjacentEdgesToNode(node) {
		if visited[edge] {
			continue
		}
		t, ok := p.Routes[edge]
		if !ok {
			continue
		}
		if came != simple.NonePieceType && t != came && !p.HasTownAt(node) {
			continue // road-ship junction needs a town
		}

		visited[edge] = true
		n1, n2 := e.Board.AdjacentNodesToEdge(edge)
		far := n1
		if far == node {
			far = n2
		}
		if l := 1 + e.longestFrom(p, far, t, visited); l > best {
			best = l
		}
		delete(visited, edge)
	}
	return best
}

// updateLongestRoutePlayer recomputes every route length and moves
// the bonus.  Five edges minimum; the sitting holder keeps it on a
// tie; a tie with no sitting holder leaves the bonus unclaimed.
func (e *Engine) updateLongestRoutePlayer() {
	max, count := 0, 0
	var leader int = -1
	for _, p := range e.players {
		if p == nil {
			continue
		}
		p.LongestRouteLen = e.calcLongestRoute(p)
		if p.LongestRouteLen > max {
			max, count, leader = p.LongestRouteLen, 1, p.Seat
		} else if p.LongestRouteLen == max {
			count++
		}
	}

	if max < 5 {
		e.longestRoutePlayer = -1
		return
	}
	if holder := e.longestRoutePlayer; holder != -1 &&
		e.players[holder] != nil && e.players[holder].LongestRouteLen == max {
		return // current holder keeps it on ties
	}
	if count == 1 {
		e.longestRoutePlayer = leader
	} else {
		e.longestRoutePlayer = -1
	}
}
