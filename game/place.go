package game

import (
	"golang.org/x/xerrors"

	"local/islanders/board"
	"local/islanders/log"
	"local/islanders/simple"
)

// townAt returns the player with a settlement or city on the node.
func (e *Engine) townAt(node board.Coord) (*Player, bool) {
	for _, p := range e.players {
		if p != nil && p.HasTownAt(node) {
			return p, true
		}
	}
	return nil, false
}

// routeAt returns the player with a road or ship on the edge.
func (e *Engine) routeAt(edge board.Coord) (*Player, bool) {
	for _, p := range e.players {
		if p != nil && p.HasRouteAt(edge) {
			return p, true
		}
	}
	return nil, false
}

// BuildRequest pays for a piece and enters its placing state.  The
// piece is placed (or the build cancelled) as a separate step.
func (e *Engine) BuildRequest(seat int, piece simple.PieceType) error {
	if err := e.require(seat, ActBuildRequest, false); err != nil {
		return err
	}
	if e.state == StateSpecialBuilding && piece == simple.NonePieceType {
		return xerrors.New("no piece named")
	}

	p := e.players[seat]
	cost, ok := simple.PieceCosts[piece]
	if !ok {
		return xerrors.Errorf("unknown piece type %d", piece)
	}
	if piece == simple.Ship && !e.Opts.SeaBoard {
		return xerrors.New("ships need the sea board")
	}
	if p.Inventory[piece] < 1 {
		return xerrors.Errorf("no %s pieces left", simple.PieceTypeNames[piece])
	}
	if !p.CanAfford(cost) {
		return xerrors.Errorf("cannot afford a %s", simple.PieceTypeNames[piece])
	}

	p.Resources.SubtractSet(cost)
	e.oldState = e.state
	switch piece {
	case simple.Road:
		e.state = StatePlacingRoad
	case simple.Settlement:
		e.state = StatePlacingSettlement
	case simple.City:
		e.state = StatePlacingCity
	case simple.Ship:
		e.state = StatePlacingShip
	}
	return nil
}

// CancelBuild refunds the pending build, or refunds the knight card
// behind a robber placement.
func (e *Engine) CancelBuild(seat int) error {
	if err := e.require(seat, ActCancelBuild, false); err != nil {
		return err
	}
	p := e.players[seat]

	switch e.state {
	case StatePlacingRoad:
		p.Resources.AddSet(simple.PieceCosts[simple.Road])
	case StatePlacingSettlement:
		p.Resources.AddSet(simple.PieceCosts[simple.Settlement])
	case StatePlacingCity:
		p.Resources.AddSet(simple.PieceCosts[simple.City])
	case StatePlacingShip:
		p.Resources.AddSet(simple.PieceCosts[simple.Ship])
	case StatePlacingRobber, StatePlacingPirate:
		// Taking back a played knight.  A rolled 7 has no card
		// behind it and the robber must move.
		if !p.PlayedDevCard {
			return xerrors.New("a rolled 7 cannot be cancelled")
		}
		p.DevCards.Add(1, simple.OldCards, simple.KnightCard)
		p.KnightsPlayed--
		p.PlayedDevCard = false
	case StatePlacingFreeRoad1, StatePlacingFreeRoad2:
		// Declining the remainder of Road Building.
	}

	e.sendBackToOldState(StatePlay1)
	return nil
}

// PutPiece places a piece for whichever placing state is active,
// including the initial placement rounds.
func (e *Engine) PutPiece(seat int, piece simple.PieceType, coord board.Coord) error {
	if err := e.require(seat, ActPutPiece, false); err != nil {
		return err
	}
	p := e.players[seat]

	switch e.state {
	case StateStart1A, StateStart2A, StateStart3A:
		if piece != simple.Settlement {
			return xerrors.New("place a settlement")
		}
		return e.putInitSettlement(p, coord)

	case StateStart1B, StateStart2B, StateStart3B:
		if piece != simple.Road && piece != simple.Ship {
			return xerrors.New("place a road or ship")
		}
		return e.putInitRoute(p, piece, coord)

	case StatePlacingRoad, StatePlacingFreeRoad1, StatePlacingFreeRoad2:
		if piece == simple.Ship && e.state != StatePlacingRoad {
			// Road Building may lay ships too.
			return e.putShip(p, coord)
		}
		if piece != simple.Road {
			return xerrors.New("place a road")
		}
		return e.putRoad(p, coord)

	case StatePlacingShip:
		if piece != simple.Ship {
			return xerrors.New("place a ship")
		}
		return e.putShip(p, coord)

	case StatePlacingSettlement:
		if piece != simple.Settlement {
			return xerrors.New("place a settlement")
		}
		return e.putSettlement(p, coord)

	case StatePlacingCity:
		if piece != simple.City {
			return xerrors.New("place a city")
		}
		return e.putCity(p, coord)
	}
	return xerrors.Errorf("nothing to place in state %s", e.state)
}

// putInitSettlement places a free settlement during the start rounds.
// Second and later settlements collect one resource per adjacent land
// hex; gold hexes owe a pick instead.
func (e *Engine) putInitSettlement(p *Player, node board.Coord) error {
	if !p.PotentialSettlements[node] {
		return xerrors.Errorf("node %v is not open for a settlement", node)
	}

	e.placeSettlementPiece(p, node)
	e.lastSettlement = node

	if e.state != StateStart1A {
		picks := 0
		for _, hex := range e.Board.AdjacentHexesToNode(node) {
			switch e.Board.HexType(hex) {
			case board.GoldHex:
				picks++
			default:
				if r, ok := board.HexResource(e.Board.HexType(hex)); ok {
					p.Resources.Add(1, r)
				}
			}
		}
		if picks > 0 {
			p.NeedToPickGold += picks
			e.oldState = e.state
			e.state = StateStartPickGold
			return nil
		}
	}

	e.advanceInitialPlacement()
	return nil
}

// putInitRoute places the free road or ship after an initial
// settlement; it must touch that settlement.
func (e *Engine) putInitRoute(p *Player, piece simple.PieceType, edge board.Coord) error {
	if !e.Board.IsEdgeAdjacentToNode(e.lastSettlement, edge) {
		return xerrors.Errorf("edge %v does not touch your new settlement", edge)
	}
	if _, taken := e.routeAt(edge); taken {
		return xerrors.Errorf("edge %v is taken", edge)
	}
	switch piece {
	case simple.Road:
		if !e.Board.IsLegalRoadEdge(edge) {
			return xerrors.Errorf("edge %v is not a legal road edge", edge)
		}
	case simple.Ship:
		if !e.Opts.SeaBoard {
			return xerrors.New("ships need the sea board")
		}
		if !e.Board.IsLegalShipEdge(edge) {
			return xerrors.Errorf("edge %v is not a legal ship edge", edge)
		}
	}

	e.placeRoutePiece(p, piece, edge)
	e.advanceInitialPlacement()
	return nil
}

func (e *Engine) putRoad(p *Player, edge board.Coord) error {
	if err := e.checkRoutePlacement(p, simple.Road, edge); err != nil {
		return err
	}
	e.placeRoutePiece(p, simple.Road, edge)
	e.afterRoutePlaced(p)
	return nil
}

func (e *Engine) putShip(p *Player, edge board.Coord) error {
	if err := e.checkRoutePlacement(p, simple.Ship, edge); err != nil {
		return err
	}
	e.placeRoutePiece(p, simple.Ship, edge)
	e.afterRoutePlaced(p)
	return nil
}

// afterRoutePlaced steps the state machine after a mid-game road or
// ship: free-road chaining, then back to building, then win check.
func (e *Engine) afterRoutePlaced(p *Player) {
	e.updateLongestRoutePlayer()
	switch e.state {
	case StatePlacingFreeRoad1:
		e.state = StatePlacingFreeRoad2
	case StatePlacingFreeRoad2:
		e.sendBackToOldState(StatePlay1)
	default:
		e.sendBackToOldState(StatePlay1)
	}
	e.checkForWinner()
}

// checkRoutePlacement validates geometry and connectivity for a road
// or ship.  Ships may not be laid beside the pirate.
func (e *Engine) checkRoutePlacement(p *Player, piece simple.PieceType, edge board.Coord) error {
	if _, taken := e.routeAt(edge); taken {
		return xerrors.Errorf("edge %v is taken", edge)
	}
	switch piece {
	case simple.Road:
		if !e.Board.IsLegalRoadEdge(edge) {
			return xerrors.Errorf("edge %v is not a legal road edge", edge)
		}
	case simple.Ship:
		if !e.Board.IsLegalShipEdge(edge) {
			return xerrors.Errorf("edge %v is not a legal ship edge", edge)
		}
		if e.pirateBlocksEdge(edge) {
			return xerrors.New("the pirate blocks that edge")
		}
	}
	if !e.routeReaches(p, piece, edge) {
		return xerrors.Errorf("edge %v does not connect to your network", edge)
	}
	if p.Inventory[piece] < 1 {
		return xerrors.Errorf("no %s pieces left", simple.PieceTypeNames[piece])
	}
	return nil
}

// pirateBlocksEdge reports the pirate on either hex along the edge.
func (e *Engine) pirateBlocksEdge(edge board.Coord) bool {
	pirate := e.Board.PirateHex()
	if pirate == board.NoHex {
		return false
	}
	f1, f2 := perpendicularFacings(edge)
	return e.Board.AdjacentHexToEdge(edge, f1) == pirate ||
		e.Board.AdjacentHexToEdge(edge, f2) == pirate
}

// perpendicularFacings gives the two facings toward the hexes along
// an edge's length.
func perpendicularFacings(edge board.Coord) (board.Facing, board.Facing) {
	switch board.ClassOfEdge(edge) {
	case board.EdgeVertical:
		return board.FacingE, board.FacingW
	case board.EdgeAscending:
		return board.FacingNW, board.FacingSE
	default:
		return board.FacingNE, board.FacingSW
	}
}

// routeReaches reports whether an edge touches the player's network:
// an own town at either end, or an own route across an end node not
// owned by another player.  Roads and ships join only at a town.
func (e *Engine) routeReaches(p *Player, piece simple.PieceType, edge board.Coord) bool {
	n1, n2 := e.Board.AdjacentNodesToEdge(edge)
	for _, node := range []board.Coord{n1, n2} {
		if p.HasTownAt(node) {
			return true
		}
		if owner, ok := e.townAt(node); ok && owner != p {
			continue // another player's town severs the connection
		}
		for _, adj := range e.Board.AdjacentEdgesToNode(node) {
			if adj == edge {
				continue
			}
			if t, ok := p.Routes[adj]; ok && t == piece {
				return true
			}
		}
	}
	return false
}

func (e *Engine) putSettlement(p *Player, node board.Coord) error {
	if !p.PotentialSettlements[node] {
		return xerrors.Errorf("node %v is not open for a settlement", node)
	}
	reached := false
	for _, adj := range e.Board.AdjacentEdgesToNode(node) {
		if p.HasRouteAt(adj) {
			reached = true
			break
		}
	}
	if !reached {
		return xerrors.Errorf("node %v is not on your network", node)
	}
	if p.Inventory[simple.Settlement] < 1 {
		return xerrors.New("no settlement pieces left")
	}

	e.placeSettlementPiece(p, node)
	e.sendBackToOldState(StatePlay1)
	e.checkForWinner()
	return nil
}

func (e *Engine) putCity(p *Player, node board.Coord) error {
	if !p.Settlements[node] {
		return xerrors.Errorf("no settlement of yours at %v", node)
	}
	if p.Inventory[simple.City] < 1 {
		return xerrors.New("no city pieces left")
	}

	// The settlement goes back in the box.
	delete(p.Settlements, node)
	p.Inventory[simple.Settlement]++
	p.Inventory[simple.City]--
	p.Cities[node] = true

	e.sendBackToOldState(StatePlay1)
	e.checkForWinner()
	return nil
}

// placeSettlementPiece mutates for a validated settlement: inventory,
// the node, every player's potential set (distance rule), port flags,
// fog, and route severing.
func (e *Engine) placeSettlementPiece(p *Player, node board.Coord) {
	p.Inventory[simple.Settlement]--
	p.Settlements[node] = true

	for _, q := range e.players {
		if q == nil {
			continue
		}
		delete(q.PotentialSettlements, node)
		for _, adj := range e.Board.AdjacentNodesToNode(node) {
			delete(q.PotentialSettlements, adj)
		}
	}

	if pt, ok := e.Board.PortTypeAtNode(node); ok {
		p.Ports[pt] = true
	}

	e.revealFogAround(p, node)

	// A new town can split another player's route in two.
	e.updateLongestRoutePlayer()
}

// placeRoutePiece mutates for a validated road or ship.
func (e *Engine) placeRoutePiece(p *Player, piece simple.PieceType, edge board.Coord) {
	p.Inventory[piece]--
	p.Routes[edge] = piece

	n1, n2 := e.Board.AdjacentNodesToEdge(edge)
	e.revealFogAround(p, n1)
	e.revealFogAround(p, n2)
	if piece == simple.Ship && e.Opts.ClothVillages {
		e.establishClothTrade(p, edge)
	}
	e.updateLongestRoutePlayer()
}

// revealFogAround uncovers fog hexes touching the node.  The revealer
// collects one resource of the uncovered type; gold owes a pick.
func (e *Engine) revealFogAround(p *Player, node board.Coord) {
	for _, hex := range e.Board.AdjacentHexesToNode(node) {
		if !e.Board.IsFogHex(hex) {
			continue
		}
		revealed := e.Board.RevealFogHex(hex)
		log.Info("Seat %d revealed fog hex %v: %s", p.Seat, hex, board.HexTypeNames[revealed])
		if revealed == board.GoldHex {
			p.NeedToPickGold++
			if e.state != StateStartPickGold && e.state != StateWaitingForPickGold {
				e.oldState = e.state
				e.state = StateWaitingForPickGold
			}
		} else if r, ok := board.HexResource(revealed); ok {
			p.Resources.Add(1, r)
		}
	}
}

// PickGold collects owed gold-hex picks, from initial placement, a
// gold roll, or a fog reveal.
func (e *Engine) PickGold(seat int, picks simple.ResourceSet) error {
	if err := e.require(seat, ActPickGold, true); err != nil {
		return err
	}
	p := e.players[seat]
	if p.NeedToPickGold == 0 {
		return xerrors.New("no gold picks owed")
	}
	if picks.Total() != p.NeedToPickGold {
		return xerrors.Errorf("pick exactly %d resources", p.NeedToPickGold)
	}

	p.Resources.AddSet(picks)
	p.NeedToPickGold = 0

	for _, q := range e.players {
		if q != nil && q.NeedToPickGold > 0 {
			return nil // others still owe picks
		}
	}
	e.resumeAfterInterlude()
	return nil
}
