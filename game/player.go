package game

import (
	"local/islanders/board"
	"local/islanders/simple"
)

// Player is one seat's ledger: hand, inventory, placed pieces, and
// the derived sets the engine consults on every placement.  Players
// are indexed by seat; a vacant seat holds a nil entry in the arena.
type Player struct {
	Seat     int
	Identity simple.Identity
	Color    simple.PlayerColor

	Resources simple.ResourceSet
	DevCards  simple.DevCardSet

	// Cloth from village trade; public, worth 1 VP per 2.
	Cloth int

	// Pieces left in the box, by type.
	Inventory map[simple.PieceType]int

	// Placed pieces.  Roads and ships share the edge keyspace; the
	// value distinguishes them.
	Routes      map[board.Coord]simple.PieceType
	Settlements map[board.Coord]bool
	Cities      map[board.Coord]bool

	// Ports reached by this player's settlements and cities.
	Ports map[board.PortType]bool

	// Nodes where a new settlement may legally go: on land, not too
	// close to any settlement.  Shrinks as the board fills.
	PotentialSettlements map[board.Coord]bool

	KnightsPlayed int
	PlayedDevCard bool // one dev card per turn

	// Flags for the current turn cycle.
	NeedToDiscard  bool
	NeedToPickGold int // gold-hex resource picks owed
	AskedSpecial   bool
	SpecialBuilt   bool

	// Board-reset vote: 0 none, 1 yes, -1 no.
	ResetVote          int
	AskedResetThisTurn bool

	LongestRouteLen int
	savedRouteLen   int
	routeLenSaved   bool
	savedRouteStack []int
}

func NewPlayer(seat int, id simple.Identity, color simple.PlayerColor) *Player {
	inv := make(map[simple.PieceType]int, len(simple.InitialPieces))
	for t, n := range simple.InitialPieces {
		inv[t] = n
	}
	return &Player{
		Seat:                 seat,
		Identity:             id,
		Color:                color,
		DevCards:             simple.NewDevCardSet(),
		Inventory:            inv,
		Routes:               map[board.Coord]simple.PieceType{},
		Settlements:          map[board.Coord]bool{},
		Cities:               map[board.Coord]bool{},
		Ports:                map[board.PortType]bool{},
		PotentialSettlements: map[board.Coord]bool{},
	}
}

// PublicVP is the player's visible score: settlements, cities, cloth,
// and the two bonuses.  Hidden VP cards are added by TotalVP.
func (p *Player) PublicVP(largestArmy, longestRoute bool) int {
	vp := len(p.Settlements) + 2*len(p.Cities) + p.Cloth/2
	if largestArmy {
		vp += 2
	}
	if longestRoute {
		vp += 2
	}
	return vp
}

func (p *Player) TotalVP(largestArmy, longestRoute bool) int {
	return p.PublicVP(largestArmy, longestRoute) + p.DevCards.VPAmount()
}

// HasRouteAt reports a road or ship of this player on the edge.
func (p *Player) HasRouteAt(edge board.Coord) bool {
	_, ok := p.Routes[edge]
	return ok
}

// HasTownAt reports a settlement or city of this player on the node.
func (p *Player) HasTownAt(node board.Coord) bool {
	return p.Settlements[node] || p.Cities[node]
}

// CanAfford reports whether the hand covers a cost.
func (p *Player) CanAfford(cost simple.ResourceSet) bool {
	return p.Resources.Contains(cost)
}

// SaveRouteLen stores the route length before a trial placement.
// Placements are almost always trialed one at a time, so a single
// slot covers the common case; saving again while a save is held
// spills the held value onto a stack.
func (p *Player) SaveRouteLen() {
	if p.routeLenSaved {
		p.savedRouteStack = append(p.savedRouteStack, p.savedRouteLen)
	}
	p.savedRouteLen = p.LongestRouteLen
	p.routeLenSaved = true
}

func (p *Player) RestoreRouteLen() {
	if !p.routeLenSaved {
		return
	}
	p.LongestRouteLen = p.savedRouteLen
	if n := len(p.savedRouteStack); n > 0 {
		p.savedRouteLen = p.savedRouteStack[n-1]
		p.savedRouteStack = p.savedRouteStack[:n-1]
	} else {
		p.routeLenSaved = false
	}
}

// BankTradeRatio is the player's best exchange rate for giving a
// resource type: 2 with that type's port, 3 with a misc port, else 4.
func (p *Player) BankTradeRatio(r simple.Resource) int {
	for pt := board.ClayPort; pt <= board.WoodPort; pt++ {
		if res, ok := pt.Resource(); ok && res == r && p.Ports[pt] {
			return 2
		}
	}
	if p.Ports[board.MiscPort] {
		return 3
	}
	return 4
}
