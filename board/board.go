package board

import (
	"local/islanders/simple"
)

// Hex type codes stored in the terrain layout.
const (
	DesertHex = 0
	ClayHex   = 1
	OreHex    = 2
	SheepHex  = 3
	WheatHex  = 4
	WoodHex   = 5
	WaterHex  = 6
	GoldHex   = 7
	FogHex    = 8 // hidden; real type in fogHexes until revealed

	MaxLandHex = FogHex
)

var HexTypeNames = map[int]string{
	DesertHex: "Desert",
	ClayHex:   "Clay",
	OreHex:    "Ore",
	SheepHex:  "Sheep",
	WheatHex:  "Wheat",
	WoodHex:   "Wood",
	WaterHex:  "Water",
	GoldHex:   "Gold",
	FogHex:    "Fog",
}

// HexResource maps a producing hex type to its resource, or false for
// desert/water/gold/fog.
func HexResource(hexType int) (simple.Resource, bool) {
	if hexType >= ClayHex && hexType <= WoodHex {
		return simple.Resource(hexType - 1), true
	}
	return 0, false
}

// PortType: 0 is the generic 3:1 port, 1-5 are the 2:1 resource ports.
type PortType int

const (
	MiscPort  PortType = 0
	ClayPort  PortType = 1
	OrePort   PortType = 2
	SheepPort PortType = 3
	WheatPort PortType = 4
	WoodPort  PortType = 5
)

// Resource returns the traded resource for a 2:1 port.
func (p PortType) Resource() (simple.Resource, bool) {
	if p >= ClayPort && p <= WoodPort {
		return simple.Resource(p - 1), true
	}
	return 0, false
}

const (
	boardHeight = 0x11
	boardWidth  = 0x13
)

type fogHiddenHex struct {
	hexType int
	diceNum int
}

// Board is the island map: terrain and dice-number tables dense over
// (row, col), the derived land/legality sets, ports, and the robber
// and pirate positions.  Geometry queries are pure; the tables mutate
// only during setup and on fog reveal.
type Board struct {
	height, width int

	// Dense layout tables, [row][col].  Only odd rows hold hexes.
	hexLayout [][]int
	numLayout [][]int // 0 none, -1 desert sentinel

	landHexes       map[Coord]bool
	cachedLandHexes []Coord // nil when landHexes has changed

	nodesOnLand    map[Coord]bool
	legalRoadEdges map[Coord]bool

	// Ports as parallel slices: type, edge, facing per port.
	portTypes   []PortType
	portEdges   []Coord
	portFacings []Facing
	nodePorts   map[Coord]PortType

	robberHex Coord
	pirateHex Coord // 0 until placed

	fogHexes map[Coord]fogHiddenHex

	villages     []Village
	generalCloth int
}

func New() *Board {
	b := &Board{
		height:         boardHeight,
		width:          boardWidth,
		landHexes:      make(map[Coord]bool),
		nodesOnLand:    make(map[Coord]bool),
		legalRoadEdges: make(map[Coord]bool),
		nodePorts:      make(map[Coord]PortType),
		fogHexes:       make(map[Coord]fogHiddenHex),
	}
	b.hexLayout = make([][]int, b.height+1)
	b.numLayout = make([][]int, b.height+1)
	for r := 0; r <= b.height; r++ {
		b.hexLayout[r] = make([]int, b.width+1)
		b.numLayout[r] = make([]int, b.width+1)
		for c := 0; c <= b.width; c++ {
			b.hexLayout[r][c] = WaterHex
		}
	}
	return b
}

func (b *Board) Height() int { return b.height }
func (b *Board) Width() int  { return b.width }

// HexType returns the terrain code at a hex coordinate, or WaterHex
// for anything out of range.
func (b *Board) HexType(hex Coord) int {
	r, c := hex.Row(), hex.Col()
	if r < 0 || c < 0 || r >= b.height || c >= b.width {
		return WaterHex
	}
	return b.hexLayout[r][c]
}

// NumberOnHex returns the dice number on a hex, or 0 if none.
func (b *Board) NumberOnHex(hex Coord) int {
	r, c := hex.Row(), hex.Col()
	if r < 0 || c < 0 || r >= b.height || c >= b.width {
		return 0
	}
	n := b.numLayout[r][c]
	if n < 0 {
		return 0
	}
	return n
}

func (b *Board) IsHexOnLand(hex Coord) bool {
	return b.landHexes[hex]
}

// LandHexCoords returns every land hex coordinate.  The slice is
// cached and rebuilt only after the land set changes.
func (b *Board) LandHexCoords() []Coord {
	if b.cachedLandHexes != nil {
		return b.cachedLandHexes
	}
	coords := make([]Coord, 0, len(b.landHexes))
	for h := range b.landHexes {
		coords = append(coords, h)
	}
	b.cachedLandHexes = coords
	return coords
}

func (b *Board) IsNodeOnLand(node Coord) bool {
	return b.nodesOnLand[node]
}

// LegalNodes returns the set of settleable nodes; callers must not
// mutate it.
func (b *Board) LegalNodes() map[Coord]bool {
	return b.nodesOnLand
}

func (b *Board) IsLegalRoadEdge(edge Coord) bool {
	return b.legalRoadEdges[edge]
}

// LegalRoadEdges returns the set of road-legal edges; callers must not
// mutate it.
func (b *Board) LegalRoadEdges() map[Coord]bool {
	return b.legalRoadEdges
}

// IsLegalShipEdge: an edge can hold a ship if it is in bounds and at
// least one side is water (or it is a legal coastal road edge).
func (b *Board) IsLegalShipEdge(edge Coord) bool {
	if !b.IsEdgeInBounds(edge.Row(), edge.Col()) {
		return false
	}
	for f := FacingNE; f <= FacingNW; f++ {
		hex := b.AdjacentHexToEdge(edge, f)
		if hex != NoHex && b.HexType(hex) == WaterHex {
			return true
		}
	}
	return false
}

func (b *Board) RobberHex() Coord { return b.robberHex }
func (b *Board) PirateHex() Coord { return b.pirateHex }

func (b *Board) SetRobberHex(hex Coord) {
	b.robberHex = hex
}

func (b *Board) SetPirateHex(hex Coord) {
	b.pirateHex = hex
}

// Ports

func (b *Board) PortsCount() int {
	return len(b.portTypes)
}

func (b *Board) PortTypes() []PortType { return b.portTypes }
func (b *Board) PortEdges() []Coord    { return b.portEdges }
func (b *Board) PortFacings() []Facing { return b.portFacings }

// PortTypeAtNode returns the port reachable from a node, if any.
func (b *Board) PortTypeAtNode(node Coord) (PortType, bool) {
	p, ok := b.nodePorts[node]
	return p, ok
}

func (b *Board) placePort(ptype PortType, edge Coord, facing Facing) {
	b.portTypes = append(b.portTypes, ptype)
	b.portEdges = append(b.portEdges, edge)
	b.portFacings = append(b.portFacings, facing)
	n1, n2 := b.AdjacentNodesToEdge(edge)
	b.nodePorts[n1] = ptype
	b.nodePorts[n2] = ptype
}

// Fog

// IsFogHex reports whether the hex is still hidden.
func (b *Board) IsFogHex(hex Coord) bool {
	_, ok := b.fogHexes[hex]
	return ok
}

// RevealFogHex uncovers a hidden hex, writing its real terrain and
// dice number into the layout tables.  Returns the revealed terrain
// type.  The land set already contains fog hexes, so legality sets do
// not change.
func (b *Board) RevealFogHex(hex Coord) int {
	hidden, ok := b.fogHexes[hex]
	if !ok {
		return b.HexType(hex)
	}
	delete(b.fogHexes, hex)
	r, c := hex.Row(), hex.Col()
	b.hexLayout[r][c] = hidden.hexType
	b.numLayout[r][c] = hidden.diceNum
	return hidden.hexType
}
