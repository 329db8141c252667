package board

import (
	"math/rand"

	"local/islanders/log"
	"local/islanders/simple"
)

// Sample layout: the main island plus three outlying islands.
// Mainland hexes follow a dice-number path spiraling inward from the
// shore; the outlying islands have no path.

// Main island terrain pool, shuffled before placement.
var mainlandHexTypes = []int{
	DesertHex, ClayHex, ClayHex, ClayHex,
	OreHex, OreHex, OreHex,
	SheepHex, SheepHex, SheepHex, SheepHex,
	WheatHex, WheatHex, WheatHex, WheatHex,
	WoodHex, WoodHex, WoodHex, WoodHex,
}

// Main island dice-number path, clockwise from the northwest, then
// spiraling inward.
var mainlandDicePath = []Coord{
	0x0104, 0x0106, 0x0108, 0x0309, 0x050A,
	0x0709, 0x0908, 0x0906, 0x0904, 0x0703,
	0x0502, 0x0303, 0x0305, 0x0307, 0x0508,
	0x0707, 0x0705, 0x0504, 0x0506,
}

// Dice numbers along the mainland path; one entry per non-desert hex.
var mainlandDiceNums = []int{
	5, 2, 6, 3, 8, 10, 9, 12, 11, 4, 8, 10, 9, 4, 5, 6, 3, 11,
}

// Mainland ports, clockwise from the northwest: edge then facing.
// Facing points from the port edge to the land hex whose two nodes
// accept a port settlement.
var mainlandPortSlots = []struct {
	edge   Coord
	facing Facing
}{
	{0x0003, FacingSE}, {0x0006, FacingSW},
	{0x0209, FacingSW}, {0x050B, FacingW},
	{0x0809, FacingNW}, {0x0A06, FacingNW},
	{0x0A03, FacingNE}, {0x0702, FacingE},
	{0x0302, FacingE},
}

// Mainland port-type pool: four 3:1 plus one of each 2:1.
var mainlandPortTypes = []PortType{
	MiscPort, MiscPort, MiscPort, MiscPort,
	ClayPort, OrePort, SheepPort, WheatPort, WoodPort,
}

// Outlying islands (sea board only).  Each island shuffles its own
// terrain pool, so an island's resource mix is fixed even though the
// arrangement varies.  One gold hex lands on the fogged northeast
// island and one on the southwest island; the southeast island holds
// the only island desert, which stays un-numbered.
var outlyingIslands = []struct {
	hexCoords []Coord
	hexTypes  []int
	diceNums  []int
}{
	{ // northeast island, under fog at the start
		hexCoords: []Coord{0x010E, 0x030D, 0x030F, 0x050E, 0x0510},
		hexTypes:  []int{ClayHex, OreHex, SheepHex, WheatHex, GoldHex},
		diceNums:  []int{5, 4, 6, 3, 8},
	},
	{ // southeast island
		hexCoords: []Coord{0x0B0D, 0x0B0F, 0x0B11, 0x0D0C, 0x0D0E},
		hexTypes:  []int{ClayHex, OreHex, SheepHex, WheatHex, DesertHex},
		diceNums:  []int{10, 9, 11, 5},
	},
	{ // southwest island
		hexCoords: []Coord{0x0D02, 0x0D04, 0x0F05, 0x0F07},
		hexTypes:  []int{OreHex, WoodHex, WoodHex, GoldHex},
		diceNums:  []int{9, 4, 10, 5},
	},
}

// Island ports: edge and facing per slot.
var islandPortSlots = []struct {
	edge   Coord
	facing Facing
}{
	{0x060E, FacingNW},                     // northeast island
	{0x0A0F, FacingSW}, {0x0E0C, FacingNW}, // southeast island
	{0x0E06, FacingSE}, // southwest island
}

var islandPortTypes = []PortType{
	MiscPort, SheepPort, WheatPort, WoodPort,
}

// Village slots on the southeast and southwest islands, as a hex
// corner each so the node is always a real land node.  The fogged
// northeast island gets none.  Dice numbers are shuffled against the
// slots and stay distinct so at most one village pays per roll.
var villageSlots = []struct {
	hex    Coord
	corner int
}{
	{0x0B0D, 0}, {0x0B11, 2}, {0x0D0E, 3},
	{0x0D02, 0}, {0x0F05, 4}, {0x0F07, 2},
}

var villageDiceNums = []int{2, 3, 4, 5, 9, 12}

// The northeast island starts hidden under fog on sea boards.
var fogHexCoords = []Coord{
	0x010E, 0x030D, 0x030F, 0x050E, 0x0510,
}

// The pirate's starting hex: open water between the mainland and the
// southeast island.
const pirateStartHex Coord = 0x090A

// MakeNewBoard shuffles terrain and ports and lays out the board.
// Called at the authority only; mirrors instead apply a Snapshot.
func (b *Board) MakeNewBoard(opts simple.GameOptions, rng *rand.Rand) {
	// Shuffle and place land hexes, numbers, and the robber; derive
	// legality; then shuffle and place ports.
	types := append([]int(nil), mainlandHexTypes...)
	b.placeHexes(types, mainlandDicePath, mainlandDiceNums, opts.BreakClumps, rng)

	if opts.SeaBoard {
		for _, isl := range outlyingIslands {
			types = append(types[:0], isl.hexTypes...)
			b.placeHexes(types, isl.hexCoords, isl.diceNums, 0, rng)
		}
		b.hideFogHexes(fogHexCoords)
		b.pirateHex = pirateStartHex
	}

	b.makeLegalRoadsFromLandNodes()

	ports := append([]PortType(nil), mainlandPortTypes...)
	b.shufflePorts(ports, opts.BreakClumps, rng)
	for i, slot := range mainlandPortSlots {
		b.placePort(ports[i], slot.edge, slot.facing)
	}

	if opts.SeaBoard {
		ports = append([]PortType(nil), islandPortTypes...)
		b.shufflePorts(ports, 0, rng)
		for i, slot := range islandPortSlots {
			b.placePort(ports[i], slot.edge, slot.facing)
		}
	}

	if opts.SeaBoard && opts.ClothVillages {
		dice := append([]int(nil), villageDiceNums...)
		rng.Shuffle(len(dice), func(i, j int) {
			dice[i], dice[j] = dice[j], dice[i]
		})
		for i, slot := range villageSlots {
			b.PlaceVillage(b.AdjacentNodeToHex(slot.hex, slot.corner), dice[i], StartingVillageCloth)
		}
		b.generalCloth = StartingGeneralCloth
		log.Debug("MakeNewBoard: %d cloth villages placed", len(b.villages))
	}

	log.Debug("MakeNewBoard: %d land hexes, %d legal nodes, %d legal edges, %d ports",
		len(b.landHexes), len(b.nodesOnLand), len(b.legalRoadEdges), b.PortsCount())
}

// placeHexes shuffles the terrain pool and lays it along path.  The
// desert entry sets the robber start and skips a dice number.  With a
// clump threshold, placement is redone until no same-type run of that
// size remains.  Callable once per land region; each call extends the
// land and node sets.
func (b *Board) placeHexes(hexTypes []int, path []Coord, diceNums []int, breakClumps int, rng *rand.Rand) {
	if len(path) > 0 {
		b.cachedLandHexes = nil
	}

	for redo := true; redo; {
		rng.Shuffle(len(hexTypes), func(i, j int) {
			hexTypes[i], hexTypes[j] = hexTypes[j], hexTypes[i]
		})

		cnt := 0
		desert := NoHex
		for i, hex := range path {
			r, c := hex.Row(), hex.Col()
			b.hexLayout[r][c] = hexTypes[i]

			switch hexTypes[i] {
			case DesertHex:
				desert = hex
				b.numLayout[r][c] = -1
			default:
				b.numLayout[r][c] = diceNums[cnt]
				cnt++
			}
		}

		redo = breakClumps >= 3 && b.checkLandHexResourceClumps(path, breakClumps)
		if redo {
			log.Debug("placeHexes: clump of %d+ found, reshuffling", breakClumps)
			continue
		}

		// The robber starts on the first region's desert.
		if b.robberHex == NoHex && desert != NoHex {
			b.robberHex = desert
		}
	}

	for _, hex := range path {
		b.landHexes[hex] = true
	}
	b.fillNodesOnLandFromHexes(path)
}

// checkLandHexResourceClumps does a depth-first scan over the placed
// hexes for runs of adjacent same-type land at or above clumpSize.
func (b *Board) checkLandHexResourceClumps(placed []Coord, clumpSize int) bool {
	unvisited := make(map[Coord]bool, len(placed))
	for _, hex := range placed {
		unvisited[hex] = true
	}

	for len(unvisited) > 0 {
		var start Coord
		for hex := range unvisited {
			start = hex
			break
		}
		delete(unvisited, start)

		hexType := b.HexType(start)
		clump := []Coord{start}
		for i := 0; i < len(clump); i++ {
			for _, adj := range b.AdjacentHexesToHex(clump[i], false) {
				if unvisited[adj] && b.HexType(adj) == hexType {
					delete(unvisited, adj)
					clump = append(clump, adj)
				}
			}
		}
		if len(clump) >= clumpSize {
			return true
		}
	}
	return false
}

// fillNodesOnLandFromHexes adds every corner of each land hex to the
// legal settlement set.
func (b *Board) fillNodesOnLandFromHexes(landHexes []Coord) {
	for _, hex := range landHexes {
		nodes := b.AdjacentNodesToHex(hex)
		for _, n := range nodes {
			b.nodesOnLand[n] = true
		}
	}
}

// makeLegalRoadsFromLandNodes derives the legal road edges: an edge is
// legal iff both of its end nodes are legal.  Not iterative; clears
// previous legality.  Anything concave across a sea is excluded
// because at least one node along the way is in the water.
func (b *Board) makeLegalRoadsFromLandNodes() {
	b.legalRoadEdges = make(map[Coord]bool)

	for node := range b.nodesOnLand {
		for dir := 0; dir < 3; dir++ {
			adj := b.AdjacentNodeToNode(node, dir)
			if adj != NoCoord && b.nodesOnLand[adj] {
				b.legalRoadEdges[b.AdjacentEdgeToNode(node, dir)] = true
			}
		}
	}
}

// shufflePorts shuffles the port-type pool.  With a clump threshold it
// retries (up to a give-up cap) until no run of clumpSize consecutive
// same-kind ports -- generic vs typed -- goes around the circle.
func (b *Board) shufflePorts(portTypes []PortType, breakClumps int, rng *rand.Rand) {
	for attempt := 0; attempt < 100; attempt++ {
		rng.Shuffle(len(portTypes), func(i, j int) {
			portTypes[i], portTypes[j] = portTypes[j], portTypes[i]
		})
		if breakClumps < 3 || !portClumped(portTypes, breakClumps) {
			return
		}
	}
	log.Warn("shufflePorts: gave up breaking port clumps after 100 tries")
}

func portClumped(portTypes []PortType, clumpSize int) bool {
	misc := portTypes[0] == MiscPort
	count := 1
	for _, p := range portTypes[1:] {
		if misc != (p == MiscPort) {
			misc = p == MiscPort
			count = 1
		} else {
			count++
			if count >= clumpSize {
				return true
			}
		}
	}
	return false
}

// hideFogHexes moves the real terrain and numbers of the given land
// hexes aside and shows FogHex until revealed.
func (b *Board) hideFogHexes(hexes []Coord) {
	for _, hex := range hexes {
		r, c := hex.Row(), hex.Col()
		b.fogHexes[hex] = fogHiddenHex{
			hexType: b.hexLayout[r][c],
			diceNum: b.numLayout[r][c],
		}
		b.hexLayout[r][c] = FogHex
		b.numLayout[r][c] = 0
	}
}
