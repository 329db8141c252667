package board

import "fmt"

// Coord is a packed board coordinate: (row << 8) | col.  The same
// integer space addresses hexes (odd rows only), nodes (hex corners),
// and edges (hex sides); which family a value belongs to is implied by
// the query that produced it.
type Coord int

// Sentinels.  Queries that walk off the board return one of these and
// callers must not treat them as coordinates.
const (
	NoHex   Coord = 0  // no such adjacent hex
	NoCoord Coord = -9 // no such adjacent node or edge
)

func MakeCoord(r, c int) Coord {
	return Coord((r << 8) | c)
}

func (co Coord) Row() int {
	return int(co) >> 8
}

func (co Coord) Col() int {
	return int(co) & 0xFF
}

func (co Coord) String() string {
	return fmt.Sprintf("0x%04X", int(co))
}

// Facing is a direction from a hex or edge toward a neighbor, 1-6
// clockwise from northeast.
type Facing int

const (
	FacingNE Facing = 1 + iota
	FacingE
	FacingSE
	FacingSW
	FacingW
	FacingNW
)

var FacingNames = map[Facing]string{
	FacingNE: "NE",
	FacingE:  "E",
	FacingSE: "SE",
	FacingSW: "SW",
	FacingW:  "W",
	FacingNW: "NW",
}

// Opposite returns the complementary facing (NE <-> SW, etc).
func (f Facing) Opposite() Facing {
	o := f + 3
	if o > 6 {
		o -= 6
	}
	return o
}

// EdgeClass is the orientation of an edge: vertical, or one of the two
// slopes.  Derived purely from coordinate parity.
type EdgeClass int

const (
	EdgeVertical  EdgeClass = iota // "|"  r odd
	EdgeAscending                  // "/"  (r/2, c) parities differ
	EdgeDescending                 // "\"  (r/2, c) parities match
)

// ClassOfEdge derives the edge orientation from its coordinate.
func ClassOfEdge(edge Coord) EdgeClass {
	r, c := edge.Row(), edge.Col()
	if r%2 == 1 {
		return EdgeVertical
	}
	if c%2 != (r/2)%2 {
		return EdgeAscending
	}
	return EdgeDescending
}

// NodeIsY reports the node's orientation: true for "Y" nodes (edges
// meet pointing down, third neighbor is south), false for "A" nodes
// (third neighbor is north).  Same parity rule as edge class.
func NodeIsY(node Coord) bool {
	r, c := node.Row(), node.Col()
	return c%2 != (r/2)%2
}

// Node directions for node->node, node->edge queries.
const (
	NodeDirW = 0 // northwest or southwest neighbor
	NodeDirE = 1 // northeast or southeast neighbor
	NodeDirNS = 2 // north (A node) or south (Y node) neighbor
)

// Hex corner directions for hex->node queries, clockwise from north.
const (
	HexNodeN = iota
	HexNodeNE
	HexNodeSE
	HexNodeS
	HexNodeSW
	HexNodeNW
)
