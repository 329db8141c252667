package board

// Adjacency queries.  All O(1): each walks a fixed per-direction delta
// table and bounds-checks the result.  Queries return NoHex / NoCoord
// when the neighbor is off the board.

// Offsets from a hex to its 6 corner nodes, clockwise from north.
// Row delta is +-0x100, column delta fits in the low byte.
var hexToNode = [6][2]int{
	{-0x100, 0}, {-0x100, +1}, {+0x100, +1}, // N, NE, SE
	{+0x100, 0}, {+0x100, -1}, {-0x100, -1}, // S, SW, NW
}

// Per-class (r, c) offsets from an edge to its up-to-4 adjacent edges.
// Order of classes: | / \
var edgeToEdge = [3][4][2]int{
	{{-1, -1}, {-1, 0}, {+1, -1}, {+1, 0}}, // "|"
	{{0, -1}, {+1, 0}, {-1, +1}, {0, +1}},  // "/"
	{{0, -1}, {-1, 0}, {+1, +1}, {0, +1}},  // "\"
}

// (r, c) offsets from a node to the node 2 away, indexed by Facing.
var nodeToNode2Away = [7][2]int{
	{-9, -9}, // facing 0 unused
	{-2, +1}, {0, +2}, // NE, E
	{+2, +1}, {+2, -1}, // SE, SW
	{0, -2}, {-2, -1}, // W, NW
}

// AdjacentHexesToHex returns the valid hexes touching this hex, land
// only unless includeWater.
func (b *Board) AdjacentHexesToHex(hex Coord, includeWater bool) []Coord {
	var hexes []Coord

	r, c := hex.Row(), hex.Col()
	deltas := [6][2]int{
		{-2, -1}, {-2, +1}, // NW, NE
		{0, -2}, {0, +2}, // W, E
		{+2, -1}, {+2, +1}, // SW, SE
	}
	for _, d := range deltas {
		hexes = b.adjacentHexesAddIfOK(hexes, includeWater, r+d[0], c+d[1])
	}
	return hexes
}

func (b *Board) adjacentHexesAddIfOK(addTo []Coord, includeWater bool, r, c int) []Coord {
	if r <= 0 || c <= 0 || r >= b.height || c >= b.width {
		return addTo // not within the board's valid hex boundaries
	}
	if r%2 == 0 {
		return addTo // not a valid hex row
	}
	if includeWater || b.hexLayout[r][c] <= MaxLandHex && b.hexLayout[r][c] != WaterHex {
		addTo = append(addTo, MakeCoord(r, c))
	}
	return addTo
}

// AdjacentNodeToHex returns the hex's corner node in a direction,
// 0 north then clockwise through 5 northwest.  All 6 corners of a
// valid hex are valid nodes.
func (b *Board) AdjacentNodeToHex(hex Coord, dir int) Coord {
	return hex + Coord(hexToNode[dir][0]+hexToNode[dir][1])
}

// AdjacentNodesToHex returns all 6 corner nodes, clockwise from north.
func (b *Board) AdjacentNodesToHex(hex Coord) [6]Coord {
	var nodes [6]Coord
	for dir := 0; dir < 6; dir++ {
		nodes[dir] = hex + Coord(hexToNode[dir][0]+hexToNode[dir][1])
	}
	return nodes
}

// AdjacentHexToEdge returns the hex touching an edge in a facing
// direction, along its length or at one end, or NoHex off-board.
func (b *Board) AdjacentHexToEdge(edge Coord, facing Facing) Coord {
	r, c := edge.Row(), edge.Col()

	switch ClassOfEdge(edge) {
	case EdgeVertical:
		switch facing {
		case FacingE:
			c++
		case FacingW:
			c--
		case FacingNE, FacingNW:
			r -= 2
		case FacingSE, FacingSW:
			r += 2
		}
	case EdgeAscending:
		switch facing {
		case FacingNW:
			r--
		case FacingSE:
			r++
			c++
		case FacingNE, FacingE:
			r--
			c += 2
		case FacingSW, FacingW:
			r++
			c--
		}
	case EdgeDescending:
		switch facing {
		case FacingNE:
			r--
			c++
		case FacingSW:
			r++
		case FacingE, FacingSE:
			r++
			c += 2
		case FacingW, FacingNW:
			r--
			c--
		}
	}

	if r > 0 && c > 0 && r < b.height && c < b.width {
		return MakeCoord(r, c)
	}
	return NoHex
}

// AdjacentEdgesToEdge returns the 2 to 4 valid edges adjacent to this
// edge.
func (b *Board) AdjacentEdgesToEdge(edge Coord) []Coord {
	r, c := edge.Row(), edge.Col()
	offs := edgeToEdge[ClassOfEdge(edge)]

	edges := make([]Coord, 0, 4)
	for _, d := range offs {
		er, ec := r+d[0], c+d[1]
		if b.IsEdgeInBounds(er, ec) {
			edges = append(edges, MakeCoord(er, ec))
		}
	}
	return edges
}

// AdjacentNodesToEdge returns the two end nodes of an edge.  If the
// edge coordinate is valid, both nodes are valid.
func (b *Board) AdjacentNodesToEdge(edge Coord) (Coord, Coord) {
	if ClassOfEdge(edge) == EdgeVertical {
		return edge - 0x0100, edge + 0x0100 // (r-1,c), (r+1,c)
	}
	return edge, edge + 0x0001 // (r,c), (r,c+1)
}

// AdjacentHexesToNode returns the 1 to 3 valid hexes touching a node.
func (b *Board) AdjacentHexesToNode(node Coord) []Coord {
	r, c := node.Row(), node.Col()
	hexes := make([]Coord, 0, 3)

	if NodeIsY(node) {
		// North: (r-1, c)
		if r > 1 {
			hexes = append(hexes, node-0x0100)
		}
		if r < b.height-1 {
			// SW: (r+1, c-1)
			if c > 1 {
				hexes = append(hexes, node+0x0100-1)
			}
			// SE: (r+1, c+1)
			if c < b.width-1 {
				hexes = append(hexes, node+0x0100+1)
			}
		}
	} else {
		// South: (r+1, c)
		if r < b.height-1 {
			hexes = append(hexes, node+0x0100)
		}
		if r > 1 {
			// NW: (r-1, c-1)
			if c > 1 {
				hexes = append(hexes, node-0x0100-1)
			}
			// NE: (r-1, c+1)
			if c < b.width-1 {
				hexes = append(hexes, node-0x0100+1)
			}
		}
	}
	return hexes
}

// AdjacentEdgeToNode returns the edge leaving a node in a node
// direction (NodeDirW, NodeDirE, NodeDirNS), or NoCoord off-board.
func (b *Board) AdjacentEdgeToNode(node Coord, nodeDir int) Coord {
	r, c := node.Row(), node.Col()

	switch nodeDir {
	case NodeDirW: // NW or SW edge
		c--
	case NodeDirE: // NE or SE edge; (r, c) already correct
	case NodeDirNS:
		if NodeIsY(node) {
			r++ // S: (r+1, c)
		} else {
			r-- // N: (r-1, c)
		}
	}

	if b.IsEdgeInBounds(r, c) {
		return MakeCoord(r, c)
	}
	return NoCoord
}

// AdjacentEdgesToNode returns the up-to-3 valid edges leaving a node.
func (b *Board) AdjacentEdgesToNode(node Coord) []Coord {
	edges := make([]Coord, 0, 3)
	for dir := 0; dir < 3; dir++ {
		if e := b.AdjacentEdgeToNode(node, dir); e != NoCoord {
			edges = append(edges, e)
		}
	}
	return edges
}

// EdgeBetweenAdjacentNodes returns the edge joining two adjacent
// nodes, or NoCoord if they are not adjacent.  Symmetric in argument
// order.
func (b *Board) EdgeBetweenAdjacentNodes(nodeA, nodeB Coord) Coord {
	switch nodeB - nodeA {
	case 0x01: // c+1, same r: nodeB and the edge are NE or SE of nodeA
		return nodeA
	case -0x01: // c-1, same r: NW or SW
		return nodeB
	case 0x0200: // r+2, same c: S
		return nodeA + 0x0100
	case -0x0200: // r-2, same c: N
		return nodeA - 0x0100
	}
	return NoCoord
}

// IsEdgeAdjacentToNode reports whether an in-bounds edge has this node
// as one of its ends.
func (b *Board) IsEdgeAdjacentToNode(node, edge Coord) bool {
	if !b.IsEdgeInBounds(edge.Row(), edge.Col()) {
		return false
	}
	if edge == node || edge == node-0x01 {
		return true // same row; NE, SE, NW or SW
	}
	if edge.Col() != node.Col() {
		return false // not same column; not N or S
	}
	if NodeIsY(node) {
		return edge.Row() == node.Row()+1 // S
	}
	return edge.Row() == node.Row()-1 // N
}

// AdjacentNodeToNode returns the neighboring node in a node direction,
// or NoCoord off-board.  Every node has east and west neighbors; the
// third is north or south by orientation.
func (b *Board) AdjacentNodeToNode(node Coord, nodeDir int) Coord {
	r, c := node.Row(), node.Col()

	switch nodeDir {
	case NodeDirW:
		c--
	case NodeDirE:
		c++
	case NodeDirNS:
		if NodeIsY(node) {
			r += 2 // south
		} else {
			r -= 2 // north
		}
	}

	if b.IsNodeInBounds(r, c) {
		return MakeCoord(r, c)
	}
	return NoCoord
}

// AdjacentNodesToNode returns the up-to-3 valid neighboring nodes.
func (b *Board) AdjacentNodesToNode(node Coord) []Coord {
	nodes := make([]Coord, 0, 3)
	for dir := 0; dir < 3; dir++ {
		if n := b.AdjacentNodeToNode(node, dir); n != NoCoord {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// AdjacentNodeToNode2Away returns the node two steps away in a facing
// direction, or NoCoord off-board.
func (b *Board) AdjacentNodeToNode2Away(node Coord, facing Facing) Coord {
	d := nodeToNode2Away[facing]
	r, c := node.Row()+d[0], node.Col()+d[1]
	if !b.IsNodeInBounds(r, c) {
		return NoCoord
	}
	return MakeCoord(r, c)
}

// IsNode2AwayFromNode reports whether n2 is exactly two nodes from n1.
func (b *Board) IsNode2AwayFromNode(n1, n2 Coord) bool {
	dr := n2.Row() - n1.Row()
	dc := n2.Col() - n1.Col()
	for f := FacingNE; f <= FacingNW; f++ {
		if dr == nodeToNode2Away[f][0] && dc == nodeToNode2Away[f][1] {
			return true
		}
	}
	return false
}

// AdjacentEdgeToNode2Away returns the edge leaving node toward a node
// two away, the first hop of the two-step path.
func (b *Board) AdjacentEdgeToNode2Away(node, node2away Coord) Coord {
	r, c := node.Row(), node.Col()
	r2, c2 := node2away.Row(), node2away.Col()

	if NodeIsY(node) {
		switch {
		case r2 > r:
			return node + 0x0100 // south
		case c2 < c:
			return node - 1 // NW
		default:
			return node // NE
		}
	}
	switch {
	case r2 < r:
		return node - 0x0100 // north
	case c2 < c:
		return node - 1 // SW
	default:
		return node // SE
	}
}

// Bounds checks.  Interior rows validate by column range alone; the
// top and bottom rows depend on board-width parity and on row/2
// parity, because each hex row is offset one column from the next.

// IsNodeInBounds reports whether (r, c) is a node on some laid-out hex.
// Does not check for misalignment in the middle of the board.
func (b *Board) IsNodeInBounds(r, c int) bool {
	// Node (0,0) is never valid.
	// Node (0,w) valid only if the 1st hex row is longer than the 2nd: w odd.
	// Node (h,0) valid only if the last hex row begins in column 0: h/2 even.
	// Node (h,w) valid only if the last hex row ends in column w:
	//   w odd and r/2 odd, or w even and r/2 even.

	if r > 0 && r < b.height {
		return c >= 0 && c <= b.width
	}
	if r < 0 || r > b.height {
		return false
	}

	// r == 0 or r == height.
	if c > 0 && c < b.width {
		return true
	}

	// c == 0 or c == width.
	if r == 0 {
		if c == 0 {
			return false
		}
		return b.width%2 == 1
	}
	// r == height
	if c == 0 {
		return (r/2)%2 == 0
	}
	return b.width%2 == (r/2)%2
}

// IsEdgeInBounds reports whether (r, c) is an edge of some laid-out
// hex.
func (b *Board) IsEdgeInBounds(r, c int) bool {
	// Edge (0,0) is never valid.
	// Edge (h,0) is valid iff its left-end node (h,0) is valid.
	// Edge (0,w-1) or (h,w-1) is valid iff its right-end node (*,w) is.

	if c < 0 {
		return false
	}
	if r > 0 && r < b.height {
		if r%2 == 0 {
			return c < b.width
		}
		return c <= b.width
	}
	if r < 0 || r > b.height {
		return false
	}

	// r == 0 or r == height.
	if c == 0 {
		if r == 0 {
			return false
		}
		return b.IsNodeInBounds(r, 0)
	} else if c < b.width-1 {
		return true
	} else if c == b.width {
		return false
	}

	// c == width - 1.
	return b.IsNodeInBounds(r, c+1)
}
