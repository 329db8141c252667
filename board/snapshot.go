package board

// Snapshot is the immutable wire form of a board layout: a flat list
// of (hex, terrain, dice number) triples for every land hex, plus the
// port parallel arrays.  Order-independent on receipt; applying a
// snapshot rebuilds the same dense tables and derived sets.  Fog hexes
// appear as FogHex with no number, so a mirror never learns what is
// under the fog.
type Snapshot struct {
	Height int `json:"height"`
	Width  int `json:"width"`

	LandHexes []LandHex `json:"landHexes"`

	PortTypes   []PortType `json:"portTypes"`
	PortEdges   []Coord    `json:"portEdges"`
	PortFacings []Facing   `json:"portFacings"`

	Robber Coord `json:"robber"`
	Pirate Coord `json:"pirate"`

	Villages     []Village `json:"villages,omitempty"`
	GeneralCloth int       `json:"generalCloth,omitempty"`
}

type LandHex struct {
	Hex     Coord `json:"hex"`
	Type    int   `json:"type"`
	DiceNum int   `json:"diceNum"`
}

// Snapshot captures the current layout.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Height:       b.height,
		Width:        b.width,
		LandHexes:    make([]LandHex, 0, len(b.landHexes)),
		PortTypes:    append([]PortType(nil), b.portTypes...),
		PortEdges:    append([]Coord(nil), b.portEdges...),
		PortFacings:  append([]Facing(nil), b.portFacings...),
		Robber:       b.robberHex,
		Pirate:       b.pirateHex,
		Villages:     append([]Village(nil), b.villages...),
		GeneralCloth: b.generalCloth,
	}
	for _, hex := range b.LandHexCoords() {
		s.LandHexes = append(s.LandHexes, LandHex{
			Hex:     hex,
			Type:    b.HexType(hex),
			DiceNum: b.NumberOnHex(hex),
		})
	}
	return s
}

// FromSnapshot builds a board from a layout snapshot, re-deriving the
// land, node, and edge legality sets.
func FromSnapshot(s Snapshot) *Board {
	b := New()

	coords := make([]Coord, 0, len(s.LandHexes))
	for _, lh := range s.LandHexes {
		r, c := lh.Hex.Row(), lh.Hex.Col()
		b.hexLayout[r][c] = lh.Type
		if lh.Type == DesertHex {
			b.numLayout[r][c] = -1
		} else {
			b.numLayout[r][c] = lh.DiceNum
		}
		coords = append(coords, lh.Hex)
		b.landHexes[lh.Hex] = true
	}
	b.fillNodesOnLandFromHexes(coords)
	b.makeLegalRoadsFromLandNodes()

	for i := range s.PortTypes {
		b.placePort(s.PortTypes[i], s.PortEdges[i], s.PortFacings[i])
	}

	b.robberHex = s.Robber
	b.pirateHex = s.Pirate

	for _, v := range s.Villages {
		b.PlaceVillage(v.Node, v.Dice, v.Cloth)
	}
	b.generalCloth = s.GeneralCloth
	return b
}
