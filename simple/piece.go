package simple

type PieceType int

const (
	NonePieceType PieceType = iota
	Road
	Settlement
	City
	Ship
)

var PieceTypeNames = map[PieceType]string{
	NonePieceType: "None",
	Road:          "Road",
	Settlement:    "Settlement",
	City:          "City",
	Ship:          "Ship",
}

// Per-player piece inventory at game start.
var InitialPieces = map[PieceType]int{
	Road:       15,
	Settlement: 5,
	City:       4,
	Ship:       15,
}

// Build costs. Cities also return the settlement beneath them to the
// player's inventory, handled at placement.
var PieceCosts = map[PieceType]ResourceSet{
	Road:       NewResourceSet(1, 0, 0, 0, 1),
	Settlement: NewResourceSet(1, 0, 1, 1, 1),
	City:       NewResourceSet(0, 3, 0, 2, 0),
	Ship:       NewResourceSet(0, 0, 1, 0, 1),
}

// DevCardCost is 1 ore, 1 sheep, 1 wheat.
var DevCardCost = NewResourceSet(0, 1, 1, 1, 0)
