package message

import (
	"local/islanders/board"
	"local/islanders/simple"
)

// PlayerSnapshot is one seat's public state plus the owner-only hand
// detail.  Hand and dev cards are counts for everyone except the seat
// the snapshot is built for.
type PlayerSnapshot struct {
	Seat     int                `json:"seat"`
	Identity simple.Identity    `json:"identity"`
	Color    simple.PlayerColor `json:"color"`
	PublicVP int                `json:"publicVP"`
	HandSize int                `json:"handSize"`
	DevCards int                `json:"devCards"`
	Knights  int                `json:"knights"`
	Cloth    int                `json:"cloth,omitempty"`
	RouteLen int                `json:"routeLen"`
	Routes   map[string]string  `json:"routes"`
	Towns    map[string]string  `json:"towns"`

	// Only for the seat's own snapshot.
	Hand      *simple.ResourceSet `json:"hand,omitempty"`
	OwedPicks int                 `json:"owedPicks,omitempty"`
}

// GameSnapshot is an immutable copy of the visible game for one
// viewer.  Mutating the engine after the call does not change it.
type GameSnapshot struct {
	State        string           `json:"state"`
	Current      int              `json:"current"`
	Dice         int              `json:"dice"`
	Winner       int              `json:"winner"`
	LargestArmy  int              `json:"largestArmy"`
	LongestRoute int              `json:"longestRoute"`
	DeckSize     int              `json:"deckSize"`
	Board        board.Snapshot   `json:"board"`
	Players      []PlayerSnapshot `json:"players"`
}
