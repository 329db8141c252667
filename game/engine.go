package game

import (
	"math/rand"

	"golang.org/x/xerrors"

	"local/islanders/board"
	"local/islanders/log"
	"local/islanders/simple"
)

// Engine is the authoritative rules state for one game: the board,
// the player arena, and the state machine.  It is not goroutine-safe;
// the owning Game serializes access through its message loop.
//
// Every operation validates first and mutates only on success,
// returning an error the caller can forward to the requesting client.
type Engine struct {
	Opts  simple.GameOptions
	Board *board.Board

	players []*Player // by seat; nil seats are vacant
	rng     *rand.Rand

	state    State
	oldState State // state to resume after an interlude
	current  int   // seat whose turn it is
	first    int   // seat that placed first
	dice     int
	rounds   int // completed full turns around the table
	turns    int

	devDeck []simple.DevCardType

	largestArmyPlayer  int // -1 while unclaimed
	longestRoutePlayer int

	// Initial placement bookkeeping.
	lastSettlement board.Coord

	// Trial placements awaiting undo, most recent last.
	trials []trialPiece

	// Robbery bookkeeping between state steps.
	robVictims     []int
	robClothVictim int // -1 unless a cloth-or-resource choice is open

	// Seats trading with each village, in establishment order.
	villageTraders [][]int

	// Player trade on the table, if any.
	offer *TradeOffer

	// Special building (6 players): seat being served, or -1.
	specialSeat int

	forcingEndTurn bool
	winner         int

	resetVoteOpen      bool
	resetVoteRequester int
}

// TradeOffer is a proposed player trade: give from the offerer, get
// in return, open to the listed seats.
type TradeOffer struct {
	From int
	Give simple.ResourceSet
	Get  simple.ResourceSet
	To   map[int]bool
}

func NewEngine(opts simple.GameOptions, rng *rand.Rand) *Engine {
	return &Engine{
		Opts:               opts,
		Board:              board.New(),
		players:            make([]*Player, opts.MaxPlayers),
		rng:                rng,
		state:              StateNew,
		robClothVictim:     -1,
		largestArmyPlayer:  -1,
		longestRoutePlayer: -1,
		specialSeat:        -1,
		resetVoteRequester: -1,
		winner:             -1,
	}
}

func (e *Engine) State() State       { return e.state }
func (e *Engine) CurrentPlayer() int { return e.current }
func (e *Engine) CurrentDice() int   { return e.dice }
func (e *Engine) Rounds() int        { return e.rounds }

func (e *Engine) LargestArmyPlayer() int  { return e.largestArmyPlayer }
func (e *Engine) LongestRoutePlayer() int { return e.longestRoutePlayer }

func (e *Engine) Player(seat int) *Player {
	if seat < 0 || seat >= len(e.players) {
		return nil
	}
	return e.players[seat]
}

func (e *Engine) Players() []*Player { return e.players }

func (e *Engine) SeatCount() int { return len(e.players) }

func (e *Engine) seatedCount() int {
	n := 0
	for _, p := range e.players {
		if p != nil {
			n++
		}
	}
	return n
}

// Sit fills a seat.  Only before Start.
func (e *Engine) Sit(seat int, id simple.Identity, color simple.PlayerColor) error {
	if e.state != StateNew {
		return xerrors.Errorf("cannot sit in state %s", e.state)
	}
	if seat < 0 || seat >= len(e.players) {
		return xerrors.Errorf("no seat %d", seat)
	}
	if e.players[seat] != nil {
		return xerrors.Errorf("seat %d is taken", seat)
	}
	e.players[seat] = NewPlayer(seat, id, color)
	return nil
}

// Stand empties a seat.  Only before Start.
func (e *Engine) Stand(seat int) error {
	if e.state != StateNew {
		return xerrors.Errorf("cannot stand in state %s", e.state)
	}
	if seat < 0 || seat >= len(e.players) || e.players[seat] == nil {
		return xerrors.Errorf("seat %d is not taken", seat)
	}
	e.players[seat] = nil
	return nil
}

// Start lays out the board, builds the dev deck, picks the first
// player, and enters initial placement.
func (e *Engine) Start() error {
	if e.state != StateNew {
		return xerrors.Errorf("cannot start in state %s", e.state)
	}
	if e.seatedCount() < 2 {
		return xerrors.New("need at least 2 players")
	}

	e.Board.MakeNewBoard(e.Opts, e.rng)
	e.devDeck = newDevDeck(e.rng)
	e.villageTraders = make([][]int, len(e.Board.Villages()))

	for _, p := range e.players {
		if p == nil {
			continue
		}
		for node := range e.Board.LegalNodes() {
			p.PotentialSettlements[node] = true
		}
		// Villages hold their nodes; nobody settles on one.
		for _, v := range e.Board.Villages() {
			delete(p.PotentialSettlements, v.Node)
		}
	}

	// First player: random occupied seat.
	seat := e.rng.Intn(len(e.players))
	for e.players[seat] == nil {
		seat = (seat + 1) % len(e.players)
	}
	e.first = seat
	e.current = seat
	e.state = StateStart1A
	log.Info("Game started: %d players, first player seat %d", e.seatedCount(), seat)
	return nil
}

func newDevDeck(rng *rand.Rand) []simple.DevCardType {
	deck := make([]simple.DevCardType, 0, 25)
	for i := 0; i < 14; i++ {
		deck = append(deck, simple.KnightCard)
	}
	for i := 0; i < 2; i++ {
		deck = append(deck, simple.RoadBuildingCard, simple.DiscoveryCard, simple.MonopolyCard)
	}
	deck = append(deck, simple.CapitolCard, simple.LibraryCard,
		simple.UniversityCard, simple.TempleCard, simple.TowersCard)
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// require is the transition-table gate plus turn ownership: most
// actions belong to the current player; the exceptions (discards,
// gold picks, trade responses) pass anySeat.
func (e *Engine) require(seat int, a Action, anySeat bool) error {
	if !e.state.Allows(a) {
		return xerrors.Errorf("%s not allowed in state %s", a, e.state)
	}
	if e.players[seat] == nil {
		return xerrors.Errorf("seat %d is vacant", seat)
	}
	if !anySeat && seat != e.actingSeat() {
		return xerrors.New("not your turn")
	}
	return nil
}

// actingSeat is the seat allowed to act on-turn: the special builder
// while the special building phase runs, otherwise the current
// player.  The current player's turn resumes when the phase ends.
func (e *Engine) actingSeat() int {
	if e.specialSeat != -1 {
		return e.specialSeat
	}
	return e.current
}
