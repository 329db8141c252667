package game

import (
	"math/rand"
	"sort"
	"testing"

	"local/islanders/board"
	"local/islanders/log"
	"local/islanders/simple"
)

func init() {
	log.Init("/tmp", log.ErrorLevel)
}

var testIds = []simple.Identity{
	simple.NewGuestIdentity("G1"),
	simple.NewGuestIdentity("G2"),
	simple.NewGuestIdentity("G3"),
	simple.NewGuestIdentity("G4"),
	simple.NewGuestIdentity("G5"),
	simple.NewGuestIdentity("G6"),
}

func newStartedEngine(t *testing.T, seed int64, opts simple.GameOptions) *Engine {
	t.Helper()
	e := NewEngine(opts, rand.New(rand.NewSource(seed)))
	colors := []simple.PlayerColor{
		simple.BluePlayerColor, simple.RedPlayerColor,
		simple.WhitePlayerColor, simple.OrangePlayerColor,
		simple.GreenPlayerColor, simple.BrownPlayerColor,
	}
	for i := 0; i < opts.MaxPlayers && i < len(colors); i++ {
		if err := e.Sit(i, testIds[i], colors[i]); err != nil {
			t.Fatalf("Sit(%d): %v", i, err)
		}
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return e
}

// pickOpenNode returns the current player's smallest open settlement
// node, for deterministic placements.
func pickOpenNode(t *testing.T, e *Engine) board.Coord {
	t.Helper()
	p := e.Player(e.CurrentPlayer())
	nodes := make([]board.Coord, 0, len(p.PotentialSettlements))
	for n := range p.PotentialSettlements {
		nodes = append(nodes, n)
	}
	if len(nodes) == 0 {
		t.Fatal("no open settlement nodes")
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes[0]
}

// pickRouteEdge returns a free legal road edge touching the node.
func pickRouteEdge(t *testing.T, e *Engine, node board.Coord) board.Coord {
	t.Helper()
	edges := e.Board.AdjacentEdgesToNode(node)
	sort.Slice(edges, func(i, j int) bool { return edges[i] < edges[j] })
	for _, edge := range edges {
		if !e.Board.IsLegalRoadEdge(edge) {
			continue
		}
		if _, taken := e.routeAt(edge); !taken {
			return edge
		}
	}
	t.Fatalf("no free road edge at node %v", node)
	return board.NoCoord
}

// pickSettlementWithFreeEdges returns p's smallest settlement node
// with at least want free legal road edges, for deterministic picks.
func pickSettlementWithFreeEdges(t *testing.T, e *Engine, p *Player, want int) board.Coord {
	t.Helper()
	nodes := make([]board.Coord, 0, len(p.Settlements))
	for n := range p.Settlements {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	for _, n := range nodes {
		free := 0
		for _, edge := range e.Board.AdjacentEdgesToNode(n) {
			if !e.Board.IsLegalRoadEdge(edge) {
				continue
			}
			if _, taken := e.routeAt(edge); !taken {
				free++
			}
		}
		if free >= want {
			return n
		}
	}
	t.Fatalf("no settlement with %d free road edges", want)
	return board.NoCoord
}

// finishInitialPlacement plays out the whole start phase with
// deterministic picks.
func finishInitialPlacement(t *testing.T, e *Engine) {
	t.Helper()
	for i := 0; e.State().IsInitialPlacement(); i++ {
		if i > 100 {
			t.Fatal("initial placement did not terminate")
		}
		switch e.State() {
		case StateStart1A, StateStart2A, StateStart3A:
			node := pickOpenNode(t, e)
			if err := e.PutPiece(e.CurrentPlayer(), simple.Settlement, node); err != nil {
				t.Fatalf("initial settlement at %v: %v", node, err)
			}
		case StateStart1B, StateStart2B, StateStart3B:
			edge := pickRouteEdge(t, e, e.lastSettlement)
			if err := e.PutPiece(e.CurrentPlayer(), simple.Road, edge); err != nil {
				t.Fatalf("initial road at %v: %v", edge, err)
			}
		case StateStartPickGold:
			for _, p := range e.Players() {
				if p != nil && p.NeedToPickGold > 0 {
					var picks simple.ResourceSet
					picks.Add(p.NeedToPickGold, simple.Wheat)
					if err := e.PickGold(p.Seat, picks); err != nil {
						t.Fatalf("gold pick: %v", err)
					}
				}
			}
		}
	}
}

func TestStartNeedsPlayers(t *testing.T) {
	e := NewEngine(simple.DefaultOptions(), rand.New(rand.NewSource(1)))
	if err := e.Start(); err == nil {
		t.Fatal("Start with no players should fail")
	}
	e.Sit(0, testIds[0], simple.BluePlayerColor)
	if err := e.Start(); err == nil {
		t.Fatal("Start with one player should fail")
	}
}

func TestInitialPlacementSnake(t *testing.T) {
	e := newStartedEngine(t, 2, simple.DefaultOptions())
	first := e.CurrentPlayer()

	var settleOrder []int
	for i := 0; e.State().IsInitialPlacement(); i++ {
		if i > 100 {
			t.Fatal("placement did not terminate")
		}
		switch e.State() {
		case StateStart1A, StateStart2A:
			settleOrder = append(settleOrder, e.CurrentPlayer())
			e.PutPiece(e.CurrentPlayer(), simple.Settlement, pickOpenNode(t, e))
		case StateStart1B, StateStart2B:
			e.PutPiece(e.CurrentPlayer(), simple.Road, pickRouteEdge(t, e, e.lastSettlement))
		}
	}

	if len(settleOrder) != 8 {
		t.Fatalf("settlement placements = %d, want 8", len(settleOrder))
	}
	// Second round reverses the first.
	for i := 0; i < 4; i++ {
		if settleOrder[i] != settleOrder[7-i] {
			t.Fatalf("placement order not a snake: %v", settleOrder)
		}
	}
	if settleOrder[0] != first {
		t.Errorf("first placer %d != first player %d", settleOrder[0], first)
	}

	if e.State() != StateRoll {
		t.Fatalf("state after placement = %s, want Roll", e.State())
	}
	if e.CurrentPlayer() != first {
		t.Errorf("first roller = %d, want %d", e.CurrentPlayer(), first)
	}
	for _, p := range e.Players() {
		if len(p.Settlements) != 2 {
			t.Errorf("seat %d has %d settlements, want 2", p.Seat, len(p.Settlements))
		}
		if len(p.Routes) != 2 {
			t.Errorf("seat %d has %d roads, want 2", p.Seat, len(p.Routes))
		}
		if p.Inventory[simple.Settlement] != 3 || p.Inventory[simple.Road] != 13 {
			t.Errorf("seat %d inventory off: %v", p.Seat, p.Inventory)
		}
	}
}

func TestSecondSettlementGrants(t *testing.T) {
	e := newStartedEngine(t, 3, simple.DefaultOptions())
	for i := 0; e.State().IsInitialPlacement(); i++ {
		if i > 100 {
			t.Fatal("placement did not terminate")
		}
		switch e.State() {
		case StateStart1A:
			e.PutPiece(e.CurrentPlayer(), simple.Settlement, pickOpenNode(t, e))
		case StateStart2A:
			p := e.Player(e.CurrentPlayer())
			node := pickOpenNode(t, e)
			want := 0
			for _, hex := range e.Board.AdjacentHexesToNode(node) {
				if _, ok := board.HexResource(e.Board.HexType(hex)); ok {
					want++
				}
			}
			before := p.Resources.Total()
			if err := e.PutPiece(p.Seat, simple.Settlement, node); err != nil {
				t.Fatal(err)
			}
			if got := p.Resources.Total() - before; got != want {
				t.Errorf("seat %d second settlement at %v granted %d, want %d",
					p.Seat, node, got, want)
			}
		case StateStart1B, StateStart2B:
			e.PutPiece(e.CurrentPlayer(), simple.Road, pickRouteEdge(t, e, e.lastSettlement))
		}
	}
}

func TestDistanceRule(t *testing.T) {
	e := newStartedEngine(t, 4, simple.DefaultOptions())
	node := pickOpenNode(t, e)
	if err := e.PutPiece(e.CurrentPlayer(), simple.Settlement, node); err != nil {
		t.Fatal(err)
	}
	// The node and all its neighbors are now closed for everyone.
	for _, p := range e.Players() {
		if p.PotentialSettlements[node] {
			t.Errorf("seat %d still has %v open", p.Seat, node)
		}
		for _, adj := range e.Board.AdjacentNodesToNode(node) {
			if p.PotentialSettlements[adj] {
				t.Errorf("seat %d still has neighbor %v open", p.Seat, adj)
			}
		}
	}
}

func TestRollAndBuildFlow(t *testing.T) {
	e := newStartedEngine(t, 5, simple.DefaultOptions())
	finishInitialPlacement(t, e)

	if _, err := e.RollDice((e.CurrentPlayer() + 1) % 4); err == nil {
		t.Fatal("off-turn roll should fail")
	}

	roll, err := e.RollDice(e.CurrentPlayer())
	if err != nil {
		t.Fatal(err)
	}
	if roll < 2 || roll > 12 {
		t.Fatalf("roll = %d", roll)
	}
	switch e.State() {
	case StatePlay1, StateWaitingForDiscards, StatePlacingRobber, StateWaitingForPickGold:
	default:
		t.Fatalf("state after roll = %s", e.State())
	}

	if e.State() == StatePlay1 {
		// Rolling twice is rejected by the transition table.
		if _, err := e.RollDice(e.CurrentPlayer()); err == nil {
			t.Fatal("double roll should fail")
		}
		// A build with an empty hand is rejected.
		p := e.Player(e.CurrentPlayer())
		p.Resources = simple.ResourceSet{}
		if err := e.BuildRequest(p.Seat, simple.City); err == nil {
			t.Fatal("unaffordable build should fail")
		}
		if err := e.EndTurn(p.Seat); err != nil {
			t.Fatal(err)
		}
		if e.State() != StateRoll {
			t.Fatalf("state after end turn = %s", e.State())
		}
	}
}

func TestBuildRoadPayAndPlace(t *testing.T) {
	e := newStartedEngine(t, 6, simple.DefaultOptions())
	finishInitialPlacement(t, e)
	e.state = StatePlay1

	p := e.Player(e.CurrentPlayer())
	p.Resources = simple.NewResourceSet(1, 0, 0, 0, 1)

	if err := e.BuildRequest(p.Seat, simple.Road); err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePlacingRoad {
		t.Fatalf("state = %s", e.State())
	}
	if p.Resources.Total() != 0 {
		t.Fatalf("road cost not charged: %s", p.Resources)
	}

	// Cancel refunds.
	if err := e.CancelBuild(p.Seat); err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePlay1 || p.Resources.Total() != 2 {
		t.Fatalf("cancel: state %s hand %s", e.State(), p.Resources)
	}

	// Pay again and place connected to the network.
	if err := e.BuildRequest(p.Seat, simple.Road); err != nil {
		t.Fatal(err)
	}
	var settle board.Coord
	for n := range p.Settlements {
		settle = n
		break
	}
	edge := pickRouteEdge(t, e, settle)
	if err := e.PutPiece(p.Seat, simple.Road, edge); err != nil {
		t.Fatal(err)
	}
	if !p.HasRouteAt(edge) || p.Inventory[simple.Road] != 12 {
		t.Fatal("road not placed")
	}
	if e.State() != StatePlay1 {
		t.Fatalf("state = %s", e.State())
	}

	// A disconnected road is rejected.
	p.Resources = simple.NewResourceSet(1, 0, 0, 0, 1)
	e.BuildRequest(p.Seat, simple.Road)
	var far board.Coord
	for edge2 := range e.Board.LegalRoadEdges() {
		ok := true
		n1, n2 := e.Board.AdjacentNodesToEdge(edge2)
		for _, q := range e.Players() {
			if q.HasRouteAt(edge2) || q.HasTownAt(n1) || q.HasTownAt(n2) {
				ok = false
				break
			}
		}
		if ok {
			reached := false
			for _, adj := range e.Board.AdjacentEdgesToNode(n1) {
				if p.HasRouteAt(adj) {
					reached = true
				}
			}
			for _, adj := range e.Board.AdjacentEdgesToNode(n2) {
				if p.HasRouteAt(adj) {
					reached = true
				}
			}
			if !reached {
				far = edge2
				break
			}
		}
	}
	if far != 0 {
		if err := e.PutPiece(p.Seat, simple.Road, far); err == nil {
			t.Fatal("disconnected road should fail")
		}
	}
}

func TestCityReplacesSettlement(t *testing.T) {
	e := newStartedEngine(t, 7, simple.DefaultOptions())
	finishInitialPlacement(t, e)
	e.state = StatePlay1

	p := e.Player(e.CurrentPlayer())
	p.Resources = simple.NewResourceSet(0, 3, 0, 2, 0)
	if err := e.BuildRequest(p.Seat, simple.City); err != nil {
		t.Fatal(err)
	}
	var settle board.Coord
	for n := range p.Settlements {
		settle = n
		break
	}
	if err := e.PutPiece(p.Seat, simple.City, settle); err != nil {
		t.Fatal(err)
	}
	if !p.Cities[settle] || p.Settlements[settle] {
		t.Fatal("city did not replace settlement")
	}
	if p.Inventory[simple.Settlement] != 4 || p.Inventory[simple.City] != 3 {
		t.Fatalf("inventory after city: %v", p.Inventory)
	}
	if e.PublicVPForSeat(p.Seat) != 3 {
		t.Errorf("VP = %d, want 3", e.PublicVPForSeat(p.Seat))
	}
}

func TestSevenDiscardFlow(t *testing.T) {
	e := newStartedEngine(t, 8, simple.DefaultOptions())
	finishInitialPlacement(t, e)

	big := e.Player((e.CurrentPlayer() + 1) % 4)
	big.Resources = simple.NewResourceSet(3, 3, 3, 0, 0)
	e.rollSeven()

	if e.State() != StateWaitingForDiscards {
		t.Fatalf("state = %s", e.State())
	}
	if !big.NeedToDiscard {
		t.Fatal("9-card hand not flagged")
	}

	if err := e.Discard(big.Seat, simple.NewResourceSet(1, 0, 0, 0, 0)); err == nil {
		t.Fatal("short discard should fail")
	}
	if err := e.Discard(big.Seat, simple.NewResourceSet(0, 0, 0, 4, 0)); err == nil {
		t.Fatal("discarding cards not held should fail")
	}
	if err := e.Discard(big.Seat, simple.NewResourceSet(2, 2, 0, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if big.Resources.Total() != 5 || big.NeedToDiscard {
		t.Fatalf("hand after discard: %s", big.Resources)
	}
	if e.State() != StatePlacingRobber {
		t.Fatalf("state = %s, want PlacingRobber", e.State())
	}
}

func TestRobberSteal(t *testing.T) {
	e := newStartedEngine(t, 9, simple.DefaultOptions())
	finishInitialPlacement(t, e)

	thief := e.CurrentPlayer()
	e.state = StatePlacingRobber
	e.oldState = StatePlay1

	// Find a hex ringed by exactly one victim with cards.
	var target board.Coord
	var victim *Player
	for _, hex := range e.Board.LandHexCoords() {
		if hex == e.Board.RobberHex() {
			continue
		}
		var owners []*Player
		seen := map[int]bool{}
		for _, node := range e.Board.AdjacentNodesToHex(hex) {
			if p, ok := e.townAt(node); ok && !seen[p.Seat] {
				seen[p.Seat] = true
				owners = append(owners, p)
			}
		}
		if len(owners) == 1 && owners[0].Seat != thief {
			target, victim = hex, owners[0]
			break
		}
	}
	if victim == nil {
		t.Skip("no single-victim hex on this layout")
	}
	victim.Resources = simple.NewResourceSet(1, 1, 0, 0, 0)
	before := e.Player(thief).Resources.Total()

	got, stolen, err := e.MoveRobber(thief, target)
	if err != nil {
		t.Fatal(err)
	}
	if got != victim.Seat {
		t.Fatalf("victim = %d, want %d", got, victim.Seat)
	}
	if victim.Resources.Total() != 1 {
		t.Errorf("victim hand = %s", victim.Resources)
	}
	if e.Player(thief).Resources.Total() != before+1 {
		t.Errorf("thief gained nothing")
	}
	if e.Player(thief).Resources.Amount(stolen) == 0 {
		t.Errorf("stolen %s not in thief's hand", simple.ResourceNames[stolen])
	}
	if e.Board.RobberHex() != target {
		t.Errorf("robber at %v, want %v", e.Board.RobberHex(), target)
	}
	if e.State() != StatePlay1 {
		t.Errorf("state = %s", e.State())
	}

	// Robber cannot stay put.
	e.state = StatePlacingRobber
	if _, _, err := e.MoveRobber(thief, target); err == nil {
		t.Fatal("robber must move")
	}
}

func TestBankTradeRatios(t *testing.T) {
	e := newStartedEngine(t, 10, simple.DefaultOptions())
	finishInitialPlacement(t, e)
	e.state = StatePlay1
	p := e.Player(e.CurrentPlayer())
	p.Ports = map[board.PortType]bool{}

	for _, tc := range []struct {
		name  string
		ports []board.PortType
		give  simple.ResourceSet
		get   simple.ResourceSet
		ok    bool
	}{
		{"4:1", nil, simple.NewResourceSet(4, 0, 0, 0, 0), simple.NewResourceSet(0, 1, 0, 0, 0), true},
		{"4:1 wrong count", nil, simple.NewResourceSet(3, 0, 0, 0, 0), simple.NewResourceSet(0, 1, 0, 0, 0), false},
		{"4:1 asks too much", nil, simple.NewResourceSet(4, 0, 0, 0, 0), simple.NewResourceSet(0, 2, 0, 0, 0), false},
		{"3:1 misc", []board.PortType{board.MiscPort}, simple.NewResourceSet(3, 0, 0, 0, 0), simple.NewResourceSet(0, 1, 0, 0, 0), true},
		{"2:1 clay", []board.PortType{board.ClayPort}, simple.NewResourceSet(2, 0, 0, 0, 0), simple.NewResourceSet(0, 0, 0, 0, 1), true},
		{"2:1 wrong type", []board.PortType{board.ClayPort}, simple.NewResourceSet(0, 2, 0, 0, 0), simple.NewResourceSet(1, 0, 0, 0, 0), false},
		{"two groups", nil, simple.NewResourceSet(4, 4, 0, 0, 0), simple.NewResourceSet(0, 0, 1, 1, 0), true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p.Ports = map[board.PortType]bool{}
			for _, pt := range tc.ports {
				p.Ports[pt] = true
			}
			p.Resources = tc.give
			err := e.BankTrade(p.Seat, tc.give, tc.get)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected error")
			}
			if tc.ok && !p.Resources.Contains(tc.get) {
				t.Errorf("hand after trade: %s", p.Resources)
			}
		})
	}
}

func TestPlayerTrade(t *testing.T) {
	e := newStartedEngine(t, 11, simple.DefaultOptions())
	finishInitialPlacement(t, e)
	e.state = StatePlay1

	from := e.Player(e.CurrentPlayer())
	to := e.Player((e.CurrentPlayer() + 1) % 4)
	from.Resources = simple.NewResourceSet(2, 0, 0, 0, 0)
	to.Resources = simple.NewResourceSet(0, 1, 0, 0, 0)

	give := simple.NewResourceSet(2, 0, 0, 0, 0)
	get := simple.NewResourceSet(0, 1, 0, 0, 0)

	if err := e.OfferTrade(from.Seat, give, get, []int{to.Seat}); err != nil {
		t.Fatal(err)
	}
	if err := e.AcceptTrade((to.Seat + 1) % 4); err == nil {
		t.Fatal("unaddressed accept should fail")
	}
	if err := e.AcceptTrade(to.Seat); err != nil {
		t.Fatal(err)
	}
	if from.Resources.Amount(simple.Ore) != 1 || to.Resources.Amount(simple.Clay) != 2 {
		t.Fatalf("hands after trade: %s / %s", from.Resources, to.Resources)
	}
	if e.CurrentOffer() != nil {
		t.Fatal("offer not cleared")
	}

	// Rejection clears a single-recipient offer.
	from.Resources = give
	e.OfferTrade(from.Seat, give, get, []int{to.Seat})
	if err := e.RejectTrade(to.Seat); err != nil {
		t.Fatal(err)
	}
	if e.CurrentOffer() != nil {
		t.Fatal("offer survived rejection")
	}

	// The NT option forbids offers entirely.
	opts := simple.DefaultOptions()
	opts.NoTrading = true
	e2 := newStartedEngine(t, 11, opts)
	finishInitialPlacement(t, e2)
	e2.state = StatePlay1
	p := e2.Player(e2.CurrentPlayer())
	p.Resources = give
	if err := e2.OfferTrade(p.Seat, give, get, []int{(p.Seat + 1) % 4}); err == nil {
		t.Fatal("NT option should forbid player trades")
	}
}

func TestDevCardLifecycle(t *testing.T) {
	e := newStartedEngine(t, 12, simple.DefaultOptions())
	finishInitialPlacement(t, e)
	e.state = StatePlay1

	p := e.Player(e.CurrentPlayer())
	e.devDeck = []simple.DevCardType{simple.KnightCard}
	p.Resources = simple.DevCardCost

	card, err := e.BuyDevCard(p.Seat)
	if err != nil {
		t.Fatal(err)
	}
	if card != simple.KnightCard || e.DevDeckSize() != 0 {
		t.Fatalf("bought %s, deck %d", simple.DevCardTypeNames[card], e.DevDeckSize())
	}
	if _, err := e.BuyDevCard(p.Seat); err == nil {
		t.Fatal("empty deck should fail")
	}

	// Same-turn play is blocked: the card is still new.
	if err := e.PlayDevCard(p.Seat, simple.KnightCard); err == nil {
		t.Fatal("new card should not play")
	}
	p.DevCards.NewToOld()
	if err := e.PlayDevCard(p.Seat, simple.KnightCard); err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePlacingRobber {
		t.Fatalf("state = %s", e.State())
	}
	if p.KnightsPlayed != 1 || !p.PlayedDevCard {
		t.Fatal("knight not recorded")
	}

	// One card per turn.
	p.DevCards.Add(1, simple.OldCards, simple.MonopolyCard)
	e.state = StatePlay1
	if err := e.PlayDevCard(p.Seat, simple.MonopolyCard); err == nil {
		t.Fatal("second card same turn should fail")
	}
}

func TestKnightBeforeRoll(t *testing.T) {
	e := newStartedEngine(t, 13, simple.DefaultOptions())
	finishInitialPlacement(t, e)

	p := e.Player(e.CurrentPlayer())
	p.DevCards.Add(1, simple.OldCards, simple.KnightCard)
	p.DevCards.Add(1, simple.OldCards, simple.MonopolyCard)

	if err := e.PlayDevCard(p.Seat, simple.MonopolyCard); err == nil {
		t.Fatal("only a knight may play before the roll")
	}
	if err := e.PlayDevCard(p.Seat, simple.KnightCard); err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePlacingRobber {
		t.Fatalf("state = %s", e.State())
	}
	// After the robber resolves, the player still has to roll.
	if e.oldState != StateRoll {
		t.Fatalf("oldState = %s, want Roll", e.oldState)
	}
}

func TestMonopolyAndDiscovery(t *testing.T) {
	e := newStartedEngine(t, 14, simple.DefaultOptions())
	finishInitialPlacement(t, e)
	e.state = StatePlay1

	p := e.Player(e.CurrentPlayer())
	q := e.Player((p.Seat + 1) % 4)
	r := e.Player((p.Seat + 2) % 4)
	q.Resources = simple.NewResourceSet(0, 0, 3, 0, 0)
	r.Resources = simple.NewResourceSet(0, 0, 2, 1, 0)
	p.Resources = simple.ResourceSet{}

	p.DevCards.Add(1, simple.OldCards, simple.MonopolyCard)
	if err := e.PlayDevCard(p.Seat, simple.MonopolyCard); err != nil {
		t.Fatal(err)
	}
	taken, err := e.PickMonopoly(p.Seat, simple.Sheep)
	if err != nil {
		t.Fatal(err)
	}
	if taken != 5 || p.Resources.Amount(simple.Sheep) != 5 {
		t.Fatalf("monopoly took %d", taken)
	}
	if q.Resources.Amount(simple.Sheep) != 0 || r.Resources.Amount(simple.Sheep) != 0 {
		t.Fatal("victims kept sheep")
	}
	if e.State() != StatePlay1 {
		t.Fatalf("state = %s", e.State())
	}

	// Discovery next turn.
	p.PlayedDevCard = false
	p.DevCards.Add(1, simple.OldCards, simple.DiscoveryCard)
	if err := e.PlayDevCard(p.Seat, simple.DiscoveryCard); err != nil {
		t.Fatal(err)
	}
	if err := e.PickDiscovery(p.Seat, simple.NewResourceSet(1, 0, 0, 0, 0)); err == nil {
		t.Fatal("discovery must pick 2")
	}
	if err := e.PickDiscovery(p.Seat, simple.NewResourceSet(1, 1, 0, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if p.Resources.Amount(simple.Clay) != 1 || p.Resources.Amount(simple.Ore) != 1 {
		t.Fatalf("hand after discovery: %s", p.Resources)
	}
}

func TestRoadBuildingCard(t *testing.T) {
	e := newStartedEngine(t, 15, simple.DefaultOptions())
	finishInitialPlacement(t, e)
	e.state = StatePlay1

	p := e.Player(e.CurrentPlayer())
	p.DevCards.Add(1, simple.OldCards, simple.RoadBuildingCard)
	if err := e.PlayDevCard(p.Seat, simple.RoadBuildingCard); err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePlacingFreeRoad1 {
		t.Fatalf("state = %s", e.State())
	}

	settle := pickSettlementWithFreeEdges(t, e, p, 2)
	roads := len(p.Routes)
	e1 := pickRouteEdge(t, e, settle)
	if err := e.PutPiece(p.Seat, simple.Road, e1); err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePlacingFreeRoad2 {
		t.Fatalf("state = %s", e.State())
	}
	n1, n2 := e.Board.AdjacentNodesToEdge(e1)
	next := n1
	if next == settle {
		next = n2
	}
	e2 := pickRouteEdge(t, e, next)
	if err := e.PutPiece(p.Seat, simple.Road, e2); err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePlay1 {
		t.Fatalf("state = %s", e.State())
	}
	if len(p.Routes) != roads+2 {
		t.Fatalf("free roads not placed")
	}
}

func TestLargestArmy(t *testing.T) {
	e := newStartedEngine(t, 16, simple.DefaultOptions())
	finishInitialPlacement(t, e)

	a, b := 0, 1
	e.Player(a).KnightsPlayed = 2
	e.updateLargestArmy(a)
	if e.LargestArmyPlayer() != -1 {
		t.Fatal("2 knights should not claim the army")
	}

	e.Player(a).KnightsPlayed = 3
	e.updateLargestArmy(a)
	if e.LargestArmyPlayer() != a {
		t.Fatal("3 knights should claim the army")
	}

	// A tie does not move it.
	e.Player(b).KnightsPlayed = 3
	e.updateLargestArmy(b)
	if e.LargestArmyPlayer() != a {
		t.Fatal("tie moved the army")
	}
	e.Player(b).KnightsPlayed = 4
	e.updateLargestArmy(b)
	if e.LargestArmyPlayer() != b {
		t.Fatal("4 knights should take the army")
	}
}

// chainFrom lays n roads for p in a line starting at node, walking
// any free legal direction, and returns the node path it took.
func chainFrom(t *testing.T, e *Engine, p *Player, node board.Coord, n int) []board.Coord {
	t.Helper()
	path := []board.Coord{node}
	for i := 0; i < n; i++ {
		edges := e.Board.AdjacentEdgesToNode(node)
		sort.Slice(edges, func(x, y int) bool { return edges[x] < edges[y] })
		placed := false
		for _, edge := range edges {
			if !e.Board.IsLegalRoadEdge(edge) {
				continue
			}
			if _, taken := e.routeAt(edge); taken {
				continue
			}
			p.Routes[edge] = simple.Road
			n1, n2 := e.Board.AdjacentNodesToEdge(edge)
			if n1 == node {
				node = n2
			} else {
				node = n1
			}
			path = append(path, node)
			placed = true
			break
		}
		if !placed {
			t.Fatalf("chain stuck at %v after %d edges", node, i)
		}
	}
	return path
}

func TestLongestRoute(t *testing.T) {
	e := newStartedEngine(t, 17, simple.DefaultOptions())
	finishInitialPlacement(t, e)

	a := e.Player(0)
	b := e.Player(1)
	a.Routes = map[board.Coord]simple.PieceType{}
	b.Routes = map[board.Coord]simple.PieceType{}
	for _, p := range e.Players() {
		p.Settlements = map[board.Coord]bool{}
		p.Cities = map[board.Coord]bool{}
	}

	nodes := make([]board.Coord, 0)
	for n := range e.Board.LegalNodes() {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	path := chainFrom(t, e, a, nodes[0], 5)
	e.updateLongestRoutePlayer()
	if a.LongestRouteLen != 5 {
		t.Fatalf("route len = %d, want 5", a.LongestRouteLen)
	}
	if e.LongestRoutePlayer() != 0 {
		t.Fatalf("holder = %d, want 0", e.LongestRoutePlayer())
	}

	// A tie leaves the sitting holder in place.
	start := nodes[len(nodes)-1]
	chainFrom(t, e, b, start, 5)
	e.updateLongestRoutePlayer()
	if b.LongestRouteLen < 5 {
		t.Fatalf("b route len = %d", b.LongestRouteLen)
	}
	if e.LongestRoutePlayer() != 0 {
		t.Fatalf("tie moved the route bonus to %d", e.LongestRoutePlayer())
	}

	// An enemy settlement mid-chain severs it.
	mid := path[len(path)-3]
	b.Settlements[mid] = true
	e.updateLongestRoutePlayer()
	if a.LongestRouteLen >= 5 {
		t.Fatalf("severed route still %d", a.LongestRouteLen)
	}
}

func TestWinOnOwnTurnOnly(t *testing.T) {
	opts := simple.DefaultOptions()
	opts.VPTarget = 3
	e := newStartedEngine(t, 18, opts)
	finishInitialPlacement(t, e)

	// Every player has 2 VP.  Push a non-current player to 3 via the
	// longest route bonus; they must not win until their turn starts.
	other := (e.CurrentPlayer() + 1) % 4
	e.Player(other).DevCards.Add(1, simple.OldCards, simple.CapitolCard)
	e.checkForWinner()
	if e.State() == StateOver {
		t.Fatal("off-turn player won early")
	}

	for e.State() != StateOver {
		if e.CurrentPlayer() == other && e.State() == StateRoll {
			break
		}
		e.state = StatePlay1
		if err := e.EndTurn(e.CurrentPlayer()); err != nil {
			t.Fatal(err)
		}
	}
	if e.State() != StateOver {
		t.Fatalf("state = %s, want Over", e.State())
	}
	if e.Winner() != other {
		t.Fatalf("winner = %d, want %d", e.Winner(), other)
	}
	if e.VPForSeat(other) < 3 {
		t.Fatalf("winner VP = %d", e.VPForSeat(other))
	}
}

func TestForceEndTurn(t *testing.T) {
	t.Run("placing road refunds", func(t *testing.T) {
		e := newStartedEngine(t, 19, simple.DefaultOptions())
		finishInitialPlacement(t, e)
		e.state = StatePlay1
		p := e.Player(e.CurrentPlayer())
		p.Resources = simple.NewResourceSet(1, 0, 0, 0, 1)
		e.BuildRequest(p.Seat, simple.Road)

		if err := e.ForceEndTurn(); err != nil {
			t.Fatal(err)
		}
		if p.Resources.Total() != 2 {
			t.Fatalf("refund missing: %s", p.Resources)
		}
		if e.State() != StateRoll || e.CurrentPlayer() == p.Seat {
			t.Fatalf("turn did not pass: %s seat %d", e.State(), e.CurrentPlayer())
		}
	})

	t.Run("discards resolve randomly", func(t *testing.T) {
		e := newStartedEngine(t, 20, simple.DefaultOptions())
		finishInitialPlacement(t, e)
		big := e.Player((e.CurrentPlayer() + 1) % 4)
		big.Resources = simple.NewResourceSet(4, 4, 4, 0, 0)
		e.rollSeven()
		if e.State() != StateWaitingForDiscards {
			t.Fatalf("state = %s", e.State())
		}

		if err := e.ForceEndTurn(); err != nil {
			t.Fatal(err)
		}
		if big.Resources.Total() != 6 {
			t.Fatalf("forced discard left %d cards", big.Resources.Total())
		}
		if big.NeedToDiscard {
			t.Fatal("discard flag survived")
		}
		if e.State() != StateRoll {
			t.Fatalf("state = %s", e.State())
		}
	})

	t.Run("monopoly refunds the card", func(t *testing.T) {
		e := newStartedEngine(t, 21, simple.DefaultOptions())
		finishInitialPlacement(t, e)
		e.state = StatePlay1
		p := e.Player(e.CurrentPlayer())
		p.DevCards.Add(1, simple.OldCards, simple.MonopolyCard)
		e.PlayDevCard(p.Seat, simple.MonopolyCard)

		if err := e.ForceEndTurn(); err != nil {
			t.Fatal(err)
		}
		if p.DevCards.Amount(simple.OldCards, simple.MonopolyCard) != 1 {
			t.Fatal("monopoly card not refunded")
		}
	})

	t.Run("initial placement skips the seat", func(t *testing.T) {
		e := newStartedEngine(t, 22, simple.DefaultOptions())
		first := e.CurrentPlayer()
		if err := e.ForceEndTurn(); err != nil {
			t.Fatal(err)
		}
		if e.CurrentPlayer() == first {
			t.Fatal("seat not skipped")
		}
		if e.State() != StateStart1A {
			t.Fatalf("state = %s", e.State())
		}
	})
}

func TestResetVote(t *testing.T) {
	e := newStartedEngine(t, 23, simple.DefaultOptions())
	finishInitialPlacement(t, e)

	if err := e.RequestReset(0); err != nil {
		t.Fatal(err)
	}
	if err := e.RequestReset(1); err == nil {
		t.Fatal("second open vote should fail")
	}

	// One no kills it.
	done, passed, err := e.VoteReset(1, false)
	if err != nil || !done || passed {
		t.Fatalf("no vote: done=%v passed=%v err=%v", done, passed, err)
	}

	// Same requester cannot re-ask this turn.
	if err := e.RequestReset(0); err == nil {
		t.Fatal("re-ask same turn should fail")
	}

	// Unanimous yes passes.
	if err := e.RequestReset(2); err != nil {
		t.Fatal(err)
	}
	for _, seat := range []int{0, 1} {
		done, passed, err = e.VoteReset(seat, true)
		if err != nil {
			t.Fatal(err)
		}
		if done {
			t.Fatal("vote concluded early")
		}
	}
	done, passed, err = e.VoteReset(3, true)
	if err != nil || !done || !passed {
		t.Fatalf("final vote: done=%v passed=%v err=%v", done, passed, err)
	}

	ne := e.ResetAsCopy()
	if e.State() != StateResetOld {
		t.Fatalf("old engine state = %s", e.State())
	}
	if ne.State() != StateNew || ne.seatedCount() != 4 {
		t.Fatalf("new engine: %s, %d seats", ne.State(), ne.seatedCount())
	}
	for seat := 0; seat < 4; seat++ {
		if ne.Player(seat).Identity != e.Player(seat).Identity {
			t.Errorf("seat %d identity not copied", seat)
		}
		if ne.Player(seat).Resources.Total() != 0 {
			t.Errorf("seat %d hand not fresh", seat)
		}
	}
}

func TestTransitionTable(t *testing.T) {
	for _, tc := range []struct {
		state State
		act   Action
		want  bool
	}{
		{StateRoll, ActRollDice, true},
		{StateRoll, ActPlayDevCard, true},
		{StateRoll, ActBuildRequest, false},
		{StatePlay1, ActEndTurn, true},
		{StatePlay1, ActRollDice, false},
		{StatePlacingRobber, ActMoveRobber, true},
		{StatePlacingRobber, ActEndTurn, false},
		{StateWaitingForDiscards, ActDiscard, true},
		{StateWaitingForDiscards, ActRollDice, false},
		{StateOver, ActEndTurn, false},
		{StateNew, ActRollDice, false},
	} {
		if got := tc.state.Allows(tc.act); got != tc.want {
			t.Errorf("%s.Allows(%s) = %v, want %v", tc.state, tc.act, got, tc.want)
		}
	}
}

func TestResourceConservation(t *testing.T) {
	// Over a few fully played turns, every card gained or lost moves
	// through a rule: distribution, discard, steal, or trade.  With no
	// trades or builds, hands only grow by distribution amounts.
	e := newStartedEngine(t, 24, simple.DefaultOptions())
	finishInitialPlacement(t, e)

	for turn := 0; turn < 12 && e.State() != StateOver; turn++ {
		if e.State() != StateRoll {
			t.Fatalf("turn %d: state = %s", turn, e.State())
		}
		before := 0
		for _, p := range e.Players() {
			before += p.Resources.Total()
		}
		roll, err := e.RollDice(e.CurrentPlayer())
		if err != nil {
			t.Fatal(err)
		}
		if roll == 7 {
			if err := e.ForceEndTurn(); err != nil {
				t.Fatal(err)
			}
			continue
		}
		after := 0
		for _, p := range e.Players() {
			after += p.Resources.Total()
		}
		if after < before {
			t.Fatalf("turn %d: cards vanished on a %d", turn, roll)
		}
		if e.State() == StateWaitingForPickGold {
			t.Fatal("gold on the mainland board")
		}
		if err := e.EndTurn(e.CurrentPlayer()); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCancelRobberPlacement(t *testing.T) {
	e := newStartedEngine(t, 26, simple.DefaultOptions())
	finishInitialPlacement(t, e)
	p := e.Player(e.CurrentPlayer())

	// A rolled 7 has no card behind it; the robber has to move.
	e.rollSeven()
	if e.State() != StatePlacingRobber {
		t.Fatalf("state after 7 = %s", e.State())
	}
	if err := e.CancelBuild(p.Seat); err == nil {
		t.Fatal("cancelling a rolled 7 should fail")
	}
	if e.State() != StatePlacingRobber {
		t.Fatalf("state after refused cancel = %s", e.State())
	}
	if p.KnightsPlayed != 0 || p.DevCards.Amount(simple.OldCards, simple.KnightCard) != 0 {
		t.Fatalf("refused cancel minted a knight: played %d, cards %d",
			p.KnightsPlayed, p.DevCards.Amount(simple.OldCards, simple.KnightCard))
	}

	// A played knight can be taken back, card and count restored.
	e.state = StatePlay1
	e.oldState = 0
	p.DevCards.Add(1, simple.OldCards, simple.KnightCard)
	if err := e.PlayDevCard(p.Seat, simple.KnightCard); err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePlacingRobber {
		t.Fatalf("state after knight = %s", e.State())
	}
	if err := e.CancelBuild(p.Seat); err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePlay1 {
		t.Fatalf("state after cancel = %s", e.State())
	}
	if p.KnightsPlayed != 0 || p.PlayedDevCard {
		t.Fatalf("knight not unwound: played %d", p.KnightsPlayed)
	}
	if got := p.DevCards.Amount(simple.OldCards, simple.KnightCard); got != 1 {
		t.Fatalf("knight cards = %d, want 1", got)
	}
}

func TestPirateChoiceAndMove(t *testing.T) {
	opts := simple.DefaultOptions()
	opts.SeaBoard = true
	e := newStartedEngine(t, 27, opts)
	finishInitialPlacement(t, e)

	if e.Board.PirateHex() == board.NoHex {
		t.Fatal("sea board started without a pirate")
	}
	if e.Board.IsHexOnLand(e.Board.PirateHex()) {
		t.Fatalf("pirate starts on land at %v", e.Board.PirateHex())
	}

	e.rollSeven()
	if e.State() != StateWaitingForRobberOrPirate {
		t.Fatalf("state after 7 at sea = %s", e.State())
	}
	seat := e.CurrentPlayer()
	if err := e.ChooseRobberOrPirate(seat, true); err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePlacingPirate {
		t.Fatalf("state after choice = %s", e.State())
	}

	// The pirate cannot stay put, and cannot come ashore.
	if _, _, err := e.MovePirate(seat, e.Board.PirateHex()); err == nil {
		t.Fatal("pirate must move")
	}
	if _, _, err := e.MovePirate(seat, e.Board.RobberHex()); err == nil {
		t.Fatal("pirate on land should fail")
	}

	dest := board.Coord(0x0B03)
	want := e.victimsAtPirateHex(seat, dest)
	victim, _, err := e.MovePirate(seat, dest)
	if err != nil {
		t.Fatal(err)
	}
	if e.Board.PirateHex() != dest {
		t.Fatalf("pirate at %v, want %v", e.Board.PirateHex(), dest)
	}
	switch len(want) {
	case 0:
		if victim != -1 || e.State() != StatePlay1 {
			t.Fatalf("victim %d state %s with no ships nearby", victim, e.State())
		}
	case 1:
		if victim != want[0] {
			t.Fatalf("victim = %d, want %d", victim, want[0])
		}
	default:
		if e.State() != StateWaitingForRobChoosePlayer {
			t.Fatalf("state = %s with %d victims", e.State(), len(want))
		}
	}
}

func TestTempRoutePiece(t *testing.T) {
	e := newStartedEngine(t, 28, simple.DefaultOptions())
	finishInitialPlacement(t, e)
	p := e.Player(e.CurrentPlayer())

	settle := pickSettlementWithFreeEdges(t, e, p, 2)
	lenBefore := p.LongestRouteLen
	invBefore := p.Inventory[simple.Road]
	holderBefore := e.LongestRoutePlayer()

	edge := pickRouteEdge(t, e, settle)
	if err := e.PutTempPiece(p.Seat, simple.Road, edge); err != nil {
		t.Fatal(err)
	}
	if !p.HasRouteAt(edge) {
		t.Fatal("trial road not on the board")
	}
	if p.Inventory[simple.Road] != invBefore-1 {
		t.Fatalf("inventory = %d during trial", p.Inventory[simple.Road])
	}
	lenTrial := p.LongestRouteLen
	if lenTrial <= lenBefore {
		t.Fatalf("route len %d after extending a %d chain", lenTrial, lenBefore)
	}

	// Trials nest; undo unwinds them most recent first.
	edge2 := pickRouteEdge(t, e, settle)
	if err := e.PutTempPiece(p.Seat, simple.Road, edge2); err != nil {
		t.Fatal(err)
	}
	if err := e.UndoPutTempPiece(); err != nil {
		t.Fatal(err)
	}
	if p.HasRouteAt(edge2) || !p.HasRouteAt(edge) {
		t.Fatal("inner undo removed the wrong trial")
	}
	if p.LongestRouteLen != lenTrial {
		t.Fatalf("route len = %d after inner undo, want %d", p.LongestRouteLen, lenTrial)
	}

	if err := e.UndoPutTempPiece(); err != nil {
		t.Fatal(err)
	}
	if p.HasRouteAt(edge) {
		t.Fatal("trial road survived its undo")
	}
	if p.LongestRouteLen != lenBefore || p.Inventory[simple.Road] != invBefore {
		t.Fatalf("undo left len %d inv %d", p.LongestRouteLen, p.Inventory[simple.Road])
	}
	if e.LongestRoutePlayer() != holderBefore {
		t.Fatalf("route bonus holder = %d after undo", e.LongestRoutePlayer())
	}
	if err := e.UndoPutTempPiece(); err == nil {
		t.Fatal("undo with nothing to undo should fail")
	}

	// A trial obeys the real placement rules.
	if err := e.PutTempPiece(p.Seat, simple.Road, edge); err != nil {
		t.Fatal(err)
	}
	if err := e.PutTempPiece(p.Seat, simple.Road, edge); err == nil {
		t.Fatal("trial on a taken edge should fail")
	}
	if err := e.UndoPutTempPiece(); err != nil {
		t.Fatal(err)
	}
}

func TestSpecialBuildingPhase(t *testing.T) {
	opts := simple.DefaultOptions()
	opts.MaxPlayers = 6
	e := newStartedEngine(t, 29, opts)
	finishInitialPlacement(t, e)
	e.state = StatePlay1

	cur := e.CurrentPlayer()
	first := e.nextSeat(cur)
	second := e.nextSeat(first)

	if err := e.AskSpecialBuild(cur); err == nil {
		t.Fatal("current player cannot ask to special build")
	}
	if err := e.AskSpecialBuild(first); err != nil {
		t.Fatal(err)
	}
	if err := e.AskSpecialBuild(second); err != nil {
		t.Fatal(err)
	}

	if err := e.EndTurn(cur); err != nil {
		t.Fatal(err)
	}
	if e.State() != StateSpecialBuilding {
		t.Fatalf("state after end turn = %s", e.State())
	}
	if e.CurrentPlayer() != cur {
		t.Fatal("phase must not advance the turn")
	}
	if e.specialSeat != first {
		t.Fatalf("slot went to seat %d, want %d", e.specialSeat, first)
	}

	// Only the slot holder builds; the others wait.
	builder := e.Player(first)
	builder.Resources = simple.NewResourceSet(1, 0, 0, 0, 1)
	if err := e.BuildRequest(cur, simple.Road); err == nil {
		t.Fatal("current player built during the phase")
	}
	if err := e.EndTurn(cur); err == nil {
		t.Fatal("current player closed another seat's slot")
	}
	if err := e.BuildRequest(first, simple.Road); err != nil {
		t.Fatal(err)
	}
	var settle board.Coord
	for n := range builder.Settlements {
		settle = n
		break
	}
	edge := pickRouteEdge(t, e, settle)
	if err := e.PutPiece(first, simple.Road, edge); err != nil {
		t.Fatal(err)
	}
	if e.State() != StateSpecialBuilding {
		t.Fatalf("state after special build = %s", e.State())
	}

	// Closing the slot serves the next asker exactly once each.
	if err := e.EndTurn(first); err != nil {
		t.Fatal(err)
	}
	if e.specialSeat != second {
		t.Fatalf("second slot went to seat %d, want %d", e.specialSeat, second)
	}
	if err := e.EndTurn(second); err != nil {
		t.Fatal(err)
	}
	if e.State() != StateRoll {
		t.Fatalf("state after the phase = %s", e.State())
	}
	if e.CurrentPlayer() != first {
		t.Fatalf("turn passed to seat %d, want %d", e.CurrentPlayer(), first)
	}
	for _, p := range e.Players() {
		if p != nil && (p.AskedSpecial || p.SpecialBuilt) {
			t.Fatalf("seat %d still flagged after the phase", p.Seat)
		}
	}
}

func TestPlayBeginsAtRoundOne(t *testing.T) {
	e := newStartedEngine(t, 30, simple.DefaultOptions())
	if e.Rounds() != 0 {
		t.Fatalf("rounds = %d during placement", e.Rounds())
	}
	finishInitialPlacement(t, e)
	if e.Rounds() != 1 || e.turns != 1 {
		t.Fatalf("play began at round %d turn %d, want 1/1", e.Rounds(), e.turns)
	}

	start := e.CurrentPlayer()
	for e.CurrentPlayer() != start || e.Rounds() == 1 {
		e.state = StatePlay1
		if err := e.EndTurn(e.CurrentPlayer()); err != nil {
			t.Fatal(err)
		}
	}
	if e.Rounds() != 2 {
		t.Fatalf("rounds = %d after a full circuit", e.Rounds())
	}
}

func TestNoSevensWindow(t *testing.T) {
	opts := simple.DefaultOptions()
	opts.NoSevensRounds = 50
	e := newStartedEngine(t, 31, opts)
	finishInitialPlacement(t, e)

	for turn := 0; turn < 16; turn++ {
		roll, err := e.RollDice(e.CurrentPlayer())
		if err != nil {
			t.Fatal(err)
		}
		if roll == 7 {
			t.Fatalf("turn %d: rolled a 7 inside the rerolled window", turn)
		}
		e.state = StatePlay1
		e.oldState = 0
		if err := e.EndTurn(e.CurrentPlayer()); err != nil {
			t.Fatal(err)
		}
	}
}
