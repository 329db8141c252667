package game

import (
	"testing"

	"local/islanders/simple"
)

func newClothEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	opts := simple.DefaultOptions()
	opts.SeaBoard = true
	opts.ClothVillages = true
	return newStartedEngine(t, seed, opts)
}

func TestClothVillagesSetup(t *testing.T) {
	e := newClothEngine(t, 50)

	villages := e.Board.Villages()
	if len(villages) == 0 {
		t.Fatal("no villages on a cloth board")
	}
	if len(e.villageTraders) != len(villages) {
		t.Fatalf("trader lists = %d, want %d", len(e.villageTraders), len(villages))
	}
	for _, v := range villages {
		for _, p := range e.Players() {
			if p != nil && p.PotentialSettlements[v.Node] {
				t.Errorf("village node %v open for settlement", v.Node)
			}
		}
	}
}

func TestEstablishClothTrade(t *testing.T) {
	e := newClothEngine(t, 51)
	p := e.Player(e.CurrentPlayer())
	node := e.Board.Villages()[0].Node
	edge := e.Board.AdjacentEdgesToNode(node)[0]

	e.establishClothTrade(p, edge)
	if p.Cloth != 1 {
		t.Fatalf("cloth = %d after first contact, want 1", p.Cloth)
	}
	if got := e.Board.Villages()[0].Cloth; got != 4 {
		t.Errorf("village cloth = %d, want 4", got)
	}
	if !containsSeat(e.villageTraders[0], p.Seat) {
		t.Errorf("seat %d not recorded as a trader", p.Seat)
	}

	// Second contact with the same village does nothing.
	e.establishClothTrade(p, edge)
	if p.Cloth != 1 || len(e.villageTraders[0]) != 1 {
		t.Errorf("repeat contact paid again: cloth %d, traders %d",
			p.Cloth, len(e.villageTraders[0]))
	}
}

func TestClothDistributionPriority(t *testing.T) {
	e := newClothEngine(t, 52)
	cur := e.CurrentPlayer()
	other := e.nextSeat(cur)

	// The other seat traded first, but scarce cloth pays the current
	// player ahead of the line.
	e.villageTraders[0] = []int{other, cur}
	v := e.Board.Villages()[0]
	e.Board.TakeVillageCloth(0, v.Cloth-1)
	e.Board.SetGeneralCloth(0)

	e.distributeCloth(v.Dice)
	if got := e.Player(cur).Cloth; got != 1 {
		t.Errorf("current player cloth = %d, want 1", got)
	}
	if got := e.Player(other).Cloth; got != 0 {
		t.Errorf("other trader cloth = %d, want 0", got)
	}

	// A stocked village pays every trader.
	v1 := e.Board.Villages()[1]
	e.villageTraders[1] = []int{other, cur}
	e.distributeCloth(v1.Dice)
	if e.Player(cur).Cloth != 2 || e.Player(other).Cloth != 1 {
		t.Errorf("stocked village paid %d/%d, want 2/1",
			e.Player(cur).Cloth, e.Player(other).Cloth)
	}
}

func TestRobClothOrResource(t *testing.T) {
	e := newClothEngine(t, 53)
	thief := e.CurrentPlayer()
	victim := e.nextSeat(thief)
	vp := e.Player(victim)
	vp.Cloth = 2
	vp.Resources.Add(1, simple.Wheat)

	// A victim holding both defers to the thief's choice.
	stolen, done := e.resolveSteal(thief, victim)
	if done {
		t.Fatalf("steal resolved immediately with %s", simple.ResourceNames[stolen])
	}
	if e.State() != StateWaitingForRobClothOrResource {
		t.Fatalf("state = %s, want WaitingForRobClothOrResource", e.State())
	}

	gotVictim, gotStolen, err := e.RobClothOrResource(thief, true)
	if err != nil {
		t.Fatalf("RobClothOrResource: %v", err)
	}
	if gotVictim != victim || gotStolen != simple.ClothStolen {
		t.Errorf("stole %d from %d, want cloth from %d", gotStolen, gotVictim, victim)
	}
	if vp.Cloth != 1 || e.Player(thief).Cloth != 1 {
		t.Errorf("cloth after theft: victim %d, thief %d", vp.Cloth, e.Player(thief).Cloth)
	}

	// Again, taking the card this time.
	if _, done := e.resolveSteal(thief, victim); done {
		t.Fatal("second steal resolved immediately")
	}
	_, gotStolen, err = e.RobClothOrResource(thief, false)
	if err != nil {
		t.Fatalf("RobClothOrResource: %v", err)
	}
	if gotStolen != simple.Wheat {
		t.Errorf("stole %s, want Wheat", simple.ResourceNames[gotStolen])
	}

	// A cloth-only victim loses a cloth with no choice.
	stolen, done = e.resolveSteal(thief, victim)
	if !done || stolen != simple.ClothStolen {
		t.Errorf("cloth-only steal: done %v stolen %d", done, stolen)
	}
	if vp.Cloth != 0 || e.Player(thief).Cloth != 2 {
		t.Errorf("cloth after second theft: victim %d, thief %d",
			vp.Cloth, e.Player(thief).Cloth)
	}
}

func TestClothGameEnd(t *testing.T) {
	e := newClothEngine(t, 54)

	// Plenty of stocked villages: no early end.
	if e.checkClothGameEnd() {
		t.Fatal("game ended with full villages")
	}

	cur := e.CurrentPlayer()
	a := e.nextSeat(cur)
	b := e.nextSeat(a)
	e.Player(a).Cloth = 2 // 1 VP
	e.Player(b).Cloth = 3 // 1 VP, more cloth

	for vi := range e.Board.Villages() {
		e.Board.TakeVillageCloth(vi, 99)
	}
	if !e.checkClothGameEnd() {
		t.Fatal("game kept going with the villages dry")
	}
	if e.State() != StateOver {
		t.Errorf("state = %s, want Over", e.State())
	}
	// Equal VP: the extra cloth breaks the tie.
	if e.Winner() != b {
		t.Errorf("winner = %d, want %d", e.Winner(), b)
	}
	if got := e.VPForSeat(b); got != 1 {
		t.Errorf("winner VP = %d, want 1 from cloth", got)
	}
}
