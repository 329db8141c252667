package game

import (
	"golang.org/x/xerrors"

	"local/islanders/board"
	"local/islanders/log"
	"local/islanders/simple"
)

// RollDice rolls 2d6 for the current player.  A 7 sends every large
// hand to discards and then the robber; anything else pays out the
// matching hexes.  Gold payouts owe picks instead of fixed resources.
func (e *Engine) RollDice(seat int) (int, error) {
	if err := e.require(seat, ActRollDice, false); err != nil {
		return 0, err
	}

	roll := e.rng.Intn(6) + e.rng.Intn(6) + 2
	// Early-round sevens reroll under option N7.
	for roll == 7 && e.rounds <= e.Opts.NoSevensRounds {
		roll = e.rng.Intn(6) + e.rng.Intn(6) + 2
	}
	e.dice = roll
	log.Debug("Seat %d rolled %d", seat, roll)

	if roll == 7 {
		e.rollSeven()
		return roll, nil
	}

	e.distribute(roll)

	if e.Opts.ClothVillages {
		e.distributeCloth(roll)
		if e.checkClothGameEnd() {
			return roll, nil
		}
	}

	owes := false
	for _, p := range e.players {
		if p != nil && p.NeedToPickGold > 0 {
			owes = true
		}
	}
	if owes {
		e.oldState = StatePlay1
		e.state = StateWaitingForPickGold
	} else {
		e.state = StatePlay1
	}
	return roll, nil
}

// rollSeven flags every hand above 7 cards for discards, then sends
// the roller to the robber (or the robber-or-pirate choice at sea).
func (e *Engine) rollSeven() {
	anyDiscards := false
	for _, p := range e.players {
		if p != nil && p.Resources.Total() > 7 {
			p.NeedToDiscard = true
			anyDiscards = true
		}
	}

	if anyDiscards {
		e.state = StateWaitingForDiscards
		return
	}
	e.stateAfterSeven()
}

func (e *Engine) stateAfterSeven() {
	if e.Opts.SeaBoard && e.Board.PirateHex() != board.NoHex {
		e.state = StateWaitingForRobberOrPirate
	} else {
		e.state = StatePlacingRobber
	}
	e.oldState = StatePlay1
}

// distribute pays each player for towns on hexes bearing the rolled
// number.  Settlements pay 1, cities 2; the robber's hex pays nobody.
func (e *Engine) distribute(roll int) {
	for _, hex := range e.Board.LandHexCoords() {
		if e.Board.NumberOnHex(hex) != roll || hex == e.Board.RobberHex() {
			continue
		}
		gold := e.Board.HexType(hex) == board.GoldHex
		res, hasRes := board.HexResource(e.Board.HexType(hex))
		if !gold && !hasRes {
			continue
		}

		for _, node := range e.Board.AdjacentNodesToHex(hex) {
			p, ok := e.townAt(node)
			if !ok {
				continue
			}
			n := 1
			if p.Cities[node] {
				n = 2
			}
			if gold {
				p.NeedToPickGold += n
			} else {
				p.Resources.Add(n, res)
			}
		}
	}
}

// Discard gives up cards after a 7.  Hands above 7 discard half,
// rounded down.  When the last flagged player discards, play moves to
// the robber.
func (e *Engine) Discard(seat int, cards simple.ResourceSet) error {
	if err := e.require(seat, ActDiscard, true); err != nil {
		return err
	}
	p := e.players[seat]
	if !p.NeedToDiscard {
		return xerrors.Errorf("seat %d owes no discard", seat)
	}
	want := p.Resources.Total() / 2
	if cards.Total() != want {
		return xerrors.Errorf("discard exactly %d cards", want)
	}
	if !p.Resources.Contains(cards) {
		return xerrors.New("you do not hold those cards")
	}

	p.Resources.SubtractSet(cards)
	p.NeedToDiscard = false

	for _, q := range e.players {
		if q != nil && q.NeedToDiscard {
			return nil
		}
	}
	e.stateAfterSeven()
	return nil
}

// discardRandom discards half the hand uniformly at random, used when
// forcing a stalled player's turn to end.
func (e *Engine) discardRandom(p *Player) simple.ResourceSet {
	var picked simple.ResourceSet
	units := p.Resources.Units()
	e.rng.Shuffle(len(units), func(i, j int) {
		units[i], units[j] = units[j], units[i]
	})
	for _, r := range units[:len(units)/2] {
		picked.Add(1, r)
	}
	p.Resources.SubtractSet(picked)
	p.NeedToDiscard = false
	return picked
}
