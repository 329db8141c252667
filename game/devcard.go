package game

import (
	"golang.org/x/xerrors"

	"local/islanders/board"
	"local/islanders/log"
	"local/islanders/simple"
)

// BuyDevCard sells the top card of the deck to the current player.
// Cards bought this turn age at end of turn and play next turn.
func (e *Engine) BuyDevCard(seat int) (simple.DevCardType, error) {
	if err := e.require(seat, ActBuyDevCard, false); err != nil {
		return simple.NoneDevCardType, err
	}
	p := e.players[seat]
	if len(e.devDeck) == 0 {
		return simple.NoneDevCardType, xerrors.New("the deck is empty")
	}
	if !p.CanAfford(simple.DevCardCost) {
		return simple.NoneDevCardType, xerrors.New("cannot afford a development card")
	}

	p.Resources.SubtractSet(simple.DevCardCost)
	card := e.devDeck[len(e.devDeck)-1]
	e.devDeck = e.devDeck[:len(e.devDeck)-1]
	p.DevCards.Add(1, simple.NewCards, card)

	// A bought VP card can already win on this turn.
	e.checkForWinner()
	return card, nil
}

// DevDeckSize is how many cards remain for sale.
func (e *Engine) DevDeckSize() int { return len(e.devDeck) }

// PlayDevCard plays one development card: before the roll only a
// knight, after it any playable card.  One card per turn, and never a
// card bought the same turn.
func (e *Engine) PlayDevCard(seat int, card simple.DevCardType) error {
	if err := e.require(seat, ActPlayDevCard, false); err != nil {
		return err
	}
	p := e.players[seat]
	if p.PlayedDevCard {
		return xerrors.New("already played a card this turn")
	}
	if p.DevCards.Amount(simple.OldCards, card) < 1 {
		return xerrors.Errorf("no playable %s card", simple.DevCardTypeNames[card])
	}
	if e.state == StateRoll && card != simple.KnightCard {
		return xerrors.New("only a knight may be played before the roll")
	}

	switch card {
	case simple.KnightCard:
		p.DevCards.Subtract(1, simple.OldCards, card)
		p.PlayedDevCard = true
		p.KnightsPlayed++
		e.updateLargestArmy(seat)
		e.checkForWinner()
		if e.state == StateOver {
			return nil
		}
		e.oldState = e.state
		if e.Opts.SeaBoard && e.Board.PirateHex() != board.NoHex {
			e.state = StateWaitingForRobberOrPirate
		} else {
			e.state = StatePlacingRobber
		}

	case simple.RoadBuildingCard:
		free := 0
		if p.Inventory[simple.Road] > 0 {
			free += p.Inventory[simple.Road]
		}
		if e.Opts.SeaBoard {
			free += p.Inventory[simple.Ship]
		}
		if free == 0 {
			return xerrors.New("no roads left to build")
		}
		p.DevCards.Subtract(1, simple.OldCards, card)
		p.PlayedDevCard = true
		e.oldState = e.state
		if free >= 2 {
			e.state = StatePlacingFreeRoad1
		} else {
			e.state = StatePlacingFreeRoad2
		}

	case simple.DiscoveryCard:
		p.DevCards.Subtract(1, simple.OldCards, card)
		p.PlayedDevCard = true
		e.oldState = e.state
		e.state = StateWaitingForDiscovery

	case simple.MonopolyCard:
		p.DevCards.Subtract(1, simple.OldCards, card)
		p.PlayedDevCard = true
		e.oldState = e.state
		e.state = StateWaitingForMonopoly

	default:
		return xerrors.Errorf("%s cannot be played", simple.DevCardTypeNames[card])
	}
	log.Debug("Seat %d played %s", seat, simple.DevCardTypeNames[card])
	return nil
}

// PickDiscovery takes the two free resources from the bank.
func (e *Engine) PickDiscovery(seat int, picks simple.ResourceSet) error {
	if err := e.require(seat, ActPickDiscovery, false); err != nil {
		return err
	}
	if picks.Total() != 2 {
		return xerrors.New("pick exactly 2 resources")
	}
	e.players[seat].Resources.AddSet(picks)
	e.resumeAfterInterlude()
	return nil
}

// PickMonopoly drains every other hand of the named type.
func (e *Engine) PickMonopoly(seat int, r simple.Resource) (taken int, err error) {
	if err := e.require(seat, ActPickMonopoly, false); err != nil {
		return 0, err
	}
	if r < simple.Clay || r >= simple.ResourceCount {
		return 0, xerrors.Errorf("no such resource %d", r)
	}

	p := e.players[seat]
	for _, q := range e.players {
		if q == nil || q == p {
			continue
		}
		n := q.Resources.Amount(r)
		q.Resources.Subtract(n, r)
		taken += n
	}
	p.Resources.Add(taken, r)
	log.Debug("Seat %d monopolized %d %s", seat, taken, simple.ResourceNames[r])
	e.resumeAfterInterlude()
	return taken, nil
}
