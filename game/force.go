package game

import (
	"golang.org/x/xerrors"

	"local/islanders/log"
	"local/islanders/simple"
)

// ForceEndTurn unsticks a stalled game: it resolves or rolls back
// whatever the current state is waiting on, then ends the turn.
// Called by the turn-timeout supervisor and when a current player
// disconnects for good.
func (e *Engine) ForceEndTurn() error {
	if e.state == StateNew || e.state == StateReady ||
		e.state == StateOver || e.state == StateResetOld {
		return xerrors.Errorf("nothing to force in state %s", e.state)
	}

	e.forcingEndTurn = true
	defer func() { e.forcingEndTurn = false }()

	p := e.players[e.current]
	log.Info("Forcing end of turn for seat %d in state %s", e.current, e.state)

	switch e.state {
	case StateStart1A, StateStart2A, StateStart3A:
		// Skip this seat's whole placement slot.
		e.state++ // the matching B state
		e.advanceInitialPlacement()
		return nil

	case StateStart1B, StateStart2B, StateStart3B:
		e.advanceInitialPlacement()
		return nil

	case StateStartPickGold, StateWaitingForPickGold:
		e.forcePickGold()
		if e.state.IsInitialPlacement() {
			return nil
		}

	case StateRoll, StatePlay1:
		// Nothing pending.

	case StatePlacingRoad:
		p.Resources.AddSet(simple.PieceCosts[simple.Road])
	case StatePlacingSettlement:
		p.Resources.AddSet(simple.PieceCosts[simple.Settlement])
	case StatePlacingCity:
		p.Resources.AddSet(simple.PieceCosts[simple.City])
	case StatePlacingShip:
		p.Resources.AddSet(simple.PieceCosts[simple.Ship])

	case StatePlacingRobber, StatePlacingPirate, StateWaitingForRobberOrPirate:
		// Refund a knight played for this; a post-7 robber just stays.
		if p.PlayedDevCard {
			p.DevCards.Add(1, simple.OldCards, simple.KnightCard)
			p.KnightsPlayed--
			p.PlayedDevCard = false
		}

	case StateWaitingForRobChoosePlayer:
		// Rob somebody rather than nobody.
		if len(e.robVictims) > 0 {
			victim := e.robVictims[e.rng.Intn(len(e.robVictims))]
			e.stealRandom(e.current, victim)
			e.robVictims = nil
		}

	case StateWaitingForRobClothOrResource:
		// Take a card; the cloth choice is forfeit.
		if e.robClothVictim >= 0 {
			e.stealRandom(e.current, e.robClothVictim)
			e.robClothVictim = -1
		}

	case StatePlacingFreeRoad1, StatePlacingFreeRoad2:
		// The card is spent; the unbuilt roads are forfeit.

	case StateWaitingForDiscards:
		for _, q := range e.players {
			if q != nil && q.NeedToDiscard {
				picked := e.discardRandom(q)
				log.Info("Seat %d force-discarded [%s]", q.Seat, picked)
			}
		}
		// The robbery itself is forfeit; the robber stays put.

	case StateWaitingForDiscovery:
		p.DevCards.Add(1, simple.OldCards, simple.DiscoveryCard)
		p.PlayedDevCard = false

	case StateWaitingForMonopoly:
		p.DevCards.Add(1, simple.OldCards, simple.MonopolyCard)
		p.PlayedDevCard = false

	case StateSpecialBuilding:
		e.endSpecialBuild()
		return nil
	}

	e.oldState = 0
	e.endTurnCommon()
	return nil
}

// forcePickGold makes every owed gold pick uniformly at random and
// resumes the interrupted flow.
func (e *Engine) forcePickGold() {
	for _, q := range e.players {
		if q == nil || q.NeedToPickGold == 0 {
			continue
		}
		var picks simple.ResourceSet
		for i := 0; i < q.NeedToPickGold; i++ {
			picks.Add(1, simple.Resource(e.rng.Intn(int(simple.ResourceCount))))
		}
		q.Resources.AddSet(picks)
		q.NeedToPickGold = 0
		log.Info("Seat %d force-picked [%s]", q.Seat, picks)
	}
	e.resumeAfterInterlude()
}
