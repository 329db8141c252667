package game

import (
	"golang.org/x/xerrors"

	"local/islanders/log"
	"local/islanders/simple"
)

// CurrentOffer is the player trade on the table, or nil.
func (e *Engine) CurrentOffer() *TradeOffer { return e.offer }

// OfferTrade puts a trade on the table.  Only the current player may
// offer; both sides must be non-empty and the give side held.
func (e *Engine) OfferTrade(seat int, give, get simple.ResourceSet, to []int) error {
	if err := e.require(seat, ActOfferTrade, false); err != nil {
		return err
	}
	if e.Opts.NoTrading {
		return xerrors.New("player trading is disabled")
	}
	if give.Total() == 0 || get.Total() == 0 {
		return xerrors.New("both sides of a trade must have cards")
	}
	p := e.players[seat]
	if !p.Resources.Contains(give) {
		return xerrors.New("you do not hold the offered cards")
	}

	toSet := map[int]bool{}
	for _, s := range to {
		if s != seat && e.players[s] != nil {
			toSet[s] = true
		}
	}
	if len(toSet) == 0 {
		return xerrors.New("nobody to offer that trade to")
	}

	e.offer = &TradeOffer{From: seat, Give: give, Get: get, To: toSet}
	return nil
}

// AcceptTrade executes the open offer for an addressed seat.
func (e *Engine) AcceptTrade(seat int) error {
	if err := e.require(seat, ActAcceptTrade, true); err != nil {
		return err
	}
	if e.offer == nil {
		return xerrors.New("no trade on the table")
	}
	if !e.offer.To[seat] {
		return xerrors.New("that trade was not offered to you")
	}

	from := e.players[e.offer.From]
	to := e.players[seat]
	if !from.Resources.Contains(e.offer.Give) {
		e.offer = nil
		return xerrors.New("the offerer no longer holds those cards")
	}
	if !to.Resources.Contains(e.offer.Get) {
		return xerrors.New("you do not hold the asked cards")
	}

	from.Resources.SubtractSet(e.offer.Give)
	from.Resources.AddSet(e.offer.Get)
	to.Resources.SubtractSet(e.offer.Get)
	to.Resources.AddSet(e.offer.Give)
	log.Debug("Trade: seat %d gave [%s] to seat %d for [%s]",
		e.offer.From, e.offer.Give, seat, e.offer.Get)
	e.offer = nil
	return nil
}

// RejectTrade withdraws a seat from the open offer; the last
// rejection clears it.
func (e *Engine) RejectTrade(seat int) error {
	if err := e.require(seat, ActRejectTrade, true); err != nil {
		return err
	}
	if e.offer == nil {
		return xerrors.New("no trade on the table")
	}
	if seat == e.offer.From {
		e.offer = nil // offerer withdraws
		return nil
	}
	if !e.offer.To[seat] {
		return xerrors.New("that trade was not offered to you")
	}
	delete(e.offer.To, seat)
	if len(e.offer.To) == 0 {
		e.offer = nil
	}
	return nil
}

// BankTrade trades with the bank at the player's best ratios.  The
// give side must decompose exactly into ratio-sized groups of single
// types, one group per received card.
func (e *Engine) BankTrade(seat int, give, get simple.ResourceSet) error {
	if err := e.require(seat, ActBankTrade, false); err != nil {
		return err
	}
	p := e.players[seat]
	if !p.Resources.Contains(give) {
		return xerrors.New("you do not hold the offered cards")
	}
	if get.Total() == 0 {
		return xerrors.New("nothing asked from the bank")
	}

	groups := 0
	for r := simple.Clay; r < simple.ResourceCount; r++ {
		n := give.Amount(r)
		if n == 0 {
			continue
		}
		ratio := p.BankTradeRatio(r)
		if n%ratio != 0 {
			return xerrors.Errorf("%s trades %d:1", simple.ResourceNames[r], ratio)
		}
		groups += n / ratio
	}
	if groups != get.Total() {
		return xerrors.Errorf("that exchange gives %d cards, asked for %d", groups, get.Total())
	}

	p.Resources.SubtractSet(give)
	p.Resources.AddSet(get)
	log.Debug("Bank trade: seat %d gave [%s] for [%s]", seat, give, get)
	return nil
}
