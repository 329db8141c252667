package message

import (
	"time"

	"local/islanders/simple"
)

type NotifyTradeOfferData struct {
	From     int
	Give     simple.ResourceSet
	Get      simple.ResourceSet
	To       []int
	Accepted bool
	Rejected bool
	By       int
}

func NewNotifyTradeOffer(from int, give, get simple.ResourceSet, to []int) Server {
	return Server{
		SType: NotifyTradeOffer,
		Time:  time.Now(),
		Data: NotifyTradeOfferData{
			From: from,
			Give: give,
			Get:  get,
			To:   to,
			By:   -1,
		},
	}
}

func NewNotifyTradeAnswer(from int, by int, accepted bool) Server {
	return Server{
		SType: NotifyTradeOffer,
		Time:  time.Now(),
		Data: NotifyTradeOfferData{
			From:     from,
			Accepted: accepted,
			Rejected: !accepted,
			By:       by,
		},
	}
}
