package server

import (
	"local/islanders/lobby"
	"local/islanders/message"
)

// Implements message.Broadcaster.
type Broadcaster struct {
	lobby *lobby.Lobby
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Notifies all websockets we can find for identity id b.Id (or every
// identity if "") with a message, generally a notification.
func (bc *Broadcaster) Broadcast(b message.Broadcast) {
	bc.lobby.Broadcast(b)
}
