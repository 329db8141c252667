package client

import (
	"local/islanders/message"
	"local/islanders/simple"
)

// Client is one participant's connection to a game or the lobby.  Run
// blocks; Send never does (buffered); Done returns immediately.
type Client interface {
	Identity() simple.Identity
	Run()
	Send(message.Server)
	Read() chan message.Client
	Done()
}
