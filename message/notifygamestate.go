package message

import (
	"time"
)

// NotifyGameState carries the viewer-scoped snapshot after any state
// changing action.  Each client gets its own copy so hidden hands stay
// hidden.
type NotifyGameStateData struct {
	Snapshot GameSnapshot
}

func NewNotifyGameState(s GameSnapshot) Server {
	return Server{
		SType: NotifyGameState,
		Time:  time.Now(),
		Data: NotifyGameStateData{
			Snapshot: s,
		},
	}
}
