package message

import (
	"time"

	"local/islanders/simple"
)

type NotifyFullGameData struct {
	Status   int
	Creator  simple.Identity
	Snapshot GameSnapshot
}

func NewNotifyFullGame(status int, creator simple.Identity, s GameSnapshot) Server {
	return Server{
		SType: NotifyFullGame,
		Time:  time.Now(),
		Data: NotifyFullGameData{
			Status:   status,
			Creator:  creator,
			Snapshot: s,
		},
	}
}
