package message

import (
	"time"
)

type NotifyStartGameData struct {
	First int
}

func NewNotifyStartGame(first int) Server {
	return Server{
		SType: NotifyStartGame,
		Time:  time.Now(),
		Data: NotifyStartGameData{
			First: first,
		},
	}
}
