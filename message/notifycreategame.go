package message

import (
	"time"
)

type NotifyCreateGameData struct {
	Id string
}

func NewNotifyCreateGame(id string) Server {
	return Server{
		SType: NotifyCreateGame,
		Time:  time.Now(),
		Data: NotifyCreateGameData{
			Id: id,
		},
	}
}
