package message

import (
	"time"

	"local/islanders/simple"
)

type NotifySitdownData struct {
	Identity simple.Identity
	Seat     int
	Color    simple.PlayerColor
	Sitdown  bool
}

func NewNotifySitdown(i simple.Identity, seat int, color simple.PlayerColor, sitdown bool) Server {
	return Server{
		SType: NotifySitdown,
		Time:  time.Now(),
		Data: NotifySitdownData{
			Identity: i,
			Seat:     seat,
			Color:    color,
			Sitdown:  sitdown,
		},
	}
}
