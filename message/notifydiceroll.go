package message

import (
	"time"
)

type NotifyDiceRollData struct {
	Seat int
	Roll int
}

func NewNotifyDiceRoll(seat int, roll int) Server {
	return Server{
		SType: NotifyDiceRoll,
		Time:  time.Now(),
		Data: NotifyDiceRollData{
			Seat: seat,
			Roll: roll,
		},
	}
}
