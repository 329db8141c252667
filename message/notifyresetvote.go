package message

import (
	"time"
)

type NotifyResetVoteData struct {
	Requester int
	Seat      int
	Yes       bool
	Done      bool
	Passed    bool
}

func NewNotifyResetVote(requester int, seat int, yes bool, done bool, passed bool) Server {
	return Server{
		SType: NotifyResetVote,
		Time:  time.Now(),
		Data: NotifyResetVoteData{
			Requester: requester,
			Seat:      seat,
			Yes:       yes,
			Done:      done,
			Passed:    passed,
		},
	}
}
