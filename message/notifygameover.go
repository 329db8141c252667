package message

import (
	"time"
)

type NotifyGameOverData struct {
	Winner int
	Scores []int
}

func NewNotifyGameOver(winner int, scores []int) Server {
	return Server{
		SType: NotifyGameOver,
		Time:  time.Now(),
		Data: NotifyGameOverData{
			Winner: winner,
			Scores: scores,
		},
	}
}
