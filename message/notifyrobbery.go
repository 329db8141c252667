package message

import (
	"time"

	"local/islanders/simple"
)

// NotifyRobbery is sent to everyone when a steal happens.  Resource is
// only filled in on the copies sent to the thief and the victim; the
// rest of the table learns a card moved but not which one.  A stolen
// cloth (simple.ClothStolen) is public and goes to everyone as-is.
type NotifyRobberyData struct {
	Thief    int
	Victim   int
	Resource simple.Resource
}

func NewNotifyRobbery(thief int, victim int, r simple.Resource) Server {
	return Server{
		SType: NotifyRobbery,
		Time:  time.Now(),
		Data: NotifyRobberyData{
			Thief:    thief,
			Victim:   victim,
			Resource: r,
		},
	}
}
