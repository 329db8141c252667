package message

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/xerrors"
)

type SType int

const (
	STypeNone SType = iota
	InternalError
	YourIdentity
	NotifyLobby
	NotifyNotification
	HotDeploy
	NotifyFullGame
	NotifyCreateGame
	NotifySitdown
	NotifyStartGame
	NotifyGameState
	NotifyDiceRoll
	NotifyRobbery
	NotifyTradeOffer
	NotifyResetVote
	NotifyGameOver
)

var STypeNames = map[SType]string{
	STypeNone:          "STypeNone",
	InternalError:      "InternalError",
	YourIdentity:       "YourIdentity",
	NotifyLobby:        "NotifyLobby",
	NotifyNotification: "NotifyNotification",
	HotDeploy:          "HotDeploy",
	NotifyFullGame:     "NotifyFullGame",
	NotifyCreateGame:   "NotifyCreateGame",
	NotifySitdown:      "NotifySitdown",
	NotifyStartGame:    "NotifyStartGame",
	NotifyGameState:    "NotifyGameState",
	NotifyDiceRoll:     "NotifyDiceRoll",
	NotifyRobbery:      "NotifyRobbery",
	NotifyTradeOffer:   "NotifyTradeOffer",
	NotifyResetVote:    "NotifyResetVote",
	NotifyGameOver:     "NotifyGameOver",
}

func (t SType) String() string {
	return STypeNames[t]
}

// Server is one frame from the server to a client.  Data is the
// SType's payload struct.
type Server struct {
	SType SType
	Time  time.Time
	Data  interface{}
}

// Broadcast addresses a Server message to one identity id, or to
// everyone when Id is empty.
type Broadcast struct {
	Id string
	M  Server
}

type Broadcaster interface {
	Broadcast(Broadcast)
}

func UnmarshalServer(bytes []byte) (Server, error) {
	var s Server
	if err := json.Unmarshal(bytes, &s); err != nil {
		return Server{}, err
	}
	moreBytes, err := json.Marshal(s.Data)
	if err != nil {
		return Server{}, err
	}

	retype := func(d interface{}) error {
		return json.Unmarshal(moreBytes, d)
	}

	switch t := s.SType; t {
	case InternalError:
		var d InternalErrorData
		err = retype(&d)
		s.Data = d
	case YourIdentity:
		var d YourIdentityData
		err = retype(&d)
		s.Data = d
	case NotifyLobby:
		var d NotifyLobbyData
		err = retype(&d)
		s.Data = d
	case NotifyNotification:
		var d NotifyNotificationData
		err = retype(&d)
		s.Data = d
	case HotDeploy:
		var d HotDeployData
		err = retype(&d)
		s.Data = d
	case NotifyFullGame:
		var d NotifyFullGameData
		err = retype(&d)
		s.Data = d
	case NotifyCreateGame:
		var d NotifyCreateGameData
		err = retype(&d)
		s.Data = d
	case NotifySitdown:
		var d NotifySitdownData
		err = retype(&d)
		s.Data = d
	case NotifyStartGame:
		var d NotifyStartGameData
		err = retype(&d)
		s.Data = d
	case NotifyGameState:
		var d NotifyGameStateData
		err = retype(&d)
		s.Data = d
	case NotifyDiceRoll:
		var d NotifyDiceRollData
		err = retype(&d)
		s.Data = d
	case NotifyRobbery:
		var d NotifyRobberyData
		err = retype(&d)
		s.Data = d
	case NotifyTradeOffer:
		var d NotifyTradeOfferData
		err = retype(&d)
		s.Data = d
	case NotifyResetVote:
		var d NotifyResetVoteData
		err = retype(&d)
		s.Data = d
	case NotifyGameOver:
		var d NotifyGameOverData
		err = retype(&d)
		s.Data = d
	default:
		return Server{}, xerrors.Errorf("unknown SType: %d", s.SType)
	}
	if err != nil {
		return Server{}, fmt.Errorf("bad %s payload: %w", STypeNames[s.SType], err)
	}
	return s, nil
}
