package message

import (
	"encoding/json"
	"fmt"

	"golang.org/x/xerrors"

	"local/islanders/board"
	"local/islanders/simple"
)

type CType int

const (
	CTypeNone CType = iota
	CreateGame
	RequestSitdown
	StartGame
	RollDice
	BuildRequest
	PutPiece
	CancelBuild
	ChooseRobberOrPirate
	MoveRobber
	MovePirate
	ChooseVictim
	RobClothOrResource
	Discard
	PickGold
	BuyDevCard
	PlayDevCard
	PickDiscovery
	PickMonopoly
	OfferTrade
	AcceptTrade
	RejectTrade
	BankTrade
	EndTurn
	AskSpecialBuild
	RequestReset
	VoteReset
)

var CTypeNames = map[CType]string{
	CTypeNone:            "CTypeNone",
	CreateGame:           "CreateGame",
	RequestSitdown:       "RequestSitdown",
	StartGame:            "StartGame",
	RollDice:             "RollDice",
	BuildRequest:         "BuildRequest",
	PutPiece:             "PutPiece",
	CancelBuild:          "CancelBuild",
	ChooseRobberOrPirate: "ChooseRobberOrPirate",
	MoveRobber:           "MoveRobber",
	MovePirate:           "MovePirate",
	ChooseVictim:         "ChooseVictim",
	RobClothOrResource:   "RobClothOrResource",
	Discard:              "Discard",
	PickGold:             "PickGold",
	BuyDevCard:           "BuyDevCard",
	PlayDevCard:          "PlayDevCard",
	PickDiscovery:        "PickDiscovery",
	PickMonopoly:         "PickMonopoly",
	OfferTrade:           "OfferTrade",
	AcceptTrade:          "AcceptTrade",
	RejectTrade:          "RejectTrade",
	BankTrade:            "BankTrade",
	EndTurn:              "EndTurn",
	AskSpecialBuild:      "AskSpecialBuild",
	RequestReset:         "RequestReset",
	VoteReset:            "VoteReset",
}

func (t CType) String() string {
	return CTypeNames[t]
}

// Client is one websocket frame from a player or observer.  Data is
// the CType's payload struct; UnmarshalClient re-types it after the
// envelope decode.
type Client struct {
	CType CType
	Data  interface{}
}

type CreateGameData struct {
	MaxPlayers    int
	VPTarget      int
	SeaBoard      bool
	ClothVillages bool
	Password      string
}

type RequestSitdownData struct {
	Seat     int
	Sitdown  bool
	Color    simple.PlayerColor
	Password string
}

type StartGameData struct{}

type RollDiceData struct{}

type BuildRequestData struct {
	Piece simple.PieceType
}

type PutPieceData struct {
	Piece simple.PieceType
	Coord board.Coord
}

type CancelBuildData struct{}

type ChooseRobberOrPirateData struct {
	Pirate bool
}

type MoveRobberData struct {
	Hex board.Coord
}

type MovePirateData struct {
	Hex board.Coord
}

type ChooseVictimData struct {
	Seat int
}

type RobClothOrResourceData struct {
	StealCloth bool
}

type DiscardData struct {
	Cards simple.ResourceSet
}

type PickGoldData struct {
	Picks simple.ResourceSet
}

type BuyDevCardData struct{}

type PlayDevCardData struct {
	Card simple.DevCardType
}

type PickDiscoveryData struct {
	Picks simple.ResourceSet
}

type PickMonopolyData struct {
	Resource simple.Resource
}

type OfferTradeData struct {
	Give simple.ResourceSet
	Get  simple.ResourceSet
	To   []int
}

type AcceptTradeData struct{}

type RejectTradeData struct{}

type BankTradeData struct {
	Give simple.ResourceSet
	Get  simple.ResourceSet
}

type EndTurnData struct{}

type AskSpecialBuildData struct{}

type RequestResetData struct{}

type VoteResetData struct {
	Yes bool
}

func UnmarshalClient(bytes []byte) (Client, error) {
	var c Client
	if err := json.Unmarshal(bytes, &c); err != nil {
		return Client{}, err
	}
	moreBytes, err := json.Marshal(c.Data)
	if err != nil {
		return Client{}, err
	}

	retype := func(d interface{}) error {
		return json.Unmarshal(moreBytes, d)
	}

	switch t := c.CType; t {
	case CreateGame:
		var d CreateGameData
		err = retype(&d)
		c.Data = d
	case RequestSitdown:
		var d RequestSitdownData
		err = retype(&d)
		c.Data = d
	case StartGame:
		var d StartGameData
		err = retype(&d)
		c.Data = d
	case RollDice:
		var d RollDiceData
		err = retype(&d)
		c.Data = d
	case BuildRequest:
		var d BuildRequestData
		err = retype(&d)
		c.Data = d
	case PutPiece:
		var d PutPieceData
		err = retype(&d)
		c.Data = d
	case CancelBuild:
		var d CancelBuildData
		err = retype(&d)
		c.Data = d
	case ChooseRobberOrPirate:
		var d ChooseRobberOrPirateData
		err = retype(&d)
		c.Data = d
	case MoveRobber:
		var d MoveRobberData
		err = retype(&d)
		c.Data = d
	case MovePirate:
		var d MovePirateData
		err = retype(&d)
		c.Data = d
	case ChooseVictim:
		var d ChooseVictimData
		err = retype(&d)
		c.Data = d
	case RobClothOrResource:
		var d RobClothOrResourceData
		err = retype(&d)
		c.Data = d
	case Discard:
		var d DiscardData
		err = retype(&d)
		c.Data = d
	case PickGold:
		var d PickGoldData
		err = retype(&d)
		c.Data = d
	case BuyDevCard:
		var d BuyDevCardData
		err = retype(&d)
		c.Data = d
	case PlayDevCard:
		var d PlayDevCardData
		err = retype(&d)
		c.Data = d
	case PickDiscovery:
		var d PickDiscoveryData
		err = retype(&d)
		c.Data = d
	case PickMonopoly:
		var d PickMonopolyData
		err = retype(&d)
		c.Data = d
	case OfferTrade:
		var d OfferTradeData
		err = retype(&d)
		c.Data = d
	case AcceptTrade:
		var d AcceptTradeData
		err = retype(&d)
		c.Data = d
	case RejectTrade:
		var d RejectTradeData
		err = retype(&d)
		c.Data = d
	case BankTrade:
		var d BankTradeData
		err = retype(&d)
		c.Data = d
	case EndTurn:
		var d EndTurnData
		err = retype(&d)
		c.Data = d
	case AskSpecialBuild:
		var d AskSpecialBuildData
		err = retype(&d)
		c.Data = d
	case RequestReset:
		var d RequestResetData
		err = retype(&d)
		c.Data = d
	case VoteReset:
		var d VoteResetData
		err = retype(&d)
		c.Data = d
	default:
		return Client{}, xerrors.Errorf("unknown CType: %d", c.CType)
	}
	if err != nil {
		return Client{}, fmt.Errorf("bad %s payload: %w", CTypeNames[c.CType], err)
	}
	return c, nil
}
