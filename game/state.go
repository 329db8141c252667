package game

// State is the phase of one game.  Every player request names an
// Action; the transition table below is the single gate deciding
// whether that action is accepted in the current state.  Handlers
// then validate arguments and mutate.
type State int

const (
	StateNew State = iota
	StateReady
	StateStart1A // place first settlement
	StateStart1B // place first road
	StateStart2A // place second settlement (reverse order)
	StateStart2B // place second road
	StateStart3A // optional third settlement round
	StateStart3B
	StateStartPickGold // gold-hex picks during initial placement
	StateRoll          // current player must roll (or play a knight)
	StatePlay1         // rolled; build, trade, play cards, end turn
	StatePlacingRoad
	StatePlacingSettlement
	StatePlacingCity
	StatePlacingShip
	StatePlacingRobber
	StatePlacingPirate
	StatePlacingFreeRoad1
	StatePlacingFreeRoad2
	StateWaitingForDiscards
	StateWaitingForRobberOrPirate
	StateWaitingForRobChoosePlayer
	StateWaitingForRobClothOrResource // victim holds both; thief picks
	StateWaitingForDiscovery
	StateWaitingForMonopoly
	StateWaitingForPickGold
	StateSpecialBuilding
	StateOver
	StateResetOld // replaced by a board-reset copy
	stateCount
)

var StateNames = map[State]string{
	StateNew:                          "New",
	StateReady:                        "Ready",
	StateStart1A:                      "Start1A",
	StateStart1B:                      "Start1B",
	StateStart2A:                      "Start2A",
	StateStart2B:                      "Start2B",
	StateStart3A:                      "Start3A",
	StateStart3B:                      "Start3B",
	StateStartPickGold:                "StartPickGold",
	StateRoll:                         "Roll",
	StatePlay1:                        "Play1",
	StatePlacingRoad:                  "PlacingRoad",
	StatePlacingSettlement:            "PlacingSettlement",
	StatePlacingCity:                  "PlacingCity",
	StatePlacingShip:                  "PlacingShip",
	StatePlacingRobber:                "PlacingRobber",
	StatePlacingPirate:                "PlacingPirate",
	StatePlacingFreeRoad1:             "PlacingFreeRoad1",
	StatePlacingFreeRoad2:             "PlacingFreeRoad2",
	StateWaitingForDiscards:           "WaitingForDiscards",
	StateWaitingForRobberOrPirate:     "WaitingForRobberOrPirate",
	StateWaitingForRobChoosePlayer:    "WaitingForRobChoosePlayer",
	StateWaitingForRobClothOrResource: "WaitingForRobClothOrResource",
	StateWaitingForDiscovery:          "WaitingForDiscovery",
	StateWaitingForMonopoly:           "WaitingForMonopoly",
	StateWaitingForPickGold:           "WaitingForPickGold",
	StateSpecialBuilding:              "SpecialBuilding",
	StateOver:                         "Over",
	StateResetOld:                     "ResetOld",
}

func (s State) String() string {
	return StateNames[s]
}

// IsInitialPlacement covers the whole pre-roll placement phase.
func (s State) IsInitialPlacement() bool {
	return s >= StateStart1A && s <= StateStartPickGold
}

// Action is a request kind a player can make against the rules engine.
type Action int

const (
	ActRollDice Action = iota
	ActBuildRequest // ask to buy+place a piece
	ActPutPiece     // place the piece for any placing state
	ActCancelBuild
	ActMoveRobber
	ActMovePirate
	ActChooseRobberOrPirate
	ActChooseVictim
	ActRobClothOrResource
	ActDiscard
	ActPickGold
	ActBuyDevCard
	ActPlayDevCard
	ActPickDiscovery
	ActPickMonopoly
	ActOfferTrade
	ActAcceptTrade
	ActRejectTrade
	ActBankTrade
	ActEndTurn
	ActAskSpecialBuild
	actionCount
)

var ActionNames = map[Action]string{
	ActRollDice:             "RollDice",
	ActBuildRequest:         "BuildRequest",
	ActPutPiece:             "PutPiece",
	ActCancelBuild:          "CancelBuild",
	ActMoveRobber:           "MoveRobber",
	ActMovePirate:           "MovePirate",
	ActChooseRobberOrPirate: "ChooseRobberOrPirate",
	ActChooseVictim:         "ChooseVictim",
	ActRobClothOrResource:   "RobClothOrResource",
	ActDiscard:              "Discard",
	ActPickGold:             "PickGold",
	ActBuyDevCard:           "BuyDevCard",
	ActPlayDevCard:          "PlayDevCard",
	ActPickDiscovery:        "PickDiscovery",
	ActPickMonopoly:         "PickMonopoly",
	ActOfferTrade:           "OfferTrade",
	ActAcceptTrade:          "AcceptTrade",
	ActRejectTrade:          "RejectTrade",
	ActBankTrade:            "BankTrade",
	ActEndTurn:              "EndTurn",
	ActAskSpecialBuild:      "AskSpecialBuild",
}

func (a Action) String() string {
	return ActionNames[a]
}

// transitions is the (state, action) gate.  An entry's presence means
// the action may be attempted in that state; handler validation still
// applies (turn ownership, resources, geometry).
var transitions = [stateCount]map[Action]bool{
	StateStart1A:       {ActPutPiece: true},
	StateStart1B:       {ActPutPiece: true},
	StateStart2A:       {ActPutPiece: true},
	StateStart2B:       {ActPutPiece: true},
	StateStart3A:       {ActPutPiece: true},
	StateStart3B:       {ActPutPiece: true},
	StateStartPickGold: {ActPickGold: true},
	StateRoll: {
		ActRollDice:    true,
		ActPlayDevCard: true, // knight before rolling
	},
	StatePlay1: {
		ActBuildRequest:    true,
		ActBuyDevCard:      true,
		ActPlayDevCard:     true,
		ActOfferTrade:      true,
		ActAcceptTrade:     true,
		ActRejectTrade:     true,
		ActBankTrade:       true,
		ActEndTurn:         true,
		ActAskSpecialBuild: true,
	},
	StatePlacingRoad:       {ActPutPiece: true, ActCancelBuild: true},
	StatePlacingSettlement: {ActPutPiece: true, ActCancelBuild: true},
	StatePlacingCity:       {ActPutPiece: true, ActCancelBuild: true},
	StatePlacingShip:       {ActPutPiece: true, ActCancelBuild: true},
	StatePlacingRobber:     {ActMoveRobber: true, ActCancelBuild: true},
	StatePlacingPirate:     {ActMovePirate: true, ActCancelBuild: true},
	StatePlacingFreeRoad1:  {ActPutPiece: true, ActCancelBuild: true},
	StatePlacingFreeRoad2:  {ActPutPiece: true, ActCancelBuild: true},
	StateWaitingForDiscards: {
		ActDiscard: true,
	},
	StateWaitingForRobberOrPirate:     {ActChooseRobberOrPirate: true},
	StateWaitingForRobChoosePlayer:    {ActChooseVictim: true},
	StateWaitingForRobClothOrResource: {ActRobClothOrResource: true},
	StateWaitingForDiscovery:          {ActPickDiscovery: true},
	StateWaitingForMonopoly:           {ActPickMonopoly: true},
	StateWaitingForPickGold:           {ActPickGold: true},
	StateSpecialBuilding: {
		ActBuildRequest: true,
		ActBuyDevCard:   true,
		ActEndTurn:      true,
	},
	// StateNew, StateReady, StateOver, StateResetOld accept nothing.
}

// Allows reports whether the action may be attempted in this state.
func (s State) Allows(a Action) bool {
	if s < 0 || s >= stateCount {
		return false
	}
	m := transitions[s]
	return m != nil && m[a]
}
