package protocol

import "fmt"

// Action is a game action code. The server names the action it waits for
// in Snapshot.ExpectedAction and in await_action frame arguments.
type Action uint8

const (
	ActionThinkerOrLead Action = iota
	ActionUseLatrine
	ActionUseVomitorium
	ActionPatronFromPool
	ActionBarOrAqueduct
	ActionPatronFromDeck
	ActionPatronFromHand
	ActionUseFountain
	ActionFountain
	ActionLegionary
	ActionGiveCards
	ActionThinkerType
	ActionSkipThinker
	ActionUseSewer
	ActionUseSenate
	ActionLaborer
	ActionStairway
	ActionArchitect
	ActionCraftsman
	ActionMerchant
	ActionLeadRole
	ActionFollowRole
	ActionReqGameState
	ActionGameState
	ActionSetPlayerID
	ActionReqJoinGame
	ActionJoinGame
	ActionReqCreateGame
	ActionCreateGame
	ActionLogin
	ActionReqStartGame
	ActionStartGame
	ActionReqGameList
	ActionGameList
	ActionServerError
	ActionPrison
	ActionTakePoolCards
	ActionTakeClients
)

var actionNames = [...]string{
	"THINKERORLEAD", "USELATRINE", "USEVOMITORIUM", "PATRONFROMPOOL",
	"BARORAQUEDUCT", "PATRONFROMDECK", "PATRONFROMHAND", "USEFOUNTAIN",
	"FOUNTAIN", "LEGIONARY", "GIVECARDS", "THINKERTYPE", "SKIPTHINKER",
	"USESEWER", "USESENATE", "LABORER", "STAIRWAY", "ARCHITECT",
	"CRAFTSMAN", "MERCHANT", "LEADROLE", "FOLLOWROLE", "REQGAMESTATE",
	"GAMESTATE", "SETPLAYERID", "REQJOINGAME", "JOINGAME", "REQCREATEGAME",
	"CREATEGAME", "LOGIN", "REQSTARTGAME", "STARTGAME", "REQGAMELIST",
	"GAMELIST", "SERVERERROR", "PRISON", "TAKEPOOLCARDS", "TAKECLIENTS",
}

// Known reports whether the code names one of the game actions.
// Unknown codes still decode; they are carried as raw values.
func (a Action) Known() bool {
	return int(a) < len(actionNames)
}

func (a Action) String() string {
	if a.Known() {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", a)
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
