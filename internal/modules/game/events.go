package game

import (
	"encoding/json"

	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/game/domain"
)

// Inbound event names.
const (
	EventJoinRoom    = "joinRoom"
	EventPlayerReady = "playerReady"
	EventMakeMove    = "makeMove"
	EventRestartGame = "restartGame"
	EventLeaveGame   = "leaveGame"
)

// Outbound event names.
const (
	EventRoomJoined    = "roomJoined"
	EventJoinRoomError = "joinRoomError"
	EventUserJoined    = "userJoined"
	EventGameStart     = "gameStart"
	EventOpponentMove  = "opponentMove"
	EventGameOver      = "gameOver"
	EventPlayerLeft    = "playerLeft"
	EventOpponentLeft  = "opponentLeft"
)

// Envelope is the wire frame for every realtime message, in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type UserJoinedPayload struct {
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
}

type PlayerReadyPayload struct {
	RoomCode string `json:"roomCode"`
}

type GameStartPayload struct {
	YourSymbol   domain.Symbol `json:"yourSymbol"`
	YourName     string        `json:"yourName"`
	OpponentName string        `json:"opponentName"`
	OpponentID   string        `json:"opponentId"`
	IsFirstTurn  bool          `json:"isFirstTurn"`
	RoomCode     string        `json:"roomCode"`
}

type MakeMovePayload struct {
	RoomCode  string        `json:"roomCode"`
	CellIndex int           `json:"cellIndex"`
	Symbol    domain.Symbol `json:"symbol"`
}

type OpponentMovePayload struct {
	CellIndex int           `json:"cellIndex"`
	Symbol    domain.Symbol `json:"symbol"`
}

// GameOverPayload reports the terminal outcome. Winner holds the winning
// player's user ID, or the literal "draw".
type GameOverPayload struct {
	Winner string         `json:"winner"`
	Result domain.Outcome `json:"result"`
}

type RestartGamePayload struct {
	RoomCode string `json:"roomCode"`
}

type LeaveGamePayload struct {
	RoomCode string `json:"roomCode"`
}
