package models

import (
	"encoding/json"
)

// Message types exchanged over the websocket.
const (
	TypeCreateRoom = "CREATE_ROOM"
	TypeJoinRoom   = "JOIN_ROOM"
	TypeMakeMove   = "MAKE_MOVE"
	TypeListRooms  = "LIST_ROOMS"

	TypeRoomCreated  = "ROOM_CREATED"
	TypeRoomJoined   = "ROOM_JOINED"
	TypePlayerJoined = "PLAYER_JOINED"
	TypeGameStart    = "GAME_START"
	TypeGameUpdate   = "GAME_UPDATE"
	TypeGameOver     = "GAME_OVER"
	TypePlayerLeft   = "PLAYER_LEFT"
	TypeRoomList     = "ROOM_LIST"
	TypeRoomClosed   = "ROOM_CLOSED"
)

// BaseMessage is the most basic message structure
type BaseMessage struct {
	Type string `json:"type"`
}

// Envelope is used for initial message deserialization
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload contains the data for a move in the game. Grid is ignored
// by simple games.
type MovePayload struct {
	Grid int `json:"grid"`
	Cell int `json:"cell"`
}

// PlayerMove combines a client with move data
type PlayerMove struct {
	Client   interface{} // Will be a Client implementation
	MoveData MovePayload
}

// CreateRoomPayload contains data for creating a room
type CreateRoomPayload struct {
	Variant string `json:"variant"`
}

// JoinRoomPayload contains data for joining a room
type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
}

// MakeMovePayload contains data for making a move
type MakeMovePayload struct {
	Move MovePayload `json:"move"`
}

// GameState is the board as sent to clients. MiniWinners and NextGrid are
// only set for ultimate games.
type GameState struct {
	Variant     string `json:"variant"`
	Board       []int  `json:"board"`
	MiniWinners []int  `json:"miniWinners,omitempty"`
	CurrentTurn int    `json:"currentTurn"`
	NextGrid    int    `json:"nextGrid"`
	Winner      int    `json:"winner"`
	Phase       string `json:"phase"`
	Moves       int    `json:"moves"`
}

// RoomCreatedResponse is sent after a room is created
type RoomCreatedResponse struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Player   int    `json:"player"`
	Variant  string `json:"variant"`
}

// RoomJoinedResponse is sent after successfully joining a room
type RoomJoinedResponse struct {
	Type     string    `json:"type"`
	RoomID   string    `json:"roomId"`
	PlayerID string    `json:"playerId"`
	Player   int       `json:"player"`
	State    GameState `json:"state"`
}

// PlayerJoinedResponse is sent to the first player when a second player joins
type PlayerJoinedResponse struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

// GameStartResponse is sent to both players when the game starts
type GameStartResponse struct {
	Type    string         `json:"type"`
	State   GameState      `json:"state"`
	Players map[string]int `json:"players"` // map[playerID]player
}

// GameUpdateResponse is sent after a valid move
type GameUpdateResponse struct {
	Type     string      `json:"type"`
	State    GameState   `json:"state"`
	LastMove MovePayload `json:"lastMove"`
}

// GameOverResponse is sent when the game ends
type GameOverResponse struct {
	Type   string    `json:"type"`
	State  GameState `json:"state"`
	Winner string    `json:"winner"` // PlayerID or empty for draw
	IsDraw bool      `json:"isDraw"`
}

// ErrorResponse is sent when an error occurs
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// PlayerLeftResponse is sent when a player leaves the game
type PlayerLeftResponse struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

// RoomInfo contains information about a room
type RoomInfo struct {
	RoomID  string   `json:"roomId"`
	Variant string   `json:"variant"`
	Players []string `json:"players"`
	IsFull  bool     `json:"isFull"`
}

// RoomListPayload contains the list of available rooms
type RoomListPayload struct {
	Type  string     `json:"type"`
	Rooms []RoomInfo `json:"rooms"`
}
