package interfaces

import "nvivas/backend/uttt-go-server/pkg/models"

// Hub defines the interface for hub operations needed by clients and rooms
type Hub interface {
	// UnregisterClient removes a client from the hub
	UnregisterClient(client Client)

	// CreateRoom creates a new room of the given variant with the client as the first player
	CreateRoom(client Client, variant string)

	// JoinRoom adds a client to an existing room
	JoinRoom(roomID string, client Client)

	// ListRooms sends the current room list to the client
	ListRooms(client Client)

	// DeleteRoom removes a finished or abandoned room
	DeleteRoom(roomID string)
}

// Room defines the operations a client may invoke on the room it is in
type Room interface {
	// GetID returns the room's identifier
	GetID() string

	// SubmitMove queues a move for the room's game
	SubmitMove(move *models.PlayerMove)

	// Leave removes the client from the room
	Leave(client Client)
}

// Client defines the interface for client operations needed by the hub
type Client interface {
	// GetID returns the client's unique identifier
	GetID() string

	// GetSendChannel returns the client's message sending channel
	GetSendChannel() chan []byte

	// SetRoom sets the client's current room
	SetRoom(room Room)

	// GetRoom gets the client's current room
	GetRoom() Room
}
