package client

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"nvivas/backend/uttt-go-server/internal/errors"
	"nvivas/backend/uttt-go-server/internal/interfaces"
	"nvivas/backend/uttt-go-server/internal/logger"
	"nvivas/backend/uttt-go-server/pkg/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 50 * time.Second
	maxMessageSize = 1024
	sendBufferSize = 64
)

// Client representa una conexión de cliente WebSocket
type Client struct {
	ID   string
	Hub  interfaces.Hub
	Conn *websocket.Conn
	Send chan []byte

	mu   sync.Mutex
	room interfaces.Room

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient crea un cliente para una conexión ya establecida
func NewClient(id string, hub interfaces.Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		Hub:  hub,
		Conn: conn,
		Send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// GetID implements interfaces.Client
func (c *Client) GetID() string {
	return c.ID
}

// GetSendChannel implements interfaces.Client
func (c *Client) GetSendChannel() chan []byte {
	return c.Send
}

// SetRoom implements interfaces.Client
func (c *Client) SetRoom(room interfaces.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.room = room
}

// GetRoom implements interfaces.Client
func (c *Client) GetRoom() interfaces.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

// close detiene WritePump. El canal Send nunca se cierra porque salas y Hub
// pueden seguir escribiendo en él.
func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// leaveRoom saca al cliente de su sala actual, si tiene una
func (c *Client) leaveRoom() {
	if room := c.GetRoom(); room != nil {
		c.SetRoom(nil)
		room.Leave(c)
	}
}

// ReadPump maneja la lectura de mensajes desde el WebSocket
func (c *Client) ReadPump() {
	defer func() {
		// Cuando ReadPump termina, desregistrar cliente y cerrar conexiones
		if c.Hub != nil {
			c.Hub.UnregisterClient(c)
		}
		c.close()
		c.Conn.Close()
	}()

	// Configurar conexión
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Bucle infinito para leer mensajes
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				logger.Warn("Conexión cerrada inesperadamente", logger.Fields{
					"clientID": c.ID,
					"error":    err.Error(),
				})
			}
			break // Salir del bucle si hay error
		}

		c.HandleMessage(message)
	}
}

// HandleMessage procesa un mensaje entrante ya leído del WebSocket
func (c *Client) HandleMessage(message []byte) {
	// Deserializar el mensaje recibido
	var envelope models.Envelope
	if err := json.Unmarshal(message, &envelope); err != nil {
		errors.InvalidMessage(c.Send, c.ID)
		return
	}

	// Manejar el mensaje según su tipo
	switch envelope.Type {
	case models.TypeCreateRoom:
		var payload models.CreateRoomPayload
		if len(envelope.Payload) > 0 {
			if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
				errors.InvalidPayload(c.Send, "CREATE_ROOM", c.ID)
				return
			}
		}

		logger.Debug("Cliente solicita crear sala", logger.Fields{"clientID": c.ID, "variant": payload.Variant})
		c.leaveRoom()
		if c.Hub == nil {
			errors.Internal(c.Send, c.ID)
			return
		}
		c.Hub.CreateRoom(c, payload.Variant)

	case models.TypeJoinRoom:
		// Deserializar el payload para obtener el RoomID
		var payload models.JoinRoomPayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil || payload.RoomID == "" {
			errors.InvalidPayload(c.Send, "JOIN_ROOM", c.ID)
			return
		}

		logger.Debug("Cliente solicita unirse a sala", logger.Fields{"clientID": c.ID, "roomID": payload.RoomID})
		if room := c.GetRoom(); room != nil && room.GetID() == payload.RoomID {
			return
		}
		c.leaveRoom()
		if c.Hub == nil {
			errors.Internal(c.Send, c.ID)
			return
		}
		c.Hub.JoinRoom(payload.RoomID, c)

	case models.TypeMakeMove:
		// Verificar que el cliente está en una sala
		room := c.GetRoom()
		if room == nil {
			errors.NotInRoom(c.Send, c.ID)
			return
		}

		// Deserializar el payload para obtener las coordenadas del movimiento
		var payload models.MakeMovePayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			errors.InvalidPayload(c.Send, "MAKE_MOVE", c.ID)
			return
		}

		// Enviar el movimiento a la sala
		room.SubmitMove(&models.PlayerMove{
			Client:   c,
			MoveData: payload.Move,
		})

	case models.TypeListRooms:
		if c.Hub == nil {
			errors.Internal(c.Send, c.ID)
			return
		}
		c.Hub.ListRooms(c)

	default:
		errors.UnknownMessageType(c.Send, envelope.Type, c.ID)
	}
}

// WritePump maneja el envío de mensajes al WebSocket
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
