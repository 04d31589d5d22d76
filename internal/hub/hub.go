package hub

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"nvivas/backend/uttt-go-server/internal/errors"
	"nvivas/backend/uttt-go-server/internal/interfaces"
	"nvivas/backend/uttt-go-server/internal/logger"
	"nvivas/backend/uttt-go-server/internal/match"
	"nvivas/backend/uttt-go-server/internal/room"
	"nvivas/backend/uttt-go-server/pkg/models"
)

// Hub gestiona clientes conectados y salas de juego
type Hub struct {
	// Clientes conectados al servidor
	Clients map[interfaces.Client]bool

	// Salas activas
	Rooms map[string]*room.Room

	// Canal para registrar nuevos clientes
	Register chan interfaces.Client

	// Canal para desregistrar clientes
	Unregister chan interfaces.Client

	// Canal para crear una nueva sala
	CreateRoomChan chan *CreateRequest

	// Canal para unirse a una sala existente
	JoinRoomChan chan *JoinRequest

	// Canal para eliminar salas terminadas
	DeleteRoomChan chan string

	// Canal para consultas de la lista de salas
	listRooms chan chan []models.RoomInfo

	roomOpts room.Options

	// Context para control de cancelación
	ctx    context.Context
	cancel context.CancelFunc
}

// CreateRequest representa una solicitud para crear una sala
type CreateRequest struct {
	Client  interfaces.Client
	Variant string
}

// JoinRequest representa una solicitud para unirse a una sala
type JoinRequest struct {
	Client interfaces.Client
	RoomID string
}

// NewHub crea una nueva instancia de Hub
func NewHub(parentCtx context.Context, opts room.Options) *Hub {
	ctx, cancel := context.WithCancel(parentCtx)
	return &Hub{
		Clients:        make(map[interfaces.Client]bool),
		Rooms:          make(map[string]*room.Room),
		Register:       make(chan interfaces.Client),
		Unregister:     make(chan interfaces.Client),
		CreateRoomChan: make(chan *CreateRequest),
		JoinRoomChan:   make(chan *JoinRequest),
		DeleteRoomChan: make(chan string),
		listRooms:      make(chan chan []models.RoomInfo),
		roomOpts:       opts,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Close detiene el Hub y todas sus salas
func (h *Hub) Close() {
	h.cancel()
}

// RegisterClient añade un cliente recién conectado
func (h *Hub) RegisterClient(client interfaces.Client) {
	select {
	case h.Register <- client:
	case <-h.ctx.Done():
	}
}

// UnregisterClient implements interfaces.Hub
func (h *Hub) UnregisterClient(client interfaces.Client) {
	select {
	case h.Unregister <- client:
	case <-h.ctx.Done():
	}
}

// CreateRoom implements interfaces.Hub
func (h *Hub) CreateRoom(client interfaces.Client, variant string) {
	select {
	case h.CreateRoomChan <- &CreateRequest{Client: client, Variant: variant}:
	case <-h.ctx.Done():
	}
}

// JoinRoom implements interfaces.Hub
func (h *Hub) JoinRoom(roomID string, client interfaces.Client) {
	select {
	case h.JoinRoomChan <- &JoinRequest{Client: client, RoomID: roomID}:
	case <-h.ctx.Done():
	}
}

// DeleteRoom implements interfaces.Hub
func (h *Hub) DeleteRoom(roomID string) {
	select {
	case h.DeleteRoomChan <- roomID:
	case <-h.ctx.Done():
	}
}

// RoomList devuelve la lista de salas activas ordenada por ID
func (h *Hub) RoomList(ctx context.Context) ([]models.RoomInfo, error) {
	if err := h.ctx.Err(); err != nil {
		return nil, err
	}

	reply := make(chan []models.RoomInfo, 1)
	select {
	case h.listRooms <- reply:
	case <-h.ctx.Done():
		return nil, h.ctx.Err()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case rooms := <-reply:
		return rooms, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ListRooms implements interfaces.Hub
func (h *Hub) ListRooms(client interfaces.Client) {
	rooms, err := h.RoomList(h.ctx)
	if err != nil {
		errors.Internal(client.GetSendChannel(), client.GetID())
		return
	}

	msgBytes, err := json.Marshal(models.RoomListPayload{
		Type:  models.TypeRoomList,
		Rooms: rooms,
	})
	if err != nil {
		errors.Internal(client.GetSendChannel(), client.GetID())
		return
	}

	select {
	case client.GetSendChannel() <- msgBytes:
	default:
		logger.Warn("No se pudo enviar ROOM_LIST, canal lleno", logger.Fields{"clientID": client.GetID()})
	}
}

// Run inicia el bucle principal del Hub
func (h *Hub) Run() {
	defer func() {
		for id, r := range h.Rooms {
			r.Close()
			delete(h.Rooms, id)
		}
		logger.Info("Hub detenido", nil)
	}()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.Register:
			// Registrar un nuevo cliente
			h.Clients[client] = true
			logger.Debug("Cliente registrado", logger.Fields{"clientID": client.GetID()})

		case client := <-h.Unregister:
			// Verificar si el cliente está registrado
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				logger.Debug("Cliente desregistrado", logger.Fields{"clientID": client.GetID()})
			}

			// Si el cliente estaba en una sala, notificar a la sala
			if clientRoom := client.GetRoom(); clientRoom != nil {
				client.SetRoom(nil)
				clientRoom.Leave(client)
			}

		case req := <-h.CreateRoomChan:
			h.createRoom(req)

		case req := <-h.JoinRoomChan:
			h.joinRoom(req)

		case roomID := <-h.DeleteRoomChan:
			if r, ok := h.Rooms[roomID]; ok {
				delete(h.Rooms, roomID)
				r.Close()
				logger.Info("Sala eliminada", logger.Fields{"roomID": roomID})
			}

		case reply := <-h.listRooms:
			rooms := make([]models.RoomInfo, 0, len(h.Rooms))
			for _, r := range h.Rooms {
				rooms = append(rooms, r.Info())
			}
			sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomID < rooms[j].RoomID })
			reply <- rooms
		}
	}
}

func (h *Hub) createRoom(req *CreateRequest) {
	variant, err := match.ParseVariant(req.Variant)
	if err != nil {
		errors.InvalidPayload(req.Client.GetSendChannel(), err.Error(), req.Client.GetID())
		return
	}

	// Crear un ID único para la sala
	roomID := uuid.NewString()
	newRoom := room.NewRoom(roomID, h, h.ctx, variant, h.roomOpts)
	h.Rooms[roomID] = newRoom

	// Iniciar la sala como goroutine
	go newRoom.Run()

	// Registrar al cliente creador en la sala; la sala envía ROOM_CREATED
	newRoom.Join(req.Client)

	logger.Info("Sala creada", logger.Fields{
		"roomID":   roomID,
		"variant":  variant,
		"clientID": req.Client.GetID(),
	})
}

func (h *Hub) joinRoom(req *JoinRequest) {
	// Buscar la sala por su ID
	r, exists := h.Rooms[req.RoomID]
	if !exists {
		errors.RoomNotFound(req.Client.GetSendChannel(), req.Client.GetID())
		return
	}

	// Verificar si la sala está llena antes de unirse
	if r.Info().IsFull {
		errors.RoomFull(req.Client.GetSendChannel(), req.Client.GetID())
		return
	}

	// La sala se encargará de enviar ROOM_JOINED y PLAYER_JOINED
	r.Join(req.Client)

	logger.Info("Cliente se unió a sala", logger.Fields{
		"roomID":   req.RoomID,
		"clientID": req.Client.GetID(),
	})
}
