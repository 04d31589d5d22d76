package room

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"nvivas/backend/uttt-go-server/internal/errors"
	"nvivas/backend/uttt-go-server/internal/game"
	"nvivas/backend/uttt-go-server/internal/interfaces"
	"nvivas/backend/uttt-go-server/internal/logger"
	"nvivas/backend/uttt-go-server/internal/match"
	"nvivas/backend/uttt-go-server/pkg/models"
)

// Options configura el comportamiento de una sala
type Options struct {
	GracePeriod time.Duration // Tiempo que una sala vacía espera antes de eliminarse
	Match       match.Options // Políticas del juego
}

// Room representa una sala de juego
type Room struct {
	ID          string                     // Identificador único de la sala
	Hub         interfaces.Hub             // Referencia al Hub principal
	Clients     map[interfaces.Client]bool // Clientes en la sala (máximo 2)
	Match       *match.Match               // Estado actual del juego
	Register    chan interfaces.Client     // Canal para registrar clientes
	Unregister  chan interfaces.Client     // Canal para desregistrar clientes
	ReceiveMove chan *models.PlayerMove    // Canal para recibir movimientos

	opts    Options
	created bool             // El primer registro es el creador
	expire  <-chan time.Time // Temporizador de sala vacía, nil si no está armado

	infoMu sync.RWMutex
	info   models.RoomInfo

	// Context para control de cancelación
	ctx    context.Context
	cancel context.CancelFunc
}

// NewRoom crea una nueva sala de juego
func NewRoom(id string, hub interfaces.Hub, parentCtx context.Context, variant match.Variant, opts Options) *Room {
	// Crear un contexto derivado que se pueda cancelar independientemente
	ctx, cancel := context.WithCancel(parentCtx)

	return &Room{
		ID:          id,
		Hub:         hub,
		Clients:     make(map[interfaces.Client]bool),
		Match:       match.New(variant, opts.Match),
		Register:    make(chan interfaces.Client),
		Unregister:  make(chan interfaces.Client),
		ReceiveMove: make(chan *models.PlayerMove),
		opts:        opts,
		info: models.RoomInfo{
			RoomID:  id,
			Variant: string(variant),
			Players: []string{},
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// GetID implements interfaces.Room
func (r *Room) GetID() string {
	return r.ID
}

// Join registra un cliente en la sala; no bloquea si la sala ya terminó
func (r *Room) Join(client interfaces.Client) {
	select {
	case r.Register <- client:
	case <-r.ctx.Done():
		errors.RoomNotFound(client.GetSendChannel(), client.GetID())
	}
}

// Leave implements interfaces.Room
func (r *Room) Leave(client interfaces.Client) {
	select {
	case r.Unregister <- client:
	case <-r.ctx.Done():
	}
}

// SubmitMove implements interfaces.Room
func (r *Room) SubmitMove(move *models.PlayerMove) {
	select {
	case r.ReceiveMove <- move:
	case <-r.ctx.Done():
		if c, ok := move.Client.(interfaces.Client); ok {
			errors.NotInRoom(c.GetSendChannel(), c.GetID())
		}
	}
}

// Info devuelve un resumen de la sala seguro para otras goroutines
func (r *Room) Info() models.RoomInfo {
	r.infoMu.RLock()
	defer r.infoMu.RUnlock()
	info := r.info
	info.Players = make([]string, len(r.info.Players))
	copy(info.Players, r.info.Players)
	return info
}

// Done se cierra cuando la sala termina
func (r *Room) Done() <-chan struct{} {
	return r.ctx.Done()
}

// Close cancela el contexto y libera recursos
func (r *Room) Close() {
	r.cancel()
	// No cerramos los canales aquí, porque podría haber goroutines escribiendo en ellos
	// La cancelación del contexto debería ser suficiente para que salgan de sus bucles
	logger.Info("Sala cerrada", logger.Fields{"roomID": r.ID})
}

// Run inicia el bucle principal de la sala. Es el único escritor de r.Match,
// por lo que los movimientos de una partida se aplican de uno en uno.
func (r *Room) Run() {
	defer func() {
		r.cancel()

		// Cleanup cuando Run termina
		logger.Info("Finalizando Room.Run, liberando recursos", logger.Fields{
			"roomID": r.ID,
		})

		// Informar a los clientes que la sala se ha cerrado
		for client := range r.Clients {
			// Desasociar el cliente de la sala
			client.SetRoom(nil)
			r.send(client, models.BaseMessage{Type: models.TypeRoomClosed})
		}

		// Limpiar el mapa de clientes
		r.Clients = make(map[interfaces.Client]bool)
		r.updateInfo()
	}()

	for {
		select {
		case <-r.ctx.Done():
			// Contexto cancelado, terminar
			logger.Info("Contexto cancelado, terminando Room.Run", logger.Fields{
				"roomID": r.ID,
			})
			return

		case <-r.expire:
			if len(r.Clients) == 0 {
				logger.Info("Sala sigue vacía después del tiempo de gracia, eliminando", logger.Fields{"roomID": r.ID})
				r.finish()
				return
			}
			r.expire = nil

		case client := <-r.Register:
			r.handleRegister(client)

		case client := <-r.Unregister:
			if r.handleUnregister(client) {
				return
			}

		case moveReq := <-r.ReceiveMove:
			if r.handleMove(moveReq) {
				return
			}
		}
	}
}

func (r *Room) handleRegister(client interfaces.Client) {
	player, err := r.Match.Seat(client.GetID())
	if err != nil {
		errors.RoomFull(client.GetSendChannel(), client.GetID())
		client.SetRoom(nil)
		return
	}

	r.Clients[client] = true
	r.expire = nil
	client.SetRoom(r)
	r.updateInfo()

	if !r.created {
		r.created = true
		r.send(client, models.RoomCreatedResponse{
			Type:     models.TypeRoomCreated,
			RoomID:   r.ID,
			PlayerID: client.GetID(),
			Player:   int(player),
			Variant:  string(r.Match.Variant),
		})
		logger.Info("Jugador esperando oponente", logger.Fields{
			"roomID":   r.ID,
			"clientID": client.GetID(),
			"player":   player.String(),
		})
		return
	}

	r.send(client, models.RoomJoinedResponse{
		Type:     models.TypeRoomJoined,
		RoomID:   r.ID,
		PlayerID: client.GetID(),
		Player:   int(player),
		State:    stateOf(r.Match),
	})

	// Notificar a los demás que se unió un oponente
	for c := range r.Clients {
		if c.GetID() != client.GetID() {
			r.send(c, models.PlayerJoinedResponse{
				Type:     models.TypePlayerJoined,
				PlayerID: client.GetID(),
			})
		}
	}

	if !r.Match.Full() {
		return
	}

	players := make(map[string]int, len(r.Match.Seats))
	for id, p := range r.Match.Seats {
		players[id] = int(p)
	}
	start := models.GameStartResponse{
		Type:    models.TypeGameStart,
		State:   stateOf(r.Match),
		Players: players,
	}
	for c := range r.Clients {
		r.send(c, start)
	}

	logger.Info("Juego iniciado", logger.Fields{
		"roomID":    r.ID,
		"variant":   r.Match.Variant,
		"player1ID": r.Match.ClientOf(game.Player1),
		"player2ID": r.Match.ClientOf(game.Player2),
	})
}

// handleUnregister devuelve true si la sala debe terminar
func (r *Room) handleUnregister(client interfaces.Client) bool {
	if _, ok := r.Clients[client]; !ok {
		return false
	}

	player, _ := r.Match.PlayerOf(client.GetID())

	// Abandonar una partida en curso la pierde
	forfeited := r.Match.Full() && r.Match.Forfeit(client.GetID()) == nil

	delete(r.Clients, client)
	r.Match.Leave(client.GetID())
	r.updateInfo()

	logger.Info("Jugador abandonó la sala", logger.Fields{
		"roomID":   r.ID,
		"clientID": client.GetID(),
		"player":   player.String(),
	})

	if len(r.Clients) == 0 {
		// Programar la eliminación para permitir reconexiones
		logger.Info("Sala vacía, programando eliminación con retraso", logger.Fields{
			"roomID": r.ID,
			"grace":  r.opts.GracePeriod.String(),
		})
		r.expire = time.After(r.opts.GracePeriod)
		return false
	}

	for c := range r.Clients {
		r.send(c, models.PlayerLeftResponse{
			Type:     models.TypePlayerLeft,
			PlayerID: client.GetID(),
		})
	}

	if !forfeited {
		return false
	}

	// El jugador que queda gana por abandono
	for c := range r.Clients {
		r.send(c, models.GameOverResponse{
			Type:   models.TypeGameOver,
			State:  stateOf(r.Match),
			Winner: c.GetID(),
			IsDraw: false,
		})
	}
	logger.Info("Juego terminado por abandono", logger.Fields{
		"roomID": r.ID,
		"winner": r.Match.Winner.Verdict(),
	})
	r.finish()
	return true
}

// handleMove devuelve true si la partida terminó
func (r *Room) handleMove(moveReq *models.PlayerMove) bool {
	moveClient, ok := moveReq.Client.(interfaces.Client)
	if !ok {
		logger.Error("Cliente en ReceiveMove no es del tipo correcto", nil)
		return false
	}
	moveData := moveReq.MoveData

	if _, ok := r.Clients[moveClient]; !ok {
		errors.NotInGame(moveClient.GetSendChannel(), moveClient.GetID())
		return false
	}

	player, err := r.Match.PlayerOf(moveClient.GetID())
	if err != nil {
		errors.FromMatch(moveClient.GetSendChannel(), err, moveClient.GetID())
		return false
	}

	if !r.Match.Full() {
		errors.InvalidMove(moveClient.GetSendChannel(), "Esperando al oponente", moveClient.GetID())
		return false
	}

	if err := r.Match.Play(player, moveData.Grid, moveData.Cell); err != nil {
		errors.FromMatch(moveClient.GetSendChannel(), err, moveClient.GetID())
		return false
	}

	state := stateOf(r.Match)
	update := models.GameUpdateResponse{
		Type:     models.TypeGameUpdate,
		State:    state,
		LastMove: moveData,
	}
	for c := range r.Clients {
		r.send(c, update)
	}

	logger.Info("Movimiento realizado", logger.Fields{
		"roomID":   r.ID,
		"clientID": moveClient.GetID(),
		"player":   player.String(),
		"grid":     moveData.Grid,
		"cell":     moveData.Cell,
		"nextGrid": r.Match.NextGrid,
		"winner":   r.Match.Winner.Verdict(),
	})

	if !r.Match.Over() {
		return false
	}

	// Si el juego ha terminado, enviar mensaje adicional
	over := models.GameOverResponse{
		Type:   models.TypeGameOver,
		State:  state,
		IsDraw: r.Match.Phase == match.Drawn,
	}
	if r.Match.Phase == match.Won {
		over.Winner = r.Match.ClientOf(r.Match.Winner)
		logger.Info("Juego terminado con ganador", logger.Fields{
			"roomID":   r.ID,
			"winnerID": over.Winner,
			"winner":   r.Match.Winner.Verdict(),
		})
	} else {
		logger.Info("Juego terminado en empate", logger.Fields{
			"roomID": r.ID,
			"winner": r.Match.Winner.Verdict(),
		})
	}
	for c := range r.Clients {
		r.send(c, over)
	}

	r.finish()
	return true
}

// finish pide al Hub que elimine la sala. La llamada es asíncrona porque el
// Hub puede estar esperando a esta misma sala.
func (r *Room) finish() {
	if r.Hub != nil {
		go r.Hub.DeleteRoom(r.ID)
	}
}

func (r *Room) updateInfo() {
	players := make([]string, 0, len(r.Clients))
	for client := range r.Clients {
		players = append(players, client.GetID())
	}

	r.infoMu.Lock()
	r.info.Players = players
	r.info.IsFull = r.Match.Full()
	r.infoMu.Unlock()
}

func (r *Room) send(client interfaces.Client, msg interface{}) {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		logger.Error("No se pudo serializar el mensaje", logger.Fields{
			"error":  err.Error(),
			"roomID": r.ID,
		})
		return
	}
	r.sendBytes(client, msgBytes)
}

func (r *Room) sendBytes(client interfaces.Client, msg []byte) {
	select {
	case client.GetSendChannel() <- msg:
		// Mensaje enviado con éxito
	default:
		// Skip if channel is full
		logger.Warn("No se pudo enviar mensaje, canal lleno", logger.Fields{
			"clientID": client.GetID(),
			"roomID":   r.ID,
		})
	}
}
