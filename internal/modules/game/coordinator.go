package game

import (
	"context"
	"encoding/json"

	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/game/domain"

	"go.uber.org/zap"
)

const (
	invalidRoomMessage = "Invalid room ID"
	roomFullMessage    = "Room is full"
)

// Client is one connected player from the coordinator's point of view.
// Close releases the client's outbound queue and is only called once the
// disconnect has been fully processed.
type Client interface {
	ID() string
	Send(event string, data interface{})
	Close()
}

// SaveGame persists a finished game. Wired to the mediator in production,
// replaced with a recorder in tests.
type SaveGame func(ctx context.Context, command SaveGameCommand) error

type request struct {
	client     Client
	event      string
	data       json.RawMessage
	disconnect bool
}

// Coordinator runs the per-room session state machine. All events are
// funneled through a single channel and processed to completion by the Run
// goroutine, so the registry and the rooms it holds need no locking.
type Coordinator struct {
	registry *domain.Registry
	saveGame SaveGame
	logger   *zap.Logger

	requests chan request
	clients  map[string]Client
}

func NewCoordinator(registry *domain.Registry, saveGame SaveGame, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		registry: registry,
		saveGame: saveGame,
		logger:   logger,
		requests: make(chan request, 256),
		clients:  make(map[string]Client),
	}
}

// Run consumes events until the context is canceled. It is the only
// goroutine that touches the registry.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-c.requests:
			if req.disconnect {
				c.handleDisconnect(req.client)
				continue
			}
			c.process(req.client, req.event, req.data)
		}
	}
}

// Dispatch enqueues a decoded client event for processing.
func (c *Coordinator) Dispatch(client Client, event string, data json.RawMessage) {
	c.requests <- request{client: client, event: event, data: data}
}

// Disconnect enqueues a transport-level connection loss.
func (c *Coordinator) Disconnect(client Client) {
	c.requests <- request{client: client, disconnect: true}
}

func (c *Coordinator) process(client Client, event string, data json.RawMessage) {
	switch event {
	case EventJoinRoom:
		c.handleJoin(client, data)
	case EventPlayerReady:
		c.handleReady(data)
	case EventMakeMove:
		c.handleMove(client, data)
	case EventRestartGame:
		c.handleRestart(data)
	case EventLeaveGame:
		c.handleLeave(client, data)
	default:
		c.logger.Debug("ignoring unknown event", zap.String("event", event))
	}
}

func (c *Coordinator) handleJoin(client Client, data json.RawMessage) {
	var payload JoinRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		client.Send(EventJoinRoomError, invalidRoomMessage)
		return
	}

	_, status := c.registry.Join(payload.RoomCode, client.ID(), payload.UserID, payload.UserName)
	switch status {
	case domain.JoinInvalidRoom:
		client.Send(EventJoinRoomError, invalidRoomMessage)
		return
	case domain.JoinRoomFull:
		client.Send(EventJoinRoomError, roomFullMessage)
		return
	}

	c.clients[client.ID()] = client
	client.Send(EventRoomJoined, payload.RoomCode)

	room, _ := c.registry.Room(payload.RoomCode)
	joined := room.SlotByConnection(client.ID())
	if other := room.Opponent(joined); other != -1 {
		c.sendToSlot(room, other, EventUserJoined, UserJoinedPayload{
			ConnectionID: client.ID(),
			UserID:       payload.UserID,
			UserName:     payload.UserName,
		})
	}
}

func (c *Coordinator) handleReady(data json.RawMessage) {
	var payload PlayerReadyPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	room, exists := c.registry.Room(payload.RoomCode)
	if !exists || !room.Full() {
		return
	}

	if count := c.registry.MarkReady(payload.RoomCode); count < 2 {
		return
	}

	c.startGame(room)
}

// startGame begins a fresh instance: the ledger is cleared and each player
// receives their start notice. Symbols follow join order and do not rotate
// across instances, so slot 0 always plays X and always moves first.
func (c *Coordinator) startGame(room *domain.Room) {
	c.registry.ClearMoves(room.Code)
	room.State = domain.StatePlaying

	for i, slot := range room.Slots {
		opponent := room.Slots[1-i]
		c.sendToSlot(room, i, EventGameStart, GameStartPayload{
			YourSymbol:   domain.SymbolForSlot(i),
			YourName:     slot.DisplayName,
			OpponentName: opponent.DisplayName,
			OpponentID:   opponent.UserID,
			IsFirstTurn:  i == 0,
			RoomCode:     room.Code,
		})
	}
}

func (c *Coordinator) handleMove(client Client, data json.RawMessage) {
	var payload MakeMovePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	room, exists := c.registry.Room(payload.RoomCode)
	if !exists || room.State != domain.StatePlaying {
		// Finished rooms ignore further moves - termination is one-shot.
		return
	}

	mover := room.SlotByConnection(client.ID())
	if mover == -1 {
		return
	}

	// The move's legality (turn order, cell vacancy) is the client's claim
	// and is deliberately not validated here.
	if other := room.Opponent(mover); other != -1 {
		c.sendToSlot(room, other, EventOpponentMove, OpponentMovePayload{
			CellIndex: payload.CellIndex,
			Symbol:    payload.Symbol,
		})
	}

	recorded := c.registry.RecordMove(payload.RoomCode, domain.Move{
		CellIndex: payload.CellIndex,
		Symbol:    payload.Symbol,
		ByUserID:  room.Slots[mover].UserID,
	})
	if !recorded {
		return
	}

	outcome := domain.Evaluate(room.Board())
	if outcome == domain.OutcomeNone {
		return
	}

	c.finishGame(room, outcome)
}

// finishGame runs exactly once per instance: the room transitions to
// Finished before anything else, the outcome is broadcast, and persistence
// is fired without blocking event processing.
func (c *Coordinator) finishGame(room *domain.Room, outcome domain.Outcome) {
	room.State = domain.StateFinished

	winner := "draw"
	var winnerUserID *string
	if outcome != domain.OutcomeDraw {
		if slot := room.SlotBySymbol(domain.Symbol(outcome)); slot != -1 {
			id := room.Slots[slot].UserID
			winner = id
			winnerUserID = &id
		}
	}

	for i := range room.Slots {
		c.sendToSlot(room, i, EventGameOver, GameOverPayload{Winner: winner, Result: outcome})
	}

	command := SaveGameCommand{
		RoomCode:     room.Code,
		PlayerX:      room.Slots[0].UserID,
		PlayerO:      room.Slots[1].UserID,
		PlayerXName:  room.Slots[0].DisplayName,
		PlayerOName:  room.Slots[1].DisplayName,
		WinnerUserID: winnerUserID,
		Result:       outcome,
		Moves:        append([]domain.Move(nil), room.Moves...),
	}

	// Best effort - the in-memory outcome stands even if the write fails.
	go func() {
		if err := c.saveGame(context.Background(), command); err != nil {
			c.logger.Error(
				"failed to persist finished game",
				zap.String("room_code", command.RoomCode),
				zap.Error(err),
			)
		}
	}()
}

func (c *Coordinator) handleRestart(data json.RawMessage) {
	var payload RestartGamePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	room, exists := c.registry.Room(payload.RoomCode)
	if !exists || !room.Full() {
		return
	}

	if room.State != domain.StateFinished && room.State != domain.StatePlaying {
		return
	}

	c.startGame(room)
}

// handleLeave is notification only - slot removal happens on disconnect.
func (c *Coordinator) handleLeave(client Client, data json.RawMessage) {
	var payload LeaveGamePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	room, exists := c.registry.Room(payload.RoomCode)
	if !exists {
		return
	}

	leaver := room.SlotByConnection(client.ID())
	if leaver == -1 {
		return
	}

	if other := room.Opponent(leaver); other != -1 {
		c.sendToSlot(room, other, EventPlayerLeft, nil)
	}
}

func (c *Coordinator) handleDisconnect(client Client) {
	delete(c.clients, client.ID())
	defer client.Close()

	room, _, found := c.registry.FindByConnection(client.ID())
	if !found {
		return
	}

	c.registry.Leave(room.Code, client.ID())

	if len(room.Slots) > 0 {
		c.sendToSlot(room, 0, EventOpponentLeft, nil)
	}
}

func (c *Coordinator) sendToSlot(room *domain.Room, index int, event string, data interface{}) {
	if index < 0 || index >= len(room.Slots) {
		return
	}

	if client, connected := c.clients[room.Slots[index].ConnectionID]; connected {
		client.Send(event, data)
	}
}
