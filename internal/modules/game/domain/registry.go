package domain

type JoinStatus int

const (
	JoinOK JoinStatus = iota
	JoinInvalidRoom
	JoinRoomFull
)

const maxMoves = 9

// Registry is the in-memory map of room codes to rooms. It is confined to
// the coordinator goroutine and therefore holds no lock - see Coordinator.
type Registry struct {
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Join places a connection into a room, creating the room on first use.
// The assigned symbol follows join order - first joiner plays X.
func (g *Registry) Join(roomCode, connectionID, userID, displayName string) (Symbol, JoinStatus) {
	if roomCode == "" {
		return Empty, JoinInvalidRoom
	}

	room, exists := g.rooms[roomCode]
	if !exists {
		room = &Room{Code: roomCode, State: StateFilling}
		g.rooms[roomCode] = room
	}

	if room.Full() {
		return Empty, JoinRoomFull
	}

	room.Slots = append(room.Slots, PlayerSlot{
		ConnectionID: connectionID,
		UserID:       userID,
		DisplayName:  displayName,
	})

	if room.Full() {
		room.State = StateReadyWait
	}

	return SymbolForSlot(len(room.Slots) - 1), JoinOK
}

func (g *Registry) Room(roomCode string) (*Room, bool) {
	room, exists := g.rooms[roomCode]
	return room, exists
}

// Leave removes the matching slot if present. Empty rooms are evicted so
// abandoned codes do not accumulate.
func (g *Registry) Leave(roomCode, connectionID string) {
	room, exists := g.rooms[roomCode]
	if !exists {
		return
	}

	index := room.SlotByConnection(connectionID)
	if index == -1 {
		return
	}

	room.Slots = append(room.Slots[:index], room.Slots[index+1:]...)

	if len(room.Slots) == 0 {
		delete(g.rooms, roomCode)
	}
}

// FindByConnection scans all rooms for the slot holding a connection.
// Returns the room and slot index, or false when no room matches.
func (g *Registry) FindByConnection(connectionID string) (*Room, int, bool) {
	for _, room := range g.rooms {
		if index := room.SlotByConnection(connectionID); index != -1 {
			return room, index, true
		}
	}
	return nil, -1, false
}

// MarkReady increments the room's ready counter and returns the new count.
// At two the counter resets so the next instance starts from zero.
func (g *Registry) MarkReady(roomCode string) int {
	room, exists := g.rooms[roomCode]
	if !exists {
		return 0
	}

	room.ReadyCount++
	count := room.ReadyCount
	if count >= maxSlots {
		room.ReadyCount = 0
	}

	return count
}

// RecordMove appends to the room's ledger. Moves from rooms without both
// occupants are discarded, and the ledger never grows past a full board.
func (g *Registry) RecordMove(roomCode string, move Move) bool {
	room, exists := g.rooms[roomCode]
	if !exists || !room.Full() {
		return false
	}

	if len(room.Moves) >= maxMoves {
		return false
	}

	room.Moves = append(room.Moves, move)
	return true
}

// ClearMoves empties the ledger for a fresh game instance.
func (g *Registry) ClearMoves(roomCode string) {
	if room, exists := g.rooms[roomCode]; exists {
		room.Moves = nil
	}
}

// RoomCount reports the number of live rooms.
func (g *Registry) RoomCount() int {
	return len(g.rooms)
}
