package domain

// PlayerSlot is one player's position within a room. The slot index
// determines the symbol - first joiner plays X, second plays O.
type PlayerSlot struct {
	ConnectionID string
	UserID       string
	DisplayName  string
}

// Move is a single placement, immutable once recorded.
type Move struct {
	CellIndex int    `json:"index"`
	Symbol    Symbol `json:"symbol"`
	ByUserID  string `json:"by"`
}

type RoomState string

const (
	StateFilling   RoomState = "filling"
	StateReadyWait RoomState = "ready-wait"
	StatePlaying   RoomState = "playing"
	StateFinished  RoomState = "finished"
)

// Room holds up to two players and the move ledger for the current game
// instance. Restart starts a fresh instance in the same room without
// rotating symbols.
type Room struct {
	Code       string
	Slots      []PlayerSlot
	ReadyCount int
	Moves      []Move
	State      RoomState
}

const maxSlots = 2

// SymbolForSlot derives a slot's symbol from its join order.
func SymbolForSlot(index int) Symbol {
	if index == 0 {
		return SymbolX
	}
	return SymbolO
}

func (r *Room) Full() bool {
	return len(r.Slots) == maxSlots
}

// SlotByConnection returns the slot index for a connection, or -1.
func (r *Room) SlotByConnection(connectionID string) int {
	for i, slot := range r.Slots {
		if slot.ConnectionID == connectionID {
			return i
		}
	}
	return -1
}

// SlotBySymbol returns the slot occupying a symbol, or -1 when the symbol's
// position is unfilled.
func (r *Room) SlotBySymbol(symbol Symbol) int {
	for i := range r.Slots {
		if SymbolForSlot(i) == symbol {
			return i
		}
	}
	return -1
}

// Opponent returns the other occupant's slot index, or -1 when the room has
// a single occupant.
func (r *Room) Opponent(slotIndex int) int {
	for i := range r.Slots {
		if i != slotIndex {
			return i
		}
	}
	return -1
}

// Board replays the ledger in append order onto an empty board. Replay
// order is the tie-break should a cell ever be written twice.
func (r *Room) Board() Board {
	var board Board
	for _, move := range r.Moves {
		if move.CellIndex < 0 || move.CellIndex >= len(board) {
			continue
		}
		board[move.CellIndex] = move.Symbol
	}
	return board
}
