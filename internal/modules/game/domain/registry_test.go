package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Join_Assigns_Symbols_By_Join_Order(t *testing.T) {
	// Arrange
	registry := NewRegistry()

	// Act
	first, firstStatus := registry.Join("room-1", uuid.NewString(), "user-1", "Alice")
	second, secondStatus := registry.Join("room-1", uuid.NewString(), "user-2", "Bob")

	// Assert
	require.Equal(t, JoinOK, firstStatus)
	require.Equal(t, SymbolX, first)

	require.Equal(t, JoinOK, secondStatus)
	require.Equal(t, SymbolO, second)
}

func Test_Join_Fails_For_Empty_Room_Code(t *testing.T) {
	// Arrange
	registry := NewRegistry()

	// Act
	_, status := registry.Join("", uuid.NewString(), "user-1", "Alice")

	// Assert
	require.Equal(t, JoinInvalidRoom, status)
	require.Equal(t, 0, registry.RoomCount())
}

func Test_Join_Fails_When_Room_Full_Without_Changing_Slots(t *testing.T) {
	// Arrange
	registry := NewRegistry()

	registry.Join("room-1", "conn-1", "user-1", "Alice")
	registry.Join("room-1", "conn-2", "user-2", "Bob")

	// Act
	_, status := registry.Join("room-1", "conn-3", "user-3", "Carol")

	// Assert
	require.Equal(t, JoinRoomFull, status)

	room, exists := registry.Room("room-1")
	require.True(t, exists)
	require.Len(t, room.Slots, 2)
	require.Equal(t, "user-1", room.Slots[0].UserID)
	require.Equal(t, "user-2", room.Slots[1].UserID)
}

func Test_Leave_Evicts_Room_When_Last_Slot_Empties(t *testing.T) {
	// Arrange
	registry := NewRegistry()

	registry.Join("room-1", "conn-1", "user-1", "Alice")
	registry.Join("room-1", "conn-2", "user-2", "Bob")

	// Act
	registry.Leave("room-1", "conn-1")
	registry.Leave("room-1", "conn-2")

	// Assert
	require.Equal(t, 0, registry.RoomCount())
}

func Test_Leave_Is_A_NoOp_For_Unknown_Connection(t *testing.T) {
	// Arrange
	registry := NewRegistry()
	registry.Join("room-1", "conn-1", "user-1", "Alice")

	// Act
	registry.Leave("room-1", "conn-unknown")
	registry.Leave("room-unknown", "conn-1")

	// Assert
	room, exists := registry.Room("room-1")
	require.True(t, exists)
	require.Len(t, room.Slots, 1)
}

func Test_MarkReady_Resets_Counter_At_Two(t *testing.T) {
	// Arrange
	registry := NewRegistry()

	registry.Join("room-1", "conn-1", "user-1", "Alice")
	registry.Join("room-1", "conn-2", "user-2", "Bob")

	// Act
	first := registry.MarkReady("room-1")
	second := registry.MarkReady("room-1")

	// Assert
	require.Equal(t, 1, first)
	require.Equal(t, 2, second)

	room, _ := registry.Room("room-1")
	require.Equal(t, 0, room.ReadyCount)
}

func Test_RecordMove_Discards_Move_From_Incomplete_Room(t *testing.T) {
	// Arrange
	registry := NewRegistry()
	registry.Join("room-1", "conn-1", "user-1", "Alice")

	// Act
	recorded := registry.RecordMove("room-1", Move{CellIndex: 0, Symbol: SymbolX, ByUserID: "user-1"})

	// Assert
	require.False(t, recorded)

	room, _ := registry.Room("room-1")
	require.Empty(t, room.Moves)
}

func Test_RecordMove_Caps_Ledger_At_Nine_Moves(t *testing.T) {
	// Arrange
	registry := NewRegistry()

	registry.Join("room-1", "conn-1", "user-1", "Alice")
	registry.Join("room-1", "conn-2", "user-2", "Bob")

	for i := 0; i < 9; i++ {
		recorded := registry.RecordMove("room-1", Move{CellIndex: i, Symbol: SymbolX, ByUserID: "user-1"})
		require.True(t, recorded)
	}

	// Act
	recorded := registry.RecordMove("room-1", Move{CellIndex: 0, Symbol: SymbolO, ByUserID: "user-2"})

	// Assert
	require.False(t, recorded)

	room, _ := registry.Room("room-1")
	require.Len(t, room.Moves, 9)
}

func Test_Board_Replays_Moves_In_Append_Order(t *testing.T) {
	// Arrange
	registry := NewRegistry()

	registry.Join("room-1", "conn-1", "user-1", "Alice")
	registry.Join("room-1", "conn-2", "user-2", "Bob")

	registry.RecordMove("room-1", Move{CellIndex: 0, Symbol: SymbolX, ByUserID: "user-1"})
	registry.RecordMove("room-1", Move{CellIndex: 4, Symbol: SymbolO, ByUserID: "user-2"})
	registry.RecordMove("room-1", Move{CellIndex: 4, Symbol: SymbolX, ByUserID: "user-1"})

	room, _ := registry.Room("room-1")

	// Act
	board := room.Board()

	// Assert
	require.Equal(t, SymbolX, board[0])
	// Last write wins on replay.
	require.Equal(t, SymbolX, board[4])
}

func Test_ClearMoves_Empties_The_Ledger(t *testing.T) {
	// Arrange
	registry := NewRegistry()

	registry.Join("room-1", "conn-1", "user-1", "Alice")
	registry.Join("room-1", "conn-2", "user-2", "Bob")

	registry.RecordMove("room-1", Move{CellIndex: 0, Symbol: SymbolX, ByUserID: "user-1"})

	// Act
	registry.ClearMoves("room-1")

	// Assert
	room, _ := registry.Room("room-1")
	require.Empty(t, room.Moves)
}

func Test_FindByConnection_Returns_False_For_Unknown_Connection(t *testing.T) {
	// Arrange
	registry := NewRegistry()
	registry.Join("room-1", "conn-1", "user-1", "Alice")

	// Act
	_, _, found := registry.FindByConnection("conn-unknown")

	// Assert
	require.False(t, found)
}
