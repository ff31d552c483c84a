package game

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/game/domain"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWebsocketFixture(t *testing.T) (string, chan SaveGameCommand) {
	t.Helper()

	saves := make(chan SaveGameCommand, 1)
	saveGame := func(ctx context.Context, command SaveGameCommand) error {
		saves <- command
		return nil
	}

	coordinator := NewCoordinator(domain.NewRegistry(), saveGame, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go coordinator.Run(ctx)

	handler := NewWebsocketHandler(coordinator, zap.NewNop())
	server := httptest.NewServer(http.HandlerFunc(handler.Handle))

	t.Cleanup(func() {
		server.Close()
		cancel()
	})

	return "ws" + strings.TrimPrefix(server.URL, "http"), saves
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	t.Cleanup(func() { conn.Close() })

	return conn
}

func writeEvent(t *testing.T, conn *websocket.Conn, event string, payload interface{}) {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	message, err := json.Marshal(Envelope{Event: event, Data: data})
	require.NoError(t, err)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, message))
}

func readEvent(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))

	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(message, &envelope))

	return envelope
}

func Test_Websocket_Join_Round_Trip(t *testing.T) {
	// Arrange
	url, _ := newWebsocketFixture(t)

	alice := dial(t, url)
	bob := dial(t, url)

	// Act
	writeEvent(t, alice, EventJoinRoom, JoinRoomPayload{RoomCode: "room-1", UserID: "user-a", UserName: "Alice"})

	joined := readEvent(t, alice)

	writeEvent(t, bob, EventJoinRoom, JoinRoomPayload{RoomCode: "room-1", UserID: "user-b", UserName: "Bob"})

	notice := readEvent(t, alice)

	// Assert
	require.Equal(t, EventRoomJoined, joined.Event)

	var roomCode string
	require.NoError(t, json.Unmarshal(joined.Data, &roomCode))
	require.Equal(t, "room-1", roomCode)

	require.Equal(t, EventUserJoined, notice.Event)

	var userJoined UserJoinedPayload
	require.NoError(t, json.Unmarshal(notice.Data, &userJoined))
	require.Equal(t, "user-b", userJoined.UserID)
	require.Equal(t, "Bob", userJoined.UserName)
}

func Test_Websocket_Disconnect_Notifies_Remaining_Player(t *testing.T) {
	// Arrange
	url, _ := newWebsocketFixture(t)

	alice := dial(t, url)
	bob := dial(t, url)

	writeEvent(t, alice, EventJoinRoom, JoinRoomPayload{RoomCode: "room-1", UserID: "user-a", UserName: "Alice"})
	require.Equal(t, EventRoomJoined, readEvent(t, alice).Event)

	writeEvent(t, bob, EventJoinRoom, JoinRoomPayload{RoomCode: "room-1", UserID: "user-b", UserName: "Bob"})
	require.Equal(t, EventRoomJoined, readEvent(t, bob).Event)
	require.Equal(t, EventUserJoined, readEvent(t, alice).Event)

	// Act
	bob.Close()

	// Assert
	require.Equal(t, EventOpponentLeft, readEvent(t, alice).Event)
}
