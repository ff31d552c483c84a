package game

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeTimeout  = 10 * time.Second
	sendQueueSize = 64
)

// WebsocketHandler upgrades connections and bridges them into the
// coordinator's event loop.
type WebsocketHandler struct {
	coordinator *Coordinator
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

func NewWebsocketHandler(coordinator *Coordinator, logger *zap.Logger) *WebsocketHandler {
	return &WebsocketHandler{
		coordinator: coordinator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

func (h *WebsocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}

	client := &wsClient{
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan []byte, sendQueueSize),
		logger: h.logger,
	}

	go client.writePump()
	client.readPump(h.coordinator)
}

// wsClient is one websocket connection. The read pump feeds decoded
// envelopes to the coordinator; the write pump drains the send queue so
// Send never blocks the coordinator goroutine.
type wsClient struct {
	id        string
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
	logger    *zap.Logger
}

var _ Client = (*wsClient)(nil)

func (c *wsClient) ID() string {
	return c.id
}

// Close is called by the coordinator once the disconnect has been
// processed, so no Send can race the channel close.
func (c *wsClient) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *wsClient) Send(event string, data interface{}) {
	envelope := Envelope{Event: event}

	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			c.logger.Error("failed to serialize event payload",
				zap.String("event", event),
				zap.Error(err),
			)
			return
		}
		envelope.Data = payload
	}

	message, err := json.Marshal(envelope)
	if err != nil {
		c.logger.Error("failed to serialize event", zap.String("event", event), zap.Error(err))
		return
	}

	select {
	case c.send <- message:
	default:
		// Slow consumer - drop rather than stall event processing.
		c.logger.Warn("send queue full, dropping event",
			zap.String("connection_id", c.id),
			zap.String("event", event),
		)
	}
}

func (c *wsClient) readPump(coordinator *Coordinator) {
	defer coordinator.Disconnect(c)

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var envelope Envelope
		if err := json.Unmarshal(message, &envelope); err != nil {
			c.logger.Debug("discarding malformed frame", zap.String("connection_id", c.id))
			continue
		}

		coordinator.Dispatch(c, envelope.Event, envelope.Data)
	}
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
