// campus-crm/internal/handlers/notify_hub.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"campus-crm/config"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// eventsChannel is the Redis pub/sub channel shared by all server
// instances. Each instance re-broadcasts received events to its own
// websocket clients.
const eventsChannel = "campus:events"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Для разработки разрешаем все источники
	},
}

// GlobalHub - единственный экземпляр хаба для всего приложения
var GlobalHub = NewHub()

// Event is the envelope pushed to websocket clients. The payload is an
// opaque signal; clients are expected to re-fetch the resource they care
// about rather than trust the payload as a source of truth.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sentAt"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

type Hub struct {
	clients    map[uint]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uint]*Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			// A reconnect from the same user evicts the old connection.
			if old, ok := h.clients[client.userID]; ok {
				close(old.send)
			}
			h.clients[client.userID] = client
			h.mu.Unlock()
			slog.Info("Notification client registered", "userID", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			// An evicted connection's late unregister must not detach the
			// connection that replaced it.
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.mu.Unlock()
			slog.Info("Notification client unregistered", "userID", client.userID)

		case eventData := <-h.broadcast:
			h.fanOut(eventData)
		}
	}
}

// fanOut pushes an event to every connected client. A client with a full
// send buffer is dropped rather than blocking the hub.
func (h *Hub) fanOut(eventData []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, client := range h.clients {
		select {
		case client.send <- eventData:
		default:
			close(client.send)
			delete(h.clients, userID)
		}
	}
}

// SubscribeEvents consumes the Redis events channel and feeds the hub.
// Run in its own goroutine after ConnectRedis; returns immediately when
// Redis is not configured (the hub then serves only locally published
// events).
func SubscribeEvents() {
	if config.RDB == nil {
		slog.Warn("Redis not configured, cross-instance notifications disabled")
		return
	}
	sub := config.RDB.Subscribe(config.Ctx, eventsChannel)
	for msg := range sub.Channel() {
		GlobalHub.broadcast <- []byte(msg.Payload)
	}
}

// PublishEvent emits a best-effort notification about a domain change.
// With Redis configured the event goes through pub/sub so every instance
// sees it; without Redis it is fanned out to this instance's clients only.
// Never blocks the calling handler. No delivery guarantees.
func PublishEvent(eventType string, payload gin.H) {
	event := Event{Type: eventType, Payload: payload, SentAt: time.Now()}
	eventData, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal event", "type", eventType, "error", err)
		return
	}

	if config.RDB != nil {
		if err := config.RDB.Publish(config.Ctx, eventsChannel, eventData).Err(); err != nil {
			slog.Error("Failed to publish event to Redis", "type", eventType, "error", err)
		}
		return
	}

	go func() {
		GlobalHub.broadcast <- eventData
	}()
}

// --- Методы Клиента и WebSocket Endpoint ---

// readPump only watches for the close frame. Clients never send domain
// data over this socket.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Unexpected websocket close error", "error", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Error("Failed to write event to websocket", "error", err)
			return
		}
	}
}

// NotificationsWSEndpoint upgrades the request and attaches the client to
// the hub for the lifetime of the connection.
func NotificationsWSEndpoint(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}

	client := &Client{
		hub:    GlobalHub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID.(uint),
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
