package websocket

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	domainPlanner "github.com/AzielCF/az-planner/domains/planner"
	"github.com/AzielCF/az-planner/infrastructure/valkey"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	CodeFetchStats = "FETCH_STATS"
	CodeStats      = "STATS"

	broadcastBuffer = 64
)

type client struct{}

// directMessage is delivered to a single connection only.
type directMessage struct {
	conn    *websocket.Conn
	message BroadcastMessage
}

type BroadcastMessage struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Result   any    `json:"result"`
	SenderID string `json:"sender_id,omitempty"`
}

// Hub fans planner events out to every websocket connection of this
// process and, when Valkey is configured, to the other instances.
type Hub struct {
	clients    map[*websocket.Conn]client
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan BroadcastMessage
	direct     chan directMessage
	done       chan struct{}

	vkClient *valkey.Client
	channel  string
	localID  string
}

func NewHub(serverID string) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]client),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan BroadcastMessage, broadcastBuffer),
		direct:     make(chan directMessage, broadcastBuffer),
		done:       make(chan struct{}),
		localID:    serverID,
	}
}

// SetValkeyClient initializes the distributed broadcast system
func (h *Hub) SetValkeyClient(client *valkey.Client) {
	h.vkClient = client
	h.channel = "ws_broadcast"
}

// Notify implements planner.INotifier. It never blocks the caller; when
// the hub is saturated the message is dropped.
func (h *Hub) Notify(code, message string, result any) {
	select {
	case h.broadcast <- BroadcastMessage{Code: code, Message: message, Result: result}:
	default:
		logrus.Warnf("[WS] Broadcast queue full, dropping %s", code)
	}
}

// join hands conn to the hub. It reports false once the hub has stopped.
func (h *Hub) join(conn *websocket.Conn) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// leave removes conn from the hub; it returns immediately once the hub has stopped.
func (h *Hub) leave(conn *websocket.Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// reply queues message for conn alone. Writes stay on the hub goroutine so
// a connection never has two concurrent writers.
func (h *Hub) reply(conn *websocket.Conn, message BroadcastMessage) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.direct <- directMessage{conn: conn, message: message}:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) sendTo(conn *websocket.Conn, message BroadcastMessage) {
	if _, ok := h.clients[conn]; !ok {
		return
	}
	data, err := json.Marshal(message)
	if err != nil {
		logrus.Errorf("[WS] Marshal error: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		logrus.Errorf("[WS] Write error: %v", err)
		h.closeConnection(conn)
	}
}

func (h *Hub) handleRegister(conn *websocket.Conn) {
	h.clients[conn] = client{}
	logrus.Debugf("[WS] Connection registered (%d open)", len(h.clients))
}

func (h *Hub) handleUnregister(conn *websocket.Conn) {
	delete(h.clients, conn)
	logrus.Debugf("[WS] Connection unregistered (%d open)", len(h.clients))
}

func (h *Hub) broadcastToLocal(message BroadcastMessage) {
	marshalMessage, err := json.Marshal(message)
	if err != nil {
		logrus.Errorf("[WS] Marshal error: %v", err)
		return
	}

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, marshalMessage); err != nil {
			logrus.Errorf("[WS] Write error: %v", err)
			h.closeConnection(conn)
		}
	}
}

func (h *Hub) publishToValkey(ctx context.Context, message BroadcastMessage) {
	message.SenderID = h.localID

	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	if err := h.vkClient.Publish(ctx, h.channel, data); err != nil {
		logrus.Errorf("[WS] Failed to publish to Valkey: %v", err)
	}
}

// relay reports whether a message received from Valkey should reach local
// clients. Messages published by this instance were already delivered.
func (h *Hub) relay(payload []byte) (BroadcastMessage, bool) {
	var msg BroadcastMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		logrus.Debugf("[WS] Ignoring malformed Valkey payload: %v", err)
		return msg, false
	}
	if msg.SenderID == h.localID {
		return msg, false
	}
	return msg, true
}

func (h *Hub) startValkeySubscriber(ctx context.Context, remote chan<- BroadcastMessage) {
	logrus.Info("[WS] Starting Valkey Pub/Sub subscriber for distributed events")
	go func() {
		err := h.vkClient.Subscribe(ctx, h.channel, func(payload []byte) {
			if msg, ok := h.relay(payload); ok {
				remote <- msg
			}
		})
		if err != nil && ctx.Err() == nil {
			logrus.Errorf("[WS] Valkey subscriber failed: %v", err)
		}
	}()
}

func (h *Hub) closeConnection(conn *websocket.Conn) {
	_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
	_ = conn.Close()
	delete(h.clients, conn)
}

// Run owns the connection set until ctx is cancelled. It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	remote := make(chan BroadcastMessage, broadcastBuffer)
	if h.vkClient != nil {
		h.startValkeySubscriber(ctx, remote)
	}

	for {
		select {
		case <-ctx.Done():
			for conn := range h.clients {
				h.closeConnection(conn)
			}
			return

		case conn := <-h.register:
			h.handleRegister(conn)

		case conn := <-h.unregister:
			h.handleUnregister(conn)

		case message := <-remote:
			h.broadcastToLocal(message)

		case d := <-h.direct:
			h.sendTo(d.conn, d.message)

		case message := <-h.broadcast:
			h.broadcastToLocal(message)
			if h.vkClient != nil {
				h.publishToValkey(ctx, message)
			}
		}
	}
}

func RegisterRoutes(app fiber.Router, hub *Hub, service domainPlanner.IPlannerUsecase) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})

	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		defer func() {
			hub.leave(conn)
			_ = conn.Close()
		}()

		if !hub.join(conn) {
			return
		}

		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					logrus.Warnf("[WS] read error: %v", err)
				}
				return
			}

			if messageType != websocket.TextMessage {
				logrus.Debugf("[WS] unsupported message type: %d", messageType)
				continue
			}

			var messageData BroadcastMessage
			if err := json.Unmarshal(message, &messageData); err != nil {
				logrus.Warnf("[WS] unmarshal error: %v", err)
				return
			}

			if messageData.Code == CodeFetchStats {
				reply, err := statsReply(context.Background(), service)
				if err != nil {
					logrus.Errorf("[WS] failed to load stats: %v", err)
					continue
				}
				// stats describe this instance's calendar, so they go to the asker only
				if !hub.reply(conn, reply) {
					return
				}
			}
		}
	}))
}

func statsReply(ctx context.Context, service domainPlanner.IPlannerUsecase) (BroadcastMessage, error) {
	stats, err := service.Stats(ctx)
	if err != nil {
		return BroadcastMessage{}, err
	}
	return BroadcastMessage{Code: CodeStats, Message: "Calendar stats", Result: stats}, nil
}
