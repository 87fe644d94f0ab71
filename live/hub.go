package live

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Room-имена каналов трансляции. Клиент подписывается ровно на одну
// комнату на соединение.
func MatchRoom(matchID int) string   { return fmt.Sprintf("match_%d", matchID) }
func DetailsRoom(matchID int) string { return fmt.Sprintf("details_%d", matchID) }

// LobbyRoom — общая комната для событий жизненного цикла матчей
// (создание нового матча), не привязанных к конкретному match_id.
const LobbyRoom = "matches"

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
	RoomID  string `json:"room_id,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type Client struct {
	ID   string
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
	Room string

	mu     sync.Mutex
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, room string) *Client {
	return &Client{
		ID:   uuid.NewString(),
		Hub:  hub,
		Conn: conn,
		Send: make(chan []byte, 16),
		Room: room,
	}
}

// RoomObserver уведомляется, когда в комнате появляется первый клиент и
// когда уходит последний. Вызовы приходят из цикла хаба и не должны
// блокировать.
type RoomObserver interface {
	RoomOpened(room string)
	RoomClosed(room string)
}

type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	rooms    map[string]map[*Client]bool
	mu       sync.RWMutex
	observer RoomObserver
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// SetRoomObserver должен вызываться до Run.
func (h *Hub) SetRoomObserver(obs RoomObserver) {
	h.observer = obs
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			opened := false
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
				opened = true
			}
			h.rooms[client.Room][client] = true
			count := len(h.rooms[client.Room])
			h.mu.Unlock()

			h.logger.Info("live client joined",
				slog.String("client_id", client.ID),
				slog.String("room", client.Room),
				slog.Int("room_size", count))
			if opened && h.observer != nil {
				h.observer.RoomOpened(client.Room)
			}

		case client := <-h.Unregister:
			h.mu.Lock()
			closedRoom := false
			if roomClients, ok := h.rooms[client.Room]; ok {
				if _, okClient := roomClients[client]; okClient {
					client.mu.Lock()
					if !client.closed {
						close(client.Send)
						client.closed = true
					}
					client.mu.Unlock()
					delete(roomClients, client)
					if len(roomClients) == 0 {
						delete(h.rooms, client.Room)
						closedRoom = true
					}
				}
			}
			h.mu.Unlock()

			h.logger.Info("live client left",
				slog.String("client_id", client.ID),
				slog.String("room", client.Room))
			if closedRoom && h.observer != nil {
				h.observer.RoomClosed(client.Room)
			}
		}
	}
}

// BroadcastToRoom сериализует сообщение один раз и раздаёт его всем
// клиентам комнаты. Клиент с переполненным каналом пропускается, его
// снимет ReadPump при разрыве соединения.
func (h *Hub) BroadcastToRoom(room string, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[room]
	if !ok {
		return
	}

	message.RoomID = room
	payload, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal live message",
			slog.String("room", room), slog.Any("error", err))
		return
	}

	for client := range roomClients {
		client.mu.Lock()
		if client.closed {
			client.mu.Unlock()
			continue
		}
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("live client send buffer full, dropping frame",
				slog.String("client_id", client.ID), slog.String("room", room))
		}
		client.mu.Unlock()
	}
}

// RoomSize возвращает текущее число клиентов в комнате.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// ReadPump читает соединение до разрыва. Входящие фреймы от клиентов
// игнорируются, канал односторонний.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("live client read error",
					slog.String("client_id", c.ID), slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Сливаем накопившиеся фреймы в тот же writer.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
