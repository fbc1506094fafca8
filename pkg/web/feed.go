// Live moderation feed. Dashboard clients connect over websocket and get a
// JSON message for every suspension lifecycle event.
package web

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// FeedEvent is the message pushed to every connected feed client.
type FeedEvent struct {
	Event     string `json:"event"`
	DiscordID string `json:"discord_id"`
	Detail    string `json:"detail,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// FeedHub tracks the connected websocket clients and broadcasts events.
type FeedHub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
}

var (
	feedHub  *FeedHub
	feedOnce sync.Once
)

// Feed returns the global feed hub.
func Feed() *FeedHub {
	feedOnce.Do(func() {
		feedHub = &FeedHub{
			clients: make(map[*websocket.Conn]struct{}),
			upgrader: websocket.Upgrader{
				ReadBufferSize:  1024,
				WriteBufferSize: 1024,
				// The host middleware already filtered the request.
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		}
	})
	return feedHub
}

// Handler upgrades the request and keeps the connection registered until the
// client goes away. The feed is write-only; client messages are discarded.
func (h *FeedHub) Handler(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(fmt.Sprintf("Fallo al abrir websocket del feed: %v", err), "WebServer")
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	logger.Info(fmt.Sprintf("Cliente conectado al feed (%d activos)", count), "WebServer")

	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *FeedHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// PublishLifecycle broadcasts one event to every connected client. Clients
// that fail the write are dropped.
func (h *FeedHub) PublishLifecycle(event, discordID, detail string) {
	payload, err := json.Marshal(FeedEvent{
		Event:     event,
		DiscordID: discordID,
		Detail:    detail,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}

	h.mu.Lock()
	var dead []*websocket.Conn
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			dead = append(dead, conn)
		}
	}
	for _, conn := range dead {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// ClientCount returns how many feed clients are connected.
func (h *FeedHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
