package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"faceduker/pkg/log"
)

// RouteFunc обработчик SEND-фрейма для одного destination
type RouteFunc func(ctx context.Context, body string) error

var errUnknownDestination = errors.New("unknown destination")

// Handler принимает WebSocket-подключения и разбирает фреймы
type Handler struct {
	hub       *Hub
	readLimit int64
	routes    map[string]RouteFunc
	upgrader  websocket.Upgrader
}

func NewHandler(hub *Hub, readLimit int64) *Handler {
	return &Handler{
		hub:       hub,
		readLimit: readLimit,
		routes:    make(map[string]RouteFunc),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Route регистрирует обработчик SEND для destination, например /app/greet
func (h *Handler) Route(destination string, fn RouteFunc) {
	h.routes[destination] = fn
}

// Serve апгрейдит запрос и читает фреймы до закрытия сокета
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn(log.Fields{"error": err}, "websocket upgrade failed")
		return
	}
	defer conn.Close()

	if h.readLimit > 0 {
		conn.SetReadLimit(h.readLimit)
	}

	var (
		writeMu   sync.Mutex
		connected atomic.Bool
	)
	connected.Store(true)

	write := func(data []byte) bool {
		if !connected.Load() {
			return false
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Debug(log.Fields{"error": err}, "websocket write failed")
			connected.Store(false)
			return false
		}
		return true
	}

	client := NewClient(write)
	defer h.hub.UnsubscribeAll(client)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug(log.Fields{"error": err}, "websocket read failed")
			}
			connected.Store(false)
			return
		}

		switch text := strings.TrimSpace(string(message)); text {
		case "ping":
			write([]byte("pong"))
			continue
		case "pong":
			continue
		}

		if err := h.handleFrame(c.Request.Context(), client, message); err != nil {
			h.sendError(client, err)
		}
	}
}

func (h *Handler) handleFrame(ctx context.Context, client *Client, message []byte) error {
	var frame Frame
	if err := json.Unmarshal(message, &frame); err != nil {
		return fmt.Errorf("malformed frame: %w", err)
	}

	switch strings.ToUpper(frame.Command) {
	case CommandSubscribe:
		if frame.Destination == "" {
			return errors.New("destination is required")
		}
		h.hub.Subscribe(frame.Destination, client)
		return nil
	case CommandUnsubscribe:
		h.hub.Unsubscribe(frame.Destination, client)
		return nil
	case CommandSend:
		route, ok := h.routes[frame.Destination]
		if !ok {
			return fmt.Errorf("%w: %s", errUnknownDestination, frame.Destination)
		}
		ctx = log.ContextWithRequestID(context.WithoutCancel(ctx), uuid.NewString())
		return route(ctx, frame.Body)
	}
	return fmt.Errorf("unknown command %q", frame.Command)
}

func (h *Handler) sendError(client *Client, err error) {
	data, mErr := json.Marshal(Frame{Command: CommandError, Body: err.Error()})
	if mErr != nil {
		return
	}
	client.send(data)
}
