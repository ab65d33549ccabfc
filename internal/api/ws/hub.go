package ws

import (
	"context"
	"encoding/json"
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"

	"faceduker/internal/domain/port"
)

// Команды фреймов канала сообщений
const (
	CommandSubscribe   = "SUBSCRIBE"
	CommandUnsubscribe = "UNSUBSCRIBE"
	CommandSend        = "SEND"
	CommandMessage     = "MESSAGE"
	CommandError       = "ERROR"
)

// Frame один JSON-фрейм канала
type Frame struct {
	Command     string `json:"command"`
	Destination string `json:"destination,omitempty"`
	Body        string `json:"body,omitempty"`
}

// SendFunc возвращает true, если данные отправлены
type SendFunc func([]byte) bool

// Client одно подключение; отправка идёт только через send
type Client struct {
	send SendFunc
}

func NewClient(send SendFunc) *Client {
	return &Client{send: send}
}

// Clients подписчики одного топика
type Clients []*Client

// Hub держит подписки сокетов на топики и рассылает им сообщения
type Hub struct {
	topics cmap.ConcurrentMap[string, Clients]
}

func NewHub() *Hub {
	return &Hub{topics: cmap.New[Clients]()}
}

// Subscribe подписывает клиента на топик; повторная подписка ничего не меняет
func (h *Hub) Subscribe(topic string, c *Client) {
	h.topics.Upsert(topic, Clients{c}, func(exist bool, valueInMap, newValue Clients) Clients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				return valueInMap
			}
		}
		return append(valueInMap, c)
	})
}

// Unsubscribe снимает подписку; топик без подписчиков удаляется
func (h *Hub) Unsubscribe(topic string, c *Client) {
	if !h.topics.Has(topic) {
		return
	}

	h.topics.Upsert(topic, Clients{}, func(exist bool, valueInMap, newValue Clients) Clients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})

	h.topics.RemoveCb(topic, func(_ string, v Clients, exists bool) bool {
		return exists && len(v) == 0
	})
}

// Topics число топиков, на которые есть подписчики
func (h *Hub) Topics() int {
	return h.topics.Count()
}

// UnsubscribeAll снимает все подписки клиента, вызывается при закрытии сокета
func (h *Hub) UnsubscribeAll(c *Client) {
	for _, topic := range h.topics.Keys() {
		h.Unsubscribe(topic, c)
	}
}

// Subscribers число подписчиков топика
func (h *Hub) Subscribers(topic string) int {
	clients, _ := h.topics.Get(topic)
	return len(clients)
}

// Broadcast отправляет MESSAGE-фрейм всем подписчикам топика. Отвалившиеся клиенты отписываются.
func (h *Hub) Broadcast(_ context.Context, topic string, payload []byte) error {
	data, err := json.Marshal(Frame{
		Command:     CommandMessage,
		Destination: topic,
		Body:        string(payload),
	})
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	clients, ok := h.topics.Get(topic)
	if !ok {
		return nil
	}

	for _, c := range clients {
		if !c.send(data) {
			h.Unsubscribe(topic, c)
		}
	}
	return nil
}

var _ port.Broadcaster = (*Hub)(nil)
