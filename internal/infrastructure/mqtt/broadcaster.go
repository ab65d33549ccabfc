package mqtt

import (
	"context"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"faceduker/internal/domain/port"
	"faceduker/pkg/log"
)

// publisher часть mqtt.Client, нужная для рассылки
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Broadcaster дублирует рассылки в MQTT: /topic/faces уходит в <prefix>/topic/faces
type Broadcaster struct {
	client publisher
	prefix string
}

// Connect подключается к брокеру и возвращает готовый Broadcaster
func Connect(broker, prefix string) (*Broadcaster, error) {
	clientID := "faceduker-" + uuid.NewString()
	log.Info(log.Fields{"broker": broker, "client_id": clientID}, "connecting to mqtt")

	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(5 * time.Second)
	opts.SetConnectTimeout(30 * time.Second)
	opts.SetAutoReconnect(true)
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn(log.Fields{"error": err}, "mqtt connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt: %w", token.Error())
	}

	return newBroadcaster(client, prefix), nil
}

func newBroadcaster(client publisher, prefix string) *Broadcaster {
	return &Broadcaster{client: client, prefix: strings.TrimSuffix(prefix, "/")}
}

// Topic переводит имя топика рассылки в топик MQTT
func (b *Broadcaster) Topic(topic string) string {
	topic = strings.TrimPrefix(topic, "/")
	if b.prefix == "" {
		return topic
	}
	return b.prefix + "/" + topic
}

func (b *Broadcaster) Broadcast(ctx context.Context, topic string, payload []byte) error {
	token := b.client.Publish(b.Topic(topic), 0, false, payload)

	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish to %s: %w", topic, err)
	}
	return nil
}

func (b *Broadcaster) Close() error {
	b.client.Disconnect(250)
	return nil
}

var _ port.Broadcaster = (*Broadcaster)(nil)
