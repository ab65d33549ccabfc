package port

import "context"

// Broadcaster рассылает сообщение всем текущим подписчикам топика
type Broadcaster interface {
	Broadcast(ctx context.Context, topic string, payload []byte) error
}
