package port

import (
	"context"

	"faceduker/internal/domain/entity"
)

// Queue интерфейс очереди сообщений
type Queue interface {
	// Publish отправляет payload в очередь subject и возвращает ID сообщения
	Publish(ctx context.Context, subject string, payload []byte) (string, error)

	// Receive подписывается на очередь. Канал закрывается при отмене ctx или закрытии очереди.
	// Каждое сообщение доставляется только одному получателю.
	Receive(ctx context.Context, subject string) (<-chan entity.Message, error)

	// Close освобождает соединения
	Close() error
}
