package queue

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"faceduker/internal/domain/entity"
	"faceduker/internal/domain/port"
)

// MemoryQueue очередь внутри процесса: по буферизованному каналу на каждый subject.
// Получатели одного subject конкурируют за сообщения.
type MemoryQueue struct {
	mu       sync.Mutex
	buffer   int
	subjects map[string]chan entity.Message
	done     chan struct{}
	once     sync.Once
}

func NewMemoryQueue(buffer int) *MemoryQueue {
	if buffer < 1 {
		buffer = 1
	}
	return &MemoryQueue{
		buffer:   buffer,
		subjects: make(map[string]chan entity.Message),
		done:     make(chan struct{}),
	}
}

func (q *MemoryQueue) channel(subject string) chan entity.Message {
	q.mu.Lock()
	defer q.mu.Unlock()

	ch, ok := q.subjects[subject]
	if !ok {
		ch = make(chan entity.Message, q.buffer)
		q.subjects[subject] = ch
	}
	return ch
}

// Publish блокируется, если буфер заполнен, пока не освободится место или не отменят ctx
func (q *MemoryQueue) Publish(ctx context.Context, subject string, payload []byte) (string, error) {
	select {
	case <-q.done:
		return "", entity.ErrQueueClosed
	default:
	}

	msg := entity.Message{
		ID:      uuid.NewString(),
		Subject: subject,
		Payload: payload,
	}

	select {
	case q.channel(subject) <- msg:
		return msg.ID, nil
	case <-q.done:
		return "", entity.ErrQueueClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (q *MemoryQueue) Receive(ctx context.Context, subject string) (<-chan entity.Message, error) {
	select {
	case <-q.done:
		return nil, entity.ErrQueueClosed
	default:
	}

	in := q.channel(subject)
	out := make(chan entity.Message)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-q.done:
				return
			case msg := <-in:
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				case <-q.done:
					return
				}
			}
		}
	}()

	return out, nil
}

// Close останавливает всех получателей; неразобранные сообщения теряются
func (q *MemoryQueue) Close() error {
	q.once.Do(func() { close(q.done) })
	return nil
}

var _ port.Queue = (*MemoryQueue)(nil)
