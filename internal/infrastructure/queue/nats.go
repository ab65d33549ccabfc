package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"faceduker/internal/domain/entity"
	"faceduker/internal/domain/port"
	"faceduker/pkg/log"
)

// NATSGroup имя queue group: сообщение получает только один из подписчиков группы
const NATSGroup = "faceduker"

// NATSQueue очередь поверх core NATS с queue group
type NATSQueue struct {
	nc     *nats.Conn
	prefix string
	buffer int
	done   chan struct{}
	once   sync.Once
}

// NewNATSQueue подключается к серверу NATS. Subject получает префикс prefix + ".".
func NewNATSQueue(url, prefix string, buffer int) (*NATSQueue, error) {
	nc, err := nats.Connect(url, nats.Name("faceduker"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	if buffer < 1 {
		buffer = 1
	}

	log.Info(log.Fields{"url": url}, "connected to nats")

	return &NATSQueue{
		nc:     nc,
		prefix: prefix,
		buffer: buffer,
		done:   make(chan struct{}),
	}, nil
}

func (q *NATSQueue) subject(name string) string {
	if q.prefix == "" {
		return name
	}
	return q.prefix + "." + name
}

func (q *NATSQueue) Publish(ctx context.Context, subject string, payload []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	msg := nats.NewMsg(q.subject(subject))
	msg.Header.Set(nats.MsgIdHdr, id)
	msg.Data = payload

	if err := q.nc.PublishMsg(msg); err != nil {
		if q.nc.IsClosed() {
			return "", entity.ErrQueueClosed
		}
		return "", fmt.Errorf("nats publish: %w", err)
	}
	return id, nil
}

func (q *NATSQueue) Receive(ctx context.Context, subject string) (<-chan entity.Message, error) {
	if q.nc.IsClosed() {
		return nil, entity.ErrQueueClosed
	}

	in := make(chan *nats.Msg, q.buffer)
	sub, err := q.nc.ChanQueueSubscribe(q.subject(subject), NATSGroup, in)
	if err != nil {
		return nil, fmt.Errorf("nats subscribe to %s: %w", subject, err)
	}

	out := make(chan entity.Message)
	go func() {
		defer close(out)
		defer func() {
			if err := sub.Unsubscribe(); err != nil && !q.nc.IsClosed() {
				log.Warn(log.Fields{"subject": subject, "error": err}, "failed to nats unsubscribe")
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case <-q.done:
				return
			case m := <-in:
				msg := entity.Message{
					ID:      m.Header.Get(nats.MsgIdHdr),
					Subject: subject,
					Payload: m.Data,
				}
				if msg.ID == "" {
					msg.ID = uuid.NewString()
				}
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

// Close дожидается отправки буфера публикаций и закрывает соединение
func (q *NATSQueue) Close() error {
	var err error
	q.once.Do(func() {
		close(q.done)
		err = q.nc.Drain()
	})
	return err
}

var _ port.Queue = (*NATSQueue)(nil)
