package worker

import (
	"context"
	"fmt"
	"sync"

	"faceduker/internal/domain/entity"
	"faceduker/internal/domain/port"
	"faceduker/pkg/log"
)

// Handler обрабатывает одно сообщение очереди. Ошибка логируется, сообщение отбрасывается.
type Handler func(ctx context.Context, msg entity.Message) error

// Pool фиксированное число воркеров, разбирающих одну очередь
type Pool struct {
	queue   port.Queue
	subject string
	size    int
	handler Handler
	wg      sync.WaitGroup
}

func NewPool(queue port.Queue, subject string, size int, handler Handler) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		queue:   queue,
		subject: subject,
		size:    size,
		handler: handler,
	}
}

// Start подписывается на очередь и запускает воркеры. Они работают, пока не отменят ctx
// или не закроют очередь; начатое сообщение дорабатывается до конца.
func (p *Pool) Start(ctx context.Context) error {
	msgs, err := p.queue.Receive(ctx, p.subject)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", p.subject, err)
	}

	log.Info(log.Fields{"subject": p.subject, "workers": p.size}, "worker pool started")

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go func(workerID int) {
			defer p.wg.Done()
			for msg := range msgs {
				p.process(ctx, workerID, msg)
			}
		}(i)
	}

	return nil
}

// Wait ждёт завершения всех воркеров
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) process(ctx context.Context, workerID int, msg entity.Message) {
	// Остановка сервера не прерывает уже взятое сообщение
	ctx = log.ContextWithRequestID(context.WithoutCancel(ctx), msg.ID)
	entry := log.WithRequestID(ctx).WithFields(log.Fields{"subject": p.subject, "worker": workerID})

	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", r).Error("message handler panicked")
		}
	}()

	if err := p.handler(ctx, msg); err != nil {
		entry.WithError(err).Error("failed to handle message")
		return
	}
	entry.Debug("message handled")
}
