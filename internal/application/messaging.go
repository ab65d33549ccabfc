package app

import (
	"context"
	"fmt"

	"faceduker/internal/domain/entity"
	"faceduker/internal/domain/port"
	"faceduker/pkg/log"
)

// MessagingService текстовые сообщения: очередь hello и приветствия в /topic/greetings
type MessagingService struct {
	queue       port.Queue
	broadcaster port.Broadcaster
}

func NewMessagingService(queue port.Queue, broadcaster port.Broadcaster) *MessagingService {
	return &MessagingService{
		queue:       queue,
		broadcaster: broadcaster,
	}
}

// Send отправляет текст в очередь hello
func (s *MessagingService) Send(ctx context.Context, text string) (string, error) {
	id, err := s.queue.Publish(ctx, entity.SubjectHello, []byte(text))
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return id, nil
}

// HandleHello слушатель очереди hello, просто пишет сообщение в лог
func (s *MessagingService) HandleHello(ctx context.Context, msg entity.Message) error {
	log.WithRequestID(ctx).WithFields(log.Fields{
		"message_id": msg.ID,
		"msg":        string(msg.Payload),
	}).Info("received!")
	return nil
}

// Greet рассылает приветствие всем подписчикам /topic/greetings
func (s *MessagingService) Greet(ctx context.Context, name string) (string, error) {
	log.WithRequestID(ctx).WithField("name", name).Info("greet received")

	greeting := "Hello " + name
	if err := s.broadcaster.Broadcast(ctx, entity.TopicGreetings, []byte(greeting)); err != nil {
		return "", fmt.Errorf("broadcast greeting: %w", err)
	}
	return greeting, nil
}
