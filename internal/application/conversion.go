package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"faceduker/internal/domain/entity"
	"faceduker/internal/domain/port"
	"faceduker/pkg/log"
)

// ConversionService асинхронная очередь конвертации: принимает байты, обрабатывает в воркерах
// и рассылает результат в base64 всем подписчикам /topic/faces.
type ConversionService struct {
	pipeline    *PipelineService
	queue       port.Queue
	broadcaster port.Broadcaster
}

func NewConversionService(pipeline *PipelineService, queue port.Queue, broadcaster port.Broadcaster) *ConversionService {
	return &ConversionService{
		pipeline:    pipeline,
		queue:       queue,
		broadcaster: broadcaster,
	}
}

// Enqueue кладёт сырые байты картинки в очередь faceConverter и возвращает ID сообщения.
func (s *ConversionService) Enqueue(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty payload", entity.ErrDecodeFailure)
	}

	id, err := s.queue.Publish(ctx, entity.SubjectFaceConverter, data)
	if err != nil {
		return "", fmt.Errorf("enqueue image: %w", err)
	}

	log.WithRequestID(ctx).WithFields(log.Fields{"message_id": id, "bytes": len(data)}).Info("image is enqueued")
	return id, nil
}

// Resubmit декодирует base64 (допускается data URL) и кладёт картинку обратно в очередь.
func (s *ConversionService) Resubmit(ctx context.Context, encoded string) (string, error) {
	encoded = strings.TrimSpace(encoded)
	if i := strings.Index(encoded, ";base64,"); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: base64: %v", entity.ErrDecodeFailure, err)
	}

	return s.Enqueue(ctx, data)
}

// Handle обработчик воркера: конвертирует картинку мультяшным узором и рассылает её.
// При ошибке ничего не рассылается.
func (s *ConversionService) Handle(ctx context.Context, msg entity.Message) error {
	encoded, err := s.pipeline.Convert(ctx, msg.Payload, entity.DefaultVariant)
	if err != nil {
		return fmt.Errorf("convert message %s: %w", msg.ID, err)
	}

	if err := s.broadcaster.Broadcast(ctx, entity.TopicFaces, []byte(encoded)); err != nil {
		return fmt.Errorf("broadcast message %s: %w", msg.ID, err)
	}
	return nil
}
