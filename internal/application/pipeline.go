package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"

	"faceduker/internal/decor"
	"faceduker/internal/domain/entity"
	"faceduker/internal/domain/port"
	"faceduker/internal/infrastructure/vision"
	"faceduker/pkg/log"
)

// PipelineService декодирует картинку, ищет лица, рисует узор и кодирует результат.
// Общего изменяемого состояния нет, детектор только читается.
type PipelineService struct {
	locator      port.FaceLocator
	resizedWidth int
}

// Output результат синхронного преобразования
type Output struct {
	Data        []byte
	ContentType string
	Faces       int
}

// NewPipelineService создаёт конвейер. resizedWidth задаёт ширину картинки в очереди конвертации.
func NewPipelineService(locator port.FaceLocator, resizedWidth int) *PipelineService {
	return &PipelineService{
		locator:      locator,
		resizedWidth: resizedWidth,
	}
}

// ResizedWidth ширина, до которой Convert уменьшает картинку
func (s *PipelineService) ResizedWidth() int {
	return s.resizedWidth
}

// Decorate ищет лица и рисует узор поверх каждого прямо в img.
// Без найденных лиц буфер не меняется.
func (s *PipelineService) Decorate(ctx context.Context, img *image.RGBA, variant entity.Variant) (int, error) {
	d, err := decor.For(variant)
	if err != nil {
		return 0, err
	}
	return s.decorate(ctx, img, d)
}

// Transform полный синхронный путь: байты на входе, байты того же формата на выходе.
func (s *PipelineService) Transform(ctx context.Context, data []byte, variant entity.Variant) (*Output, error) {
	d, err := decor.For(variant)
	if err != nil {
		return nil, err
	}

	img, format, err := vision.Decode(data)
	if err != nil {
		return nil, err
	}

	faces, err := s.decorate(ctx, img, d)
	if err != nil {
		return nil, err
	}

	out, contentType, err := vision.Encode(img, format)
	if err != nil {
		return nil, err
	}

	return &Output{Data: out, ContentType: contentType, Faces: faces}, nil
}

// Convert путь очереди: рисует узор, уменьшает до resizedWidth, кодирует в PNG и base64.
func (s *PipelineService) Convert(ctx context.Context, data []byte, variant entity.Variant) (string, error) {
	d, err := decor.For(variant)
	if err != nil {
		return "", err
	}

	img, _, err := vision.Decode(data)
	if err != nil {
		return "", err
	}

	if _, err := s.decorate(ctx, img, d); err != nil {
		return "", err
	}

	resized := vision.ResizeToWidth(img, s.resizedWidth)
	out, _, err := vision.Encode(resized, vision.FormatPNG)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(out), nil
}

func (s *PipelineService) decorate(ctx context.Context, img *image.RGBA, d decor.Decorator) (int, error) {
	if s.locator == nil {
		return 0, fmt.Errorf("%w: detector is not configured", entity.ErrDetectionUnavailable)
	}

	faces, err := s.locator.Detect(ctx, img)
	if err != nil {
		return 0, fmt.Errorf("detect faces: %w", err)
	}

	log.WithRequestID(ctx).WithField("faces", len(faces)).Info("faces are detected")

	decor.Apply(decor.NewRGBACanvas(img), faces, d)
	return len(faces), nil
}
