package port

import (
	"context"
	"image"

	"faceduker/internal/domain/entity"
)

// FaceLocator интерфейс детектора лиц
type FaceLocator interface {
	// Detect ищет лица и возвращает их прямоугольники в порядке, который выдал детектор.
	// Порядок не гарантируется, пересечения и дубликаты возможны.
	Detect(ctx context.Context, img image.Image) ([]entity.FaceRect, error)
}
