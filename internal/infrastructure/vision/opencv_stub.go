//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"fmt"
	"image"

	"faceduker/internal/domain/entity"
)

// CascadeLocator заглушка: сборка без тега gocv
type CascadeLocator struct{}

// NewCascadeLocator возвращает ошибку, если сборка без тега gocv.
func NewCascadeLocator(path string) (*CascadeLocator, error) {
	return nil, fmt.Errorf("%w: gocv build tag is not enabled (%s)", entity.ErrDetectionUnavailable, path)
}

func (d *CascadeLocator) Detect(_ context.Context, _ image.Image) ([]entity.FaceRect, error) {
	return nil, fmt.Errorf("%w: gocv build tag is not enabled", entity.ErrDetectionUnavailable)
}

func (d *CascadeLocator) Close() error {
	return nil
}
