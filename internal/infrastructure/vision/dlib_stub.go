//go:build !goface
// +build !goface

package vision

import (
	"context"
	"fmt"
	"image"

	"faceduker/internal/domain/entity"
)

// DlibLocator заглушка: сборка без тега goface
type DlibLocator struct{}

// NewDlibLocator возвращает ошибку, если сборка без тега goface.
func NewDlibLocator(modelsDir string) (*DlibLocator, error) {
	return nil, fmt.Errorf("%w: goface build tag is not enabled (%s)", entity.ErrDetectionUnavailable, modelsDir)
}

func (d *DlibLocator) Detect(_ context.Context, _ image.Image) ([]entity.FaceRect, error) {
	return nil, fmt.Errorf("%w: goface build tag is not enabled", entity.ErrDetectionUnavailable)
}

func (d *DlibLocator) Close() error {
	return nil
}
