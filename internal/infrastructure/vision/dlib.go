//go:build goface
// +build goface

package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"sync"

	"github.com/Kagami/go-face"

	"faceduker/internal/domain/entity"
)

// DlibLocator HOG-детектор dlib через go-face
type DlibLocator struct {
	mu  sync.Mutex
	rec *face.Recognizer
}

// NewDlibLocator загружает модели dlib из каталога modelsDir
func NewDlibLocator(modelsDir string) (*DlibLocator, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("%w: load models from %s: %v", entity.ErrDetectionUnavailable, modelsDir, err)
	}
	return &DlibLocator{rec: rec}, nil
}

// Detect go-face принимает только JPEG, поэтому кадр перекодируется.
func (d *DlibLocator) Detect(_ context.Context, img image.Image) ([]entity.FaceRect, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrEncodeFailure, err)
	}

	d.mu.Lock()
	faces, err := d.rec.Recognize(buf.Bytes())
	d.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("dlib recognize: %w", err)
	}

	rects := make([]image.Rectangle, 0, len(faces))
	for _, f := range faces {
		rects = append(rects, f.Rectangle)
	}

	b := img.Bounds()
	return entity.ClampFaces(rects, image.Rect(0, 0, b.Dx(), b.Dy())), nil
}

func (d *DlibLocator) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rec.Close()
	return nil
}
