package vision

import (
	"context"
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"

	"faceduker/internal/domain/entity"
)

// PigoLocator детектор лиц на чистом Go (каскад facefinder)
type PigoLocator struct {
	classifier   *pigo.Pigo
	MinSize      int
	ShiftFactor  float64
	ScaleFactor  float64
	IoUThreshold float64
	MinQuality   float32
}

// NewPigoLocator распаковывает каскад из файла
func NewPigoLocator(cascadeFile string, minQuality float64) (*PigoLocator, error) {
	data, err := os.ReadFile(cascadeFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read cascade %s: %v", entity.ErrDetectionUnavailable, cascadeFile, err)
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("%w: unpack cascade %s: %v", entity.ErrDetectionUnavailable, cascadeFile, err)
	}

	return &PigoLocator{
		classifier:   classifier,
		MinSize:      20,
		ShiftFactor:  0.1,
		ScaleFactor:  1.1,
		IoUThreshold: 0.2,
		MinQuality:   float32(minQuality),
	}, nil
}

// Detect запускает каскад по изображению. Каскад только читается, вызов безопасен из нескольких горутин.
func (d *PigoLocator) Detect(_ context.Context, img image.Image) ([]entity.FaceRect, error) {
	b := img.Bounds()
	cols, rows := b.Dx(), b.Dy()

	params := pigo.CascadeParams{
		MinSize:     d.MinSize,
		MaxSize:     maxInt(cols, rows),
		ShiftFactor: d.ShiftFactor,
		ScaleFactor: d.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(pigo.ImgToNRGBA(img)),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(params, 0)
	dets = d.classifier.ClusterDetections(dets, d.IoUThreshold)

	rects := make([]image.Rectangle, 0, len(dets))
	for _, det := range dets {
		if det.Q < d.MinQuality {
			continue
		}
		half := det.Scale / 2
		rects = append(rects, image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half))
	}

	return entity.ClampFaces(rects, image.Rect(0, 0, cols, rows)), nil
}

func (d *PigoLocator) Close() error {
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
