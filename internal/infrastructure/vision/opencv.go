//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"faceduker/internal/domain/entity"
)

// CascadeLocator детектор лиц на каскаде Хаара из OpenCV
type CascadeLocator struct {
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
}

// NewCascadeLocator загружает haarcascade из файла
func NewCascadeLocator(path string) (*CascadeLocator, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("%w: load cascade %s", entity.ErrDetectionUnavailable, path)
	}
	return &CascadeLocator{classifier: classifier}, nil
}

// Detect переводит изображение в оттенки серого и запускает DetectMultiScale.
// CascadeClassifier не потокобезопасен, вызовы идут по очереди.
func (d *CascadeLocator) Detect(_ context.Context, img image.Image) ([]entity.FaceRect, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecodeFailure, err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("%w: empty image", entity.ErrDecodeFailure)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	gocv.EqualizeHist(gray, &gray)

	d.mu.Lock()
	rects := d.classifier.DetectMultiScale(gray)
	d.mu.Unlock()

	return entity.ClampFaces(rects, image.Rect(0, 0, mat.Cols(), mat.Rows())), nil
}

func (d *CascadeLocator) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classifier.Close()
}
