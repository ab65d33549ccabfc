package vision

import (
	"fmt"

	"faceduker/internal/domain/entity"
	"faceduker/internal/domain/port"
)

// Locator детектор лиц, держащий загруженную модель
type Locator interface {
	port.FaceLocator
	Close() error
}

// Options параметры создания детектора
type Options struct {
	Backend        string  // pigo, opencv или dlib
	ClassifierFile string  // файл каскада или каталог моделей
	MinQuality     float64 // порог качества детекции для pigo
}

// NewLocator загружает модель выбранного бэкенда один раз при старте.
// Ошибка загрузки оборачивает entity.ErrDetectionUnavailable.
func NewLocator(opts Options) (Locator, error) {
	switch opts.Backend {
	case "", "pigo":
		loc, err := NewPigoLocator(opts.ClassifierFile, opts.MinQuality)
		if err != nil {
			return nil, err
		}
		return loc, nil
	case "opencv":
		loc, err := NewCascadeLocator(opts.ClassifierFile)
		if err != nil {
			return nil, err
		}
		return loc, nil
	case "dlib":
		loc, err := NewDlibLocator(opts.ClassifierFile)
		if err != nil {
			return nil, err
		}
		return loc, nil
	}
	return nil, fmt.Errorf("%w: unknown backend %q", entity.ErrDetectionUnavailable, opts.Backend)
}
