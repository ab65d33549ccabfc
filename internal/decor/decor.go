// Package decor рисует узоры поверх найденных лиц.
//
// Узор зависит только от геометрии прямоугольника: одинаковый прямоугольник
// всегда даёт одинаковый набор примитивов. Границы изображения не проверяются,
// примитивы обрезает сам Canvas.
package decor

import (
	"fmt"
	"image"
	"image/color"

	"faceduker/internal/domain/entity"
)

var (
	Black = color.RGBA{A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.RGBA{R: 255, A: 255}
	// CartoonSkin заливка мультяшного лица
	CartoonSkin = color.RGBA{R: 150, G: 214, B: 249, A: 255}
)

// Canvas набор примитивов, которыми рисуются узоры
type Canvas interface {
	// FillRect заливает полуоткрытый прямоугольник [Min, Max)
	FillRect(r image.Rectangle, c color.RGBA)
	// FillCircle рисует залитый круг
	FillCircle(center image.Point, radius int, c color.RGBA)
	// StrokeLowerArc рисует нижнюю половину эллипса с полуосями axes линией толщины thickness
	StrokeLowerArc(center, axes image.Point, thickness int, c color.RGBA)
}

// Decorator рисует узор поверх одного лица
type Decorator func(c Canvas, f entity.FaceRect)

// BlockMask чёрный верх, белый низ и красный круг в центре
func BlockMask(c Canvas, f entity.FaceRect) {
	x, y, w, h := f.X, f.Y, f.Width, f.Height

	c.FillRect(image.Rect(x, y, x+w, y+h/2), Black)
	c.FillRect(image.Rect(x, y+h/2, x+w, y+h), White)
	c.FillCircle(image.Pt(x+w/2, y+h/2), (w+h)/12, Red)
}

// CartoonFace заливка лица, два глаза и рот из двух полуэллипсов
func CartoonFace(c Canvas, f entity.FaceRect) {
	x, y, w, h := f.X, f.Y, f.Width, f.Height
	stroke := (w + h) / 30

	c.FillRect(f.Rect(), CartoonSkin)

	c.FillCircle(image.Pt(x+w/6, y+h/2), stroke, Black)
	c.FillCircle(image.Pt(x+w*5/6, y+h/2), stroke, Black)

	mouth := image.Pt(w/8, h/12)
	c.StrokeLowerArc(image.Pt(x+w*3/8, y+h*2/3), mouth, stroke, Black)
	c.StrokeLowerArc(image.Pt(x+w*5/8, y+h*2/3), mouth, stroke, Black)
}

var decorators = map[entity.Variant]Decorator{
	entity.VariantMask:    BlockMask,
	entity.VariantCartoon: CartoonFace,
}

// For возвращает узор по названию
func For(v entity.Variant) (Decorator, error) {
	d, ok := decorators[v]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownVariant, v)
	}
	return d, nil
}

// Apply рисует узор поверх каждого лица в переданном порядке.
// Пересекающиеся лица перекрывают друг друга в этом же порядке.
func Apply(c Canvas, faces []entity.FaceRect, d Decorator) {
	for _, f := range faces {
		d(c, f)
	}
}
