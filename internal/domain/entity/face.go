package entity

import "image"

// FaceRect прямоугольник найденного лица в координатах изображения
type FaceRect struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина в пикселях
	Height int // высота в пикселях
}

// FaceRectFrom переводит image.Rectangle в FaceRect
func FaceRectFrom(r image.Rectangle) FaceRect {
	r = r.Canon()
	return FaceRect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Center возвращает координаты центра прямоугольника
func (f FaceRect) Center() (x, y int) {
	return f.X + f.Width/2, f.Y + f.Height/2
}

// Rect возвращает прямоугольник в виде image.Rectangle
func (f FaceRect) Rect() image.Rectangle {
	return image.Rect(f.X, f.Y, f.X+f.Width, f.Y+f.Height)
}

// Valid проверяет инварианты детектора: неотрицательный угол и ненулевой размер
func (f FaceRect) Valid() bool {
	return f.X >= 0 && f.Y >= 0 && f.Width > 0 && f.Height > 0
}

// ClampFaces переводит прямоугольники детектора в FaceRect.
// Левый верхний угол прижимается к началу изображения, правый нижний остаётся как есть:
// лицо у края может выходить за границу, лишнее отбросит холст при рисовании.
// Прямоугольники, не задевающие изображение, отбрасываются. Порядок сохраняется, дубликаты не удаляются.
func ClampFaces(rects []image.Rectangle, bounds image.Rectangle) []FaceRect {
	area := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
	faces := make([]FaceRect, 0, len(rects))
	for _, r := range rects {
		// Координаты считаются от левого верхнего угла изображения.
		r = r.Canon().Sub(bounds.Min)
		if !r.Overlaps(area) {
			continue
		}
		if r.Min.X < 0 {
			r.Min.X = 0
		}
		if r.Min.Y < 0 {
			r.Min.Y = 0
		}
		faces = append(faces, FaceRectFrom(r))
	}
	return faces
}
