package decor

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// RGBACanvas рисует примитивы прямо в *image.RGBA.
// Всё, что выходит за границы изображения, отбрасывается.
type RGBACanvas struct {
	img *image.RGBA
}

func NewRGBACanvas(img *image.RGBA) *RGBACanvas {
	return &RGBACanvas{img: img}
}

// Image возвращает изображение, в которое рисует холст
func (c *RGBACanvas) Image() *image.RGBA {
	return c.img
}

func (c *RGBACanvas) FillRect(r image.Rectangle, col color.RGBA) {
	r = r.Canon().Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *RGBACanvas) FillCircle(center image.Point, radius int, col color.RGBA) {
	if radius < 0 {
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			c.set(center.X+dx, center.Y+dy, col)
		}
	}
}

func (c *RGBACanvas) StrokeLowerArc(center, axes image.Point, thickness int, col color.RGBA) {
	if axes.X < 0 || axes.Y < 0 {
		return
	}
	pen := thickness / 2
	if pen < 0 {
		pen = 0
	}

	// Шаг выбирается так, чтобы соседние точки дуги отстояли не больше чем на пиксель.
	steps := 2*(axes.X+axes.Y) + 1
	a, b := float64(axes.X), float64(axes.Y)
	for i := 0; i <= steps; i++ {
		t := math.Pi * float64(i) / float64(steps)
		x := center.X + int(math.Round(a*math.Cos(t)))
		y := center.Y + int(math.Round(b*math.Sin(t)))
		c.FillCircle(image.Pt(x, y), pen, col)
	}
}

func (c *RGBACanvas) set(x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(c.img.Bounds()) {
		return
	}
	c.img.SetRGBA(x, y, col)
}

// ToRGBA копирует произвольное изображение в новый *image.RGBA с началом в (0, 0)
func ToRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

var _ Canvas = (*RGBACanvas)(nil)
