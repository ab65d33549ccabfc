package decor

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"faceduker/internal/domain/entity"
)

type primitive struct {
	kind      string
	rect      image.Rectangle
	center    image.Point
	radius    int
	axes      image.Point
	thickness int
	color     color.RGBA
}

// recorder запоминает вызовы примитивов вместо рисования
type recorder struct {
	calls []primitive
}

func (r *recorder) FillRect(rect image.Rectangle, c color.RGBA) {
	r.calls = append(r.calls, primitive{kind: "rect", rect: rect, color: c})
}

func (r *recorder) FillCircle(center image.Point, radius int, c color.RGBA) {
	r.calls = append(r.calls, primitive{kind: "circle", center: center, radius: radius, color: c})
}

func (r *recorder) StrokeLowerArc(center, axes image.Point, thickness int, c color.RGBA) {
	r.calls = append(r.calls, primitive{kind: "arc", center: center, axes: axes, thickness: thickness, color: c})
}

func (r *recorder) byKind(kind string) []primitive {
	var out []primitive
	for _, p := range r.calls {
		if p.kind == kind {
			out = append(out, p)
		}
	}
	return out
}

func TestBlockMask_Primitives(t *testing.T) {
	cases := []entity.FaceRect{
		{X: 10, Y: 10, Width: 100, Height: 100},
		{X: 0, Y: 0, Width: 37, Height: 53},
		{X: 250, Y: 7, Width: 1, Height: 1},
	}

	for _, f := range cases {
		rec := &recorder{}
		BlockMask(rec, f)

		circles := rec.byKind("circle")
		require.Len(t, circles, 1)
		cx, cy := f.Center()
		require.Equal(t, image.Pt(cx, cy), circles[0].center)
		require.Equal(t, (f.Width+f.Height)/12, circles[0].radius)

		rects := rec.byKind("rect")
		require.Len(t, rects, 2)
		top, bottom := rects[0].rect, rects[1].rect
		require.Equal(t, Black, rects[0].color)
		require.Equal(t, White, rects[1].color)
		// Две половины без зазора и пересечения покрывают весь прямоугольник лица
		require.Equal(t, f.Rect(), top.Union(bottom))
		require.True(t, top.Intersect(bottom).Empty())
		require.Equal(t, top.Max.Y, bottom.Min.Y)
		require.Equal(t, f.Y+f.Height/2, top.Max.Y)
	}
}

func TestCartoonFace_Primitives(t *testing.T) {
	f := entity.FaceRect{X: 10, Y: 20, Width: 120, Height: 96}
	rec := &recorder{}
	CartoonFace(rec, f)

	rects := rec.byKind("rect")
	require.Len(t, rects, 1)
	require.Equal(t, f.Rect(), rects[0].rect)
	require.Equal(t, CartoonSkin, rects[0].color)

	eyes := rec.byKind("circle")
	require.Len(t, eyes, 2)
	require.Equal(t, image.Pt(10+120/6, 20+96/2), eyes[0].center)
	require.Equal(t, image.Pt(10+120*5/6, 20+96/2), eyes[1].center)
	for _, e := range eyes {
		require.Equal(t, (120+96)/30, e.radius)
	}

	mouth := rec.byKind("arc")
	require.Len(t, mouth, 2)
	require.Equal(t, image.Pt(10+120*3/8, 20+96*2/3), mouth[0].center)
	require.Equal(t, image.Pt(10+120*5/8, 20+96*2/3), mouth[1].center)
	for _, m := range mouth {
		require.Equal(t, image.Pt(120/8, 96/12), m.axes)
		require.Equal(t, (120+96)/30, m.thickness)
	}
}

func TestCartoonFace_IndependentOfPosition(t *testing.T) {
	a := entity.FaceRect{X: 0, Y: 0, Width: 64, Height: 80}
	b := entity.FaceRect{X: 333, Y: 41, Width: 64, Height: 80}

	ra, rb := &recorder{}, &recorder{}
	CartoonFace(ra, a)
	CartoonFace(rb, b)

	require.Len(t, rb.calls, len(ra.calls))
	shift := image.Pt(b.X-a.X, b.Y-a.Y)
	for i := range ra.calls {
		pa, pb := ra.calls[i], rb.calls[i]
		require.Equal(t, pa.kind, pb.kind)
		if pa.kind == "rect" {
			require.Equal(t, pa.rect.Add(shift), pb.rect)
		} else {
			require.Equal(t, pa.center.Add(shift), pb.center)
		}
		require.Equal(t, pa.radius, pb.radius)
		require.Equal(t, pa.axes, pb.axes)
	}
}

func TestFor(t *testing.T) {
	d, err := For(entity.VariantMask)
	require.NoError(t, err)
	require.NotNil(t, d)

	_, err = For("zebra")
	require.ErrorIs(t, err, entity.ErrUnknownVariant)
}

func TestApply_NoFacesIsNoop(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	before := append([]uint8(nil), img.Pix...)

	Apply(NewRGBACanvas(img), nil, BlockMask)
	Apply(NewRGBACanvas(img), []entity.FaceRect{}, CartoonFace)
	require.Equal(t, before, img.Pix)
}

func TestApply_Deterministic(t *testing.T) {
	faces := []entity.FaceRect{
		{X: 5, Y: 5, Width: 60, Height: 60},
		{X: 40, Y: 30, Width: 50, Height: 70}, // пересекается с первым
	}
	for _, d := range []Decorator{BlockMask, CartoonFace} {
		a := image.NewRGBA(image.Rect(0, 0, 120, 120))
		b := image.NewRGBA(image.Rect(0, 0, 120, 120))
		Apply(NewRGBACanvas(a), faces, d)
		Apply(NewRGBACanvas(b), faces, d)
		require.Equal(t, a.Pix, b.Pix)
	}
}

func TestBlockMask_Pixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	BlockMask(NewRGBACanvas(img), entity.FaceRect{X: 10, Y: 10, Width: 100, Height: 100})

	// Круг радиуса (100+100)/12 = 16 с центром в (60, 60)
	require.Equal(t, Red, img.RGBAAt(60, 60))
	require.Equal(t, Red, img.RGBAAt(76, 60))
	require.Equal(t, Red, img.RGBAAt(60, 44))
	require.Equal(t, White, img.RGBAAt(77, 60))
	require.Equal(t, Black, img.RGBAAt(60, 43))

	require.Equal(t, Black, img.RGBAAt(10, 10))
	require.Equal(t, Black, img.RGBAAt(109, 59))
	require.Equal(t, White, img.RGBAAt(109, 109))
	// За пределами лица ничего не изменилось
	require.Equal(t, color.RGBA{}, img.RGBAAt(110, 110))
	require.Equal(t, color.RGBA{}, img.RGBAAt(5, 5))
}

func TestBlockMask_FaceBeyondBottomRightEdge(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	faces := entity.ClampFaces([]image.Rectangle{image.Rect(150, 150, 250, 250)}, img.Bounds())

	Apply(NewRGBACanvas(img), faces, BlockMask)

	// Центр круга (200, 200) за границей, видна только его четверть
	require.Equal(t, Red, img.RGBAAt(199, 199))
	require.Equal(t, Red, img.RGBAAt(185, 199))
	require.Equal(t, Black, img.RGBAAt(160, 160))
	require.Equal(t, Black, img.RGBAAt(199, 150))
	require.Equal(t, color.RGBA{}, img.RGBAAt(149, 149))
}
