package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"faceduker/internal/domain/entity"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(1, 1, color.RGBA{R: 200, G: 10, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	img, format, err := Decode(pngBytes(t, 8, 6))
	require.NoError(t, err)
	require.Equal(t, FormatPNG, format)
	require.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())
	require.Equal(t, color.RGBA{R: 200, G: 10, B: 30, A: 255}, img.RGBAAt(1, 1))
}

func TestDecode_Malformed(t *testing.T) {
	_, _, err := Decode([]byte("definitely not an image"))
	require.ErrorIs(t, err, entity.ErrDecodeFailure)

	_, _, err = Decode(nil)
	require.ErrorIs(t, err, entity.ErrDecodeFailure)
}

func TestEncode_KeepsFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	data, ct, err := Encode(img, FormatJPEG)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", ct)
	_, err = jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	data, ct, err = Encode(img, "webp")
	require.NoError(t, err)
	require.Equal(t, "image/png", ct)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	for _, f := range []string{FormatGIF, FormatBMP} {
		data, _, err = Encode(img, f)
		require.NoError(t, err)
		_, format, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, f, format)
	}
}

func TestResizeToWidth(t *testing.T) {
	cases := []struct {
		srcW, srcH, width int
		wantH             int
	}{
		{800, 400, 200, 100},
		{800, 601, 200, 150}, // 150.25 округляется вниз
		{300, 1001, 200, 667},
		{1000, 3, 200, 1}, // 0.6 поднимается до 1
	}
	for _, c := range cases {
		out := ResizeToWidth(image.NewRGBA(image.Rect(0, 0, c.srcW, c.srcH)), c.width)
		require.Equal(t, c.width, out.Bounds().Dx())
		require.Equal(t, c.wantH, out.Bounds().Dy())
	}

	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	require.Same(t, src, ResizeToWidth(src, 0))
}
