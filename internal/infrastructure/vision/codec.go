package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"faceduker/internal/decor"
	"faceduker/internal/domain/entity"
)

// MaxPixels ограничение на размер входного изображения
const MaxPixels = 64 << 20

const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
)

var contentTypes = map[string]string{
	FormatJPEG: "image/jpeg",
	FormatPNG:  "image/png",
	FormatGIF:  "image/gif",
	FormatBMP:  "image/bmp",
}

// Decode превращает байты изображения в RGBA-буфер и возвращает имя формата.
func Decode(data []byte) (*image.RGBA, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty payload", entity.ErrDecodeFailure)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", entity.ErrDecodeFailure, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxPixels {
		return nil, "", fmt.Errorf("%w: unsupported size %dx%d", entity.ErrDecodeFailure, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", entity.ErrDecodeFailure, err)
	}
	return decor.ToRGBA(img), format, nil
}

// Encode кодирует изображение в format; неизвестные форматы (например webp) пишутся в PNG.
// Возвращает байты и Content-Type.
func Encode(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	case FormatGIF:
		err = gif.Encode(&buf, img, nil)
	case FormatBMP:
		err = bmp.Encode(&buf, img)
	default:
		format = FormatPNG
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", entity.ErrEncodeFailure, err)
	}

	return buf.Bytes(), contentTypes[format], nil
}

// ResizeToWidth масштабирует изображение до ширины width с сохранением пропорций.
// Высота округляется вниз: floor(width * srcHeight / srcWidth), но не меньше 1.
func ResizeToWidth(img image.Image, width int) image.Image {
	b := img.Bounds()
	if width <= 0 || b.Dx() == 0 {
		return img
	}

	height := width * b.Dy() / b.Dx()
	if height < 1 {
		height = 1
	}

	return resize.Resize(uint(width), uint(height), img, resize.Bilinear)
}
