package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"faceduker/internal/infrastructure/vision"
)

func TestFormatOf(t *testing.T) {
	require.Equal(t, vision.FormatJPEG, formatOf("out/face.JPG"))
	require.Equal(t, vision.FormatJPEG, formatOf("face.jpeg"))
	require.Equal(t, vision.FormatPNG, formatOf("face.png"))
	require.Equal(t, vision.FormatBMP, formatOf("face.bmp"))
	require.Equal(t, "", formatOf("face"))
	require.Equal(t, "", formatOf("face.webp"))
}
