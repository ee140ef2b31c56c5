package services

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQRService(t *testing.T) {
	service := NewQRService()

	t.Run("Generate PNG QR Code", func(t *testing.T) {
		data, err := service.GenerateQRCode(QROptions{
			Content: "https://sho.rt/aB3xY9",
			Size:    128,
			FgColor: "#112233",
			BgColor: "#FFFFFF",
		})
		assert.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		assert.NoError(t, err)
		assert.Equal(t, 128, img.Bounds().Dx())
	})

	t.Run("Default size", func(t *testing.T) {
		data, err := service.GenerateQRCode(QROptions{Content: "https://example.com"})
		assert.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(data))
		assert.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
	})

	t.Run("Content too long", func(t *testing.T) {
		_, err := service.GenerateQRCode(QROptions{Content: strings.Repeat("A", 10000)})
		assert.Error(t, err)
	})
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 255}, parseHexColor("#112233", color.Black))
	assert.Equal(t, color.RGBA{R: 0xAB, G: 0xCD, B: 0xEF, A: 255}, parseHexColor("abcdef", color.Black))
	assert.Equal(t, color.Black, parseHexColor("#12", color.Black))
	assert.Equal(t, color.White, parseHexColor("#GG0000", color.White))
}
