package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// Icon dimensions for system tray.
const iconSize = 22

// Pre-generated PNG icons for the two monitor health states.
var (
	iconHealthyPNG  []byte
	iconDegradedPNG []byte
)

func init() {
	iconHealthyPNG = generateArrowsIcon(color.RGBA{76, 175, 80, 255})    // Green
	iconDegradedPNG = generateArrowsIcon(color.RGBA{128, 128, 128, 255}) // Gray
}

// generateArrowsIcon creates a down/up double-arrow icon with the specified
// color: a download arrow on the left half, an upload arrow on the right.
func generateArrowsIcon(c color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	shaftTop := 3
	shaftBottom := 18
	headSpan := 4

	// Download arrow (left half, pointing down)
	downX := 6
	for y := shaftTop; y <= shaftBottom-headSpan; y++ {
		img.Set(downX, y, c)
		img.Set(downX+1, y, c)
	}
	// Arrow head: widening rows toward the tip
	for i := 0; i <= headSpan; i++ {
		y := shaftBottom - headSpan + i
		for x := downX - headSpan + i; x <= downX+1+headSpan-i; x++ {
			img.Set(x, y, c)
		}
	}

	// Upload arrow (right half, pointing up)
	upX := 15
	for y := shaftTop + headSpan; y <= shaftBottom; y++ {
		img.Set(upX, y, c)
		img.Set(upX+1, y, c)
	}
	for i := 0; i <= headSpan; i++ {
		y := shaftTop + headSpan - i
		for x := upX - headSpan + i; x <= upX+1+headSpan-i; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
