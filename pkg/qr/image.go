package qr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// CropQuietZone crops img to the tightest box around its dark pixels. An
// image without dark pixels is returned unchanged.
func CropQuietZone(img image.Image) image.Image {
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !isDark(img.At(x, y)) {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return img
	}
	r := image.Rect(minX, minY, maxX+1, maxY+1)
	if r == b {
		return img
	}
	return imaging.Crop(img, r)
}

// Fit rescales img to edge × edge pixels with nearest-neighbour sampling.
func Fit(img image.Image, edge int) image.Image {
	if b := img.Bounds(); b.Dx() == edge && b.Dy() == edge {
		return img
	}
	return imaging.Resize(img, edge, edge, imaging.NearestNeighbor)
}

func isDark(c color.Color) bool {
	g := color.GrayModel.Convert(c).(color.Gray)
	_, _, _, a := c.RGBA()
	return a > 0x8000 && g.Y < 128
}
