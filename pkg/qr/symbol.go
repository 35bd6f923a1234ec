package qr

import (
	"image"

	"github.com/boombuler/barcode"
	qrenc "github.com/boombuler/barcode/qr"

	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

// Symbol is an encoded QR module matrix without quiet zone.
type Symbol struct {
	code barcode.Barcode
	size int
}

// Run is a horizontal stretch of dark modules.
type Run struct {
	X, Y, Len int
}

// Encode encodes content at error correction level M.
func Encode(content string) (*Symbol, error) {
	code, err := qrenc.Encode(content, qrenc.M, qrenc.Auto)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeAssetUnavailable, err, "encode qr")
	}
	return &Symbol{code: code, size: code.Bounds().Dx()}, nil
}

// Size returns the number of modules per side.
func (s *Symbol) Size() int { return s.size }

// Dark reports whether the module at (x, y) is dark.
func (s *Symbol) Dark(x, y int) bool {
	r, g, b, _ := s.code.At(x, y).RGBA()
	return r+g+b < 3*0x8000
}

// Runs returns the dark modules merged into horizontal runs, row by row.
func (s *Symbol) Runs() []Run {
	var runs []Run
	for y := 0; y < s.size; y++ {
		start := -1
		for x := 0; x <= s.size; x++ {
			dark := x < s.size && s.Dark(x, y)
			switch {
			case dark && start < 0:
				start = x
			case !dark && start >= 0:
				runs = append(runs, Run{X: start, Y: y, Len: x - start})
				start = -1
			}
		}
	}
	return runs
}

// Image renders the symbol at px pixels per side, or at one pixel per
// module when px is smaller than the symbol.
func (s *Symbol) Image(px int) (image.Image, error) {
	if px < s.size {
		px = s.size
	}
	scaled, err := barcode.Scale(s.code, px, px)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeAssetUnavailable, err, "scale qr")
	}
	return scaled, nil
}
