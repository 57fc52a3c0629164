package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestDecodeFormats(t *testing.T) {
	src := checker(4, 3)

	tests := []struct {
		format string
		encode func(*bytes.Buffer) error
		exact  bool
	}{
		{"png", func(b *bytes.Buffer) error { return png.Encode(b, src) }, true},
		{"tga", func(b *bytes.Buffer) error { return tga.Encode(b, src) }, true},
		{"bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, src) }, true},
		{"jpeg", func(b *bytes.Buffer) error { return jpeg.Encode(b, src, &jpeg.Options{Quality: 95}) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf); err != nil {
				t.Fatalf("encode: %v", err)
			}

			name := "earth." + tt.format
			if !Supported(name) {
				t.Fatalf("Supported(%q) = false", name)
			}
			img, err := Decode(&buf, name)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if img.Bounds() != image.Rect(0, 0, 4, 3) {
				t.Fatalf("bounds = %v, want 4x3", img.Bounds())
			}
			if !tt.exact {
				return
			}
			if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
				t.Errorf("pixel (0,0) = %v, want red", got)
			}
			if got := img.RGBAAt(1, 0); got != (color.RGBA{B: 255, A: 255}) {
				t.Errorf("pixel (1,0) = %v, want blue", got)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("GIF89a")), "sun.gif")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Decode(gif) = %v, want ErrUnsupportedFormat", err)
	}
	if Supported("readme.txt") {
		t.Error("Supported(readme.txt) = true")
	}
	if !Supported("MOON.JPG") {
		t.Error("extensions should match case-insensitively")
	}

	if _, err := Decode(bytes.NewReader([]byte("not a png")), "broken.png"); err == nil {
		t.Error("Decode of corrupt PNG should fail")
	}
}

func TestToRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if ToRGBA(rgba) != rgba {
		t.Error("RGBA image at the origin should be returned as is")
	}

	sub := checker(4, 4).SubImage(image.Rect(1, 1, 3, 3))
	got := ToRGBA(sub)
	if got.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v, want origin-based 2x2", got.Bounds())
	}
	// (1,1) in the source is red, and becomes (0,0).
	if c := got.RGBAAt(0, 0); c != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel (0,0) = %v, want red", c)
	}
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"unlimited", 300, 200, 0, 300, 200},
		{"already small", 300, 200, 512, 300, 200},
		{"wide", 4096, 2048, 1024, 1024, 512},
		{"tall", 100, 400, 200, 50, 200},
		{"square", 64, 64, 16, 16, 16},
		{"thin", 1000, 1, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := FitWithin(img, tt.max)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("FitWithin(%dx%d, %d) = %v, want %dx%d",
					tt.w, tt.h, tt.max, got.Bounds().Size(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSolidColor(t *testing.T) {
	img := SolidColor([3]float32{1, 0.5, -2})
	if img.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Fatalf("bounds = %v, want 1x1", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}
