package stego

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func TestDecodeImageFormats(t *testing.T) {
	src := newPatternImage(16, 8)

	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, src, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg.Encode failed: %v", err)
	}
	var bmpBuf bytes.Buffer
	if err := EncodeImage(&bmpBuf, src, EncodeOptions{Format: FormatBMP}); err != nil {
		t.Fatalf("EncodeImage(bmp) failed: %v", err)
	}

	tests := []struct {
		name   string
		data   []byte
		format string
	}{
		{name: "PNG", data: encodePNG(t, src), format: "png"},
		{name: "JPEG", data: jpg.Bytes(), format: "jpeg"},
		{name: "BMP", data: bmpBuf.Bytes(), format: "bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := DecodeImage(tt.data)
			if err != nil {
				t.Fatalf("DecodeImage failed: %v", err)
			}
			if format != tt.format {
				t.Errorf("format = %s; want %s", format, tt.format)
			}
			if img.Bounds() != image.Rect(0, 0, 16, 8) {
				t.Errorf("bounds = %v", img.Bounds())
			}
		})
	}
}

func TestDecodeImageInvalid(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("GIF89a but not really"), {0x89, 'P', 'N', 'G'}} {
		if _, _, err := DecodeImage(data); !errors.Is(err, ErrInvalidImage) {
			t.Errorf("DecodeImage(%q) error = %v; want ErrInvalidImage", data, err)
		}
	}
}

func TestEncodeImageRejectsLossyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeImage(&buf, newPatternImage(2, 2), EncodeOptions{Format: "jpeg"}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("EncodeImage error = %v; want ErrUnsupportedFormat", err)
	}
}

func TestPNGPreservesTransparentPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	img.Pix[3] = 0 // fully transparent pixel with non-zero colour

	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, EncodeOptions{}); err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	decoded, _, err := DecodeImage(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if !bytes.Equal(decoded.Pix, img.Pix) {
		t.Error("round trip altered pixel values")
	}
}

func TestCopyImageNormalisesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 13, 22))
	src.Set(10, 20, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	src.Set(12, 21, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	out := copyImage(src)
	if out.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("pixel (0,0) = %v", got)
	}
	if got := out.NRGBAAt(2, 1); got != (color.NRGBA{R: 9, G: 8, B: 7, A: 255}) {
		t.Errorf("pixel (2,1) = %v", got)
	}

	sub := newPatternImage(8, 8).SubImage(image.Rect(2, 2, 5, 5)).(*image.NRGBA)
	outSub := copyImage(sub)
	if got, want := outSub.NRGBAAt(0, 0), sub.NRGBAAt(2, 2); got != want {
		t.Errorf("sub-image pixel = %v; want %v", got, want)
	}
}

func TestPNGCompression(t *testing.T) {
	tests := map[int]png.CompressionLevel{
		0:   png.DefaultCompression,
		1:   png.BestSpeed,
		50:  png.DefaultCompression,
		100: png.BestCompression,
	}
	for quality, want := range tests {
		if got := pngCompression(quality); got != want {
			t.Errorf("pngCompression(%d) = %v; want %v", quality, got, want)
		}
	}
}
