package stego

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxPixels bounds the decoded size of a carrier image.
const MaxPixels = 64 << 20

const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// EncodeOptions controls how a carrier is written back out.
type EncodeOptions struct {
	// Format is "png" (default) or "bmp". Both are lossless.
	Format string
	// Quality in 1-100 selects PNG compression effort; 0 keeps the default.
	// Pixel values are never altered.
	Quality int
}

// DecodeImage decodes any registered raster format into an NRGBA buffer owned by the caller.
func DecodeImage(data []byte) (*image.NRGBA, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxPixels {
		return nil, "", fmt.Errorf("%w: unsupported dimensions %dx%d", ErrInvalidImage, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return copyImage(img), format, nil
}

func loadImage(path string) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := DecodeImage(data)
	return img, err
}

// EncodeImage writes img losslessly.
func EncodeImage(w io.Writer, img image.Image, opts EncodeOptions) error {
	switch opts.Format {
	case "", FormatPNG:
		enc := png.Encoder{CompressionLevel: pngCompression(opts.Quality)}
		return enc.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}

func pngCompression(quality int) png.CompressionLevel {
	switch {
	case quality <= 0:
		return png.DefaultCompression
	case quality <= 33:
		return png.BestSpeed
	case quality <= 66:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

func formatExtension(format string) string {
	if format == FormatBMP {
		return ".bmp"
	}
	return ".png"
}

// copyImage returns an NRGBA copy of img with its origin moved to (0, 0).
func copyImage(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	outputImage := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	if src, ok := img.(*image.NRGBA); ok {
		rowLen := bounds.Dx() * 4
		for y := 0; y < bounds.Dy(); y++ {
			srcOff := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(outputImage.Pix[y*outputImage.Stride:y*outputImage.Stride+rowLen], src.Pix[srcOff:srcOff+rowLen])
		}
		return outputImage
	}

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			outputImage.SetNRGBA(x, y, c)
		}
	}
	return outputImage
}

func getPixel(img *image.NRGBA, x int, y int) []uint8 {
	index := img.PixOffset(x, y)
	return img.Pix[index : index+4]
}
