package stego

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// AnalysisResult holds metrics about the comparison between two images.
type AnalysisResult struct {
	MSE           float64 // Mean Squared Error
	PSNR          float64 // Peak Signal-to-Noise Ratio (dB)
	ChangedPixels int
	// Heatmap is black where pixels match, shading from green to red with the size of the change.
	Heatmap *image.NRGBA
}

// Analyze compares an original image with a stego image over the R, G and B
// channels. progress, if set, is called once per row.
func Analyze(original, stego image.Image, progress Progress) (*AnalysisResult, error) {
	img1 := copyImage(original)
	img2 := copyImage(stego)

	bounds := img1.Bounds()
	if bounds != img2.Bounds() {
		return nil, fmt.Errorf("image dimensions do not match: %v vs %v", bounds, img2.Bounds())
	}

	width, height := bounds.Dx(), bounds.Dy()
	var sumSquaredError float64
	changed := 0
	heatmap := image.NewNRGBA(bounds)

	for y := 0; y < height; y++ {
		if progress != nil {
			progress(y, height)
		}
		for x := 0; x < width; x++ {
			p1 := getPixel(img1, x, y)
			p2 := getPixel(img2, x, y)

			var diffSum float64
			isModified := false

			for i := 0; i < 3; i++ {
				diff := float64(p1[i]) - float64(p2[i])
				sumSquaredError += diff * diff
				diffSum += math.Abs(diff)

				if p1[i] != p2[i] {
					isModified = true
				}
			}

			if isModified {
				changed++
				// A difference of 1 becomes 50 brightness.
				intensity := uint8(math.Min(255, diffSum*50))
				heatmap.SetNRGBA(x, y, color.NRGBA{R: intensity, G: 255 - intensity, B: 0, A: 255})
			} else {
				heatmap.SetNRGBA(x, y, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
			}
		}
	}
	if progress != nil {
		progress(height, height)
	}

	totalPixels := float64(width * height)
	if totalPixels == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidImage)
	}
	mse := sumSquaredError / (totalPixels * 3.0) // Average per channel per pixel
	psnr := 10 * math.Log10((255*255)/mse)

	return &AnalysisResult{MSE: mse, PSNR: psnr, ChangedPixels: changed, Heatmap: heatmap}, nil
}
