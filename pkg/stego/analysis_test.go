package stego

import (
	"context"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestAnalyzeMetrics(t *testing.T) {
	// Case 1: Identical Images
	// MSE should be 0, PSNR should be infinite
	img1 := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	result, err := Analyze(img1, img1, nil)
	if err != nil {
		t.Fatalf("Analyze failed for identical images: %v", err)
	}
	if result.MSE != 0 {
		t.Errorf("Expected MSE 0 for identical images, got %f", result.MSE)
	}
	if !math.IsInf(result.PSNR, 1) {
		t.Errorf("Expected PSNR +Inf for identical images, got %f", result.PSNR)
	}
	if result.ChangedPixels != 0 {
		t.Errorf("Expected 0 changed pixels, got %d", result.ChangedPixels)
	}

	// Case 2: Known Difference
	// Change 1 pixel in 1 channel by a value of 10.
	// MSE = (10^2) / (100 * 3) = 100 / 300 = 0.333...
	img2 := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img2.Set(0, 0, color.NRGBA{R: 10, G: 0, B: 0, A: 0})

	var rows int
	result, err = Analyze(img1, img2, func(done, total int) { rows = done })
	if err != nil {
		t.Fatalf("Analyze failed for modified image: %v", err)
	}

	expectedMSE := 100.0 / 300.0
	if math.Abs(result.MSE-expectedMSE) > 0.0001 {
		t.Errorf("MSE calculation incorrect. Got %f, want %f", result.MSE, expectedMSE)
	}

	expectedPSNR := 10 * math.Log10((255*255)/expectedMSE)
	if math.Abs(result.PSNR-expectedPSNR) > 0.0001 {
		t.Errorf("PSNR calculation incorrect. Got %f, want %f", result.PSNR, expectedPSNR)
	}
	if result.ChangedPixels != 1 {
		t.Errorf("Expected 1 changed pixel, got %d", result.ChangedPixels)
	}
	if rows != 10 {
		t.Errorf("final progress = %d rows; want 10", rows)
	}
	if c := result.Heatmap.NRGBAAt(0, 0); c.R == 0 {
		t.Errorf("heatmap did not mark the changed pixel: %v", c)
	}
	if c := result.Heatmap.NRGBAAt(5, 5); c != (color.NRGBA{A: 255}) {
		t.Errorf("heatmap marked an unchanged pixel: %v", c)
	}
}

func TestAnalyzeEmbedding(t *testing.T) {
	original := newPatternImage(64, 64)
	stego, err := Embed(context.Background(), original, []byte("measure me"), EmbedOptions{})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	result, err := Analyze(original, stego, nil)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	// LSB changes are at most 1 per channel.
	if result.MSE > 1 || result.PSNR < 48 {
		t.Errorf("unexpected distortion: MSE %f, PSNR %f", result.MSE, result.PSNR)
	}
}

func TestAnalyzeDimensionMismatch(t *testing.T) {
	if _, err := Analyze(newPatternImage(4, 4), newPatternImage(5, 4), nil); err == nil {
		t.Error("expected error for mismatched dimensions")
	}
}
