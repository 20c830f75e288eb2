package main

import (
	"fmt"
	"math"
	"os"

	"github.com/andresmejia3/stegtext/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	analyzeFlags struct {
		Original string
		Stego    string
		Heatmap  string
	}
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the difference between an original and a stego image",
	Long:  `Calculates PSNR (Peak Signal-to-Noise Ratio) and generates a heatmap image highlighting modified pixels.`,
	Run: func(cmd *cobra.Command, args []string) {
		if analyzeFlags.Heatmap == "" {
			analyzeFlags.Heatmap = "heatmap.png"
		}

		original, err := loadImage(analyzeFlags.Original)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load original image")
		}
		stegoImage, err := loadImage(analyzeFlags.Stego)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load stego image")
		}

		progress, finish := newProgress(" 📊 Analyzing")
		result, err := stego.Analyze(original, stegoImage, progress)
		finish()
		if err != nil {
			log.Fatal().Err(err).Msg("Analysis failed")
		}

		f, err := os.Create(analyzeFlags.Heatmap)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create heatmap file")
		}
		defer f.Close()
		if err := stego.EncodeImage(f, result.Heatmap, stego.EncodeOptions{}); err != nil {
			log.Fatal().Err(err).Msg("Failed to encode heatmap")
		}

		psnr := fmt.Sprintf("%.2f dB", result.PSNR)
		if math.IsInf(result.PSNR, 1) {
			psnr = "∞ (images are identical)"
		}

		fmt.Printf("Analysis Complete:\n")
		fmt.Printf("------------------\n")
		fmt.Printf("MSE (Mean Squared Error):       %.4f\n", result.MSE)
		fmt.Printf("PSNR (Peak Signal-to-Noise):    %s\n", psnr)
		fmt.Printf("Changed Pixels:                 %d\n", result.ChangedPixels)
		fmt.Printf("Heatmap saved to:               %s\n", analyzeFlags.Heatmap)
		fmt.Printf("\nInterpretation:\n")
		fmt.Printf(" > 30dB: Good quality (hard to detect visually)\n")
		fmt.Printf(" > 40dB: Excellent quality\n")
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFlags.Original, "original", "o", "", "Path to original image (required)")
	analyzeCmd.MarkFlagRequired("original")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.Stego, "stego", "s", "", "Path to stego image (required)")
	analyzeCmd.MarkFlagRequired("stego")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.Heatmap, "heatmap", "d", "heatmap.png", "Output path for the difference heatmap image")
}
