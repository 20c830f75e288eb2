package main

import (
	"os"
	"path/filepath"

	"github.com/andresmejia3/stegtext/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	concealFlags struct {
		Image    string
		Pass     string
		AskPass  bool
		Msg      string
		File     string
		Out      string
		Format   string
		Quality  int
		Alpha    bool
		Compress bool
		ECC      bool
		Matching bool
	}
)

var concealCmd = &cobra.Command{
	Use:   "conceal",
	Short: "Conceal a message in an image",
	Run: func(cmd *cobra.Command, args []string) {
		if concealFlags.Msg != "" && concealFlags.File != "" {
			log.Fatal().Msg("message and file flags cannot both be provided")
		}
		if concealFlags.Quality < 0 || concealFlags.Quality > 100 {
			log.Fatal().Msg("quality must be between 1 and 100")
		}
		if concealFlags.Format != "" && concealFlags.Format != stego.FormatPNG && concealFlags.Format != stego.FormatBMP {
			log.Fatal().Str("format", concealFlags.Format).Msg("output format must be png or bmp")
		}

		pass, err := resolvePassphrase(concealFlags.Pass, concealFlags.AskPass, true)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read passphrase")
		}

		// Ensure the directory for the provided output path exists
		if concealFlags.Out != "" {
			if err := os.MkdirAll(filepath.Dir(concealFlags.Out), 0755); err != nil {
				log.Fatal().Err(err).Msg("Failed to create output directory")
			}
		}

		progress, finish := newProgress(" 🔒 Concealing")
		cArgs := stego.ConcealArgs{
			ImagePath: concealFlags.Image,
			Message:   concealFlags.Msg,
			File:      concealFlags.File,
			Output:    concealFlags.Out,
			EmbedOptions: stego.EmbedOptions{
				Password:        pass,
				Quality:         concealFlags.Quality,
				Format:          concealFlags.Format,
				IncludeAlpha:    concealFlags.Alpha,
				Compress:        concealFlags.Compress,
				ErrorCorrection: concealFlags.ECC,
				Matching:        concealFlags.Matching,
				Progress:        progress,
			},
		}

		err = stego.Conceal(cmd.Context(), cArgs)
		finish()
		if err != nil {
			log.Fatal().Err(err).Msg(stego.UserMessage(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(concealCmd)

	concealCmd.Flags().StringVarP(&concealFlags.Image, "image-path", "i", "", "Path to image (required)")
	concealCmd.MarkFlagRequired("image-path")
	addPassphraseFlags(concealCmd, &concealFlags.Pass, &concealFlags.AskPass, "Passphrase to encrypt the message")
	concealCmd.Flags().StringVarP(&concealFlags.Msg, "message", "m", "", "Message you want to conceal")
	concealCmd.Flags().StringVarP(&concealFlags.File, "file", "f", "", "Path to file to conceal (overrides message). Use '-' for stdin.")
	concealCmd.Flags().StringVarP(&concealFlags.Out, "output", "o", "", "Output path for the image (default: <image>_hidden.png next to the input)")
	concealCmd.Flags().StringVar(&concealFlags.Format, "format", "", "Output format: png or bmp (default: from the output extension, else png)")
	concealCmd.Flags().IntVarP(&concealFlags.Quality, "quality", "q", 0, "PNG compression effort, 1-100 (pixels are never altered)")
	concealCmd.Flags().BoolVar(&concealFlags.Alpha, "alpha", false, "Also store bits in the alpha channel")
	concealCmd.Flags().BoolVarP(&concealFlags.Compress, "compress", "z", false, "Compress data before embedding to save space")
	concealCmd.Flags().BoolVar(&concealFlags.ECC, "ecc", false, "Add Reed-Solomon error correction to the payload")
	concealCmd.Flags().BoolVar(&concealFlags.Matching, "matching", false, "Use LSB matching (±1 changes) instead of LSB replacement")
}
