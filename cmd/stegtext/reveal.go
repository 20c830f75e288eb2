package main

import (
	"io"
	"os"

	"github.com/andresmejia3/stegtext/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	revealFlags struct {
		Image   string
		Pass    string
		AskPass bool
		Out     string
	}
)

var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Reveal a message in an image",
	Run: func(cmd *cobra.Command, args []string) {
		pass, err := resolvePassphrase(revealFlags.Pass, revealFlags.AskPass, false)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read passphrase")
		}

		progress, finish := newProgress(" 🔓 Revealing")
		rArgs := stego.RevealArgs{
			ImagePath: revealFlags.Image,
			ExtractOptions: stego.ExtractOptions{
				Password: pass,
				Progress: progress,
			},
		}

		payload, err := stego.Reveal(cmd.Context(), rArgs)
		finish()
		if err != nil {
			log.Fatal().Err(err).Msg(stego.UserMessage(err))
		}

		var w io.Writer = os.Stdout
		if revealFlags.Out != "" {
			f, err := os.Create(revealFlags.Out)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to create output file")
			}
			defer f.Close()
			w = f
		}

		if _, err := w.Write(payload); err != nil {
			log.Fatal().Err(err).Msg("Failed to write revealed message")
		}
		if revealFlags.Out != "" {
			log.Info().Str("output", revealFlags.Out).Int("bytes", len(payload)).Msg("Revealed message written")
		}
	},
}

func init() {
	rootCmd.AddCommand(revealCmd)

	revealCmd.Flags().StringVarP(&revealFlags.Image, "image-path", "i", "", "Path to image (required)")
	revealCmd.MarkFlagRequired("image-path")
	addPassphraseFlags(revealCmd, &revealFlags.Pass, &revealFlags.AskPass, "Passphrase to decrypt the message")
	revealCmd.Flags().StringVarP(&revealFlags.Out, "output", "o", "", "Output path for revealed message (optional)")
}
