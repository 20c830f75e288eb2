package main

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"text/tabwriter"

	"github.com/andresmejia3/stegtext/pkg/stego"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity [image-path]",
	Short: "Calculate the storage capacity of an image",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, err := readImageFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open image")
		}

		cfg, _, err := image.DecodeConfig(bytes.NewReader(file.Data))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to decode image")
		}
		w, h := cfg.Width, cfg.Height

		wtr := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(wtr, "Image: %dx%d (%s pixels)\n\n", w, h, humanize.Comma(int64(w*h)))
		fmt.Fprintln(wtr, "Layout\tEncrypted\tCapacity (Bits)\tMax Message")
		fmt.Fprintln(wtr, "------\t---------\t---------------\t-----------")

		printCap(wtr, w, h, false, false)
		printCap(wtr, w, h, false, true)
		printCap(wtr, w, h, true, false)
		printCap(wtr, w, h, true, true)

		wtr.Flush()
	},
}

func printCap(wtr *tabwriter.Writer, w, h int, alpha, encrypted bool) {
	layout := "rgb"
	if alpha {
		layout = "rgba"
	}
	bits := stego.GetCapacity(w, h, alpha)
	maxBytes := stego.MaxMessageBytes(w, h, alpha, encrypted)
	fmt.Fprintf(wtr, "%s\t%t\t%s\t%s\n", layout, encrypted, humanize.Comma(int64(bits)), humanize.Bytes(uint64(maxBytes)))
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
