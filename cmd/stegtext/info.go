package main

import (
	"fmt"

	"github.com/andresmejia3/stegtext/pkg/stego"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [image_path]",
	Short: "Inspect a stego image and display its frame header",
	Long:  `Reads the frame header of a steganographic image to report the channel layout, payload size, and which of encryption, compression and error correction were applied. The payload itself is not decrypted.`,
	Args:  cobra.ExactArgs(1), // Requires exactly one argument: the image path
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath := args[0]

		info, err := stego.GetInfoFromFile(imagePath)
		if err != nil {
			return fmt.Errorf("failed to get info from %s: %w", imagePath, err)
		}

		layout := "RGB"
		if info.Channels == 4 {
			layout = "RGBA"
		}

		fmt.Println("Stego Header Information:")
		fmt.Println("-------------------------")
		fmt.Printf("Layout:           %s\n", layout)
		fmt.Printf("Encrypted:        %t\n", info.IsEncrypted)
		fmt.Printf("Compressed:       %t\n", info.IsCompressed)
		fmt.Printf("Error Correction: %t\n", info.HasErrorCorrection)
		fmt.Printf("Payload Size:     %s (%d bytes)\n", humanize.Bytes(uint64(info.DataSize)), info.DataSize)
		fmt.Printf("Capacity Used:    %.2f%%\n", 100*float64(stego.FrameHeaderBits+info.DataSize*8)/float64(info.Capacity))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
