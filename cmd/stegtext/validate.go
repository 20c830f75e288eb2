package main

import (
	"errors"
	"fmt"

	"github.com/andresmejia3/stegtext/pkg/stego"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	validateFlags struct {
		MessageLength int
		Encrypted     bool
	}
)

var validateCmd = &cobra.Command{
	Use:   "validate [image-path]",
	Short: "Check whether an image can be used as a carrier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := readImageFile(args[0])
		if err != nil {
			return err
		}

		var opts []stego.ValidateOption
		if validateFlags.MessageLength > 0 {
			opts = append(opts, stego.WithMessage(validateFlags.MessageLength, validateFlags.Encrypted))
		}
		result := stego.ValidateImageFile(file, opts...)

		if result.MIMEType != "" {
			fmt.Printf("Type:       %s\n", result.MIMEType)
			fmt.Printf("Dimensions: %dx%d\n", result.Width, result.Height)
			fmt.Printf("Capacity:   %s (%s bits)\n", humanize.Bytes(uint64(result.Capacity/8)), humanize.Comma(int64(result.Capacity)))
		}
		if !result.Valid {
			return errors.New(result.Error)
		}
		fmt.Println("✅ Image is a valid carrier")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().IntVarP(&validateFlags.MessageLength, "message-length", "l", 0, "Also check that a message of this many bytes fits")
	validateCmd.Flags().BoolVarP(&validateFlags.Encrypted, "encrypted", "e", false, "Account for encryption overhead in --message-length")
}
