package stego

import (
	"context"
	"errors"
	"image"
)

// Info contains metadata read from a frame header. The payload itself is not
// decrypted or verified.
type Info struct {
	Channels    int
	Flags       FrameFlags
	IsEncrypted bool
	// IsCompressed and HasErrorCorrection describe the stored payload.
	IsCompressed       bool
	HasErrorCorrection bool
	// DataSize is the stored payload size in bytes, after all transforms.
	DataSize int64
	// Capacity is the carrier capacity in bits for the detected layout.
	Capacity int
}

// GetInfo inspects img and returns its frame header. ErrNoHiddenData is
// returned when neither the RGB nor the RGBA layout carries a frame.
func GetInfo(img image.Image) (*Info, error) {
	nrgba := copyImage(img)
	width, height := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()

	var lastErr error
	for _, includeAlpha := range []bool{false, true} {
		stepper := makeImageStepper(width, height, channelsUsed(includeAlpha))
		if stepper.capacity() < FrameHeaderBits {
			lastErr = ErrNoHiddenData
			continue
		}

		bits, err := readBits(context.Background(), nrgba, stepper, FrameHeaderBits, nil)
		if err != nil {
			return nil, err
		}
		headerBytes, err := BitsToBytes(bits)
		if err != nil {
			return nil, err
		}

		header, err := ParseFrameHeader(headerBytes)
		if errors.Is(err, ErrNoHiddenData) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		return &Info{
			Channels:           channelsUsed(includeAlpha),
			Flags:              header.Flags,
			IsEncrypted:        header.Flags.Encrypted(),
			IsCompressed:       header.Flags.Compressed(),
			HasErrorCorrection: header.Flags.ErrorCorrected(),
			DataSize:           int64(header.Length),
			Capacity:           stepper.capacity(),
		}, nil
	}
	return nil, lastErr
}

// GetInfoFromFile is GetInfo for an image on disk.
func GetInfoFromFile(imagePath string) (*Info, error) {
	img, err := loadImage(imagePath)
	if err != nil {
		return nil, err
	}
	return GetInfo(img)
}
