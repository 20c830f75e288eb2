package stego

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

var (
	// ErrInvalidImage is returned when the carrier is not a decodable raster image.
	ErrInvalidImage = errors.New("invalid image")

	// ErrUnsupportedFormat is returned for an output format that is not lossless.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrCapacityExceeded is returned when the framed payload does not fit the carrier.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrNoHiddenData is returned when the frame marker is absent.
	ErrNoHiddenData = errors.New("no hidden data found")

	// ErrPasswordRequired is returned when the frame is encrypted and no password was given.
	ErrPasswordRequired = errors.New("password required")

	// ErrAuthentication is returned when the AEAD tag does not verify.
	ErrAuthentication = errors.New("authentication failed")

	// ErrEncryption is returned when the payload could not be encrypted.
	ErrEncryption = errors.New("encryption failed")

	// ErrMalformedBitStream is returned when a bit sequence cannot be packed into bytes.
	ErrMalformedBitStream = errors.New("malformed bit stream")

	// ErrTruncatedPayload is returned when the frame length runs past the available data.
	ErrTruncatedPayload = errors.New("truncated payload")

	// ErrUnsupportedFrame is returned when the frame carries flag bits this version does not know.
	ErrUnsupportedFrame = errors.New("unsupported frame")

	// ErrCorruptPayload is returned when error correction or decompression fails.
	ErrCorruptPayload = errors.New("corrupt payload")

	// ErrEncoding is returned when text is not valid UTF-8.
	ErrEncoding = errors.New("invalid UTF-8 text")
)

// CapacityError reports how many bits a payload needed and how many the carrier offers.
type CapacityError struct {
	Required  int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: required %d bits, available %d bits", ErrCapacityExceeded, e.Required, e.Available)
}

// Is makes errors.Is(err, ErrCapacityExceeded) match.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// UserMessage converts an engine error into a message safe to show to an end user.
// Cipher, codec and library details are never included.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var capErr *CapacityError
	switch {
	case errors.As(err, &capErr):
		return fmt.Sprintf("image too small to hold this message: needs %s, image holds %s",
			humanize.Bytes(uint64(capErr.Required/8)), humanize.Bytes(uint64(capErr.Available/8)))
	case errors.Is(err, ErrCapacityExceeded):
		return "image too small to hold this message"
	case errors.Is(err, ErrInvalidImage):
		return "the file is not a supported image"
	case errors.Is(err, ErrUnsupportedFormat):
		return "output format must be lossless (png or bmp)"
	case errors.Is(err, ErrNoHiddenData):
		return "no hidden message detected"
	case errors.Is(err, ErrPasswordRequired):
		return "this message is password protected; please provide the password"
	case errors.Is(err, ErrAuthentication):
		return "incorrect password or corrupted data"
	case errors.Is(err, ErrEncryption):
		return "the message could not be encrypted"
	case errors.Is(err, ErrUnsupportedFrame):
		return "the hidden data was written by an unsupported version"
	case errors.Is(err, ErrMalformedBitStream),
		errors.Is(err, ErrTruncatedPayload),
		errors.Is(err, ErrCorruptPayload):
		return "the hidden data is corrupted; the image may have been re-compressed or edited"
	case errors.Is(err, ErrEncoding):
		return "the message is not valid UTF-8 text"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "the operation was cancelled"
	default:
		return "the operation failed unexpectedly"
	}
}
