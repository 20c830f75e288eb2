package stego

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// DefaultMaxFileSize is the largest carrier file ValidateImageFile accepts by default.
const DefaultMaxFileSize = 20 << 20

var supportedMIMETypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/bmp",
	"image/webp",
	"image/tiff",
}

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
}

// ValidationResult is the verdict of ValidateImageFile. Width, Height and
// Capacity are filled in when the image header could be read.
type ValidationResult struct {
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	// Capacity is in bits for the RGB layout.
	Capacity int `json:"capacity,omitempty"`
}

type validateConfig struct {
	maxFileSize   int64
	messageLength int
	encrypted     bool
}

type ValidateOption func(*validateConfig)

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(n int64) ValidateOption {
	return func(c *validateConfig) {
		c.maxFileSize = n
	}
}

// WithMessage also checks the carrier can hold a message of length bytes.
func WithMessage(length int, encrypted bool) ValidateOption {
	return func(c *validateConfig) {
		c.messageLength = length
		c.encrypted = encrypted
	}
}

// ValidateImageFile runs fail-fast checks on a carrier before it is handed to
// the engine. Embed still performs its own exact capacity check.
func ValidateImageFile(file ImageFile, opts ...ValidateOption) ValidationResult {
	cfg := validateConfig{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	invalid := func(format string, args ...any) ValidationResult {
		return ValidationResult{Valid: false, Error: fmt.Sprintf(format, args...)}
	}

	if len(file.Data) == 0 {
		return invalid("the file is empty")
	}
	if int64(len(file.Data)) > cfg.maxFileSize {
		return invalid("the file is too large (%s); the maximum is %s",
			humanize.IBytes(uint64(len(file.Data))), humanize.IBytes(uint64(cfg.maxFileSize)))
	}

	// Browsers name Blob uploads "blob", so a missing extension defers to content sniffing.
	if ext := strings.ToLower(filepath.Ext(file.Name)); ext != "" && !supportedExtensions[ext] {
		return invalid("unsupported file extension %q; use png, jpeg, gif, bmp, webp or tiff", ext)
	}

	mtype := mimetype.Detect(file.Data)
	if !mimetype.EqualsAny(mtype.String(), supportedMIMETypes...) {
		return invalid("unsupported file type %s; use png, jpeg, gif, bmp, webp or tiff", mtype.String())
	}
	if file.ContentType != "" && !mimetype.EqualsAny(file.ContentType, mtype.String(), "application/octet-stream") {
		log.Debug().Str("declared", file.ContentType).Str("detected", mtype.String()).Msg("Content type mismatch")
	}

	cfgImg, _, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		return invalid("the file is not a readable image")
	}

	result := ValidationResult{
		MIMEType: mtype.String(),
		Width:    cfgImg.Width,
		Height:   cfgImg.Height,
		Capacity: GetCapacity(cfgImg.Width, cfgImg.Height, false),
	}

	switch pixels := cfgImg.Width * cfgImg.Height; {
	case pixels <= 0:
		result.Error = "the image has no pixels"
		return result
	case pixels > MaxPixels:
		result.Error = fmt.Sprintf("the image is too large (%s pixels); the maximum is %s",
			humanize.Comma(int64(pixels)), humanize.Comma(MaxPixels))
		return result
	}

	required := (FrameHeaderSize + 1) * 8
	if cfg.messageLength > 0 {
		required = (FrameHeaderSize + cfg.messageLength) * 8
		if cfg.encrypted {
			required += EncryptionOverhead * 8
		}
	}
	if result.Capacity < required {
		result.Error = fmt.Sprintf("image too small to hold this message: needs %s, image holds %s",
			humanize.Bytes(uint64(required/8)), humanize.Bytes(uint64(result.Capacity/8)))
		return result
	}

	result.Valid = true
	return result
}
