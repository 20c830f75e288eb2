package stego

import (
	"bufio"
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// ImageFile is an uploaded or on-disk carrier.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type EmbedOptions struct {
	Password string
	// Quality and Format control the lossless re-encode; see EncodeOptions.
	Quality int
	Format  string
	// IncludeAlpha also stores bits in the alpha channel.
	IncludeAlpha bool
	// Compress applies zstd when it shrinks the payload.
	Compress bool
	// ErrorCorrection adds Reed-Solomon parity to the payload.
	ErrorCorrection bool
	// Matching uses LSB matching: channels change by ±1 rather than having
	// their low bit overwritten. Extraction is unaffected.
	Matching bool
	Progress        Progress
}

type ExtractOptions struct {
	Password string
	Progress Progress
}

// EmbedResult is the outcome of EmbedTextInImage. Error holds a user-facing message.
type EmbedResult struct {
	Success               bool   `json:"success"`
	Data                  []byte `json:"-"`
	SteganographyFileName string `json:"steganographyFileName,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// ExtractResult is the outcome of ExtractTextFromImage. Error holds a user-facing message.
type ExtractResult struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Embed hides payload in a copy of carrier and returns the modified copy.
func Embed(ctx context.Context, carrier image.Image, payload []byte, opts EmbedOptions) (*image.NRGBA, error) {
	outputImage := copyImage(carrier)
	width := outputImage.Bounds().Dx()
	height := outputImage.Bounds().Dy()

	data, flags, err := sealPayload(payload, opts)
	if err != nil {
		return nil, err
	}

	framed, err := FrameData(data, flags)
	if err != nil {
		return nil, err
	}
	bits := BytesToBits(framed)

	stepper := makeImageStepper(width, height, channelsUsed(opts.IncludeAlpha))
	log.Debug().Int("width", width).Int("height", height).Msg("Image dimensions")
	log.Debug().Int("available", stepper.capacity()).Int("required", len(bits)).Stringer("flags", flags).Msg("Capacity check")

	if len(bits) > stepper.capacity() {
		return nil, &CapacityError{Required: len(bits), Available: stepper.capacity()}
	}

	var rng io.ByteReader
	if opts.Matching {
		rng = bufio.NewReader(rand.Reader)
	}
	if err := writeBits(ctx, outputImage, stepper, bits, rng, opts.Progress); err != nil {
		return nil, err
	}
	return outputImage, nil
}

func sealPayload(payload []byte, opts EmbedOptions) ([]byte, FrameFlags, error) {
	var flags FrameFlags
	data := payload

	if opts.Compress {
		compressed, ok, err := compress(data)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to compress payload: %w", err)
		}
		if ok {
			log.Debug().Int("before", len(data)).Int("after", len(compressed)).Msg("Compressed payload")
			data = compressed
			flags |= FlagCompressed
		}
	}

	if opts.Password != "" {
		encrypted, err := Encrypt(data, opts.Password)
		if err != nil {
			return nil, 0, err
		}
		data = encrypted
		flags |= FlagEncrypted
	}

	if opts.ErrorCorrection {
		protected, err := addReedSolomon(data)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to apply Reed-Solomon encoding: %w", err)
		}
		data = protected
		flags |= FlagErrorCorrected
	}

	return data, flags, nil
}

// Extract recovers the payload hidden in carrier. The RGB layout is tried
// first, then RGBA.
func Extract(ctx context.Context, carrier image.Image, opts ExtractOptions) ([]byte, error) {
	img := copyImage(carrier)

	frame, err := readFrame(ctx, img, false, opts.Progress)
	if errors.Is(err, ErrNoHiddenData) {
		frame, err = readFrame(ctx, img, true, opts.Progress)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().Stringer("flags", frame.Flags).Int("bytes", len(frame.Data)).Msg("Decoded frame")
	return openPayload(frame, opts.Password)
}

func readFrame(ctx context.Context, img *image.NRGBA, includeAlpha bool, progress Progress) (*Frame, error) {
	stepper := makeImageStepper(img.Bounds().Dx(), img.Bounds().Dy(), channelsUsed(includeAlpha))
	if stepper.capacity() < FrameHeaderBits {
		return nil, ErrNoHiddenData
	}

	headerBits, err := readBits(ctx, img, stepper, FrameHeaderBits, nil)
	if err != nil {
		return nil, err
	}
	headerBytes, err := BitsToBytes(headerBits)
	if err != nil {
		return nil, err
	}
	header, err := ParseFrameHeader(headerBytes)
	if err != nil {
		return nil, err
	}

	if uint64(header.Length)*8 > uint64(stepper.remaining()) {
		return nil, fmt.Errorf("%w: header declares %d bytes, carrier holds %d more bits",
			ErrTruncatedPayload, header.Length, stepper.remaining())
	}

	dataBits, err := readBits(ctx, img, stepper, int(header.Length)*8, progress)
	if err != nil {
		return nil, err
	}
	dataBytes, err := BitsToBytes(dataBits)
	if err != nil {
		return nil, err
	}
	return Unframe(append(headerBytes, dataBytes...))
}

func openPayload(frame *Frame, password string) ([]byte, error) {
	data := frame.Data

	if frame.Flags.ErrorCorrected() {
		recovered, err := removeReedSolomon(data)
		if err != nil {
			return nil, err
		}
		data = recovered
	}

	if frame.Flags.Encrypted() {
		if password == "" {
			return nil, ErrPasswordRequired
		}
		plaintext, err := Decrypt(data, password)
		if err != nil {
			return nil, err
		}
		data = plaintext
	} else if password != "" {
		log.Debug().Msg("Payload is not encrypted; ignoring password")
	}

	if frame.Flags.Compressed() {
		decompressed, err := decompress(data)
		if err != nil {
			return nil, err
		}
		data = decompressed
	}
	return data, nil
}

// EmbedTextInImage hides text in file and returns the encoded image. It never
// panics or returns raw errors; failures are reported in EmbedResult.Error.
func EmbedTextInImage(file ImageFile, text string, opts EmbedOptions) EmbedResult {
	return EmbedTextInImageContext(context.Background(), file, text, opts)
}

func EmbedTextInImageContext(ctx context.Context, file ImageFile, text string, opts EmbedOptions) (result EmbedResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic while embedding")
			result = EmbedResult{Success: false, Error: UserMessage(errors.New("internal error"))}
		}
	}()

	data, err := embedText(ctx, file, text, opts)
	if err != nil {
		log.Debug().Err(err).Str("file", file.Name).Msg("Embed failed")
		return EmbedResult{Success: false, Error: UserMessage(err)}
	}

	return EmbedResult{
		Success:               true,
		Data:                  data,
		SteganographyFileName: stegoFileName(file.Name, opts.Format),
	}
}

func embedText(ctx context.Context, file ImageFile, text string, opts EmbedOptions) ([]byte, error) {
	if !utf8.ValidString(text) {
		return nil, ErrEncoding
	}
	if opts.Format != "" && opts.Format != FormatPNG && opts.Format != FormatBMP {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}

	carrier, _, err := DecodeImage(file.Data)
	if err != nil {
		return nil, err
	}
	if opts.Format == FormatBMP && (opts.IncludeAlpha || !carrier.Opaque()) {
		return nil, fmt.Errorf("%w: bmp output requires an opaque carrier", ErrUnsupportedFormat)
	}

	stegoImage, err := Embed(ctx, carrier, []byte(text), opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := EncodeImage(&buf, stegoImage, EncodeOptions{Format: opts.Format, Quality: opts.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExtractTextFromImage recovers text hidden by EmbedTextInImage. Failures are
// reported in ExtractResult.Error.
func ExtractTextFromImage(file ImageFile, opts ExtractOptions) ExtractResult {
	return ExtractTextFromImageContext(context.Background(), file, opts)
}

func ExtractTextFromImageContext(ctx context.Context, file ImageFile, opts ExtractOptions) (result ExtractResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic while extracting")
			result = ExtractResult{Success: false, Error: UserMessage(errors.New("internal error"))}
		}
	}()

	text, err := extractText(ctx, file, opts)
	if err != nil {
		log.Debug().Err(err).Str("file", file.Name).Msg("Extract failed")
		return ExtractResult{Success: false, Error: UserMessage(err)}
	}
	return ExtractResult{Success: true, Data: text}
}

func extractText(ctx context.Context, file ImageFile, opts ExtractOptions) (string, error) {
	carrier, _, err := DecodeImage(file.Data)
	if err != nil {
		return "", err
	}

	payload, err := Extract(ctx, carrier, opts)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(payload) {
		return "", ErrEncoding
	}
	return string(payload), nil
}

func stegoFileName(name string, format string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "image"
	}
	return base + "_hidden" + formatExtension(format)
}

// ConcealArgs describes a file based embed.
type ConcealArgs struct {
	ImagePath string
	Message   string
	// File, when set, is read instead of Message. "-" reads stdin.
	File   string
	Output string
	EmbedOptions
}

type RevealArgs struct {
	ImagePath string
	ExtractOptions
}

// Conceal embeds a message or file into the image at args.ImagePath and writes
// the result to args.Output. The output format follows the Output extension
// unless args.Format is set.
func Conceal(ctx context.Context, args ConcealArgs) error {
	img, err := loadImage(args.ImagePath)
	if err != nil {
		return err
	}

	var messageBytes []byte
	switch {
	case args.File == "-":
		messageBytes, err = io.ReadAll(os.Stdin)
	case args.File != "":
		messageBytes, err = os.ReadFile(args.File)
	default:
		messageBytes = []byte(args.Message)
	}
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	if args.Output == "" {
		args.Output = filepath.Join(filepath.Dir(args.ImagePath), stegoFileName(args.ImagePath, args.Format))
	}
	if args.Format == "" && strings.EqualFold(filepath.Ext(args.Output), ".bmp") {
		args.Format = FormatBMP
	}
	if args.Format == FormatBMP && (args.IncludeAlpha || !img.Opaque()) {
		return fmt.Errorf("%w: bmp output requires an opaque carrier", ErrUnsupportedFormat)
	}

	outputImage, err := Embed(ctx, img, messageBytes, args.EmbedOptions)
	if err != nil {
		return err
	}

	// Encode fully before touching the output so a failure leaves no partial file.
	var buf bytes.Buffer
	if err := EncodeImage(&buf, outputImage, EncodeOptions{Format: args.Format, Quality: args.Quality}); err != nil {
		return err
	}
	if err := os.WriteFile(args.Output, buf.Bytes(), 0644); err != nil {
		return err
	}

	log.Info().Str("output", args.Output).Int("bytes", len(messageBytes)).Msg("Encoded message into the image")
	return nil
}

// Reveal extracts the payload hidden in the image at args.ImagePath.
func Reveal(ctx context.Context, args RevealArgs) ([]byte, error) {
	img, err := loadImage(args.ImagePath)
	if err != nil {
		return nil, err
	}
	return Extract(ctx, img, args.ExtractOptions)
}
