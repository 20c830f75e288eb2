package stego

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// FrameFlags describes the transforms applied to a frame's data.
type FrameFlags uint8

const (
	FlagEncrypted FrameFlags = 1 << iota
	FlagCompressed
	FlagErrorCorrected

	knownFlags = FlagEncrypted | FlagCompressed | FlagErrorCorrected
)

// Frame layout, written as one contiguous bitstream:
//
//	[magic 8 bytes][flags 1 byte][length 4 bytes, big endian][data]
const (
	MagicSize       = 8
	FrameHeaderSize = MagicSize + 1 + 4
	FrameHeaderBits = FrameHeaderSize * 8
)

// Magic is modelled on the PNG signature: a high byte, a name and line-ending bytes,
// which arbitrary pixel noise is unlikely to reproduce.
var Magic = [MagicSize]byte{0x89, 'H', 'I', 'D', 'E', 0x0D, 0x0A, 0x1A}

// Frame is a decoded payload frame.
type Frame struct {
	Flags FrameFlags
	Data  []byte
}

// FrameHeader is the fixed-width part of a frame.
type FrameHeader struct {
	Flags  FrameFlags
	Length uint32
}

func (f FrameFlags) Encrypted() bool      { return f&FlagEncrypted != 0 }
func (f FrameFlags) Compressed() bool     { return f&FlagCompressed != 0 }
func (f FrameFlags) ErrorCorrected() bool { return f&FlagErrorCorrected != 0 }

func (f FrameFlags) String() string {
	var parts []string
	if f.Encrypted() {
		parts = append(parts, "encrypted")
	}
	if f.Compressed() {
		parts = append(parts, "compressed")
	}
	if f.ErrorCorrected() {
		parts = append(parts, "ecc")
	}
	if len(parts) == 0 {
		return "plain"
	}
	return fmt.Sprint(parts)
}

// FrameData prepends the frame header to data.
func FrameData(data []byte, flags FrameFlags) ([]byte, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("payload of %d bytes does not fit a 32-bit length field", len(data))
	}
	if flags&^knownFlags != 0 {
		return nil, fmt.Errorf("%w: flags %#x", ErrUnsupportedFrame, uint8(flags))
	}

	out := make([]byte, FrameHeaderSize+len(data))
	copy(out, Magic[:])
	out[MagicSize] = byte(flags)
	binary.BigEndian.PutUint32(out[MagicSize+1:FrameHeaderSize], uint32(len(data)))
	copy(out[FrameHeaderSize:], data)
	return out, nil
}

// ParseFrameHeader decodes the first FrameHeaderSize bytes of b.
func ParseFrameHeader(b []byte) (FrameHeader, error) {
	if len(b) < FrameHeaderSize || !bytes.Equal(b[:MagicSize], Magic[:]) {
		return FrameHeader{}, ErrNoHiddenData
	}

	flags := FrameFlags(b[MagicSize])
	if flags&^knownFlags != 0 {
		return FrameHeader{}, fmt.Errorf("%w: flags %#x", ErrUnsupportedFrame, uint8(flags))
	}

	return FrameHeader{
		Flags:  flags,
		Length: binary.BigEndian.Uint32(b[MagicSize+1 : FrameHeaderSize]),
	}, nil
}

// Unframe decodes a complete frame. Bytes past the declared length are ignored.
func Unframe(b []byte) (*Frame, error) {
	header, err := ParseFrameHeader(b)
	if err != nil {
		return nil, err
	}

	rest := b[FrameHeaderSize:]
	if uint64(len(rest)) < uint64(header.Length) {
		return nil, fmt.Errorf("%w: header declares %d bytes, %d available", ErrTruncatedPayload, header.Length, len(rest))
	}

	data := make([]byte, header.Length)
	copy(data, rest)
	return &Frame{Flags: header.Flags, Data: data}, nil
}
