package stego

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		flags FrameFlags
	}{
		{name: "Empty plain", data: nil, flags: 0},
		{name: "Plain", data: []byte("hello world"), flags: 0},
		{name: "Encrypted", data: []byte{0, 1, 2, 3, 4}, flags: FlagEncrypted},
		{name: "All flags", data: bytes.Repeat([]byte{0xAB}, 300), flags: FlagEncrypted | FlagCompressed | FlagErrorCorrected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			framed, err := FrameData(tt.data, tt.flags)
			if err != nil {
				t.Fatalf("FrameData failed: %v", err)
			}
			if len(framed) != FrameHeaderSize+len(tt.data) {
				t.Fatalf("framed length = %d; want %d", len(framed), FrameHeaderSize+len(tt.data))
			}

			frame, err := Unframe(framed)
			if err != nil {
				t.Fatalf("Unframe failed: %v", err)
			}
			if frame.Flags != tt.flags {
				t.Errorf("flags = %v; want %v", frame.Flags, tt.flags)
			}
			if !bytes.Equal(frame.Data, tt.data) {
				t.Errorf("data = %x; want %x", frame.Data, tt.data)
			}
		})
	}
}

func TestFrameLayout(t *testing.T) {
	framed, err := FrameData([]byte("abc"), FlagEncrypted)
	if err != nil {
		t.Fatalf("FrameData failed: %v", err)
	}

	want := []byte{0x89, 'H', 'I', 'D', 'E', 0x0D, 0x0A, 0x1A, 0x01, 0, 0, 0, 3, 'a', 'b', 'c'}
	if !bytes.Equal(framed, want) {
		t.Errorf("framed = %x; want %x", framed, want)
	}
}

func TestUnframeIgnoresTrailingNoise(t *testing.T) {
	framed, _ := FrameData([]byte("msg"), 0)
	framed = append(framed, 0xDE, 0xAD)

	frame, err := Unframe(framed)
	if err != nil {
		t.Fatalf("Unframe failed: %v", err)
	}
	if string(frame.Data) != "msg" {
		t.Errorf("data = %q; want %q", frame.Data, "msg")
	}
}

func TestUnframeErrors(t *testing.T) {
	valid, _ := FrameData([]byte("payload"), 0)

	badMagic := append([]byte(nil), valid...)
	badMagic[1] = 'X'

	unknownFlag := append([]byte(nil), valid...)
	unknownFlag[MagicSize] = 0x80

	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{name: "Empty", input: nil, want: ErrNoHiddenData},
		{name: "Short header", input: valid[:FrameHeaderSize-1], want: ErrNoHiddenData},
		{name: "Bad magic", input: badMagic, want: ErrNoHiddenData},
		{name: "Unknown flag", input: unknownFlag, want: ErrUnsupportedFrame},
		{name: "Truncated data", input: valid[:len(valid)-1], want: ErrTruncatedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unframe(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Unframe error = %v; want %v", err, tt.want)
			}
		})
	}
}

func TestFrameDataRejectsUnknownFlags(t *testing.T) {
	if _, err := FrameData(nil, FrameFlags(0x40)); !errors.Is(err, ErrUnsupportedFrame) {
		t.Errorf("FrameData error = %v; want ErrUnsupportedFrame", err)
	}
}

func TestFrameFlagsString(t *testing.T) {
	if got := FrameFlags(0).String(); got != "plain" {
		t.Errorf("String() = %q; want plain", got)
	}
	if got := (FlagEncrypted | FlagErrorCorrected).String(); got != "[encrypted ecc]" {
		t.Errorf("String() = %q; want [encrypted ecc]", got)
	}
}
