package stego

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: ErrNoHiddenData, want: "no hidden message detected"},
		{err: fmt.Errorf("wrapped: %w", ErrAuthentication), want: "incorrect password or corrupted data"},
		{err: ErrPasswordRequired, want: "this message is password protected; please provide the password"},
		{err: &CapacityError{Required: 16000, Available: 8000}, want: "image too small to hold this message: needs 2.0 kB, image holds 1.0 kB"},
		{err: fmt.Errorf("%w: bad", ErrTruncatedPayload), want: "the hidden data is corrupted; the image may have been re-compressed or edited"},
		{err: ErrMalformedBitStream, want: "the hidden data is corrupted; the image may have been re-compressed or edited"},
		{err: ErrEncoding, want: "the message is not valid UTF-8 text"},
		{err: context.Canceled, want: "the operation was cancelled"},
		{err: errors.New("cipher: message authentication failed"), want: "the operation failed unexpectedly"},
	}

	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q; want %q", tt.err, got, tt.want)
		}
	}
}

func TestUserMessageHidesInternals(t *testing.T) {
	err := fmt.Errorf("%w: png: invalid format: not a PNG file", ErrInvalidImage)
	if msg := UserMessage(err); strings.Contains(msg, "png:") {
		t.Errorf("UserMessage leaked internal detail: %q", msg)
	}
}

func TestCapacityErrorMessage(t *testing.T) {
	err := &CapacityError{Required: 320, Available: 312}
	if got := err.Error(); got != "capacity exceeded: required 320 bits, available 312 bits" {
		t.Errorf("Error() = %q", got)
	}
}
