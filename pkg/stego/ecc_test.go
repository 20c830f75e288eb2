package stego

import (
	"bytes"
	"errors"
	"testing"
)

func TestReedSolomonRoundTrip(t *testing.T) {
	for _, msg := range [][]byte{{}, []byte("a"), []byte("Reed-Solomon protected payload"), bytes.Repeat([]byte{7}, 1001)} {
		encoded, err := addReedSolomon(msg)
		if err != nil {
			t.Fatalf("addReedSolomon failed: %v", err)
		}
		if len(encoded)%rsTotalShards != 0 {
			t.Fatalf("encoded length %d is not a multiple of %d", len(encoded), rsTotalShards)
		}

		decoded, err := removeReedSolomon(encoded)
		if err != nil {
			t.Fatalf("removeReedSolomon failed: %v", err)
		}
		if !bytes.Equal(decoded, msg) {
			t.Errorf("decoded = %q; want %q", decoded, msg)
		}
	}
}

func TestReedSolomonRecoversDamagedShards(t *testing.T) {
	msg := []byte("this message survives two damaged shards")
	encoded, err := addReedSolomon(msg)
	if err != nil {
		t.Fatalf("addReedSolomon failed: %v", err)
	}
	stride := len(encoded) / rsTotalShards

	// Damage a data shard and a parity shard.
	encoded[rsChecksumSize+1] ^= 0xFF
	encoded[5*stride+rsChecksumSize] ^= 0x01

	decoded, err := removeReedSolomon(encoded)
	if err != nil {
		t.Fatalf("removeReedSolomon failed: %v", err)
	}
	if !bytes.Equal(decoded, msg) {
		t.Errorf("decoded = %q; want %q", decoded, msg)
	}
}

func TestReedSolomonTooManyDamagedShards(t *testing.T) {
	encoded, err := addReedSolomon([]byte("unrecoverable"))
	if err != nil {
		t.Fatalf("addReedSolomon failed: %v", err)
	}
	stride := len(encoded) / rsTotalShards
	for i := 0; i < 3; i++ {
		encoded[i*stride+rsChecksumSize] ^= 0xFF
	}

	if _, err := removeReedSolomon(encoded); !errors.Is(err, ErrCorruptPayload) {
		t.Errorf("removeReedSolomon error = %v; want ErrCorruptPayload", err)
	}
}

func TestReedSolomonBadLength(t *testing.T) {
	if _, err := removeReedSolomon([]byte{1, 2, 3}); !errors.Is(err, ErrCorruptPayload) {
		t.Errorf("removeReedSolomon error = %v; want ErrCorruptPayload", err)
	}
}
