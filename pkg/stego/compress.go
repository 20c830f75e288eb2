package stego

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// maxDecompressedSize bounds zstd output so a forged frame cannot exhaust memory.
const maxDecompressedSize = 64 << 20

// compress returns the zstd encoding of data and whether it is smaller than data.
// Callers keep the original when it is not.
func compress(data []byte) ([]byte, bool, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, false, err
	}
	defer enc.Close()

	out := enc.EncodeAll(data, make([]byte, 0, len(data)))
	if len(out) >= len(data) {
		return data, false, nil
	}
	return out, true, nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecompressedSize), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	return out, nil
}
