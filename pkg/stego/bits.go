package stego

import (
	"fmt"
	"io"
)

// BytesToBits unpacks data into one element per bit, most significant bit first
// within each byte. Every element is 0 or 1.
func BytesToBits(data []byte) []uint8 {
	bits := make([]uint8, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, getBitUint8(b, i))
		}
	}
	return bits
}

// BitsToBytes is the inverse of BytesToBits.
func BitsToBytes(bits []uint8) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a whole number of bytes", ErrMalformedBitStream, len(bits))
	}

	out := make([]byte, len(bits)/8)
	for i, bit := range bits {
		switch bit {
		case 0:
		case 1:
			out[i/8] = setBitUint8(out[i/8], 7-i%8)
		default:
			return nil, fmt.Errorf("%w: element %d has value %d", ErrMalformedBitStream, i, bit)
		}
	}
	return out, nil
}

func getBitUint8(num uint8, index int) uint8 {
	return (num >> index) & 1
}

func setBitUint8(num uint8, index int) uint8 {
	mask := uint8(1 << index)
	return num | mask
}

func clearBitUint8(num uint8, index int) uint8 {
	mask := uint8(^(1 << index))
	return num & mask
}

// writeBitUint8 sets bit index of num to bit.
func writeBitUint8(num uint8, index int, bit uint8) uint8 {
	if bit == 0 {
		return clearBitUint8(num, index)
	}
	return setBitUint8(num, index)
}

// matchBitUint8 gives num a least significant bit of bit by adding or
// subtracting 1 instead of overwriting it. 0 and 255 only move inwards.
func matchBitUint8(num uint8, bit uint8, rng io.ByteReader) (uint8, error) {
	if num&1 == bit {
		return num, nil
	}

	r, err := rng.ReadByte()
	if err != nil {
		return 0, err
	}

	switch {
	case num == 0:
		return 1, nil
	case num == 255:
		return 254, nil
	case r&1 == 0:
		return num + 1, nil
	default:
		return num - 1, nil
	}
}
