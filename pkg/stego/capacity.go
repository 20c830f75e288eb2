package stego

// channelsUsed is the number of channels per pixel that carry payload bits.
func channelsUsed(includeAlpha bool) int {
	if includeAlpha {
		return 4
	}
	return 3
}

// GetCapacity returns how many payload bits a width x height carrier can hold,
// frame header included.
func GetCapacity(width, height int, includeAlpha bool) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return width * height * channelsUsed(includeAlpha)
}

// MaxMessageBytes returns the longest message, in bytes, that fits a carrier
// without compression or error correction.
func MaxMessageBytes(width, height int, includeAlpha, encrypted bool) int {
	n := GetCapacity(width, height, includeAlpha)/8 - FrameHeaderSize
	if encrypted {
		n -= EncryptionOverhead
	}
	if n < 0 {
		return 0
	}
	return n
}
