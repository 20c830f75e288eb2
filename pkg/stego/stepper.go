package stego

import (
	"context"
	"errors"
	"image"
	"io"
)

// yieldInterval is how many bits are processed between context checks.
const yieldInterval = 4096

var errStepperExhausted = errors.New("more steps taken than channels in the image")

// ImageStepper walks channel positions in the canonical scan order: rows top to
// bottom, pixels left to right, channels R, G, B and optionally A.
type ImageStepper struct {
	x           int
	y           int
	channel     int
	numSteps    int
	width       int
	height      int
	channelSize int
}

func makeImageStepper(width int, height int, channelSize int) *ImageStepper {
	return &ImageStepper{
		width:       width,
		height:      height,
		channelSize: channelSize,
	}
}

func (self *ImageStepper) capacity() int {
	return self.width * self.height * self.channelSize
}

func (self *ImageStepper) remaining() int {
	return self.capacity() - self.numSteps
}

func (self *ImageStepper) done() bool {
	return self.y >= self.height || self.width == 0
}

// step advances to the next channel. It fails once every channel has been visited.
func (self *ImageStepper) step() error {
	if self.done() {
		return errStepperExhausted
	}

	self.numSteps++
	self.channel++

	if self.channel >= self.channelSize {
		self.channel = 0
		self.x++
		if self.x >= self.width {
			self.x = 0
			self.y++
		}
	}
	return nil
}

// Progress receives the number of bits processed so far and the total expected.
type Progress func(done, total int)

// writeBits stores bits in the least significant bit of successive channels.
// With a nil rng the bit is replaced; otherwise LSB matching is used and rng
// decides the direction of each ±1 change.
func writeBits(ctx context.Context, img *image.NRGBA, stepper *ImageStepper, bits []uint8, rng io.ByteReader, progress Progress) error {
	for i, bit := range bits {
		if i%yieldInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			if progress != nil {
				progress(i, len(bits))
			}
		}
		if stepper.done() {
			return errStepperExhausted
		}

		pixel := getPixel(img, stepper.x, stepper.y)
		if rng != nil {
			val, err := matchBitUint8(pixel[stepper.channel], bit, rng)
			if err != nil {
				return err
			}
			pixel[stepper.channel] = val
		} else {
			pixel[stepper.channel] = writeBitUint8(pixel[stepper.channel], 0, bit)
		}

		if err := stepper.step(); err != nil {
			return err
		}
	}
	if progress != nil {
		progress(len(bits), len(bits))
	}
	return nil
}

func readBits(ctx context.Context, img *image.NRGBA, stepper *ImageStepper, n int, progress Progress) ([]uint8, error) {
	bits := make([]uint8, n)
	for i := range bits {
		if i%yieldInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if progress != nil {
				progress(i, n)
			}
		}
		if stepper.done() {
			return nil, errStepperExhausted
		}

		pixel := getPixel(img, stepper.x, stepper.y)
		bits[i] = getBitUint8(pixel[stepper.channel], 0)

		if err := stepper.step(); err != nil {
			return nil, err
		}
	}
	if progress != nil {
		progress(n, n)
	}
	return bits, nil
}
