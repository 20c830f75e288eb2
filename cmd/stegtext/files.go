package main

import (
	"image"
	"os"

	"github.com/andresmejia3/stegtext/pkg/stego"
)

func readImageFile(path string) (stego.ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return stego.ImageFile{}, err
	}
	return stego.ImageFile{Name: path, Data: data}, nil
}

func loadImage(path string) (*image.NRGBA, error) {
	file, err := readImageFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := stego.DecodeImage(file.Data)
	return img, err
}
