package images

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"wpc/crop"
)

// SniffLen is how many leading bytes filetype needs to identify a format.
const SniffLen = 261

// ReadSize reads image dimensions from the stream header without decoding
// pixel data.
func ReadSize(r io.Reader) (crop.Size, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return crop.Size{}, "", fmt.Errorf("unable to read image dimensions: %w", err)
	}
	return crop.Size{Width: cfg.Width, Height: cfg.Height}, format, nil
}

// ReadSizeFile reads image dimensions from the file header.
func ReadSizeFile(path string) (crop.Size, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return crop.Size{}, "", err
	}
	defer f.Close()
	return ReadSize(f)
}

// IsSupported reports whether data begins like one of the raster formats we
// know how to size.
func IsSupported(data []byte) bool {
	for _, ext := range []string{"jpg", "png", "gif", "webp", "tif", "bmp"} {
		if filetype.Is(data, ext) {
			return true
		}
	}
	return false
}

// IsSupportedFile sniffs the beginning of the file and reports whether it
// looks like a supported raster image.
func IsSupportedFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, SniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false
	}
	return IsSupported(head[:n])
}
