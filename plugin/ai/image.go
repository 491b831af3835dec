package ai

import (
	"bytes"

	"github.com/disintegration/imaging"
)

const jpegQuality = 85

// NormalizeImage downscales oversized schedule photos so the vision request
// stays within reasonable size and token cost. Images whose longest side is
// within maxDim pass through untouched; larger ones are resized with Lanczos
// and re-encoded as JPEG. Undecodable bytes also pass through unchanged: the
// extraction call remains the arbiter of what is a usable image.
func NormalizeImage(data []byte, mimeType string, maxDim int) ([]byte, string) {
	if maxDim <= 0 {
		return data, mimeType
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, mimeType
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxDim && height <= maxDim {
		return data, mimeType
	}

	if width >= height {
		img = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
	} else {
		img = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return data, mimeType
	}
	return buf.Bytes(), "image/jpeg"
}
