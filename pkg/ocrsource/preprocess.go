package ocrsource

import (
	"os"

	"github.com/disintegration/imaging"
)

// preprocess applies light enhancement before recognition: grayscale, a mild
// contrast and sharpen pass, and an upscale for small captures. It returns the
// path to a temporary PNG (or the original path if preprocessing failed) and a
// cleanup func.
func preprocess(path string) (string, func()) {
	img, err := imaging.Open(path)
	if err != nil {
		return path, func() {}
	}
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 15)
	gray = imaging.Sharpen(gray, 0.7)
	if gray.Bounds().Dy() < 900 {
		gray = imaging.Resize(gray, 0, 1300, imaging.Lanczos)
	}
	tmpFile, err := os.CreateTemp("", "receipt-ocr-*.png")
	if err != nil {
		return path, func() {}
	}
	tmp := tmpFile.Name()
	_ = tmpFile.Close()
	if err := imaging.Save(gray, tmp); err != nil {
		_ = os.Remove(tmp)
		return path, func() {}
	}
	return tmp, func() { _ = os.Remove(tmp) }
}
