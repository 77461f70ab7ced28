package ocrsource

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"receiptscan/pkg/receipt"
)

// ExtractFragments runs Tesseract over a receipt image and returns positioned
// text fragments for the structuring engine. Recognition is done at text-line
// granularity; the engine re-merges fragments into printed rows from their
// bounding boxes, so slanted captures that split one row into several
// recognized lines still reassemble.
func ExtractFragments(path string) ([]receipt.TextFragment, error) {
	processed, cleanup := preprocess(path)
	defer cleanup()

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("eng")
	client.SetImage(processed)

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("ocr error: %w", err)
	}
	var frags []receipt.TextFragment
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		frags = append(frags, receipt.TextFragment{
			Text:   text,
			Top:    b.Box.Min.Y,
			Bottom: b.Box.Max.Y,
			Left:   b.Box.Min.X,
			Right:  b.Box.Max.X,
		})
	}
	if len(frags) == 0 {
		return nil, ErrNoText
	}
	return frags, nil
}

// ExtractText returns the flat recognized text for callers that only need the
// degraded-mode parse (no box geometry).
func ExtractText(path string) (string, error) {
	processed, cleanup := preprocess(path)
	defer cleanup()

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("eng")
	client.SetImage(processed)

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr error: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}
