package receipt

import "strings"

// TextFragment is one OCR-recognized span of text with its bounding box in
// image coordinates. Lower Top means higher on the page.
type TextFragment struct {
	Text   string
	Top    int
	Bottom int
	Left   int
	Right  int
}

// LogicalLine is a reconstructed printed row assembled from one or more fragments.
type LogicalLine struct {
	Text   string
	Top    int
	Bottom int
}

// Item is a single purchasable line entry recovered from a receipt.
// Price is nil when no amount could be attached to the item.
type Item struct {
	Quantity    int
	Description string
	Price       *float64
}

// Summary is the structured result of one parse invocation. StoreName is empty
// when no header line was captured; StoreNameMissing additionally flags names
// that fail the venue plausibility check.
type Summary struct {
	StoreName        string
	Address          string
	Items            []Item
	StoreNameMissing bool
}

// orphanPrice is a monetary amount found on its own line, not yet attached to
// an item. Order is the position in document order among orphan prices.
type orphanPrice struct {
	amount float64
	order  int
}

// Parse converts positioned OCR fragments into a receipt summary. It is a pure
// function: malformed lines are skipped, never reported as errors, and the
// worst case is an empty summary with StoreNameMissing set.
func Parse(frags []TextFragment) Summary {
	lines := ReconstructLines(frags)
	texts := make([]string, 0, len(lines))
	for _, ln := range lines {
		texts = append(texts, ln.Text)
	}
	return parseLines(texts)
}

// ParseText is the degraded-mode entry point for callers that only have flat
// OCR text without box geometry. Each input line becomes one logical line.
func ParseText(raw string) Summary {
	var lines []string
	for _, ln := range strings.Split(raw, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return parseLines(lines)
}

func parseLines(lines []string) Summary {
	// Bare amount lines are classified as noise but still carry the price of a
	// nearby item when OCR split the two, so they are kept for reconciliation.
	kept := make([]string, 0, len(lines))
	for _, ln := range lines {
		if IsNoise(ln) && !isBareAmount(ln) {
			continue
		}
		kept = append(kept, ln)
	}

	st := selectStrategy(strings.Join(kept, "\n"))
	ex := extractLines(kept, st)
	items := reconcile(ex.items, ex.orphans)
	name, missing := validateStore(ex.storeName, kept)

	return Summary{
		StoreName:        name,
		Address:          strings.Join(ex.address, ", "),
		Items:            items,
		StoreNameMissing: missing,
	}
}
