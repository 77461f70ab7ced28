package receipt

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "0.745 kg @ 560.00/kg" — weight and rate are detected but the price is
	// not computed from them; see the note on weighedItemDescription.
	weightedRE = regexp.MustCompile(`(?i)^\d+(?:\.\d+)?\s*kg\s*@\s*\$?\d+(?:\.\d{1,2})?\s*/\s*kg`)
	// "1 Bread" — quantity and description with no price on the line
	bareQtyRE = regexp.MustCompile(`^(\d+)\s+(.+)$`)
)

// weighedItemDescription is the placeholder used for weight-priced lines.
// Multiplying weight by rate to fill the price is a pending product decision;
// until then the line yields a single unpriced unit item.
const weighedItemDescription = "Weighed item"

// header capture states.
const (
	seekingName = iota
	capturingAddress
	headerDone
)

// extraction is the raw per-strategy output, before price reconciliation and
// store-name validation.
type extraction struct {
	storeName string
	address   []string
	items     []Item
	orphans   []orphanPrice
}

// extractLines walks the filtered logical lines once, capturing the header
// block (store name, then address lines until the first item or skip keyword)
// and turning the remaining content lines into items and orphan prices.
func extractLines(lines []string, st strategy) extraction {
	var ex extraction
	state := seekingName
	if !st.captureHeader {
		ex.storeName = st.fixedStore
		if st.fixedAddress != "" {
			ex.address = append(ex.address, st.fixedAddress)
		}
		state = headerDone
	}

	for _, line := range lines {
		upper := strings.ToUpper(line)
		isSkip := containsAny(upper, st.skipKeywords)
		if st.fixedStore != "" && upper == strings.ToUpper(st.fixedStore) {
			continue
		}
		if equalsAny(upper, st.categoryKeywords) {
			continue
		}

		switch state {
		case seekingName:
			if isSkip {
				continue
			}
			ex.storeName = line
			// a header that is really a street address means the name line was
			// never printed (or never recognized); skip address capture and let
			// the validator run its fallback scan
			if looksLikeAddressFragment(line) {
				state = headerDone
			} else {
				state = capturingAddress
			}
			continue
		case capturingAddress:
			if isSkip {
				state = headerDone
				continue
			}
			if !st.itemRE.MatchString(line) && !weightedRE.MatchString(line) {
				ex.address = append(ex.address, line)
				continue
			}
			state = headerDone
		}

		if isSkip {
			continue
		}
		ex.consume(line, st)
	}
	return ex
}

// consume matches one content line against the strategy's patterns, most
// specific first. Lines matching nothing are dropped silently.
func (ex *extraction) consume(line string, st strategy) {
	if weightedRE.MatchString(line) {
		ex.items = append(ex.items, Item{Quantity: 1, Description: weighedItemDescription})
		return
	}

	if m := st.itemRE.FindStringSubmatch(line); m != nil {
		qty := 1
		if st.qtyGroup > 0 {
			if n, err := strconv.Atoi(m[st.qtyGroup]); err == nil && n >= 1 {
				qty = n
			}
		}
		desc := stripCategoryPrefix(strings.TrimSpace(m[st.descGroup]), st.categoryKeywords)
		if desc == "" || len(strings.Fields(desc)) < st.minDescTokens {
			return // stray word, not a plausible item
		}
		item := Item{Quantity: qty, Description: desc}
		if st.priceGroup > 0 {
			if p, err := parsePrice(m[st.priceGroup]); err == nil {
				item.Price = &p
			}
		}
		ex.items = append(ex.items, item)
		return
	}

	if st.bareQtyItems {
		if m := bareQtyRE.FindStringSubmatch(line); m != nil {
			qty := 1
			if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
				qty = n
			}
			desc := strings.TrimSpace(m[2])
			if desc != "" && len(strings.Fields(desc)) >= st.minDescTokens {
				ex.items = append(ex.items, Item{Quantity: qty, Description: desc})
			}
			return
		}
	}

	if isBareAmount(line) {
		if p, err := parsePrice(strings.TrimSpace(line)); err == nil {
			ex.orphans = append(ex.orphans, orphanPrice{amount: p, order: len(ex.orphans)})
		}
	}
}

// stripCategoryPrefix removes a leading department word ("PRODUCE", "DAIRY", ...)
// that OCR merges into the description on some vendors' layouts.
func stripCategoryPrefix(desc string, categories []string) string {
	upper := strings.ToUpper(desc)
	for _, cat := range categories {
		if strings.HasPrefix(upper, cat) {
			return strings.TrimSpace(desc[len(cat):])
		}
	}
	return desc
}

func equalsAny(upper string, keywords []string) bool {
	for _, k := range keywords {
		if upper == k {
			return true
		}
	}
	return false
}
