package receipt

import (
	"regexp"
	"strings"
)

// strategy bundles the parsing rules for one recognized receipt vendor: the
// detection marker, skip and category keyword lists, and the item-line pattern.
// Vendors format quantity/description/price in different column orders, so the
// regex group indices are part of the parameter set (0 means the pattern does
// not carry that field). New vendors are added by extending the table below,
// never by branching logic.
type strategy struct {
	name             string
	marker           string // uppercased detection substring; empty matches anything
	skipKeywords     []string
	categoryKeywords []string
	itemRE           *regexp.Regexp
	qtyGroup         int
	descGroup        int
	priceGroup       int
	fixedStore       string // vendor with a known name prints no usable header
	fixedAddress     string
	captureHeader    bool
	bareQtyItems     bool // also accept "<qty> <description>" lines without a price
	minDescTokens    int
}

// strategies is tried in order against the uppercased cleaned text; the first
// marker hit wins and the trailing empty-marker entry is the generic fallback.
var strategies = []strategy{
	{
		name:   "ardenne",
		marker: "ARDENNE",
		skipKeywords: []string{
			"TOTAL", "SUBTOTAL", "BALANCE", "SALES", "TAX", "USER", "DATE",
			"RECEIPT", "CHANGE", "THANK YOU", "RETURN", "REFUND",
		},
		// "1 Pepsi 591ml 169.65"
		itemRE:        regexp.MustCompile(`^(\d+)\s+(.+?)\s+(\d+(?:\.\d{1,2})?)$`),
		qtyGroup:      1,
		descGroup:     2,
		priceGroup:    3,
		captureHeader: true,
		minDescTokens: 1,
	},
	{
		name:   "loshusan",
		marker: "LOSHUSAN",
		skipKeywords: []string{
			"TOTAL", "SUBTOTAL", "SALES", "CARD", "NCB", "ITEM COUNT",
			"RECEIPT", "THANK YOU", "NO EXCHANGE", "DONATE", "BREAST CANCER",
			"INV#", "TRS#", "TEL#", "DATE", "TIME",
		},
		categoryKeywords: []string{"PRODUCE", "BAKED GOODS", "GROCERY", "MEAT", "DAIRY"},
		// "GROCERY GRACE VIENNA SAUSAGE $250.00 TGCT"
		itemRE:        regexp.MustCompile(`^(.+?)\s+\$?(\d+(?:\.\d{1,2}))\s*(?:TG[A-Z]+)?$`),
		descGroup:     1,
		priceGroup:    2,
		fixedStore:    "Loshusan Supermarket",
		fixedAddress:  "New Kingston",
		minDescTokens: 2,
	},
	{
		name: "generic",
		skipKeywords: []string{
			"TOTAL", "SUBTOTAL", "TAX", "BALANCE", "CHANGE", "THANK YOU",
		},
		itemRE:        regexp.MustCompile(`^(\d+)\s+(.+?)\s+\$?(\d+(?:\.\d{1,2})?)$`),
		qtyGroup:      1,
		descGroup:     2,
		priceGroup:    3,
		captureHeader: true,
		bareQtyItems:  true,
		minDescTokens: 1,
	},
}

// selectStrategy sniffs the cleaned receipt text for a recognized chain name.
func selectStrategy(cleanText string) strategy {
	upper := strings.ToUpper(cleanText)
	for _, st := range strategies {
		if st.marker == "" || strings.Contains(upper, st.marker) {
			return st
		}
	}
	return strategies[len(strategies)-1]
}
