package receipt

import (
	"regexp"
	"strings"
)

// Boilerplate keyword groups. Matching is substring containment on an
// uppercased copy of the line, rule order matters (first hit wins).
var (
	paymentKeywords = []string{"CARD", "DEBIT", "CREDIT", "VISA", "MASTERCARD", "NCB", "SCOTIA", "BANK"}
	totalsKeywords  = []string{"TOTAL", "SUBTOTAL", "TAX", "SALES", "BALANCE"}
	metaKeywords    = []string{"RECEIPT", "INV#", "TRS#", "ITEM COUNT", "DATE", "TIME", "CASHIER"}
)

var (
	// phone numbers like "926-4811" or "Tel# 926 4811"
	phoneRE = regexp.MustCompile(`\b(TEL|TEL#|PHONE)?\s*\d{3}[-\s]?\d{4}\b`)
	// a line that is nothing but a currency amount, e.g. "2.50", "$1,169.65"
	bareAmountRE = regexp.MustCompile(`^\$?\d+(?:,\d{3})*(?:\.\d{1,2})?$`)
)

// IsNoise reports whether a logical line is receipt boilerplate (totals, tax,
// payment method, metadata) rather than item or header content. The rules are
// intentionally conservative: false negatives (noise kept) are preferred over
// false positives (content dropped), since per-strategy extraction filters again.
func IsNoise(line string) bool {
	text := strings.ToUpper(strings.TrimSpace(line))
	if len(text) < 3 {
		return true
	}
	if phoneRE.MatchString(text) {
		return true
	}
	if containsAny(text, paymentKeywords) {
		return true
	}
	if containsAny(text, totalsKeywords) {
		return true
	}
	if containsAny(text, metaKeywords) {
		return true
	}
	if bareAmountRE.MatchString(text) {
		return true
	}
	return false
}

func isBareAmount(line string) bool {
	return bareAmountRE.MatchString(strings.TrimSpace(line))
}

func containsAny(upper string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(upper, k) {
			return true
		}
	}
	return false
}
