package receipt

import "strings"

// venueKeywords are words a plausible business name contains. A captured header
// with none of them is reported back to the caller as a missing store name.
var venueKeywords = []string{"STORE", "SUPER", "MARKET", "MART", "PHARMACY", "CENTRE", "SHOP", "GROCERY"}

// addressWords mark a header line that is really a street address.
var addressWords = []string{"ROAD", "SHOP"}

// validateStore produces the final store name and the missing flag. When the
// captured header looks like an address fragment (a digit, or a street word),
// the receipt likely printed the address above the name, so the first line
// containing a venue keyword is substituted before final validation.
func validateStore(header string, lines []string) (string, bool) {
	name := header
	if name != "" && looksLikeAddressFragment(name) {
		for _, ln := range lines {
			if containsVenueKeyword(ln) {
				name = ln
				break
			}
		}
	}
	missing := name == "" || !containsVenueKeyword(name)
	return name, missing
}

func containsVenueKeyword(s string) bool {
	return containsAny(strings.ToUpper(s), venueKeywords)
}

func looksLikeAddressFragment(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return containsAny(strings.ToUpper(s), addressWords)
}
