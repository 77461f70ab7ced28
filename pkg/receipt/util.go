package receipt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s{2,}`)

// collapseSpaces squeezes runs of whitespace into single spaces and trims.
func collapseSpaces(s string) string {
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(s, " "))
}

// parsePrice turns a matched monetary token into a decimal, stripping the
// currency symbol and thousands separators ("$1,169.65" -> 1169.65).
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty price token")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative price %q", s)
	}
	return v, nil
}
