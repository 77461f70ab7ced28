package receipt

import (
	"sort"
	"strings"
)

// ReconstructLines merges unordered OCR fragments into top-to-bottom logical
// lines. Receipts print in rows, but recognizers emit per-word or per-run
// fragments in no particular order, so rows are rebuilt purely from vertical
// geometry: consecutive fragments (sorted by top) join the current row while
// their vertical spans overlap. Overlap grouping, unlike a fixed distance
// threshold, tolerates rows that mix font heights.
func ReconstructLines(frags []TextFragment) []LogicalLine {
	usable := make([]TextFragment, 0, len(frags))
	for _, f := range frags {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		if f.Bottom < f.Top { // no usable bounding box
			continue
		}
		usable = append(usable, f)
	}
	sort.SliceStable(usable, func(i, j int) bool { return usable[i].Top < usable[j].Top })

	var out []LogicalLine
	var group []TextFragment
	gTop, gBottom := 0, 0

	flush := func() {
		if len(group) == 0 {
			return
		}
		members := make([]TextFragment, len(group))
		copy(members, group)
		// left-to-right reading order; fragments without horizontal data keep
		// their original OCR order under the stable sort
		sort.SliceStable(members, func(i, j int) bool { return members[i].Left < members[j].Left })
		parts := make([]string, 0, len(members))
		for _, m := range members {
			parts = append(parts, m.Text)
		}
		text := collapseSpaces(strings.Join(parts, " "))
		if text != "" {
			out = append(out, LogicalLine{Text: text, Top: gTop, Bottom: gBottom})
		}
		group = group[:0]
	}

	for _, f := range usable {
		if len(group) == 0 {
			group = append(group, f)
			gTop, gBottom = f.Top, f.Bottom
			continue
		}
		overlap := min(gBottom, f.Bottom) - max(gTop, f.Top)
		if overlap > 0 {
			group = append(group, f)
			gTop = min(gTop, f.Top)
			gBottom = max(gBottom, f.Bottom)
		} else {
			flush()
			group = append(group, f)
			gTop, gBottom = f.Top, f.Bottom
		}
	}
	flush()
	return out
}
