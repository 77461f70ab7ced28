package receipt

// reconcile assigns orphan prices to unpriced items, both in document order:
// the next unpriced item always takes the next unused orphan price. Receipts
// print descriptions and their prices in the same top-to-bottom order even when
// OCR splits them onto separate lines, so positional pairing is a reasonable
// approximation (not a guarantee — irregular interleaving can misattribute).
// The input slice is never mutated; a reconciled copy is returned and item
// order is preserved. When orphan prices run out the remaining items keep a
// nil price.
func reconcile(items []Item, orphans []orphanPrice) []Item {
	out := make([]Item, 0, len(items))
	next := 0
	for _, it := range items {
		if it.Price == nil && next < len(orphans) {
			p := orphans[next].amount
			next++
			it.Price = &p
		}
		out = append(out, it)
	}
	return out
}
