package receipt

import "testing"

func findStrategy(t *testing.T, name string) strategy {
	t.Helper()
	for _, st := range strategies {
		if st.name == name {
			return st
		}
	}
	t.Fatalf("no strategy named %s", name)
	return strategy{}
}

func TestExtractArdenneHeaderAndItems(t *testing.T) {
	lines := []string{
		"Ardenne Pharmacy",
		"Half Way Tree",
		"Kingston 10",
		"1 Pepsi 591ml 169.65",
		"2 Band Aid Small 250.00",
	}
	ex := extractLines(lines, findStrategy(t, "ardenne"))
	if ex.storeName != "Ardenne Pharmacy" {
		t.Fatalf("store name: got %q", ex.storeName)
	}
	if len(ex.address) != 2 || ex.address[0] != "Half Way Tree" || ex.address[1] != "Kingston 10" {
		t.Fatalf("address: got %v", ex.address)
	}
	if len(ex.items) != 2 {
		t.Fatalf("expected 2 items got %+v", ex.items)
	}
	if ex.items[0].Quantity != 1 || ex.items[0].Description != "Pepsi 591ml" {
		t.Fatalf("item 0: %+v", ex.items[0])
	}
	if ex.items[0].Price == nil || *ex.items[0].Price != 169.65 {
		t.Fatalf("item 0 price: %+v", ex.items[0].Price)
	}
	if ex.items[1].Quantity != 2 || ex.items[1].Description != "Band Aid Small" {
		t.Fatalf("item 1: %+v", ex.items[1])
	}
}

func TestExtractArdenneSkipKeywordEndsAddress(t *testing.T) {
	lines := []string{
		"Ardenne Gift Centre",
		"26 Constant Spring",
		"CHANGE DUE",
		"1 Gift Wrap Roll 300.00",
	}
	ex := extractLines(lines, findStrategy(t, "ardenne"))
	if len(ex.address) != 1 || ex.address[0] != "26 Constant Spring" {
		t.Fatalf("address: got %v", ex.address)
	}
	if len(ex.items) != 1 || ex.items[0].Description != "Gift Wrap Roll" {
		t.Fatalf("items: %+v", ex.items)
	}
}

func TestExtractLoshusanCategoryStrip(t *testing.T) {
	lines := []string{
		"LOSHUSAN SUPERMARKET",
		"PRODUCE",
		"PRODUCE BANANA RIPE $88.00 TGCT",
		"GRACE VIENNA SAUSAGE 250.00",
		"BREAD 155.00", // single-token description, dropped
	}
	st := findStrategy(t, "loshusan")
	ex := extractLines(lines, st)
	if ex.storeName != "Loshusan Supermarket" {
		t.Fatalf("store name: got %q", ex.storeName)
	}
	if len(ex.address) != 1 || ex.address[0] != "New Kingston" {
		t.Fatalf("address: got %v", ex.address)
	}
	if len(ex.items) != 2 {
		t.Fatalf("expected 2 items got %+v", ex.items)
	}
	if ex.items[0].Description != "BANANA RIPE" {
		t.Fatalf("category prefix not stripped: %+v", ex.items[0])
	}
	if ex.items[0].Quantity != 1 || ex.items[0].Price == nil || *ex.items[0].Price != 88.00 {
		t.Fatalf("item 0: %+v", ex.items[0])
	}
	if ex.items[1].Description != "GRACE VIENNA SAUSAGE" || *ex.items[1].Price != 250.00 {
		t.Fatalf("item 1: %+v", ex.items[1])
	}
}

func TestExtractWeighedItemPlaceholder(t *testing.T) {
	lines := []string{
		"ABC FOOD MART",
		"0.745 kg @ 560.00/kg",
	}
	ex := extractLines(lines, findStrategy(t, "generic"))
	if len(ex.items) != 1 {
		t.Fatalf("expected 1 item got %+v", ex.items)
	}
	it := ex.items[0]
	if it.Quantity != 1 || it.Description != weighedItemDescription {
		t.Fatalf("weighed item: %+v", it)
	}
	// weight x rate is never computed; the amount must stay unattached here
	if it.Price != nil {
		t.Fatalf("weighed item price should be unset, got %v", *it.Price)
	}
}

func TestExtractGenericOrphanQtyAndPrice(t *testing.T) {
	lines := []string{
		"7 Elm Street",
		"1 Bread",
		"2.50",
	}
	ex := extractLines(lines, findStrategy(t, "generic"))
	if ex.storeName != "7 Elm Street" {
		t.Fatalf("store name: got %q", ex.storeName)
	}
	if len(ex.address) != 0 {
		t.Fatalf("address-like header must not open address capture: %v", ex.address)
	}
	if len(ex.items) != 1 || ex.items[0].Description != "Bread" || ex.items[0].Price != nil {
		t.Fatalf("items: %+v", ex.items)
	}
	if len(ex.orphans) != 1 || ex.orphans[0].amount != 2.50 || ex.orphans[0].order != 0 {
		t.Fatalf("orphans: %+v", ex.orphans)
	}
}

func TestExtractUnrecognizedLineDropped(t *testing.T) {
	lines := []string{
		"ABC FOOD MART",
		"2 Milk 3.99",
		"~~ !! ~~",
	}
	ex := extractLines(lines, findStrategy(t, "generic"))
	if len(ex.items) != 1 || len(ex.orphans) != 0 {
		t.Fatalf("unexpected extraction: items=%+v orphans=%+v", ex.items, ex.orphans)
	}
}

func TestStripCategoryPrefix(t *testing.T) {
	cats := []string{"PRODUCE", "BAKED GOODS"}
	if got := stripCategoryPrefix("PRODUCE BANANA RIPE", cats); got != "BANANA RIPE" {
		t.Fatalf("got %q", got)
	}
	if got := stripCategoryPrefix("Baked Goods Hard Dough", cats); got != "Hard Dough" {
		t.Fatalf("got %q", got)
	}
	if got := stripCategoryPrefix("GRACE SAUSAGE", cats); got != "GRACE SAUSAGE" {
		t.Fatalf("got %q", got)
	}
}
