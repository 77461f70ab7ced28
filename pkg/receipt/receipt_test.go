package receipt

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseSupermarketScenario(t *testing.T) {
	frags := []TextFragment{
		{Text: "ABC", Top: 0, Bottom: 20, Left: 0, Right: 60},
		{Text: "SUPERMARKET", Top: 2, Bottom: 18, Left: 70, Right: 260},
		{Text: "123 Main St", Top: 40, Bottom: 60, Left: 0, Right: 160},
		{Text: "2 Milk", Top: 80, Bottom: 100, Left: 0, Right: 90},
		{Text: "3.99", Top: 82, Bottom: 98, Left: 300, Right: 350},
		{Text: "TOTAL 7.98", Top: 120, Bottom: 140, Left: 0, Right: 150},
	}
	s := Parse(frags)
	if s.StoreName != "ABC SUPERMARKET" {
		t.Fatalf("store name: %q", s.StoreName)
	}
	if s.StoreNameMissing {
		t.Fatalf("store name should be accepted (contains SUPER)")
	}
	if s.Address != "123 Main St" {
		t.Fatalf("address: %q", s.Address)
	}
	if len(s.Items) != 1 {
		t.Fatalf("items: %+v", s.Items)
	}
	it := s.Items[0]
	if it.Quantity != 2 || it.Description != "Milk" || it.Price == nil || *it.Price != 3.99 {
		t.Fatalf("item: %+v", it)
	}
}

func TestParseTextAddressHeaderScenario(t *testing.T) {
	s := ParseText("7 Elm Street\n1 Bread\n2.50")
	if !s.StoreNameMissing {
		t.Fatalf("no venue keyword anywhere, store name must be flagged missing")
	}
	if len(s.Items) != 1 {
		t.Fatalf("items: %+v", s.Items)
	}
	it := s.Items[0]
	if it.Quantity != 1 || it.Description != "Bread" {
		t.Fatalf("item: %+v", it)
	}
	if it.Price == nil || *it.Price != 2.50 {
		t.Fatalf("orphan price not reconciled: %+v", it.Price)
	}
}

func TestParseEmptyInput(t *testing.T) {
	s := Parse(nil)
	if s.StoreName != "" || !s.StoreNameMissing {
		t.Fatalf("empty input: %+v", s)
	}
	if s.Items == nil || len(s.Items) != 0 {
		t.Fatalf("items must be an empty sequence, got %#v", s.Items)
	}
}

func TestParseTextArdenneEndToEnd(t *testing.T) {
	raw := strings.Join([]string{
		"Ardenne Pharmacy",
		"Half Way Tree, Kingston 10",
		"1 Pepsi 591ml 169.65",
		"2 Panadol Extra 410.00",
		"TOTAL 989.65",
		"VISA CARD ****1234",
		"THANK YOU",
	}, "\n")
	s := ParseText(raw)
	if s.StoreName != "Ardenne Pharmacy" {
		t.Fatalf("store name: %q", s.StoreName)
	}
	if s.StoreNameMissing {
		t.Fatalf("PHARMACY is a venue keyword, name should be accepted")
	}
	if s.Address != "Half Way Tree, Kingston 10" {
		t.Fatalf("address: %q", s.Address)
	}
	if len(s.Items) != 2 {
		t.Fatalf("items: %+v", s.Items)
	}
	if s.Items[1].Description != "Panadol Extra" || *s.Items[1].Price != 410.00 {
		t.Fatalf("item 1: %+v", s.Items[1])
	}
}

func TestParseRoundTripGeneric(t *testing.T) {
	store := "EXAMPLE FOOD MART"
	items := []Item{
		{Quantity: 2, Description: "Whole Milk", Price: fptr(3.99)},
		{Quantity: 1, Description: "Hard Dough Bread", Price: fptr(2.50)},
		{Quantity: 3, Description: "Brown Eggs", Price: fptr(6.00)},
	}
	var b strings.Builder
	b.WriteString(store + "\n")
	for _, it := range items {
		fmt.Fprintf(&b, "%d %s %.2f\n", it.Quantity, it.Description, *it.Price)
	}
	s := ParseText(b.String())
	if s.StoreName != store || s.StoreNameMissing {
		t.Fatalf("store: %q missing=%v", s.StoreName, s.StoreNameMissing)
	}
	if len(s.Items) != len(items) {
		t.Fatalf("expected %d items got %+v", len(items), s.Items)
	}
	for i, want := range items {
		if s.Items[i].Description != want.Description || s.Items[i].Quantity != want.Quantity {
			t.Fatalf("item %d: got %+v want %+v", i, s.Items[i], want)
		}
	}
}
