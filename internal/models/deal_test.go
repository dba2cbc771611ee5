package models

import "testing"

func TestDiscount(t *testing.T) {
	tests := []struct {
		name     string
		original int
		price    int
		want     int
	}{
		{"half price", 20000, 10000, 50},
		{"forty percent", 25000, 15000, 40},
		{"rounds up", 30000, 19900, 34},
		{"rounds down", 30000, 20200, 33},
		{"no markdown", 10000, 10000, 0},
		{"price above original", 10000, 12000, 0},
		{"missing original", 0, 10000, 0},
		{"free item", 10000, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discount(tt.original, tt.price)
			if got != tt.want {
				t.Errorf("Discount(%d, %d) = %d, want %d", tt.original, tt.price, got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("Discount(%d, %d) = %d, out of [0,100]", tt.original, tt.price, got)
			}
		})
	}
}

func TestDealID_StableAcrossRuns(t *testing.T) {
	a := Deal{Title: "Sample", Price: 10000, Link: "https://www.coupang.com/vp/products/1"}
	b := Deal{Title: "Sample (edited)", Price: 9000, Link: "https://www.coupang.com/vp/products/1"}

	if a.ID() != b.ID() {
		t.Error("ID should depend only on the link when a link is present")
	}
}

func TestDealID_FallbackWithoutLink(t *testing.T) {
	a := Deal{Title: "Sample", Price: 10000}
	b := Deal{Title: "Sample", Price: 10000}
	c := Deal{Title: "Sample", Price: 9000}

	if a.ID() != b.ID() {
		t.Error("identical title+price should produce the same ID")
	}
	if a.ID() == c.ID() {
		t.Error("different price should produce a different fallback ID")
	}
}

func TestNotifiedSet(t *testing.T) {
	s := NewNotifiedSet("b", "a")

	if !s.Contains("a") || !s.Contains("b") {
		t.Error("set should contain its initial identifiers")
	}
	if s.Contains("c") {
		t.Error("set should not contain an unknown identifier")
	}

	s.Add("c")
	s.Add("c")
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3 after duplicate add", s.Len())
	}

	ids := s.IDs()
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("IDs() = %v, want %v", ids, want)
		}
	}
}
