package search

import (
	"testing"

	"github.com/mkl159/StockToPlate/pkg/models"
)

func item(name string, barcodes ...string) models.StockItem {
	return models.StockItem{ProductName: name, Barcodes: barcodes}
}

func TestMatchAllWordsCommutative(t *testing.T) {
	it := item("Sauce Tomate Bio", "3017620422003")

	orders := [][]string{
		{"sauce", "tomate", "bio"},
		{"bio", "sauce", "tomate"},
		{"tomate", "bio", "sauce"},
	}
	for _, words := range orders {
		if !MatchAllWords(it, words) {
			t.Errorf("MatchAllWords(%v) = false, want true", words)
		}
	}

	misses := [][]string{
		{"sauce", "piment"},
		{"piment", "sauce"},
	}
	for _, words := range misses {
		if MatchAllWords(it, words) {
			t.Errorf("MatchAllWords(%v) = true, want false", words)
		}
	}
}

func TestMatchAllWordsBarcode(t *testing.T) {
	it := item("Lait", "3017620422003")

	if !MatchAllWords(it, []string{"3017620"}) {
		t.Error("barcode substring should match")
	}
	if !MatchAllWords(it, []string{"lait", "422003"}) {
		t.Error("mixed name and barcode words should match")
	}
}

func TestFilterTomatoScenario(t *testing.T) {
	stock := []models.StockItem{
		item("Tomato Sauce", "no barcode"),
		item("Olive Oil", "8001234567890"),
	}

	found := Filter(stock, "tomato")
	if len(found) != 1 {
		t.Fatalf("got %d matches, want 1", len(found))
	}
	if found[0].ProductName != "Tomato Sauce" {
		t.Errorf("match = %q, want Tomato Sauce", found[0].ProductName)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	stock := []models.StockItem{
		item("Pomme Rouge", "no barcode"),
		item("Jus de Pomme", "no barcode"),
		item("Poire", "no barcode"),
		item("Compote de Pomme", "no barcode"),
	}

	found := Filter(stock, "POMME")
	want := []string{"Pomme Rouge", "Jus de Pomme", "Compote de Pomme"}
	if len(found) != len(want) {
		t.Fatalf("got %d matches, want %d", len(found), len(want))
	}
	for i, name := range want {
		if found[i].ProductName != name {
			t.Errorf("found[%d] = %q, want %q", i, found[i].ProductName, name)
		}
	}
}
