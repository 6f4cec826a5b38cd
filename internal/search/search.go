// Package search filters the stock against free-text queries.
package search

import (
	"strings"

	"github.com/mkl159/StockToPlate/pkg/models"
)

// MatchAllWords reports whether every word appears in the product name or
// in at least one barcode. Matching is case-insensitive and word order is
// irrelevant. An empty word list matches everything; callers route empty
// queries back to the welcome flow before searching.
func MatchAllWords(item models.StockItem, words []string) bool {
	name := strings.ToLower(item.ProductName)
	barcodes := make([]string, len(item.Barcodes))
	for i, b := range item.Barcodes {
		barcodes[i] = strings.ToLower(b)
	}

	for _, w := range words {
		w = strings.ToLower(w)
		if strings.Contains(name, w) {
			continue
		}
		inBarcode := false
		for _, b := range barcodes {
			if strings.Contains(b, w) {
				inBarcode = true
				break
			}
		}
		if !inBarcode {
			return false
		}
	}
	return true
}

// Filter returns the stock items matching every whitespace-separated word
// of query, preserving the original stock order.
func Filter(stock []models.StockItem, query string) []models.StockItem {
	words := strings.Fields(strings.ToLower(query))

	var found []models.StockItem
	for _, item := range stock {
		if MatchAllWords(item, words) {
			found = append(found, item)
		}
	}
	return found
}
