package grocy

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkl159/StockToPlate/pkg/locales"
)

const stockPayload = `[
	{
		"product_id": 42,
		"amount": 3,
		"best_before_date": "2026-09-15",
		"product": {"name": "Tomato Sauce", "barcodes": [], "picture_url": ""}
	},
	{
		"product_id": "7",
		"amount": 1.5,
		"best_before_date": "",
		"product": {"name": "", "barcodes": ["3017620422003"], "picture_url": ""}
	}
]`

func TestFetchStockNormalizesSentinels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stock" {
			t.Errorf("path = %q, want /api/stock", r.URL.Path)
		}
		if got := r.Header.Get("GROCY-API-KEY"); got != "secret" {
			t.Errorf("GROCY-API-KEY = %q, want secret", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, stockPayload)
	}))
	defer srv.Close()

	texts := locales.Get("EN")
	c := New(srv.URL, "secret", texts)

	items, err := c.FetchStock()
	if err != nil {
		t.Fatalf("FetchStock: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.ProductID != "42" {
		t.Errorf("ProductID = %q, want 42", first.ProductID)
	}
	if len(first.Barcodes) != 1 || first.Barcodes[0] != texts.NoBarcode {
		t.Errorf("Barcodes = %v, want the %q sentinel", first.Barcodes, texts.NoBarcode)
	}

	second := items[1]
	if second.ProductName != texts.UnknownProduct {
		t.Errorf("ProductName = %q, want %q", second.ProductName, texts.UnknownProduct)
	}
	if second.BestBeforeDate != texts.UnknownDate {
		t.Errorf("BestBeforeDate = %q, want %q", second.BestBeforeDate, texts.UnknownDate)
	}
}

func TestFetchStockUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", locales.Get("EN"))

	if _, err := c.FetchStock(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("FetchStock = %v, want ErrUnavailable", err)
	}
}

func TestFetchStockTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, "secret", locales.Get("EN"))

	if _, err := c.FetchStock(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("FetchStock = %v, want ErrUnavailable", err)
	}
}

func TestSetQuantitySendsNewAmount(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", locales.Get("EN"))

	if err := c.SetQuantity("42", 0); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if gotPath != "/api/stock/products/42/inventory" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody != `{"new_amount":0}` {
		t.Errorf("body = %q, want {\"new_amount\":0}", gotBody)
	}
}

func TestSetQuantityRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", locales.Get("EN"))

	if err := c.SetQuantity("42", 5); !errors.Is(err, ErrRejected) {
		t.Errorf("SetQuantity = %v, want ErrRejected", err)
	}
}
