// Package grocy is the client for the Grocy stock REST API.
package grocy

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/mkl159/StockToPlate/internal/metrics"
	"github.com/mkl159/StockToPlate/pkg/locales"
	"github.com/mkl159/StockToPlate/pkg/models"
)

var (
	// ErrUnavailable means Grocy could not be reached or answered garbage.
	ErrUnavailable = errors.New("grocy unavailable")
	// ErrRejected means Grocy answered the update with a non-2xx status.
	ErrRejected = errors.New("grocy rejected the update")
)

const requestTimeout = 10 * time.Second

// stockEntry mirrors one element of GET /api/stock.
type stockEntry struct {
	ProductID      json.Number `json:"product_id"`
	Amount         float64     `json:"amount"`
	BestBeforeDate string      `json:"best_before_date"`
	Product        struct {
		Name       string   `json:"name"`
		Barcodes   []string `json:"barcodes"`
		PictureURL string   `json:"picture_url"`
	} `json:"product"`
}

// Client talks to one Grocy instance. Both operations go through a circuit
// breaker; an open breaker surfaces as ErrUnavailable. There are no
// automatic retries: a failed call is reported once and the user retries.
type Client struct {
	rest    *resty.Client
	breaker *gobreaker.CircuitBreaker
	texts   *locales.Texts
}

// New builds a client for the Grocy instance at baseURL.
func New(baseURL, apiKey string, texts *locales.Texts) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetRetryCount(0).
		SetHeader("GROCY-API-KEY", apiKey).
		SetHeader("Accept", "application/json")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "grocy",
		MaxRequests: 3,
		Interval:    15 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			state := float64(0)
			switch to {
			case gobreaker.StateOpen:
				state = 1
			case gobreaker.StateHalfOpen:
				state = 2
			}
			metrics.CircuitBreakerState.WithLabelValues(name).Set(state)

			log.WithFields(log.Fields{
				"circuit": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Info("Circuit breaker state changed")
		},
	})
	metrics.CircuitBreakerState.WithLabelValues("grocy").Set(0)

	return &Client{rest: rest, breaker: breaker, texts: texts}
}

// FetchStock retrieves the whole stock. Missing product names, best-before
// dates and empty barcode lists are normalized to sentinel labels so
// downstream code never branches on absence.
func (c *Client) FetchStock() ([]models.StockItem, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		var entries []stockEntry
		resp, err := c.rest.R().SetResult(&entries).Get("/api/stock")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("stock fetch: status %s", resp.Status())
		}
		return entries, nil
	})
	if err != nil {
		metrics.InventoryRequests.WithLabelValues("fetch", "error").Inc()
		log.WithError(err).Error("Failed to fetch Grocy stock")
		return nil, ErrUnavailable
	}
	metrics.InventoryRequests.WithLabelValues("fetch", "ok").Inc()

	entries := out.([]stockEntry)
	items := make([]models.StockItem, 0, len(entries))
	for _, e := range entries {
		name := e.Product.Name
		if name == "" {
			name = c.texts.UnknownProduct
		}
		date := e.BestBeforeDate
		if date == "" {
			date = c.texts.UnknownDate
		}
		barcodes := e.Product.Barcodes
		if len(barcodes) == 0 {
			barcodes = []string{c.texts.NoBarcode}
		}
		items = append(items, models.StockItem{
			ProductID:      e.ProductID.String(),
			ProductName:    name,
			Amount:         e.Amount,
			BestBeforeDate: date,
			Barcodes:       barcodes,
			PictureURL:     e.Product.PictureURL,
		})
	}
	return items, nil
}

// SetQuantity posts the absolute new amount for a product.
func (c *Client) SetQuantity(productID string, newAmount float64) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.rest.R().
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]float64{"new_amount": newAmount}).
			Post(fmt.Sprintf("/api/stock/products/%s/inventory", productID))
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("%w: status %s", ErrRejected, resp.Status())
		}
		return nil, nil
	})
	if err != nil {
		metrics.InventoryRequests.WithLabelValues("update", "error").Inc()
		log.WithFields(log.Fields{
			"product_id": productID,
			"new_amount": newAmount,
		}).WithError(err).Error("Failed to update Grocy product")
		if errors.Is(err, ErrRejected) {
			return ErrRejected
		}
		return ErrUnavailable
	}

	metrics.InventoryRequests.WithLabelValues("update", "ok").Inc()
	log.WithFields(log.Fields{
		"product_id": productID,
		"new_amount": newAmount,
	}).Info("Updated Grocy product")
	return nil
}
