// Package openai is the chat-completions client used for recipe generation.
package openai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mkl159/StockToPlate/pkg/locales"
	"github.com/mkl159/StockToPlate/pkg/models"
)

const (
	defaultAPIURL  = "https://api.openai.com/v1/chat/completions"
	requestTimeout = 90 * time.Second
	temperature    = 0.7
)

// Client sends a single user prompt per recipe request.
type Client struct {
	apiKey     string
	model      string
	apiURL     string
	texts      *locales.Texts
	httpClient *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient builds a client for the given API key and model name.
func NewClient(apiKey, model string, texts *locales.Texts) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
		apiURL: defaultAPIURL,
		texts:  texts,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Generate asks the model for a recipe built from the whole stock, the
// selected guests, the guest count and the free-text note. Any transport or
// API failure comes back as a non-nil error; the conversation layer turns
// it into a localized message.
func (c *Client) Generate(stock []models.StockItem, guests []models.Guest, note string, nbGuests int) (string, error) {
	prompt := c.buildPrompt(stock, guests, note, nbGuests)

	reqBody, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log.WithFields(log.Fields{
		"request_id": requestID,
		"model":      c.model,
		"stock_size": len(stock),
	}).Info("Requesting recipe completion")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion call: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if chatResp.Error.Message != "" {
		return "", fmt.Errorf("model error: %s (type: %s)", chatResp.Error.Message, chatResp.Error.Type)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := chatResp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}

	log.WithField("request_id", requestID).Infof("Received recipe of %d characters", len(content))
	return content, nil
}

// buildPrompt embeds every stock item, the guest list, the guest count, the
// note and the fixed output requirements into one request string.
func (c *Client) buildPrompt(stock []models.StockItem, guests []models.Guest, note string, nbGuests int) string {
	t := c.texts

	guestList := t.PromptNoGuests
	if len(guests) > 0 {
		names := make([]string, len(guests))
		for i, g := range guests {
			names[i] = g.Name
		}
		guestList = strings.Join(names, ", ")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(t.PromptIntro, nbGuests, guestList))
	sb.WriteString("\n\n")
	sb.WriteString(t.PromptStockHeader)
	sb.WriteString("\n")
	for _, p := range stock {
		sb.WriteString(fmt.Sprintf(t.PromptStockLine, p.ProductName, p.Amount, p.BestBeforeDate, strings.Join(p.Barcodes, ", ")))
	}
	for _, g := range guests {
		if g.UnsupportedFoods != "" {
			sb.WriteString(fmt.Sprintf(t.PromptUnsupported, g.Name, g.UnsupportedFoods))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(t.PromptNote, note))
	sb.WriteString("\n\n")
	sb.WriteString(t.PromptRequirements)

	return sb.String()
}
