// Package ecb fetches the daily euro foreign-exchange reference rates
// published by the European Central Bank.
package ecb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
)

// Client retrieves and parses the ECB daily reference-rate feed.
type Client struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewClient initializes an ECB client.
func NewClient(url string, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Rates maps an ISO currency code to its euro reference rate.
type Rates map[string]float64

// GetRates fetches the current daily feed.
func (c *Client) GetRates(ctx context.Context) (Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	rates, err := ParseRates(body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("retrieved ECB reference rates", slog.Int("currencies", len(rates)))
	return rates, nil
}

// ParseRates extracts the currency/rate pairs from the feed XML. The daily
// feed nests them as Cube/Cube/Cube elements with currency and rate
// attributes.
func ParseRates(raw []byte) (Rates, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	elements := doc.FindElements("//Cube/Cube/Cube")
	if len(elements) == 0 {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	rates := make(Rates, len(elements))
	for _, el := range elements {
		currency := el.SelectAttrValue("currency", "")
		rateAttr := el.SelectAttrValue("rate", "")
		if currency == "" || rateAttr == "" {
			continue
		}
		rate, err := strconv.ParseFloat(rateAttr, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %w", currency, err)
		}
		rates[currency] = rate
	}
	return rates, nil
}
