// Package jsonbin implements the DocumentStore port against a JSONBin-style
// remote blob service: one bin per collection, whole-document GET and PUT,
// nothing else.
package jsonbin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/delux1000/deluxwallet/internal/core/ports"
)

const (
	headerMasterKey  = "X-Master-Key"
	headerBinVersion = "X-Bin-Version"
)

// Client talks to the remote bin service. Read failures degrade to the
// last-known-good document (or an empty one) so the system can keep serving
// state; write failures are always surfaced to the caller.
type Client struct {
	baseURL string
	apiKey  string
	bins    map[ports.Collection]string
	http    *http.Client
	logger  *slog.Logger

	mu        sync.Mutex
	lastKnown map[ports.Collection]json.RawMessage
}

// New creates a Client. bins maps each collection to its bin ID.
func New(baseURL, apiKey string, bins map[ports.Collection]string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		bins:      bins,
		http:      &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
		lastKnown: make(map[ports.Collection]json.RawMessage),
	}
}

var _ ports.DocumentStore = (*Client)(nil)

func (c *Client) binURL(collection ports.Collection) (string, error) {
	binID, ok := c.bins[collection]
	if !ok || binID == "" {
		return "", fmt.Errorf("no bin configured for collection %q", collection)
	}
	return fmt.Sprintf("%s/b/%s", c.baseURL, binID), nil
}

// recordEnvelope is the response wrapper the bin service puts around the
// stored document.
type recordEnvelope struct {
	Record json.RawMessage `json:"record"`
}

// Get fetches the whole document for a collection. A missing bin or a
// transient failure is not an error: the last successfully read document is
// returned instead, or an empty one if there has never been a good read.
func (c *Client) Get(ctx context.Context, collection ports.Collection) (json.RawMessage, error) {
	url, err := c.binURL(collection)
	if err != nil {
		return nil, err
	}

	raw, err := c.fetch(ctx, url)
	if err != nil {
		c.logger.Warn("docstore read failed, serving last known document",
			slog.String("collection", string(collection)),
			slog.String("error", err.Error()))
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.lastKnown[collection], nil
	}

	c.mu.Lock()
	c.lastKnown[collection] = raw
	c.mu.Unlock()
	return raw, nil
}

func (c *Client) fetch(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerMasterKey, c.apiKey)
	req.Header.Set(headerBinVersion, "latest")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Bin not created yet; an empty collection is a legitimate state.
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var envelope recordEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding bin response: %w", err)
	}
	return envelope.Record, nil
}

// Replace overwrites the whole document for a collection. Unlike reads, a
// failed write is an error: the caller has already computed a mutation and
// silently dropping it would corrupt the ledger.
func (c *Client) Replace(ctx context.Context, collection ports.Collection, records any) error {
	url, err := c.binURL(collection)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s collection: %w", collection, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerMasterKey, c.apiKey)
	req.Header.Set(headerBinVersion, "latest")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("writing %s collection: %w", collection, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("writing %s collection: unexpected status %d", collection, resp.StatusCode)
	}

	c.mu.Lock()
	c.lastKnown[collection] = payload
	c.mu.Unlock()
	return nil
}
