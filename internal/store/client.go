package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/clintrovert/tracksync/pkg/types"
)

// Client reads integration records from the configuration store.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new config store client.
func NewClient(baseURL, serviceKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// FindActive returns the active integration record for the given type, or
// nil when no such record exists. A query failure is an error; an empty
// result is not.
func (c *Client) FindActive(ctx context.Context, integrationType string) (*types.IntegrationConfig, error) {
	endpoint := fmt.Sprintf("%s/integrations?type=%s&active=true&limit=1",
		c.baseURL, url.QueryEscape(integrationType))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build store request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query config store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("config store returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var records []types.IntegrationConfig
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode store response: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	return &records[0], nil
}
