// Package finnhub implements symbol lookup against the Finnhub REST API.
package finnhub

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"StockBoard/internal/domain/models"
	drepo "StockBoard/internal/domain/repository"

	"github.com/go-resty/resty/v2"
)

// Client implements a SymbolSearcher backed by Finnhub /search.
type Client struct {
	client *resty.Client
	apiKey string
}

type searchResponse struct {
	Count  int `json:"count"`
	Result []struct {
		Description   string `json:"description"`
		DisplaySymbol string `json:"displaySymbol"`
		Symbol        string `json:"symbol"`
		Type          string `json:"type"`
	} `json:"result"`
}

// New creates a Finnhub searcher. The token is sent as a query parameter.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)

	return &Client{client: client, apiKey: apiKey}
}

var _ drepo.SymbolSearcher = (*Client)(nil)

// Search returns raw Finnhub matches in the order the API ranked them.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchMatch, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("finnhub search: %w", drepo.ErrNoCredentials)
	}

	var out searchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     query,
			"token": c.apiKey,
		}).
		SetResult(&out).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("finnhub search %q: %w", query, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("finnhub search %q: HTTP %d", query, resp.StatusCode())
	}

	matches := make([]models.SearchMatch, 0, len(out.Result))
	for _, r := range out.Result {
		sym := r.Symbol
		if sym == "" {
			sym = r.DisplaySymbol
		}
		if sym == "" {
			continue
		}
		matches = append(matches, models.SearchMatch{
			Symbol:      sym,
			Description: r.Description,
			Type:        r.Type,
		})
	}
	return matches, nil
}
