package yahoo

import (
	"context"
	"fmt"
	"strings"

	"StockBoard/internal/domain/models"
	xhttp "StockBoard/pkg/http"
)

const commonStock = "Common Stock"

type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		QuoteType string `json:"quoteType"`
		Exchange  string `json:"exchange"`
	} `json:"quotes"`
}

// Search looks up symbols by name or ticker. EQUITY results are reported as common stock.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchMatch, error) {
	var resp searchResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    strings.TrimRight(c.opts.SearchURL, "/") + "/v1/finance/search",
		QueryParams: map[string][]string{
			"q":           {query},
			"quotesCount": {"20"},
			"newsCount":   {"0"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("yahoo search %q: %w", query, err)
	}

	out := make([]models.SearchMatch, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		if q.Symbol == "" {
			continue
		}
		desc := q.LongName
		if desc == "" {
			desc = q.ShortName
		}
		typ := q.QuoteType
		if strings.EqualFold(typ, "EQUITY") {
			typ = commonStock
		}
		out = append(out, models.SearchMatch{
			Symbol:      q.Symbol,
			Description: desc,
			Type:        typ,
			Exchange:    q.Exchange,
		})
	}
	return out, nil
}
