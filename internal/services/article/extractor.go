// Package article fetches a news page and reduces it to its paragraph text.
package article

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	dservice "StockBoard/internal/domain/service"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

var ErrNoText = errors.New("no readable text found")

type Extractor struct {
	client *resty.Client
}

func New(userAgent string, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New()
	client.SetTimeout(timeout)
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &Extractor{client: client}
}

var _ dservice.ArticleExtractor = (*Extractor)(nil)

// Extract returns the page's article paragraphs joined by blank lines.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	resp, err := e.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("fetch article: HTTP %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return "", fmt.Errorf("parse article: %w", err)
	}
	doc.Find("script, style, nav, header, footer, aside").Remove()

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var parts []string
	root.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.Join(strings.Fields(s.Text()), " "); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return "", ErrNoText
	}
	return strings.Join(parts, "\n\n"), nil
}
