package article

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><title>x</title><script>var a = 1;</script></head>
<body>
<nav><p>Home | Markets</p></nav>
<article>
  <h1>Apple beats estimates</h1>
  <p>Apple reported   record revenue.</p>
  <p></p>
  <p>Shares rose 3% after hours.</p>
</article>
<footer><p>Copyright</p></footer>
</body></html>`

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "StockBoard-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	text, err := New("StockBoard-test", time.Second).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Apple reported record revenue.\n\nShares rose 3% after hours.", text)
}

func TestExtractNoParagraphs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div>nothing here</div></body></html>`))
	}))
	defer srv.Close()

	_, err := New("", time.Second).Extract(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtractHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New("", time.Second).Extract(context.Background(), srv.URL)
	assert.Error(t, err)
}
