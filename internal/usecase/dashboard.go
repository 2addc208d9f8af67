package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"StockBoard/internal/domain/models"
	domrepo "StockBoard/internal/domain/repository"
	domsvc "StockBoard/internal/domain/service"
	"StockBoard/internal/services/financials"
	"StockBoard/internal/services/format"
	"StockBoard/internal/services/recommend"
	applogger "StockBoard/pkg/logger"
	"StockBoard/pkg/metrics"
	"StockBoard/pkg/util"
)

const (
	SourceText = "text"
	SourceURL  = "url"
)

// DashboardUseCase assembles a Dashboard from one Session. Every section
// degrades on its own; nothing in a render is fatal.
type DashboardUseCase struct {
	fetcher    *Fetcher
	resolver   *financials.Resolver
	formatter  *format.Formatter
	rule       *recommend.Rule
	extractor  domsvc.ArticleExtractor
	disclaimer string
	interval   string

	metrics domrepo.Metrics
	logger  *applogger.Logger
	now     func() time.Time
}

type DashboardOption func(*DashboardUseCase)

func WithArticleExtractor(e domsvc.ArticleExtractor) DashboardOption {
	return func(u *DashboardUseCase) { u.extractor = e }
}

func WithDisclaimer(d string) DashboardOption {
	return func(u *DashboardUseCase) { u.disclaimer = d }
}

// WithPriceInterval labels the price section, e.g. "1h" or "1d".
func WithPriceInterval(i string) DashboardOption {
	return func(u *DashboardUseCase) { u.interval = i }
}

func WithDashboardClock(now func() time.Time) DashboardOption {
	return func(u *DashboardUseCase) { u.now = now }
}

func WithDashboardMetrics(m domrepo.Metrics) DashboardOption {
	return func(u *DashboardUseCase) { u.metrics = m }
}

func WithDashboardLogger(l *applogger.Logger) DashboardOption {
	return func(u *DashboardUseCase) { u.logger = l.With("dashboard") }
}

func NewDashboardUseCase(f *Fetcher, r *financials.Resolver, fm *format.Formatter, rule *recommend.Rule, opts ...DashboardOption) *DashboardUseCase {
	u := &DashboardUseCase{
		fetcher:    f,
		resolver:   r,
		formatter:  fm,
		rule:       rule,
		disclaimer: "Advisory only. Not financial advice.",
		interval:   "1h",
		metrics:    metrics.Nop{},
		logger:     applogger.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *DashboardUseCase) Fetcher() *Fetcher { return u.fetcher }

func (u *DashboardUseCase) Formatter() *format.Formatter { return u.formatter }

// Render runs search, selection, company, price, financials and sentiment in
// that order for s.
func (u *DashboardUseCase) Render(ctx context.Context, s models.Session, transport string) *models.Dashboard {
	d := &models.Dashboard{Query: s.Query, RenderedAt: u.now().UTC()}
	defer u.metrics.RecordRender(transport)

	selected := util.NormalizeSymbol(s.SelectedSymbol)
	if strings.TrimSpace(s.Query) != "" {
		d.Matches = u.fetcher.Search(ctx, s.Query)
		d.Options = Options(d.Matches)
		selected = pickSelection(d.Matches, selected)
		if len(d.Matches) == 0 {
			d.Notes = append(d.Notes, fmt.Sprintf("no matches for %q", util.NormalizeSymbol(s.Query)))
		}
	}
	d.Selected = selected

	if selected != "" {
		company, ok := u.Company(ctx, selected)
		if !ok {
			d.Warnings = append(d.Warnings, "no market data for "+selected)
		} else {
			d.Company = company

			if p := u.Price(ctx, selected); p != nil {
				d.Price = p
			} else {
				d.Notes = append(d.Notes, "no price history for "+selected)
			}

			fin, notes := u.Financials(ctx, selected, s.Period)
			d.Financials = fin
			d.Notes = append(d.Notes, notes...)
		}
	}

	if s.NewsText != "" || s.NewsURL != "" {
		sec, warns := u.Sentiment(ctx, s.NewsText, s.NewsURL)
		d.Sentiment = sec
		d.Warnings = append(d.Warnings, warns...)
	}
	return d
}

// Options renders matches as "SYMBOL - Description" choices.
func Options(matches []models.SearchMatch) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, util.FormatOption(m.Symbol, m.Description))
	}
	return out
}

// pickSelection keeps current when it is among matches, otherwise the first match.
func pickSelection(matches []models.SearchMatch, current string) string {
	if len(matches) == 0 {
		return ""
	}
	for _, m := range matches {
		if m.Symbol == current {
			return current
		}
	}
	return matches[0].Symbol
}

// Company builds the header section. It reports false when there is no quote.
func (u *DashboardUseCase) Company(ctx context.Context, symbol string) (*models.CompanySection, bool) {
	q := u.fetcher.Quote(ctx, symbol)
	if q == nil {
		return nil, false
	}
	name := q.Name
	if strings.TrimSpace(name) == "" {
		name = "N/A"
	}
	cur := strings.TrimSpace(q.Currency)
	if cur == "" {
		cur = "USD"
	}
	raw := u.formatter.Raw(q.MarketCap)
	return &models.CompanySection{
		Symbol:           util.NormalizeSymbol(symbol),
		Name:             name,
		Currency:         cur,
		Exchange:         q.Exchange,
		MarketCapDisplay: u.formatter.MarketCap(q.MarketCap, cur),
		MarketCapRaw:     raw,
		Caption:          fmt.Sprintf("Native Currency: %s | Raw Value: %s", cur, raw),
		LastPrice:        q.LastPrice,
	}, true
}

// Price returns the candle section, or nil when there are no bars.
func (u *DashboardUseCase) Price(ctx context.Context, symbol string) *models.PriceSection {
	bars := u.fetcher.PriceHistory(ctx, symbol)
	if len(bars) == 0 {
		return nil
	}
	return &models.PriceSection{Interval: u.interval, Bars: bars}
}

// Financials builds revenue and net income series for period. The returned
// notes explain any chart that was skipped.
func (u *DashboardUseCase) Financials(ctx context.Context, symbol string, period models.Period) (*models.FinancialsSection, []string) {
	symbol = util.NormalizeSymbol(symbol)
	period = domrepo.NormalizePeriod(string(period))

	quarterly := u.fetcher.QuarterlyFinancials(ctx, symbol)
	annual := u.fetcher.AnnualFinancials(ctx, symbol)
	if quarterly.Empty() && annual.Empty() {
		return nil, []string{"no financial statements for " + symbol}
	}

	table := quarterly
	if period == models.PeriodAnnual {
		table = annual
	}
	if table.Empty() {
		return nil, []string{fmt.Sprintf("no %s financials for %s", period, symbol)}
	}

	sec := &models.FinancialsSection{Symbol: symbol, Period: period, Columns: table.Columns()}
	var notes []string
	if s, ok := u.resolver.Series(table, financials.Revenue); ok {
		sec.Revenue = s
	} else {
		notes = append(notes, "revenue not reported for "+symbol)
	}
	if s, ok := u.resolver.Series(table, financials.NetIncome); ok {
		sec.NetIncome = s
	} else {
		notes = append(notes, "net income not reported for "+symbol)
	}
	return sec, notes
}

// Sentiment classifies news text, or the article at url when set, and applies
// the recommendation rule. Classifier failures surface as neutral and HOLD.
func (u *DashboardUseCase) Sentiment(ctx context.Context, text, url string) (*models.SentimentSection, []string) {
	var warnings []string
	source := SourceText
	if url != "" {
		source = SourceURL
		text = ""
		if u.extractor == nil {
			warnings = append(warnings, "article extraction is not configured")
		} else if body, err := u.extractor.Extract(ctx, url); err != nil {
			u.logger.Warn("article extraction failed", applogger.String("url", url), applogger.Error(err))
			warnings = append(warnings, "could not read article at "+url)
		} else {
			text = body
		}
	}

	res := u.fetcher.Classify(ctx, text)
	rec := u.rule.Recommend(string(res.Label), res.Confidence)
	u.metrics.RecordRecommendation(string(rec))

	chars := utf8.RuneCountInString(text)
	if limit := u.fetcher.cfg.MaxChars; limit > 0 && chars > limit {
		chars = limit
	}
	return &models.SentimentSection{
		Label:          res.Label,
		Confidence:     res.Confidence,
		Scores:         res.Scores,
		Recommendation: rec,
		Disclaimer:     u.disclaimer,
		Source:         source,
		Characters:     chars,
	}, warnings
}
