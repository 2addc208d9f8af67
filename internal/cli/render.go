package cli

import (
	"fmt"
	"strings"

	"StockBoard/internal/domain/models"
	"StockBoard/internal/services/format"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	panelWidth = 78
	barWidth   = 40
	maxRows    = 8
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1).
			Width(panelWidth)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	revenueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	incomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	buyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	sellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	holdStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Bold(true)
)

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// RenderDashboard draws every present section as a bordered panel.
func RenderDashboard(d *models.Dashboard, fm *format.Formatter) string {
	var parts []string
	parts = append(parts, titleStyle.Render("StockBoard"))

	if len(d.Options) > 0 {
		parts = append(parts, panelStyle.Render(renderMatches(d)))
	}
	for _, w := range d.Warnings {
		parts = append(parts, warningStyle.Render("! "+w))
	}
	if d.Company != nil {
		parts = append(parts, panelStyle.Render(renderCompany(d.Company)))
	}
	if d.Price != nil {
		parts = append(parts, panelStyle.Render(renderPrice(d.Price)))
	}
	if d.Financials != nil {
		cur := ""
		if d.Company != nil {
			cur = d.Company.Currency
		}
		parts = append(parts, panelStyle.Render(renderFinancials(d.Financials, fm, cur)))
	}
	if d.Sentiment != nil {
		parts = append(parts, panelStyle.Render(RenderSentiment(d.Sentiment)))
	}
	for _, n := range d.Notes {
		parts = append(parts, captionStyle.Render("- "+n))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func renderMatches(d *models.Dashboard) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Matches") + "\n")
	for _, o := range d.Options {
		marker := "  "
		if strings.HasPrefix(o, d.Selected+" ") {
			marker = "> "
		}
		b.WriteString(marker + o + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCompany(c *models.CompanySection) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Company Information") + "\n")
	fmt.Fprintf(&b, "Name: %s (%s)\n", c.Name, c.Symbol)
	if c.Exchange != "" {
		fmt.Fprintf(&b, "Exchange: %s\n", c.Exchange)
	}
	if c.LastPrice != nil {
		fmt.Fprintf(&b, "Last: %s %s\n", c.LastPrice.StringFixed(2), c.Currency)
	}
	fmt.Fprintf(&b, "Market Cap: %s\n", c.MarketCapDisplay)
	b.WriteString(captionStyle.Render(c.Caption))
	return b.String()
}

func renderPrice(p *models.PriceSection) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Price ("+p.Interval+")") + "\n")

	closes := make([]decimal.Decimal, 0, len(p.Bars))
	for _, bar := range p.Bars {
		closes = append(closes, bar.Close)
	}
	b.WriteString(Sparkline(closes) + "\n")

	rows := p.Bars
	if len(rows) > maxRows {
		rows = rows[len(rows)-maxRows:]
	}
	fmt.Fprintf(&b, "%-16s %10s %10s %10s %10s %12s\n", "Time", "Open", "High", "Low", "Close", "Volume")
	for _, bar := range rows {
		fmt.Fprintf(&b, "%-16s %10s %10s %10s %10s %12d\n",
			bar.Time.Format("2006-01-02 15:04"),
			bar.Open.StringFixed(2), bar.High.StringFixed(2), bar.Low.StringFixed(2), bar.Close.StringFixed(2),
			bar.Volume)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderFinancials(f *models.FinancialsSection, fm *format.Formatter, currency string) string {
	var b strings.Builder
	period := "Quarterly"
	if f.Period == models.PeriodAnnual {
		period = "Annual"
	}
	b.WriteString(headerStyle.Render("Financials ("+period+")") + "\n")
	if f.Revenue != nil {
		b.WriteString(renderSeries("Revenue", f.Revenue, revenueStyle, fm, currency))
	}
	if f.NetIncome != nil {
		b.WriteString(renderSeries("Net Income", f.NetIncome, incomeStyle, fm, currency))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSeries(title string, s *models.BarSeries, style lipgloss.Style, fm *format.Formatter, currency string) string {
	var b strings.Builder
	b.WriteString(title + "\n")

	peak := decimal.Zero
	for _, p := range s.Points {
		if a := p.Value.Abs(); a.GreaterThan(peak) {
			peak = a
		}
	}
	for _, p := range s.Points {
		n := 0
		if peak.IsPositive() {
			n = int(p.Value.Abs().Div(peak).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
		}
		value := fm.MarketCap(p.Value, currency)
		if p.Value.IsNegative() {
			value = "-" + fm.MarketCap(p.Value.Abs(), currency)
		}
		fmt.Fprintf(&b, "  %-7s %s %s\n", p.Label, style.Render(strings.Repeat("█", n)), value)
	}
	return b.String()
}

// RenderSentiment draws the classifier result and recommendation.
func RenderSentiment(s *models.SentimentSection) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("News Sentiment") + "\n")
	fmt.Fprintf(&b, "Label: %s (%.1f%% confidence)\n", s.Label, s.Confidence*100)
	for _, l := range []models.SentimentLabel{models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral} {
		if v, ok := s.Scores[l]; ok {
			fmt.Fprintf(&b, "  %-8s %5.1f%%\n", l, v*100)
		}
	}
	fmt.Fprintf(&b, "Recommendation: %s\n", recommendationStyle(s.Recommendation).Render(string(s.Recommendation)))
	b.WriteString(captionStyle.Render(s.Disclaimer))
	return b.String()
}

func recommendationStyle(r models.Recommendation) lipgloss.Style {
	switch r {
	case models.RecommendBuy:
		return buyStyle
	case models.RecommendSell:
		return sellStyle
	default:
		return holdStyle
	}
}

// Sparkline maps values onto eight block heights.
func Sparkline(values []decimal.Decimal) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = decimal.Min(lo, v)
		hi = decimal.Max(hi, v)
	}
	span := hi.Sub(lo)
	top := decimal.NewFromInt(int64(len(sparkTicks) - 1))

	out := make([]rune, 0, len(values))
	for _, v := range values {
		i := 0
		if span.IsPositive() {
			i = int(v.Sub(lo).Div(span).Mul(top).Round(0).IntPart())
		}
		out = append(out, sparkTicks[i])
	}
	return string(out)
}
