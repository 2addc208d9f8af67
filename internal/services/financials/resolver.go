// Package financials turns provider statement tables into chart series.
package financials

import (
	"sort"

	"StockBoard/internal/domain/models"
)

type Metric string

const (
	Revenue   Metric = "revenue"
	NetIncome Metric = "net_income"
)

var (
	DefaultRevenueAliases   = []string{"Total Revenue", "TotalRevenue", "Revenue"}
	DefaultNetIncomeAliases = []string{"Net Income", "NetIncome"}
)

// Resolver picks the provider column for a metric from an ordered alias list.
type Resolver struct {
	aliases map[Metric][]string
}

func NewResolver(revenue, netIncome []string) *Resolver {
	if len(revenue) == 0 {
		revenue = DefaultRevenueAliases
	}
	if len(netIncome) == 0 {
		netIncome = DefaultNetIncomeAliases
	}
	return &Resolver{aliases: map[Metric][]string{
		Revenue:   append([]string(nil), revenue...),
		NetIncome: append([]string(nil), netIncome...),
	}}
}

// Resolve returns the first alias of metric present in columns. Matching is exact.
func (r *Resolver) Resolve(metric Metric, columns []string) (string, bool) {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	for _, alias := range r.aliases[metric] {
		if _, ok := present[alias]; ok {
			return alias, true
		}
	}
	return "", false
}

// Series builds the oldest-first bar series for metric. It reports false when
// no alias matches or no row carries a value.
func (r *Resolver) Series(t models.FinancialTable, metric Metric) (*models.BarSeries, bool) {
	col, ok := r.Resolve(metric, t.Columns())
	if !ok {
		return nil, false
	}

	rows := append([]models.FinancialRow(nil), t.Rows...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].EndDate.Before(rows[j].EndDate) })

	s := &models.BarSeries{Metric: string(metric), Column: col}
	for _, row := range rows {
		if v, ok := row.Items[col]; ok {
			s.Points = append(s.Points, models.SeriesPoint{Label: row.Label, Value: v})
		}
	}
	if len(s.Points) == 0 {
		return nil, false
	}
	return s, true
}
