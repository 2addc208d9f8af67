package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodQuarterly Period = "quarterly"
	PeriodAnnual    Period = "annual"
)

// FinancialRow is one reporting period. Item names are whatever the provider returned.
type FinancialRow struct {
	Label   string                     `json:"label"`
	EndDate time.Time                  `json:"end_date"`
	Items   map[string]decimal.Decimal `json:"items"`
}

// FinancialTable holds statement rows in chronological order.
type FinancialTable struct {
	Symbol string         `json:"symbol"`
	Period Period         `json:"period"`
	Rows   []FinancialRow `json:"rows"`
}

// Empty reports whether the table has no usable rows.
func (t FinancialTable) Empty() bool {
	return len(t.Rows) == 0
}

// Columns returns the sorted union of item names across rows.
func (t FinancialTable) Columns() []string {
	seen := make(map[string]struct{})
	for _, r := range t.Rows {
		for k := range r.Items {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// SortRows orders rows oldest first.
func (t *FinancialTable) SortRows() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].EndDate.Before(t.Rows[j].EndDate)
	})
}
