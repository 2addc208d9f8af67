package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"StockBoard/internal/domain/models"
	drepo "StockBoard/internal/domain/repository"
	xhttp "StockBoard/pkg/http"
	"StockBoard/pkg/util"

	"github.com/shopspring/decimal"
)

const summaryModules = "incomeStatementHistory,incomeStatementHistoryQuarterly"

type summaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Annual    statementHistory `json:"incomeStatementHistory"`
			Quarterly statementHistory `json:"incomeStatementHistoryQuarterly"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type statementHistory struct {
	Statements []map[string]json.RawMessage `json:"incomeStatementHistory"`
}

type rawValue struct {
	Raw *json.Number `json:"raw"`
}

// Financials returns income statement rows for the requested period, oldest first.
func (c *Client) Financials(ctx context.Context, symbol string, period models.Period) (models.FinancialTable, error) {
	table := models.FinancialTable{Symbol: symbol, Period: period}

	var resp summaryResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         strings.TrimRight(c.opts.BaseURL, "/") + "/v10/finance/quoteSummary/" + url.PathEscape(symbol),
		QueryParams: map[string][]string{"modules": {summaryModules}},
	}, &resp)
	if err != nil {
		return table, fmt.Errorf("yahoo financials %s: %w", symbol, err)
	}
	if e := resp.QuoteSummary.Error; e != nil {
		return table, fmt.Errorf("yahoo financials %s: %s: %s", symbol, e.Code, e.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return table, fmt.Errorf("yahoo financials %s: %w", symbol, drepo.ErrNotFound)
	}

	res := resp.QuoteSummary.Result[0]
	hist, label := res.Quarterly, util.QuarterLabel
	if period == models.PeriodAnnual {
		hist, label = res.Annual, util.YearLabel
	}

	for _, st := range hist.Statements {
		row, ok := parseStatement(st)
		if !ok {
			continue
		}
		row.Label = label(row.EndDate)
		table.Rows = append(table.Rows, row)
	}
	table.SortRows()
	return table, nil
}

// parseStatement keeps every numeric line item under a TitleCase key.
func parseStatement(st map[string]json.RawMessage) (models.FinancialRow, bool) {
	row := models.FinancialRow{Items: make(map[string]decimal.Decimal, len(st))}

	for key, raw := range st {
		switch key {
		case "maxAge":
			continue
		case "endDate":
			var v rawValue
			if err := json.Unmarshal(raw, &v); err != nil || v.Raw == nil {
				return row, false
			}
			sec, err := v.Raw.Int64()
			if err != nil {
				return row, false
			}
			row.EndDate = util.FromUnix(sec)
			continue
		}

		var v rawValue
		if err := json.Unmarshal(raw, &v); err != nil || v.Raw == nil {
			continue
		}
		d, err := decimal.NewFromString(v.Raw.String())
		if err != nil {
			continue
		}
		row.Items[titleKey(key)] = d
	}

	if row.EndDate.IsZero() {
		return row, false
	}
	return row, true
}

// titleKey turns "totalRevenue" into "TotalRevenue".
func titleKey(k string) string {
	if k == "" {
		return k
	}
	r := []rune(k)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
