package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"StockBoard/internal/domain/models"
	"StockBoard/internal/usecase"

	"github.com/AlecAivazis/survey/v2/terminal"
)

const TransportCLI = "cli"

// runInteractive loops search, select, period and news until the user enters
// a blank query or input ends.
func runInteractive(ctx context.Context, uc *usecase.DashboardUseCase, sel Selector, out io.Writer) error {
	session := models.Session{Period: models.PeriodQuarterly}

	for {
		query, err := sel.Input("Company name or stock symbol (blank to quit)", "")
		if err != nil {
			return endOfInput(err)
		}
		if query == "" {
			return nil
		}
		session, _ = session.Apply(models.Action{Type: models.ActionSearch, Value: query})

		d := uc.Render(ctx, session, TransportCLI)
		if len(d.Options) == 0 {
			fmt.Fprintf(out, "No common stock matches for %q.\n", strings.ToUpper(query))
			continue
		}

		choice, err := sel.Select("Select a stock:", d.Options, d.Options[0])
		if err != nil {
			return endOfInput(err)
		}
		session, _ = session.Apply(models.Action{Type: models.ActionSelect, Value: choice})

		period, err := sel.Select("Financials period:", []string{string(models.PeriodQuarterly), string(models.PeriodAnnual)}, string(session.Period))
		if err != nil {
			return endOfInput(err)
		}
		if next, err := session.Apply(models.Action{Type: models.ActionPeriod, Value: period}); err == nil {
			session = next
		}

		news, err := sel.Input("News text or URL to analyze (blank to skip)", "")
		if err != nil {
			return endOfInput(err)
		}
		session, _ = session.Apply(newsAction(news))

		d = uc.Render(ctx, session, TransportCLI)
		fmt.Fprint(out, RenderDashboard(d, uc.Formatter()))
	}
}

func newsAction(input string) models.Action {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return models.Action{Type: models.ActionClearNews}
	case strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"):
		return models.Action{Type: models.ActionAnalyzeURL, Value: input}
	default:
		return models.Action{Type: models.ActionAnalyze, Value: input}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, terminal.InterruptErr) {
		return nil
	}
	return err
}
