package models

import (
	"errors"
	"fmt"
	"strings"

	"StockBoard/pkg/util"
)

// Session is the explicit per-user render state. Every render reads it whole.
type Session struct {
	Query          string `json:"query" validate:"max=64"`
	SelectedSymbol string `json:"selected_symbol" validate:"max=32"`
	Period         Period `json:"period" default:"quarterly" validate:"oneof=quarterly annual"`
	NewsText       string `json:"news_text" validate:"max=100000"`
	NewsURL        string `json:"news_url" validate:"omitempty,http_url"`
}

type ActionType string

const (
	ActionSearch     ActionType = "search"
	ActionSelect     ActionType = "select"
	ActionPeriod     ActionType = "period"
	ActionAnalyze    ActionType = "analyze"
	ActionAnalyzeURL ActionType = "analyze_url"
	ActionClearNews  ActionType = "clear_news"
	ActionRefresh    ActionType = "refresh"
)

// Action is one user interaction.
type Action struct {
	Type  ActionType `json:"action" validate:"required,oneof=search select period analyze analyze_url clear_news refresh"`
	Value string     `json:"value" validate:"max=100000"`
}

var ErrUnknownAction = errors.New("unknown action")

// Apply returns the session that results from a.
func (s Session) Apply(a Action) (Session, error) {
	next := s
	switch a.Type {
	case ActionSearch:
		next.Query = strings.TrimSpace(a.Value)
		next.SelectedSymbol = ""
	case ActionSelect:
		next.SelectedSymbol = util.ParseOption(a.Value)
	case ActionPeriod:
		p := Period(strings.ToLower(strings.TrimSpace(a.Value)))
		if p != PeriodQuarterly && p != PeriodAnnual {
			return s, fmt.Errorf("period %q: must be quarterly or annual", a.Value)
		}
		next.Period = p
	case ActionAnalyze:
		next.NewsText = a.Value
		next.NewsURL = ""
	case ActionAnalyzeURL:
		next.NewsURL = strings.TrimSpace(a.Value)
		next.NewsText = ""
	case ActionClearNews:
		next.NewsText = ""
		next.NewsURL = ""
	case ActionRefresh:
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return next, nil
}
