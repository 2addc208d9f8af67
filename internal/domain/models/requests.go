package models

// Requests for the dashboard HTTP endpoints.

type SearchRequest struct {
	Q string `query:"q" json:"q" validate:"max=64"`
}

type SymbolRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=32"`
}

type FinancialsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=32"`
	Period Period `query:"period" json:"period" default:"quarterly" validate:"oneof=quarterly annual"`
}

type SentimentRequest struct {
	Text string `json:"text" validate:"required_without=URL,max=100000"`
	URL  string `json:"url" validate:"omitempty,http_url"`
}
