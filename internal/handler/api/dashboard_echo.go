package api

import (
	"strings"

	"StockBoard/internal/domain/models"
	domrepo "StockBoard/internal/domain/repository"
	"StockBoard/internal/usecase"
	xhttp "StockBoard/pkg/http"
	xlogger "StockBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

const TransportHTTP = "http"

// DashboardEchoHandler serves the dashboard sections over JSON.
type DashboardEchoHandler struct {
	logger *xlogger.Logger
	uc     *usecase.DashboardUseCase
}

func NewDashboardEchoHandler(logger *xlogger.Logger, uc *usecase.DashboardUseCase) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger.With("api"), uc: uc}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/search", h.Search)
	g.GET("/quote", h.Quote)
	g.GET("/history", h.History)
	g.GET("/financials", h.Financials)
	g.POST("/sentiment", h.Sentiment)
	g.POST("/dashboard", h.Dashboard)
	g.POST("/cache/clear", h.ClearCache)
}

type searchResponse struct {
	Matches []models.SearchMatch `json:"matches"`
	Options []string             `json:"options"`
}

func (h *DashboardEchoHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	matches := h.uc.Fetcher().Search(c.Request().Context(), req.Q)
	return xhttp.SuccessResponse(c, searchResponse{Matches: matches, Options: usecase.Options(matches)})
}

func (h *DashboardEchoHandler) Quote(c echo.Context) error {
	req := &models.SymbolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	company, ok := h.uc.Company(c.Request().Context(), req.Symbol)
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no market data for %s", strings.ToUpper(req.Symbol)).
			WithParam("symbol", req.Symbol))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, company)
}

func (h *DashboardEchoHandler) History(c echo.Context) error {
	req := &models.SymbolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.uc.Fetcher().PriceHistory(c.Request().Context(), req.Symbol))
}

type financialsResponse struct {
	*models.FinancialsSection
	Notes []string `json:"notes,omitempty"`
}

func (h *DashboardEchoHandler) Financials(c echo.Context) error {
	req := &models.FinancialsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sec, notes := h.uc.Financials(c.Request().Context(), req.Symbol, domrepo.NormalizePeriod(string(req.Period)))
	if sec == nil {
		msg := "no financial statements"
		if len(notes) > 0 {
			msg = notes[0]
		}
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("%s", msg).WithParam("symbol", req.Symbol))
	}
	return xhttp.SuccessResponse(c, financialsResponse{FinancialsSection: sec, Notes: notes})
}

type sentimentResponse struct {
	*models.SentimentSection
	Warnings []string `json:"warnings,omitempty"`
}

func (h *DashboardEchoHandler) Sentiment(c echo.Context) error {
	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sec, warns := h.uc.Sentiment(c.Request().Context(), req.Text, req.URL)
	return xhttp.SuccessResponse(c, sentimentResponse{SentimentSection: sec, Warnings: warns})
}

// Dashboard renders the posted session in one pass.
func (h *DashboardEchoHandler) Dashboard(c echo.Context) error {
	s := &models.Session{}
	if verr := xhttp.ReadAndValidateRequest(c, s); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.uc.Render(c.Request().Context(), *s, TransportHTTP))
}

func (h *DashboardEchoHandler) ClearCache(c echo.Context) error {
	if err := h.uc.Fetcher().ClearCache(c.Request().Context()); err != nil {
		h.logger.Error("cache clear failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	h.logger.Info("cache cleared")
	return xhttp.SuccessResponse(c, map[string]bool{"cleared": true})
}
