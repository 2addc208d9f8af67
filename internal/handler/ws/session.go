// Package ws serves interactive dashboard sessions over a websocket.
package ws

import (
	"net/http"

	"StockBoard/internal/domain/models"
	"StockBoard/internal/usecase"
	xhttp "StockBoard/pkg/http"
	xlogger "StockBoard/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	TransportWS = "ws"

	maxMessageBytes = 256 << 10
)

// Reply is one server message. Type is "dashboard" or "error".
type Reply struct {
	Type      string            `json:"type"`
	Session   *models.Session   `json:"session,omitempty"`
	Dashboard *models.Dashboard `json:"dashboard,omitempty"`
	Errors    interface{}       `json:"errors,omitempty"`
}

// SessionHandler keeps one Session per connection and renders after every action.
type SessionHandler struct {
	logger   *xlogger.Logger
	uc       *usecase.DashboardUseCase
	upgrader websocket.Upgrader
}

func NewSessionHandler(logger *xlogger.Logger, uc *usecase.DashboardUseCase) *SessionHandler {
	return &SessionHandler{
		logger: logger.With("ws"),
		uc:     uc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 16384,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.Serve)
}

// Serve handles actions strictly in arrival order. A render finishes before the
// next message is read.
func (h *SessionHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageBytes)

	ctx := c.Request().Context()
	session := models.Session{Period: models.PeriodQuarterly}
	h.logger.Debug("session opened", xlogger.String("remote", c.RealIP()))

	for {
		var action models.Action
		if err := conn.ReadJSON(&action); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("session read failed", xlogger.Error(err))
			}
			return nil
		}

		if verr := xhttp.ValidateStruct(ctx, &action); verr != nil {
			if err := conn.WriteJSON(Reply{Type: "error", Errors: verr}); err != nil {
				return nil
			}
			continue
		}

		next, err := session.Apply(action)
		if err != nil {
			if err := conn.WriteJSON(Reply{Type: "error", Errors: []xhttp.ValidationError{{Code: "ERR_ACTION", Message: err.Error()}}}); err != nil {
				return nil
			}
			continue
		}

		d := h.uc.Render(ctx, next, TransportWS)
		next.SelectedSymbol = d.Selected
		session = next

		if err := conn.WriteJSON(Reply{Type: "dashboard", Session: &session, Dashboard: d}); err != nil {
			h.logger.Warn("session write failed", xlogger.Error(err))
			return nil
		}
	}
}
