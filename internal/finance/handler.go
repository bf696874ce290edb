package finance

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
)

// Handler exposes the financial snapshot over JSON.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers reporting routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/snapshot", h.Snapshot)
}

// Snapshot serves GET /snapshot?period=token. An unknown or missing period
// token yields the all_time report; period selection never fails.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	token := PeriodToken(r.URL.Query().Get("period"))
	if token == "" {
		token = PeriodAllTime
	}
	view, err := h.service.Snapshot(r.Context(), token)
	if err != nil {
		h.logger.Error("compute snapshot", slog.Any("error", err), slog.String("period", string(token)))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}
