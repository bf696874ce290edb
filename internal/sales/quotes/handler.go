package quotes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
	"github.com/sinobridge-erp/sinobridge-erp/internal/shared"
)

// Handler exposes quote operations over JSON.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers quote routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/send", h.Send)
	r.Post("/{id}/accept", h.Accept)
	r.Post("/{id}/reject", h.Reject)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r)
	req := ListQuotesRequest{Limit: page.Limit, Offset: page.Offset}
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			req.CustomerID = &id
		}
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := QuoteStatus(raw)
		req.Status = &status
	}

	items, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list quotes", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	quote, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	quote, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create quote", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, quote)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	var req UpdateQuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	quote, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondServiceError(w, err, "update quote", id)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	h.statusAction(w, r, h.service.Send, "send quote")
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.statusAction(w, r, h.service.Accept, "accept quote")
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.statusAction(w, r, h.service.Reject, "reject quote")
}

func (h *Handler) statusAction(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) (Quote, error), action string) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	quote, err := fn(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, action, id)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid quote id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, action string, id int64) {
	if errors.Is(err, ErrInvalidStatus) {
		httpx.Problem(w, http.StatusConflict, "Invalid Status", err.Error())
		return
	}
	h.logger.Error(action, slog.Any("error", err), slog.Int64("id", id))
	httpx.RespondError(w, err)
}
