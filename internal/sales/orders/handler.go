package orders

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
	"github.com/sinobridge-erp/sinobridge-erp/internal/shared"
)

// Handler exposes order operations over JSON.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/from-quote/{quoteID}", h.CreateFromQuote)
	r.Post("/sync-quote/{quoteID}", h.SyncFromQuote)
	r.Get("/{id}", h.Show)
	r.Put("/{id}/status", h.SetStatus)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r)
	req := ListOrdersRequest{Limit: page.Limit, Offset: page.Offset}
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			req.CustomerID = &id
		}
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := OrderStatus(raw)
		req.Status = &status
	}

	items, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParam(w, r, "id", "invalid order id")
	if !ok {
		return
	}
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	order, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create order", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) CreateFromQuote(w http.ResponseWriter, r *http.Request) {
	quoteID, ok := h.parseParam(w, r, "quoteID", "invalid quote id")
	if !ok {
		return
	}
	order, err := h.service.CreateFromQuote(r.Context(), quoteID)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			httpx.Problem(w, http.StatusConflict, "Invalid Status", err.Error())
			return
		}
		h.logger.Error("convert quote", slog.Any("error", err), slog.Int64("quote_id", quoteID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) SyncFromQuote(w http.ResponseWriter, r *http.Request) {
	quoteID, ok := h.parseParam(w, r, "quoteID", "invalid quote id")
	if !ok {
		return
	}
	result, err := h.service.SyncFromQuote(r.Context(), quoteID)
	if err != nil {
		h.logger.Error("sync quote", slog.Any("error", err), slog.Int64("quote_id", quoteID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParam(w, r, "id", "invalid order id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	order, err := h.service.SetStatus(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update order status", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParam(w, r, "id", "invalid order id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) parseParam(w http.ResponseWriter, r *http.Request, name, detail string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", detail)
		return 0, false
	}
	return id, true
}
