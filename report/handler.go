package report

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sinobridge-erp/sinobridge-erp/internal/billing"
	"github.com/sinobridge-erp/sinobridge-erp/internal/crm"
	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/quotes"
	"github.com/sinobridge-erp/sinobridge-erp/internal/settings"
)

// Handler serves PDF exports of quotes and invoices.
type Handler struct {
	logger       *slog.Logger
	client       *Client
	quoteRepo    quotes.Repository
	invoiceRepo  billing.Repository
	customerRepo crm.Repository
	settingsRepo settings.Repository
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, client *Client, quoteRepo quotes.Repository, invoiceRepo billing.Repository, customerRepo crm.Repository, settingsRepo settings.Repository) *Handler {
	return &Handler{
		logger:       logger,
		client:       client,
		quoteRepo:    quoteRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
	}
}

// MountRoutes registers PDF export routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/quotes/{id}/pdf", h.QuotePDF)
	r.Get("/invoices/{id}/pdf", h.InvoicePDF)
}

func (h *Handler) QuotePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	quote, err := h.quoteRepo.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	customer, err := h.customerRepo.Get(r.Context(), quote.CustomerID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	company, err := h.settingsRepo.Load(r.Context())
	if err != nil {
		h.logger.Warn("load settings for pdf", slog.Any("error", err))
		company = settings.Defaults()
	}

	html, err := BuildQuoteHTML(QuoteDocument{Quote: quote, Customer: customer, Company: company})
	if err != nil {
		h.logger.Error("build quote html", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	h.servePDF(w, r, html, quote.Number)
}

func (h *Handler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	invoice, err := h.invoiceRepo.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	customer, err := h.customerRepo.Get(r.Context(), invoice.CustomerID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	company, err := h.settingsRepo.Load(r.Context())
	if err != nil {
		h.logger.Warn("load settings for pdf", slog.Any("error", err))
		company = settings.Defaults()
	}

	html, err := BuildInvoiceHTML(InvoiceDocument{Invoice: invoice, Customer: customer, Company: company})
	if err != nil {
		h.logger.Error("build invoice html", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	h.servePDF(w, r, html, invoice.Number)
}

func (h *Handler) servePDF(w http.ResponseWriter, r *http.Request, html, name string) {
	pdf, err := h.client.RenderHTML(r.Context(), html)
	if err != nil {
		h.logger.Error("render pdf", slog.Any("error", err), slog.String("document", name))
		httpx.Problem(w, http.StatusBadGateway, "Render Failed", "pdf service unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid document id")
		return 0, false
	}
	return id, true
}
