package site

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sinobridge-erp/sinobridge-erp/internal/settings"
	"github.com/sinobridge-erp/sinobridge-erp/internal/view"
)

// Handler serves the public bilingual marketing site.
type Handler struct {
	logger       *slog.Logger
	engine       *view.Engine
	settingsRepo settings.Repository
	defaultLang  string
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, engine *view.Engine, settingsRepo settings.Repository, defaultLang string) *Handler {
	return &Handler{logger: logger, engine: engine, settingsRepo: settingsRepo, defaultLang: defaultLang}
}

// MountRoutes registers the public pages.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.page("page:home", "home.title"))
	r.Get("/services", h.page("page:services", "services.title"))
	r.Get("/about", h.page("page:about", "about.title"))
	r.Get("/contact", h.contact)
	r.Get("/lang/{code}", h.setLang)
}

func (h *Handler) page(name, titleKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := DetectLang(r, h.defaultLang)
		strings := Strings(lang)
		h.render(w, r, name, view.TemplateData{
			Title:       strings[titleKey],
			Lang:        lang,
			CurrentPath: r.URL.Path,
			T:           strings,
		})
	}
}

func (h *Handler) contact(w http.ResponseWriter, r *http.Request) {
	lang := DetectLang(r, h.defaultLang)
	strings := Strings(lang)

	company, err := h.settingsRepo.Load(r.Context())
	if err != nil {
		h.logger.Warn("load settings for contact page", slog.Any("error", err))
		company = settings.Defaults()
	}

	h.render(w, r, "page:contact", view.TemplateData{
		Title:       strings["contact.title"],
		Lang:        lang,
		CurrentPath: r.URL.Path,
		T:           strings,
		Data:        company,
	})
}

func (h *Handler) setLang(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if _, ok := translations[code]; !ok {
		code = h.defaultLang
	}
	http.SetCookie(w, &http.Cookie{
		Name:     langCookie,
		Value:    code,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: false,
	})
	target := r.URL.Query().Get("return")
	if target == "" || target[0] != '/' {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data view.TemplateData) {
	if err := h.engine.Render(w, name, data); err != nil {
		h.logger.Error("render page", slog.Any("error", err), slog.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
