package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
	"github.com/sinobridge-erp/sinobridge-erp/internal/shared"
)

// Handler exposes login/logout endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	sessions *shared.SessionManager
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager) *Handler {
	return &Handler{logger: logger, service: service, sessions: sessions}
}

// MountRoutes registers auth routes on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Login authenticates credentials and issues a session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := shared.ValidateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	admin, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", shared.UserSafeMessage(err))
		return
	}

	if _, err := h.sessions.Issue(r.Context(), w, admin.ID, admin.Email); err != nil {
		h.logger.Error("issue session", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, loginResponse{ID: admin.ID, Email: admin.Email, FullName: admin.FullName})
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if err := h.sessions.Destroy(r.Context(), w, sess); err != nil {
		h.logger.Warn("destroy session", slog.Any("error", err))
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Me returns the authenticated admin, 401 otherwise.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": sess.AdminID, "email": sess.Email})
}

// RequireAdmin rejects requests without an authenticated session.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shared.SessionFromContext(r.Context()) == nil {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
