package account

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/user/signalforge-go/apperror"
)

// SessionCookie is the browser-side session token carrier.
const SessionCookie = "sf_session"

// TokenFromRequest extracts the session token from the Authorization header
// or the session cookie. An absent token is an empty string, not an error.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// WriteError renders any error as the uniform apperror JSON body.
func WriteError(w http.ResponseWriter, err error) {
	appErr := apperror.FromError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	json.NewEncoder(w).Encode(appErr.ToResponse())
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"trader@example.com"`
	Password string `json:"password" validate:"required,min=8" example:"strongpassword123"`
	FullName string `json:"full_name" validate:"max=120" example:"Jane Trader"`
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"trader@example.com"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Handlers exposes the auth backend over HTTP.
type Handlers struct {
	svc      *Service
	validate *validator.Validate
	log      *zap.Logger
}

// NewHandlers constructs the auth handlers.
func NewHandlers(svc *Service, log *zap.Logger) *Handlers {
	return &Handlers{svc: svc, validate: validator.New(), log: log}
}

// RegisterRoutes mounts the auth routes on the given router.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Post("/refresh", h.handleRefresh)
	r.Post("/logout", h.handleLogout)
	r.Get("/oauth/{provider}", h.handleOAuthBegin)
	r.Get("/callback", h.handleOAuthCallback)
}

func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		WriteError(w, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return false
	}
	defer r.Body.Close()

	if err := h.validate.Struct(dst); err != nil {
		WriteError(w, apperror.NewValidationError("invalid request: "+err.Error(), nil))
		return false
	}
	return true
}

// handleRegister godoc
// @Summary User registration
// @Description Registers a new account. Does not sign the caller in.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body account.RegisterRequest true "Registration details"
// @Success 201 {object} account.User
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse
// @Router /auth/register [post]
func (h *Handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// handleLogin godoc
// @Summary Sign in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body account.LoginRequest true "Credentials"
// @Success 200 {object} account.Session
// @Failure 401 {object} apperror.ErrorResponse
// @Router /auth/login [post]
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.svc.Feed().Publish(Event{Type: EventSignedIn, UserID: sess.User.ID, Session: sess})
	setSessionCookie(w, sess)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess)
}

// handleRefresh godoc
// @Summary Refresh the session token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param refreshBody body account.RefreshRequest true "Refresh token"
// @Success 200 {object} account.Session
// @Failure 401 {object} apperror.ErrorResponse
// @Router /auth/refresh [post]
func (h *Handlers) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	sess, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		WriteError(w, err)
		return
	}

	setSessionCookie(w, sess)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess)
}

// handleLogout godoc
// @Summary Sign out
// @Description Destroys the caller's session and broadcasts the change.
// @Tags Auth
// @Success 204
// @Router /auth/logout [post]
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := TokenFromRequest(r); token != "" {
		if sess, err := h.svc.SessionFromToken(r.Context(), token); err == nil {
			h.svc.Feed().Publish(Event{Type: EventSignedOut, UserID: sess.User.ID})
		}
	}

	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleOAuthBegin redirects the browser to the external provider.
func (h *Handlers) handleOAuthBegin(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	authorizeURL, err := h.svc.AuthorizeURL(provider, r.URL.Query().Get("redirect_to"))
	if err != nil {
		WriteError(w, err)
		return
	}
	http.Redirect(w, r, authorizeURL, http.StatusFound)
}

// handleOAuthCallback completes the OAuth flow. A valid pending code yields a
// session and a redirect home; anything else lands on the login page. The
// failure path is a redirect, never an error page.
func (h *Handlers) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sess, err := h.svc.ExchangeOAuthCode(r.Context(), code)
	if err != nil {
		h.log.Warn("oauth callback exchange failed", zap.Error(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.svc.Feed().Publish(Event{Type: EventSignedIn, UserID: sess.User.ID, Session: sess})
	setSessionCookie(w, sess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func setSessionCookie(w http.ResponseWriter, sess *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.AccessToken,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
