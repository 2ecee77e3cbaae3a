// Package newsletter records email signups for the site newsletter.
package newsletter

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/user/signalforge-go/account"
	"github.com/user/signalforge-go/apperror"
	"github.com/user/signalforge-go/db"
)

// Service owns newsletter subscriber persistence.
type Service struct {
	pool db.Pool
	log  *zap.Logger
}

// NewService constructs the newsletter service.
func NewService(pool db.Pool, log *zap.Logger) *Service {
	return &Service{pool: pool, log: log}
}

// Subscribe records an email address. Re-subscribing an existing address is
// not an error.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO newsletter_subscribers (email) VALUES ($1)
		 ON CONFLICT (email) DO NOTHING`, email)
	if err != nil {
		return apperror.NewDatabaseError("failed to subscribe", err)
	}
	s.log.Info("newsletter signup", zap.String("email", email))
	return nil
}

// SubscribeRequest is the signup payload.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Handlers exposes newsletter signup over HTTP.
type Handlers struct {
	svc      *Service
	validate *validator.Validate
}

// NewHandlers constructs the newsletter handlers.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc, validate: validator.New()}
}

// RegisterRoutes mounts the newsletter routes.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/subscribe", h.handleSubscribe)
}

// handleSubscribe godoc
// @Summary Subscribe to the newsletter
// @Tags Newsletter
// @Accept json
// @Param subscribeBody body newsletter.SubscribeRequest true "Email address"
// @Success 204
// @Failure 400 {object} apperror.ErrorResponse
// @Router /newsletter/subscribe [post]
func (h *Handlers) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		account.WriteError(w, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(&req); err != nil {
		account.WriteError(w, apperror.NewValidationError("invalid request: "+err.Error(), nil))
		return
	}

	if err := h.svc.Subscribe(r.Context(), req.Email); err != nil {
		account.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
