package profiles

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/user/signalforge-go/account"
	"github.com/user/signalforge-go/apperror"
)

// UpdateRequest is the self-service profile patch payload.
type UpdateRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=3,max=40"`
	FullName  *string `json:"full_name,omitempty" validate:"omitempty,max=120"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// Handlers exposes the caller's own profile. All routes sit behind the
// signed-in guard, so the user is always present in the request context.
type Handlers struct {
	svc      *Service
	accounts *account.Service
	validate *validator.Validate
	log      *zap.Logger
}

// NewHandlers constructs the profile handlers.
func NewHandlers(svc *Service, accounts *account.Service, log *zap.Logger) *Handlers {
	return &Handlers{svc: svc, accounts: accounts, validate: validator.New(), log: log}
}

// RegisterRoutes mounts the profile routes.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleGet)
	r.Patch("/", h.handleUpdate)
	r.Patch("/account", h.handleUpdateAccount)
}

// handleGet godoc
// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} profiles.Profile
// @Failure 401 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /api/profile [get]
func (h *Handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := account.UserFromContext(r.Context())
	if !ok {
		account.WriteError(w, apperror.NewAuthError("not authenticated", nil))
		return
	}

	p, err := h.svc.GetByID(r.Context(), user.ID)
	if err != nil {
		account.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// handleUpdate godoc
// @Summary Update the caller's profile
// @Description Patches username, full name or avatar. The is_admin flag is
// @Description not writable through this endpoint.
// @Tags Profile
// @Accept json
// @Produce json
// @Param profileBody body profiles.UpdateRequest true "Fields to update"
// @Success 200 {object} profiles.Profile
// @Failure 409 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /api/profile [patch]
func (h *Handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := account.UserFromContext(r.Context())
	if !ok {
		account.WriteError(w, apperror.NewAuthError("not authenticated", nil))
		return
	}

	var req UpdateRequest
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

	p, err := h.svc.UpdateSelf(r.Context(), user.ID, Update{
		Username:  req.Username,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		account.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// handleUpdateAccount godoc
// @Summary Update the caller's account metadata
// @Description Patches the display metadata stored on the account record
// @Description itself and publishes a USER_UPDATED auth event.
// @Tags Profile
// @Accept json
// @Produce json
// @Param metaBody body account.UserMetadata true "Metadata to update"
// @Success 200 {object} account.User
// @Security BearerAuth
// @Router /api/profile/account [patch]
func (h *Handlers) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := account.UserFromContext(r.Context())
	if !ok {
		account.WriteError(w, apperror.NewAuthError("not authenticated", nil))
		return
	}

	var meta account.UserMetadata
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&meta); err != nil {
		account.WriteError(w, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	updated, err := h.accounts.UpdateUserMeta(r.Context(), user.ID, meta)
	if err != nil {
		account.WriteError(w, err)
		return
	}

	h.accounts.Feed().Publish(account.Event{
		Type:   account.EventUserUpdated,
		UserID: updated.ID,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}
