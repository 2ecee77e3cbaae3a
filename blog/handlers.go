package blog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/user/signalforge-go/account"
	"github.com/user/signalforge-go/apperror"
	"github.com/user/signalforge-go/guard"
)

// Handlers exposes blog posts over HTTP.
type Handlers struct {
	svc      *Service
	validate *validator.Validate
	log      *zap.Logger
}

// NewHandlers constructs the blog handlers.
func NewHandlers(svc *Service, log *zap.Logger) *Handlers {
	return &Handlers{svc: svc, validate: validator.New(), log: log}
}

// RegisterPublicRoutes mounts the read-only blog routes.
func (h *Handlers) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
}

// RegisterAdminRoutes mounts the blog mutation routes.
func (h *Handlers) RegisterAdminRoutes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Patch("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		account.WriteError(w, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return false
	}
	defer r.Body.Close()

	if err := h.validate.Struct(dst); err != nil {
		account.WriteError(w, apperror.NewValidationError("invalid request: "+err.Error(), nil))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// handleList godoc
// @Summary List blog posts
// @Tags Blog
// @Produce json
// @Success 200 {array} blog.Post
// @Router /blog [get]
func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		account.WriteError(w, err)
		return
	}
	if list == nil {
		list = []Post{}
	}
	writeJSON(w, http.StatusOK, list)
}

// handleGet godoc
// @Summary Get a blog post
// @Tags Blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} blog.Post
// @Failure 404 {object} apperror.ErrorResponse
// @Router /blog/{id} [get]
func (h *Handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		account.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleCreate godoc
// @Summary Publish a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param postBody body blog.CreateRequest true "Post details"
// @Success 201 {object} blog.Post
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /blog [post]
func (h *Handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := guard.UserFromContext(r.Context())
	if !ok {
		account.WriteError(w, apperror.NewAuthError("not authenticated", nil))
		return
	}

	var req CreateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	p, err := h.svc.Create(r.Context(), user.ID, req)
	if err != nil {
		account.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// handleUpdate godoc
// @Summary Update a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param postBody body blog.UpdateRequest true "Fields to update"
// @Success 200 {object} blog.Post
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /blog/{id} [patch]
func (h *Handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		account.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleDelete godoc
// @Summary Delete a blog post
// @Tags Blog
// @Param id path string true "Post ID"
// @Success 204
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /blog/{id} [delete]
func (h *Handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		account.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
