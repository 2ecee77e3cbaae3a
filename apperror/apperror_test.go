package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    int
	}{
		{AuthError, http.StatusUnauthorized},
		{ForbiddenError, http.StatusForbidden},
		{NotFoundError, http.StatusNotFound},
		{ValidationError, http.StatusBadRequest},
		{BadRequestError, http.StatusBadRequest},
		{ConflictError, http.StatusConflict},
		{DatabaseError, http.StatusInternalServerError},
		{InternalError, http.StatusInternalServerError},
		{UnknownError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.errType, "msg", nil).StatusCode())
	}
}

func TestToResponseHidesCause(t *testing.T) {
	err := NewDatabaseError("failed to list signals", errors.New("pq: relation does not exist"))
	resp := err.ToResponse()
	assert.Equal(t, "failed to list signals", resp.Error)
	assert.NotContains(t, resp.Error, "pq:")
}

func TestFromError(t *testing.T) {
	appErr := NewNotFoundError("signal not found", nil)
	assert.Same(t, appErr, FromError(appErr))

	wrapped := FromError(errors.New("boom"))
	require.NotNil(t, wrapped)
	assert.Equal(t, InternalError, wrapped.Type)

	cause := errors.New("root")
	assert.ErrorIs(t, NewAuthError("denied", cause), cause)
}
