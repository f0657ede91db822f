package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("video")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("missing field")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("email already registered")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("not the owner")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthenticated("invalid token")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestHTTPStatus_Wrapped(t *testing.T) {
	err := fmt.Errorf("usecase failed: %w", NotFound("comment"))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestMessage_Opaque(t *testing.T) {
	// Internal errors must never leak their cause to the caller.
	err := Internal(errors.New("pq: connection refused"))
	assert.Equal(t, "internal server error", Message(err))

	assert.Equal(t, "video not found", Message(NotFound("video")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("row not found")
	err := Wrap(KindNotFound, "video not found", cause)
	assert.True(t, errors.Is(err, cause))
}
