package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"conflict", ErrConflict, http.StatusConflict},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"rate limited", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("review: %w", ErrNotFound), http.StatusNotFound},
		{"app error code wins", New(http.StatusTeapot, "teapot", ErrNotFound), http.StatusTeapot},
		{"validation helper", Validation("username too long"), http.StatusBadRequest},
		{"conflict helper", Conflict("slug taken"), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatus(tt.err))
		})
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := Validation("body too long")
	assert.Equal(t, "body too long", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
