package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("%w: hospital", ErrNotFound), http.StatusNotFound},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"invalid input", fmt.Errorf("%w: units must be >= 0", ErrInvalidInput), http.StatusBadRequest},
		{"conflict", fmt.Errorf("%w: already responded", ErrConflict), http.StatusConflict},
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"app error code wins", New(http.StatusTeapot, "teapot", ErrNotFound), http.StatusTeapot},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatus(tc.err))
		})
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := New(http.StatusConflict, "hospital code already exists", ErrConflict)
	assert.Equal(t, "hospital code already exists", err.Error())
	assert.ErrorIs(t, err, ErrConflict)

	wrapped := New(http.StatusBadRequest, "", ErrInvalidInput)
	assert.Equal(t, ErrInvalidInput.Error(), wrapped.Error())
}
