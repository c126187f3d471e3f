package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/bloodconnect/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestGetAccountID(t *testing.T) {
	c, _ := newContext()

	_, err := GetAccountID(c)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	c.Set(AccountIDKey, "not-a-uuid")
	_, err = GetAccountID(c)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	id := uuid.New()
	c.Set(AccountIDKey, id.String())
	got, err := GetAccountID(c)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestResponseError(t *testing.T) {
	c, w := newContext()
	ResponseError(c, fmt.Errorf("%w: request already responded", apperror.ErrConflict))

	assert.Equal(t, http.StatusConflict, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "conflict: request already responded", body["error"])
}

func TestResponseErrorHidesInternalDetails(t *testing.T) {
	c, w := newContext()
	ResponseError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}
