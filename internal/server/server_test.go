package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"anoa.com/bloodconnect/internal/config"
	"anoa.com/bloodconnect/internal/entity"
	notifService "anoa.com/bloodconnect/internal/modules/notification/service"
	"anoa.com/bloodconnect/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("CLOUDINARY_URL", "")

	db := testutil.NewDB(t)
	cfg := &config.Config{
		AppEnv:               "test",
		AllowedOrigins:       []string{"http://localhost:5173"},
		JWTSecret:            "test-secret",
		JWTTTL:               time.Hour,
		RateLimitWillingness: time.Minute,
		SearchReindexCron:    "@every 6h",
	}

	srv, err := NewServer(cfg, db, nil, testutil.Logger())
	require.NoError(t, err)
	return srv, db
}

func do(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func login(t *testing.T, srv *Server, email, password string) string {
	t.Helper()
	w := do(t, srv, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.AccessToken)
	return res.AccessToken
}

func loginAccount(t *testing.T, srv *Server, db *gorm.DB, accountID uuid.UUID) string {
	t.Helper()
	var account entity.Account
	require.NoError(t, db.First(&account, "id = ?", accountID).Error)
	return login(t, srv, account.Email, "secret123")
}

func TestHospitalFlowOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/auth/hospital/register", "", gin.H{
		"email":         "ops@city-general.test",
		"password":      "secret123",
		"hospital_code": "CGH-01",
		"name":          "City General",
		"city":          "Pune",
		"address":       "1 Hospital Road",
		"phone":         "0201234567",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	token := login(t, srv, "ops@city-general.test", "secret123")

	w = do(t, srv, http.MethodPut, "/api/hospital/stock", token, gin.H{"blood_group": "O+", "units_available": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, srv, http.MethodPut, "/api/hospital/stock", token, gin.H{"blood_group": "O+", "units_available": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodGet, "/api/hospital/stock", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stock struct {
		Data []entity.StockEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stock))
	require.Len(t, stock.Data, 1)
	assert.Equal(t, 5, stock.Data[0].UnitsAvailable)

	w = do(t, srv, http.MethodGet, "/api/donor/profile", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDonorBroadcastReachesHospitalList(t *testing.T) {
	srv, db := newTestServer(t)

	donor := testutil.CreateDonor(t, db, "Asha", "O-")
	donorToken := loginAccount(t, srv, db, donor.AccountID)

	hospital := testutil.CreateHospital(t, db, "H-001", "Pune")
	hospitalToken := loginAccount(t, srv, db, hospital.AccountID)

	w := do(t, srv, http.MethodPost, "/api/donor/willingness", donorToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created entity.WillingnessRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(t, srv, http.MethodPost, "/api/hospital/requests/"+created.ID.String()+"/respond", hospitalToken, gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, srv, http.MethodPost, "/api/hospital/requests/"+created.ID.String()+"/respond", hospitalToken, gin.H{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, srv, http.MethodGet, "/api/donor/donations", donorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Data []struct {
			HospitalID   uuid.UUID `json:"hospital_id"`
			HospitalName string    `json:"hospital_name"`
			HospitalCity string    `json:"hospital_city"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.Data, 1)
	assert.Equal(t, hospital.ID, history.Data[0].HospitalID)
	assert.Equal(t, "Hospital H-001", history.Data[0].HospitalName)
	assert.Equal(t, "Pune", history.Data[0].HospitalCity)
}

func TestHospitalWebSocketReceivesNewRequests(t *testing.T) {
	srv, db := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/hospital/notifications/ws?token="

	donor := testutil.CreateDonor(t, db, "Asha", "B+")
	donorToken := loginAccount(t, srv, db, donor.AccountID)
	hospital := testutil.CreateHospital(t, db, "H-001", "Pune")
	hospitalToken := loginAccount(t, srv, db, hospital.AccountID)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL+donorToken, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL+hospitalToken, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	w := do(t, srv, http.MethodPost, "/api/donor/willingness", donorToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created entity.WillingnessRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev notifService.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, notifService.EventWillingnessCreated, ev.Type)
	require.NotNil(t, ev.Request)
	assert.Equal(t, created.ID, ev.Request.ID)
	assert.Equal(t, "B+", ev.Request.BloodGroup)
	assert.Equal(t, entity.StatusPending, ev.Request.Status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/api/auth/me", "/api/donor/profile", "/api/hospital/requests", "/api/admin/stats"} {
		w := do(t, srv, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
