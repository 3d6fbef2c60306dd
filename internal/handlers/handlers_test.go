package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"teadesk-system/internal/auth"
	"teadesk-system/internal/common/logger"
	"teadesk-system/internal/domain"
	"teadesk-system/internal/repository"
	"teadesk-system/internal/service"
	"teadesk-system/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestRouter(t *testing.T, authn *auth.Authenticator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	lg := logger.New("test")
	store := storage.New(lg)
	repo := repository.New(store, storage.NewResolver(t.TempDir()))
	svc := service.New(repo, store, nil, lg)
	if authn == nil {
		authn = auth.New("staff", "", "", time.Hour) // disabled
	}
	return New(svc, authn, lg, t.TempDir(), nil).Router()
}

func do(r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, nil)
	w := do(r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateOrderEndpoint(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/orders?company=acme", gin.H{"desk": 3, "items": []string{"Karak Tea"}}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "3", created.Desk)
	assert.Equal(t, []string{"Karak Tea"}, created.Items)
	assert.Equal(t, domain.StatusPending, created.Status)
}

func TestCreateOrderValidationAndConflict(t *testing.T) {
	r := newTestRouter(t, nil)

	// no desk
	w := do(r, http.MethodPost, "/api/orders", gin.H{"items": []string{"Tea"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/orders", gin.H{"id": "ORD-1", "desk": "2"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(r, http.MethodPost, "/api/orders", gin.H{"id": "ORD-1", "desk": "2"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListOrdersScopedByCompany(t *testing.T) {
	r := newTestRouter(t, nil)

	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/orders?company=acme", gin.H{"desk": "1"}, nil).Code)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/orders", gin.H{"desk": "2"},
		map[string]string{"X-Company-Id": "globex"}).Code)

	var acme, globex, def []domain.Order
	require.NoError(t, json.Unmarshal(do(r, http.MethodGet, "/api/orders?company=acme", nil, nil).Body.Bytes(), &acme))
	require.NoError(t, json.Unmarshal(do(r, http.MethodGet, "/api/orders?company=globex", nil, nil).Body.Bytes(), &globex))
	require.NoError(t, json.Unmarshal(do(r, http.MethodGet, "/api/orders", nil, nil).Body.Bytes(), &def))

	assert.Len(t, acme, 1)
	assert.Len(t, globex, 1)
	assert.Empty(t, def)
}

func TestGetOrderNotFound(t *testing.T) {
	r := newTestRouter(t, nil)
	w := do(r, http.MethodGet, "/api/orders/ORD-missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateOrderEndpoint(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/orders", gin.H{"id": "ORD-1", "desk": "2"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPost, "/api/orders/ORD-1/rating", gin.H{"stars": 9}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/orders/ORD-1/rating", gin.H{"stars": 5, "review": "great"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rated domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rated))
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 5, rated.Rating.Stars)
}

func TestBulkReplaceEndpoint(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPut, "/api/orders", []gin.H{
		{"id": "a", "desk": "1"},
		{"id": "b", "desk": 2},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count": 2}`, w.Body.String())
}

func TestStaffRoutesRequireToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("brew-master"), bcrypt.DefaultCost)
	require.NoError(t, err)
	authn := auth.New("staff", string(hash), "test-secret", time.Hour)
	r := newTestRouter(t, authn)

	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/orders", gin.H{"id": "ORD-1", "desk": "1"}, nil).Code)

	// no token
	w := do(r, http.MethodPatch, "/api/orders/ORD-1", gin.H{"status": "completed"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// bad credentials
	w = do(r, http.MethodPost, "/api/auth/login", gin.H{"username": "staff", "password": "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// login then retry
	w = do(r, http.MethodPost, "/api/auth/login", gin.H{"username": "staff", "password": "brew-master"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	w = do(r, http.MethodPatch, "/api/orders/ORD-1", gin.H{"status": "completed"},
		map[string]string{"Authorization": "Bearer " + resp.Token})
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.NotEmpty(t, updated.CompletedAt)
}

func TestDesksAndMenuEndpoints(t *testing.T) {
	r := newTestRouter(t, nil)

	var reg domain.DeskRegistry
	w := do(r, http.MethodGet, "/api/desks?company=fresh", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.Equal(t, domain.DefaultDeskCount, reg.NumDesks)

	w = do(r, http.MethodPut, "/api/desks/15?company=fresh", gin.H{"building": "HQ", "floor": "3", "teaBoy": "Ali"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.Equal(t, 15, reg.NumDesks)

	var menu domain.Menu
	w = do(r, http.MethodGet, "/api/menu", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	assert.True(t, menu.Valid())
}
