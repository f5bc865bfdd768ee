package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"safety_reports/internal/middleware"
	"safety_reports/internal/model"
	"safety_reports/internal/service"
	"safety_reports/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memUserRepo is an in-memory UserRepository backing the router under test
type memUserRepo struct {
	users  map[int]*model.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int]*model.User), nextID: 1}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func setupUserRouter(t *testing.T) (*gin.Engine, *utils.JWTUtil) {
	gin.SetMode(gin.TestMode)
	jwtUtil := utils.NewJWTUtil("test-secret", 168)
	authService := service.NewAuthService(newMemUserRepo(), jwtUtil, zap.NewNop())
	userHandler := NewUserHandler(authService, zap.NewNop())

	r := gin.New()
	apiGroup := r.Group("/api")
	userHandler.RegisterUserRoutes(apiGroup, middleware.JWTAuthMiddleware(jwtUtil), middleware.RejectDemoMiddleware())
	return r, jwtUtil
}

func postJSON(r *gin.Engine, path string, body interface{}, token string) *httptest.ResponseRecorder {
	return sendJSON(r, http.MethodPost, path, body, token)
}

func sendJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserHandler_RegisterLoginProfileFlow(t *testing.T) {
	r, _ := setupUserRouter(t)

	// Register
	w := postJSON(r, "/api/users/register", gin.H{
		"name": "Jane", "email": "jane@x.com", "password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var registered map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.Equal(t, "Jane", registered["name"])
	assert.Equal(t, "jane@x.com", registered["email"])
	assert.Contains(t, registered, "id")
	assert.NotContains(t, registered, "password")
	assert.NotContains(t, registered, "password_hash")

	// Login
	w = postJSON(r, "/api/users/login", gin.H{
		"email": "jane@x.com", "password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var loginBody map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginBody))
	token := loginBody["token"]
	require.NotEmpty(t, token)

	// Profile with token
	w = sendJSON(r, http.MethodGet, "/api/users/profile", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var profile map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, registered["id"], profile["id"])
	assert.Equal(t, "Jane", profile["name"])
	assert.Equal(t, "jane@x.com", profile["email"])

	// Profile without token
	w = sendJSON(r, http.MethodGet, "/api/users/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Access token is missing"}`, w.Body.String())
}

func TestUserHandler_Register_DuplicateEmail(t *testing.T) {
	r, _ := setupUserRouter(t)

	w := postJSON(r, "/api/users/register", gin.H{
		"name": "Jane", "email": "jane@x.com", "password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/users/register", gin.H{
		"name": "Janet", "email": "jane@x.com", "password": "other456",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"Email already in use"}`, w.Body.String())
}

func TestUserHandler_Register_Validation(t *testing.T) {
	r, _ := setupUserRouter(t)

	// Missing name, malformed email, short password
	cases := []gin.H{
		{"email": "jane@x.com", "password": "password123"},
		{"name": "Jane", "email": "not-an-email", "password": "password123"},
		{"name": "Jane", "email": "jane@x.com", "password": "short"},
	}
	for _, body := range cases {
		w := postJSON(r, "/api/users/register", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	r, _ := setupUserRouter(t)

	w := postJSON(r, "/api/users/register", gin.H{
		"name": "Jane", "email": "jane@x.com", "password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password and unknown email produce identical responses
	wrongPass := postJSON(r, "/api/users/login", gin.H{
		"email": "jane@x.com", "password": "wrongpassword",
	}, "")
	unknown := postJSON(r, "/api/users/login", gin.H{
		"email": "nobody@x.com", "password": "password123",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	r, _ := setupUserRouter(t)

	w := postJSON(r, "/api/users/register", gin.H{
		"name": "Jane", "email": "jane@x.com", "password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/users/login", gin.H{
		"email": "jane@x.com", "password": "password123",
	}, "")
	var loginBody map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginBody))
	token := loginBody["token"]

	w = sendJSON(r, http.MethodPut, "/api/users/profile", gin.H{"name": "Jane Doe"}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var profile map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Jane Doe", profile["name"])
	assert.Equal(t, "jane@x.com", profile["email"])

	// Password change takes effect on the next login
	w = sendJSON(r, http.MethodPut, "/api/users/profile", gin.H{"password": "newpassword456"}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/api/users/login", gin.H{
		"email": "jane@x.com", "password": "newpassword456",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = postJSON(r, "/api/users/login", gin.H{
		"email": "jane@x.com", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_DemoIdentity(t *testing.T) {
	r, jwtUtil := setupUserRouter(t)

	demoToken, err := jwtUtil.GenerateDemoToken(0)
	require.NoError(t, err)

	// Profile read returns the fixed placeholder
	w := sendJSON(r, http.MethodGet, "/api/users/profile", nil, demoToken)
	require.Equal(t, http.StatusOK, w.Code)

	var profile map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Demo User", profile["name"])
	assert.Equal(t, "demo@example.com", profile["email"])

	// Profile update is rejected
	w = sendJSON(r, http.MethodPut, "/api/users/profile", gin.H{"name": "Hacked"}, demoToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
