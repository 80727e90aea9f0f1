package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/domain"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/service"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/pkg/response"
)

// fakeUserService returns canned results per operation.
type fakeUserService struct {
	createOut *domain.User
	createErr error

	getOut *domain.User
	getErr error

	prefOut *domain.UserPreference
	prefErr error

	updatePrefOut *domain.UserPreference
	updatePrefErr error

	pushOut *domain.User
	pushErr error

	verifyOut *domain.User
	verifyErr error

	passwordOut *domain.User
	passwordErr error

	listOut   []domain.User
	listTotal int64
	listErr   error
	listPage  int
	listLimit int

	deleteErr error

	health domain.HealthStatus
}

func (f *fakeUserService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	return f.createOut, f.createErr
}

func (f *fakeUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeUserService) GetPreference(ctx context.Context, userID string) (*domain.UserPreference, error) {
	return f.prefOut, f.prefErr
}

func (f *fakeUserService) UpdatePreference(ctx context.Context, userID string, email, push bool) (*domain.UserPreference, error) {
	return f.updatePrefOut, f.updatePrefErr
}

func (f *fakeUserService) UpdatePushToken(ctx context.Context, userID string, token *string) (*domain.User, error) {
	return f.pushOut, f.pushErr
}

func (f *fakeUserService) VerifyPassword(ctx context.Context, email, password string) (*domain.User, error) {
	return f.verifyOut, f.verifyErr
}

func (f *fakeUserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*domain.User, error) {
	return f.passwordOut, f.passwordErr
}

func (f *fakeUserService) ListUsers(ctx context.Context, page, limit int) ([]domain.User, int64, error) {
	f.listPage = page
	f.listLimit = limit
	return f.listOut, f.listTotal, f.listErr
}

func (f *fakeUserService) DeleteUser(ctx context.Context, userID string) error {
	return f.deleteErr
}

func (f *fakeUserService) Health(ctx context.Context) domain.HealthStatus {
	return f.health
}

// envelope mirrors the response body for decoding in assertions.
type envelope struct {
	Success bool                     `json:"success"`
	Data    json.RawMessage          `json:"data"`
	Message string                   `json:"message"`
	Error   string                   `json:"error"`
	Meta    *response.PaginationMeta `json:"meta"`
}

func newTestRouter(svc service.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:        "user-1",
		Name:      "Ada",
		Email:     "ada@example.com",
		CreatedAt: time.Now(),
		Preference: &domain.UserPreference{
			ID:     "pref-1",
			UserID: "user-1",
			Email:  true,
			Push:   false,
		},
	}
}

const validCreateBody = `{
	"name": "Ada",
	"email": "ada@example.com",
	"password": "correct-horse",
	"preferences": {"email": true, "push": false}
}`

func TestCreateUser_Created(t *testing.T) {
	svc := &fakeUserService{createOut: sampleUser()}
	r := newTestRouter(svc)

	w, env := doRequest(t, r, http.MethodPost, "/api/v1/users/create-user", validCreateBody)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "User created successfully.", env.Message)

	var user domain.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "user-1", user.ID)
	require.NotNil(t, user.Preference)
	assert.True(t, user.Preference.Email)
}

func TestCreateUser_DuplicateEmailIsBadRequest(t *testing.T) {
	svc := &fakeUserService{createErr: service.ErrEmailExists}
	r := newTestRouter(svc)

	w, env := doRequest(t, r, http.MethodPost, "/api/v1/users/create-user", validCreateBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "already exists")
}

func TestCreateUser_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed email", `{"name":"A","email":"not-an-email","password":"long-enough-pw","preferences":{}}`},
		{"short password", `{"name":"A","email":"a@b.com","password":"short","preferences":{}}`},
		{"missing preferences", `{"name":"A","email":"a@b.com","password":"long-enough-pw"}`},
		{"missing name", `{"email":"a@b.com","password":"long-enough-pw","preferences":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeUserService{createOut: sampleUser()}
			r := newTestRouter(svc)

			w, env := doRequest(t, r, http.MethodPost, "/api/v1/users/create-user", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestGetUser_NotFound(t *testing.T) {
	svc := &fakeUserService{getErr: service.ErrUserNotFound}
	r := newTestRouter(svc)

	w, env := doRequest(t, r, http.MethodGet, "/api/v1/users/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestGetUserByEmail_OK(t *testing.T) {
	svc := &fakeUserService{getOut: sampleUser()}
	r := newTestRouter(svc)

	w, env := doRequest(t, r, http.MethodGet, "/api/v1/users/email/ada@example.com", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestGetPreferences_OK(t *testing.T) {
	svc := &fakeUserService{prefOut: &domain.UserPreference{UserID: "user-1", Email: true, Push: false}}
	r := newTestRouter(svc)

	w, env := doRequest(t, r, http.MethodGet, "/api/v1/users/preferences/user-1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var pref domain.UserPreference
	require.NoError(t, json.Unmarshal(env.Data, &pref))
	assert.Equal(t, "user-1", pref.UserID)
	assert.True(t, pref.Email)
	assert.False(t, pref.Push)
}

func TestGetPreferences_NotFound(t *testing.T) {
	svc := &fakeUserService{prefErr: service.ErrPreferenceNotFound}
	r := newTestRouter(svc)

	w, _ := doRequest(t, r, http.MethodGet, "/api/v1/users/preferences/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePreferences_OK(t *testing.T) {
	svc := &fakeUserService{updatePrefOut: &domain.UserPreference{UserID: "user-1", Email: false, Push: true}}
	r := newTestRouter(svc)

	w, env := doRequest(t, r, http.MethodPut, "/api/v1/users/user-1/preferences", `{"email": false, "push": true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User preferences updated successfully.", env.Message)
}

func TestVerifyPassword_WrongPasswordIsUnauthorized(t *testing.T) {
	svc := &fakeUserService{verifyErr: service.ErrInvalidCredentials}
	r := newTestRouter(svc)

	w, env := doRequest(t, r, http.MethodPost, "/api/v1/users/verify-password",
		`{"email":"ada@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
}

func TestUpdatePassword_WrongCurrentIsUnauthorized(t *testing.T) {
	svc := &fakeUserService{passwordErr: service.ErrWrongPassword}
	r := newTestRouter(svc)

	w, _ := doRequest(t, r, http.MethodPut, "/api/v1/users/update-password/user-1",
		`{"current_password":"wrong","new_password":"new-password-1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdatePassword_ShortNewPasswordIsBadRequest(t *testing.T) {
	svc := &fakeUserService{passwordOut: sampleUser()}
	r := newTestRouter(svc)

	w, _ := doRequest(t, r, http.MethodPut, "/api/v1/users/update-password/user-1",
		`{"current_password":"correct-horse","new_password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePushToken_OK(t *testing.T) {
	svc := &fakeUserService{pushOut: sampleUser()}
	r := newTestRouter(svc)

	w, env := doRequest(t, r, http.MethodPut, "/api/v1/users/update-push-token/user-1",
		`{"push_token":"device-token-1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Push token updated successfully.", env.Message)
}

func TestListUsers_PaginationMeta(t *testing.T) {
	users := make([]domain.User, 5)
	for i := range users {
		users[i] = *sampleUser()
		users[i].ID = fmt.Sprintf("user-%d", i+1)
	}
	svc := &fakeUserService{listOut: users, listTotal: 12}
	r := newTestRouter(svc)

	w, env := doRequest(t, r, http.MethodGet, "/api/v1/users/all/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.listPage)
	assert.Equal(t, 5, svc.listLimit)

	require.NotNil(t, env.Meta)
	assert.EqualValues(t, 12, env.Meta.Total)
	assert.Equal(t, 5, env.Meta.Limit)
	assert.Equal(t, 1, env.Meta.Page)
	assert.Equal(t, 3, env.Meta.TotalPages)
	assert.True(t, env.Meta.HasNext)
	assert.False(t, env.Meta.HasPrevious)

	var list domain.UserListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list.Users, 5)
}

func TestListUsers_LastPage(t *testing.T) {
	svc := &fakeUserService{listOut: make([]domain.User, 2), listTotal: 12}
	r := newTestRouter(svc)

	_, env := doRequest(t, r, http.MethodGet, "/api/v1/users/all/users?page=3&limit=5", "")
	require.NotNil(t, env.Meta)
	assert.Equal(t, 3, env.Meta.Page)
	assert.Equal(t, 3, env.Meta.TotalPages)
	assert.False(t, env.Meta.HasNext)
	assert.True(t, env.Meta.HasPrevious)
}

func TestListUsers_QueryBounds(t *testing.T) {
	for _, query := range []string{"?page=0", "?limit=0", "?limit=101", "?page=abc", "?limit=abc"} {
		t.Run(query, func(t *testing.T) {
			svc := &fakeUserService{}
			r := newTestRouter(svc)

			w, env := doRequest(t, r, http.MethodGet, "/api/v1/users/all/users"+query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestDeleteUser_OK(t *testing.T) {
	svc := &fakeUserService{}
	r := newTestRouter(svc)

	w, env := doRequest(t, r, http.MethodDelete, "/api/v1/users/user-1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "User deleted successfully.", env.Message)
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc := &fakeUserService{deleteErr: service.ErrUserNotFound}
	r := newTestRouter(svc)

	w, _ := doRequest(t, r, http.MethodDelete, "/api/v1/users/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInternalErrorIsGeneric(t *testing.T) {
	svc := &fakeUserService{getErr: fmt.Errorf("pq: connection refused to host 10.0.0.1")}
	r := newTestRouter(svc)

	w, env := doRequest(t, r, http.MethodGet, "/api/v1/users/user-1", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	// Native store error text never reaches the caller.
	assert.NotContains(t, env.Error, "10.0.0.1")
	assert.NotContains(t, env.Message, "pq:")
}

func TestHealth(t *testing.T) {
	healthy := domain.HealthStatus{Status: "healthy", Service: "user-service", Database: "connected", Redis: "connected"}
	svc := &fakeUserService{health: healthy}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var status domain.HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "connected", status.Database)

	svc.health = domain.HealthStatus{Status: "unhealthy", Service: "user-service", Database: "connected", Redis: "unreachable"}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
