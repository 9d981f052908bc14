package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iothub/internal/application/auth/usecases"
	"iothub/internal/domain/activation"
	"iothub/internal/domain/user"
	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memUsers is a minimal in-memory user.Repository for handler tests.
type memUsers struct {
	byEmail map[string]*user.User
	nextID  uint
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: make(map[string]*user.User), nextID: 1}
}

func (r *memUsers) Create(_ context.Context, u *user.User) error {
	if _, ok := r.byEmail[u.Email()]; ok {
		return errors.NewConflictError("User already exists")
	}
	u.SetID(r.nextID)
	r.nextID++
	r.byEmail[u.Email()] = u
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id uint) (*user.User, error) {
	for _, u := range r.byEmail {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("User not found")
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("User not found")
}

func (r *memUsers) Update(_ context.Context, u *user.User) error {
	r.byEmail[u.Email()] = u
	return nil
}

func (r *memUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

// memActivations is a minimal in-memory activation.Repository.
type memActivations struct {
	byUserID map[uint]*activation.Token
}

func newMemActivations() *memActivations {
	return &memActivations{byUserID: make(map[uint]*activation.Token)}
}

func (r *memActivations) Create(_ context.Context, t *activation.Token) error {
	r.byUserID[t.UserID()] = t
	return nil
}

func (r *memActivations) GetByUserID(_ context.Context, userID uint) (*activation.Token, error) {
	if t, ok := r.byUserID[userID]; ok {
		return t, nil
	}
	return nil, errors.NewNotFoundError("Activation token not found")
}

func (r *memActivations) DeleteByUserID(_ context.Context, userID uint) error {
	delete(r.byUserID, userID)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Verify(password, hash string) bool    { return hash == "hashed:"+password }

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newActivationRouter(t *testing.T) (*gin.Engine, *memUsers, *memActivations) {
	t.Helper()
	users := newMemUsers()
	activations := newMemActivations()
	handler := NewActivationHandler(
		usecases.NewVerifyActivationUseCase(users, activations, passthroughTx{}, logger.NewLogger()),
		logger.NewLogger(),
	)
	router := gin.New()
	router.POST("/api/v1/activation-token/verify", handler.Verify)
	return router, users, activations
}

func TestActivationHandler_Success(t *testing.T) {
	router, users, activations := newActivationRouter(t)
	u, err := user.NewUser("Alice", "Smith", "alice@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), u))
	token, err := activation.NewToken(u.ID(), "0421")
	require.NoError(t, err)
	require.NoError(t, activations.Create(context.Background(), token))

	w := postJSON(router, "/api/v1/activation-token/verify",
		`{"email":"alice@example.com","code":"0421"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	refreshed, err := users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, refreshed.Enabled())
}

// An unknown account renders as a conflict, not a 404.
func TestActivationHandler_UnknownUserIsConflict(t *testing.T) {
	router, _, _ := newActivationRouter(t)

	w := postJSON(router, "/api/v1/activation-token/verify",
		`{"email":"ghost@example.com","code":"0421"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestActivationHandler_WrongCode(t *testing.T) {
	router, users, activations := newActivationRouter(t)
	u, err := user.NewUser("Alice", "Smith", "alice@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), u))
	token, err := activation.NewToken(u.ID(), "0421")
	require.NoError(t, err)
	require.NoError(t, activations.Create(context.Background(), token))

	w := postJSON(router, "/api/v1/activation-token/verify",
		`{"email":"alice@example.com","code":"9999"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestActivationHandler_InvalidBody(t *testing.T) {
	router, _, _ := newActivationRouter(t)

	w := postJSON(router, "/api/v1/activation-token/verify", `{"email":"not-an-email"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func newLoginRouter(t *testing.T) (*gin.Engine, *memUsers) {
	t.Helper()
	users := newMemUsers()
	handler := NewAuthHandler(
		nil,
		usecases.NewLoginUseCase(users, plainHasher{}, stubTokens{}, logger.NewLogger()),
		nil,
		logger.NewLogger(),
	)
	router := gin.New()
	router.POST("/api/v1/auth/login", handler.Login)
	return router, users
}

type stubTokens struct{}

func (stubTokens) IssueSessionToken(email string) (string, error) { return "tok-" + email, nil }
func (stubTokens) IssueDeviceAccessToken(string, string, uint, uint) (string, error) {
	return "", nil
}
func (stubTokens) IssueDeviceRefreshToken(string) (string, error)  { return "", nil }
func (stubTokens) ExtractSubject(string) (string, error)           { return "", nil }
func (stubTokens) ExtractDeviceUUID(string) (string, error)        { return "", nil }
func (stubTokens) IsExpired(string) (bool, error)                  { return false, nil }
func (stubTokens) IsRefreshTokenValid(string) bool                 { return false }

func TestLoginHandler_StatusMapping(t *testing.T) {
	router, users := newLoginRouter(t)
	enabled, err := user.NewUser("Alice", "Smith", "alice@example.com", "hashed:pw")
	require.NoError(t, err)
	enabled.Enable()
	require.NoError(t, users.Create(context.Background(), enabled))

	disabled, err := user.NewUser("Bob", "Jones", "bob@example.com", "hashed:pw")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), disabled))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"success", `{"email":"alice@example.com","password":"pw"}`, http.StatusOK},
		{"unknown email", `{"email":"ghost@example.com","password":"pw"}`, http.StatusNotFound},
		{"wrong password", `{"email":"alice@example.com","password":"nope"}`, http.StatusUnauthorized},
		{"disabled account", `{"email":"bob@example.com","password":"pw"}`, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/v1/auth/login", tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
