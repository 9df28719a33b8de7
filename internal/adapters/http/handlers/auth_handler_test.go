package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"touragency/internal/adapters/persistence/models"
	"touragency/internal/adapters/registry"
	"touragency/internal/core/services"
	"touragency/internal/pkg/jwt"
	"touragency/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepository struct {
	nextID uint
	users  map[uint]*models.User
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{nextID: 1, users: make(map[uint]*models.User)}
}

func (r *stubUserRepository) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok && u.IsActive {
		return u, nil
	}
	return nil, errors.New("record not found")
}

func (r *stubUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.IsActive {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubUserRepository) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepository) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepository) Deactivate(_ context.Context, id uint) error {
	if u, ok := r.users[id]; ok {
		u.IsActive = false
	}
	return nil
}

func (r *stubUserRepository) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func newAuthTestApp(t *testing.T) (*fiber.App, *stubUserRepository) {
	t.Helper()

	issuer, err := jwt.NewIssuer("test-secret", "test-issuer", "test-audience")
	require.NoError(t, err)

	users := newStubUserRepository()
	svc := services.NewAuthService(users, registry.NewMemory(0), issuer)
	handler := NewAuthHandler(svc)

	app := fiber.New()
	app.Post("/api/auth/login", handler.Login)
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/refresh", handler.Refresh)
	app.Get("/api/auth/me", handler.Me)

	return app, users
}

func seedActiveUser(t *testing.T, users *stubUserRepository, email, plaintext string) {
	t.Helper()

	hash, err := password.Hash(plaintext)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &models.User{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
		IsActive:     true,
	}))
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLoginReturnsAuthBundle(t *testing.T) {
	app, users := newAuthTestApp(t)
	seedActiveUser(t, users, "jane@example.com", "secret123")

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result services.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	require.NotNil(t, result.User)
	assert.Equal(t, "jane@example.com", result.User.Email)
}

// Failed logins answer 401 with an empty body, regardless of cause.
func TestLoginFailuresReturn401EmptyBody(t *testing.T) {
	app, users := newAuthTestApp(t)
	seedActiveUser(t, users, "jane@example.com", "secret123")

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"wrong password", fiber.Map{"email": "jane@example.com", "password": "nope12"}},
		{"unknown account", fiber.Map{"email": "nobody@example.com", "password": "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/auth/login", tt.body)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Empty(t, body)
		})
	}
}

func TestRegisterLogsNewUserIn(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", fiber.Map{
		"firstName": "John",
		"lastName":  "Smith",
		"email":     "john@example.com",
		"password":  "secret123",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result services.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.NotNil(t, result.User)
	assert.Equal(t, models.RoleCustomer, result.User.Role)
	assert.NotEmpty(t, result.RefreshToken)
}

// A duplicate email answers 400 with the plain-text body clients match on.
func TestRegisterDuplicateEmailReturnsPlainText(t *testing.T) {
	app, users := newAuthTestApp(t)
	seedActiveUser(t, users, "jane@example.com", "secret123")

	resp := postJSON(t, app, "/api/auth/register", fiber.Map{
		"firstName": "Jane",
		"lastName":  "Again",
		"email":     "jane@example.com",
		"password":  "secret123",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Email already exists", string(body))
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newAuthTestApp(t)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"missing names", fiber.Map{"email": "a@b.c", "password": "secret123"}},
		{"bad email", fiber.Map{"firstName": "A", "lastName": "B", "email": "not-an-email", "password": "secret123"}},
		{"short password", fiber.Map{"firstName": "A", "lastName": "B", "email": "a@b.c", "password": "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/auth/register", tt.body)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRefreshRotatesAndRejectsReplay(t *testing.T) {
	app, users := newAuthTestApp(t)
	seedActiveUser(t, users, "jane@example.com", "secret123")

	loginResp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	defer loginResp.Body.Close()

	var first services.AuthResponse
	require.NoError(t, json.NewDecoder(loginResp.Body).Decode(&first))

	refreshResp := postJSON(t, app, "/api/auth/refresh", fiber.Map{"refreshToken": first.RefreshToken})
	defer refreshResp.Body.Close()
	require.Equal(t, http.StatusOK, refreshResp.StatusCode)

	var second services.AuthResponse
	require.NoError(t, json.NewDecoder(refreshResp.Body).Decode(&second))
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Replaying the redeemed token answers 401 with an empty body.
	replayResp := postJSON(t, app, "/api/auth/refresh", fiber.Map{"refreshToken": first.RefreshToken})
	defer replayResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, replayResp.StatusCode)

	body, err := io.ReadAll(replayResp.Body)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestMeResolvesCurrentUser(t *testing.T) {
	app, users := newAuthTestApp(t)
	seedActiveUser(t, users, "jane@example.com", "secret123")

	loginResp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	defer loginResp.Body.Close()

	var auth services.AuthResponse
	require.NoError(t, json.NewDecoder(loginResp.Body).Decode(&auth))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+auth.Token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info models.UserInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "jane@example.com", info.Email)
}
