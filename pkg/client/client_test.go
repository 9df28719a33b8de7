package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer is a minimal stand-in for the API: it accepts one valid
// access token at a time and rotates the pair on /api/auth/refresh.
type fakeServer struct {
	mu           sync.Mutex
	access       string
	refresh      string
	refreshCalls int32
	meCalls      int32
}

func newFakeServer() *fakeServer {
	return &fakeServer{access: "access-1", refresh: "refresh-1"}
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.writeAuthResponse(w)
	})

	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.refreshCalls, 1)

		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		valid := req.RefreshToken == f.refresh
		if valid {
			n := atomic.LoadInt32(&f.refreshCalls)
			f.access = fmt.Sprintf("access-%d", n+1)
			f.refresh = fmt.Sprintf("refresh-%d", n+1)
		}
		f.mu.Unlock()

		if !valid {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.writeAuthResponse(w)
	})

	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.meCalls, 1)

		f.mu.Lock()
		want := "Bearer " + f.access
		f.mu.Unlock()

		if r.Header.Get("Authorization") != want {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(UserInfo{ID: 1, Email: "jane@example.com", Role: "Customer"})
	})

	mux.HandleFunc("/api/destinations", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		want := "Bearer " + f.access
		f.mu.Unlock()

		if r.Header.Get("Authorization") != want {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]Destination{{ID: 1, Name: "Santorini"}})
		case http.MethodPost:
			var d Destination
			json.NewDecoder(r.Body).Decode(&d)
			d.ID = 99
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(d)
		}
	})

	return mux
}

func (f *fakeServer) writeAuthResponse(w http.ResponseWriter) {
	f.mu.Lock()
	resp := AuthResponse{
		Token:        f.access,
		RefreshToken: f.refresh,
		ExpiresAt:    time.Now().Add(24 * time.Hour),
		User:         &UserInfo{ID: 1, Email: "jane@example.com", Role: "Customer"},
	}
	f.mu.Unlock()
	json.NewEncoder(w).Encode(resp)
}

// expire invalidates the current access token without touching the
// refresh token, the situation the session transport recovers from.
func (f *fakeServer) expireAccess() {
	f.mu.Lock()
	f.access = "rotated-away"
	f.mu.Unlock()
}

// revokeAll kills both tokens so refresh cannot succeed.
func (f *fakeServer) revokeAll() {
	f.mu.Lock()
	f.access = "rotated-away"
	f.refresh = "rotated-away"
	f.mu.Unlock()
}

func newTestClient(t *testing.T, f *fakeServer, opts ...func(*Config)) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	cfg := Config{BaseURL: srv.URL}
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg)
}

func TestLoginStoresPair(t *testing.T) {
	f := newFakeServer()
	c := newTestClient(t, f)

	result, err := c.Login(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "access-1", result.Token)

	access, refresh := c.store.Tokens()
	assert.Equal(t, "access-1", access)
	assert.Equal(t, "refresh-1", refresh)
}

func TestLoginFailureReturnsAPIError(t *testing.T) {
	f := newFakeServer()
	c := newTestClient(t, f)

	_, err := c.Login(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	access, refresh := c.store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestSessionAttachesBearer(t *testing.T) {
	f := newFakeServer()
	c := newTestClient(t, f)

	_, err := c.Login(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
}

func TestSessionRefreshesOn401AndRetriesOnce(t *testing.T) {
	f := newFakeServer()
	c := newTestClient(t, f)

	_, err := c.Login(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)

	f.expireAccess()

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	assert.Equal(t, int32(1), atomic.LoadInt32(&f.refreshCalls))
	// Original request plus exactly one retry.
	assert.Equal(t, int32(2), atomic.LoadInt32(&f.meCalls))

	// The stored pair was rotated.
	access, refresh := c.store.Tokens()
	assert.NotEqual(t, "access-1", access)
	assert.NotEqual(t, "refresh-1", refresh)
}

func TestSessionRetriesRequestWithBody(t *testing.T) {
	f := newFakeServer()
	c := newTestClient(t, f)

	_, err := c.Login(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)

	f.expireAccess()

	created, err := c.Destinations().Create(context.Background(), &Destination{Name: "Kyoto"})
	require.NoError(t, err)
	assert.Equal(t, uint(99), created.ID)
	assert.Equal(t, "Kyoto", created.Name)
}

func TestSessionExpiredClearsStoreAndFiresHook(t *testing.T) {
	f := newFakeServer()

	var hookCalls int32
	c := newTestClient(t, f, func(cfg *Config) {
		cfg.OnSessionExpired = func() { atomic.AddInt32(&hookCalls, 1) }
	})

	_, err := c.Login(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)

	f.revokeAll()

	_, err = c.Me(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hookCalls))

	access, refresh := c.store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestSessionWithoutTokensFailsFast(t *testing.T) {
	f := newFakeServer()
	c := newTestClient(t, f)

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	// No refresh round trip happens without a refresh token.
	assert.Equal(t, int32(0), atomic.LoadInt32(&f.refreshCalls))
}

// Concurrent 401s coalesce into a single refresh round trip.
func TestConcurrent401sCoalesceIntoOneRefresh(t *testing.T) {
	f := newFakeServer()
	c := newTestClient(t, f)

	_, err := c.Login(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)

	f.expireAccess()

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	start := make(chan struct{})
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = c.Me(context.Background())
		}(i)
	}
	close(start)
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "goroutine %d", i)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.refreshCalls))
}

func TestLogoutIsLocal(t *testing.T) {
	f := newFakeServer()
	c := newTestClient(t, f)

	_, err := c.Login(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, c.Logout())

	access, refresh := c.store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestResourceList(t *testing.T) {
	f := newFakeServer()
	c := newTestClient(t, f)

	_, err := c.Login(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)

	items, err := c.Destinations().List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Santorini", items[0].Name)
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := t.TempDir() + "/session.json"
	s := NewFileTokenStore(path)

	access, refresh := s.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	require.NoError(t, s.Save("acc", "ref"))
	access, refresh = s.Tokens()
	assert.Equal(t, "acc", access)
	assert.Equal(t, "ref", refresh)

	// A second store on the same path sees the persisted pair.
	s2 := NewFileTokenStore(path)
	access, refresh = s2.Tokens()
	assert.Equal(t, "acc", access)
	assert.Equal(t, "ref", refresh)

	require.NoError(t, s.Clear())
	access, refresh = s.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	// Clearing again is fine.
	require.NoError(t, s.Clear())
}
