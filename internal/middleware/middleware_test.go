package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nevyra-be/internal/user"
	"nevyra-be/internal/utils"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("Valid token sets context", func(t *testing.T) {
		token, err := user.GenerateJWT(5, "USER", "a@b.c")
		assert.NoError(t, err)

		var gotID uint
		var gotOK bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, gotOK = utils.GetUserIDFromContext(r.Context())
		})

		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		AuthMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, gotOK)
		assert.Equal(t, uint(5), gotID)
	})

	t.Run("No token passes through anonymously", func(t *testing.T) {
		var gotOK bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, gotOK = utils.GetUserIDFromContext(r.Context())
		})

		req := httptest.NewRequest("GET", "/api/cart", nil)
		AuthMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.False(t, gotOK)
	})

	t.Run("Garbage token passes through anonymously", func(t *testing.T) {
		var gotOK bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, gotOK = utils.GetUserIDFromContext(r.Context())
		})

		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		AuthMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.False(t, gotOK)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("Rejects anonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/orders", nil)
		w := httptest.NewRecorder()

		RequireAuth(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Allows authenticated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/orders", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), 1, "a@b.c", "USER"))
		w := httptest.NewRecorder()

		RequireAuth(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("Rejects plain user", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/api/orders/1/status", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), 1, "a@b.c", "USER"))
		w := httptest.NewRecorder()

		RequireAdmin(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Allows admin", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/api/orders/1/status", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), 1, "a@b.c", "ADMIN"))
		w := httptest.NewRecorder()

		RequireAdmin(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestResolveRateTier(t *testing.T) {
	t.Run("Strict for auth routes", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/auth/login", nil)
		limit, burst, tier := resolveRateTier(r)
		assert.Equal(t, limitStrict, limit)
		assert.Equal(t, burstStrict, burst)
		assert.Equal(t, "strict", tier)
	})

	t.Run("Strict for payment routes", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/payments/verify", nil)
		_, _, tier := resolveRateTier(r)
		assert.Equal(t, "strict", tier)
	})

	t.Run("General otherwise", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/products", nil)
		limit, _, tier := resolveRateTier(r)
		assert.Equal(t, limitGeneral, limit)
		assert.Equal(t, "general", tier)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/products", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	handler := RateLimitMiddleware(okHandler())

	// Burst allows the first burstGeneral requests, then rejects.
	for i := 0; i < burstGeneral; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
