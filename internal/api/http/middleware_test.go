package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rentmart-backend/internal/config"
	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/security"

	"github.com/stretchr/testify/assert"
)

func customerClaims() *security.SessionClaims {
	return &security.SessionClaims{UserID: 7, Role: domain.RoleCustomer}
}

func endUserClaims() *security.SessionClaims {
	return &security.SessionClaims{UserID: 8, Role: domain.RoleEndUser}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name        string
		claims      *security.SessionClaims
		requirement config.RouteRequirement
		originalURL string
		allow       bool
		redirectTo  string
	}{
		{"Public without session", nil, config.RoutePublic, "/api/v1/products", true, ""},
		{"Public with session", customerClaims(), config.RoutePublic, "/api/v1/products", true, ""},
		{"Authenticated without session", nil, config.RouteAuthenticated, "/api/v1/notifications", false, "/login?callbackUrl=%2Fapi%2Fv1%2Fnotifications"},
		{"Authenticated with any role", endUserClaims(), config.RouteAuthenticated, "/api/v1/notifications", true, ""},
		{"Customer route without session", nil, config.RouteCustomer, "/checkout", false, "/login?callbackUrl=%2Fcheckout"},
		{"Customer route with customer", customerClaims(), config.RouteCustomer, "/checkout", true, ""},
		{"Customer route with enduser", endUserClaims(), config.RouteCustomer, "/checkout", false, "/login"},
		{"Dashboard without session", nil, config.RouteEndUser, "/dashboard/products", false, "/login?callbackUrl=%2Fdashboard%2Fproducts"},
		{"Dashboard with enduser", endUserClaims(), config.RouteEndUser, "/dashboard/products", true, ""},
		{"Dashboard with customer", customerClaims(), config.RouteEndUser, "/dashboard/products", false, "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.claims, tt.requirement, tt.originalURL)
			assert.Equal(t, tt.allow, decision.Allow)
			assert.Equal(t, tt.redirectTo, decision.RedirectTo)
		})
	}
}

func TestDecide_CallbackPreservesQueryString(t *testing.T) {
	decision := Decide(nil, config.RouteCustomer, "/orders?status=CONFIRMED&page=2")
	assert.False(t, decision.Allow)
	assert.Equal(t, "/login?callbackUrl=%2Forders%3Fstatus%3DCONFIRMED%26page%3D2", decision.RedirectTo)
}

func TestGetRouteRequirement(t *testing.T) {
	assert.Equal(t, config.RouteCustomer, config.GetRouteRequirement("/api/v1/cart/items"))
	assert.Equal(t, config.RouteCustomer, config.GetRouteRequirement("/api/v1/checkout/submit"))
	assert.Equal(t, config.RouteEndUser, config.GetRouteRequirement("/api/v1/dashboard/products"))
	assert.Equal(t, config.RouteAuthenticated, config.GetRouteRequirement("/api/v1/notifications"))
	assert.Equal(t, config.RoutePublic, config.GetRouteRequirement("/api/v1/products/3"))
	assert.Equal(t, config.RoutePublic, config.GetRouteRequirement("/api/v1/auth/login"))
}

func TestRouteGuard_Middleware(t *testing.T) {
	tokens := security.NewTokenManager("guard-test-secret-0123456789abcdefg", 24)
	guard := NewRouteGuard(tokens)

	var gotClaims *security.SessionClaims
	handler := guard.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Unauthenticated customer route redirects with callback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login?callbackUrl=%2Fapi%2Fv1%2Fcart", rec.Header().Get("Location"))
	})

	t.Run("Bearer token admits matching role", func(t *testing.T) {
		token, err := tokens.GenerateSessionToken(7, "alice@example.com", domain.RoleCustomer)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, gotClaims)
		assert.Equal(t, int32(7), gotClaims.UserID)
	})

	t.Run("Session cookie admits matching role", func(t *testing.T) {
		token, err := tokens.GenerateSessionToken(8, "bob@example.com", domain.RoleEndUser)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/products", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Wrong role redirects to plain login", func(t *testing.T) {
		token, err := tokens.GenerateSessionToken(8, "bob@example.com", domain.RoleEndUser)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("Garbage token treated as unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login?callbackUrl=%2Fapi%2Fv1%2Forders", rec.Header().Get("Location"))
	})

	t.Run("Public route passes without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
