package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"rentmart-backend/internal/config"
	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "session-claims"

// ClaimsFromContext returns the session claims the guard attached, if any.
func ClaimsFromContext(ctx context.Context) (*security.SessionClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.SessionClaims)
	return claims, ok
}

// GuardDecision is the outcome of an authorization check: either the request
// proceeds, or the caller is redirected to the login page.
type GuardDecision struct {
	Allow      bool
	RedirectTo string
}

// Decide is the route guard's decision function: a pure function of the
// claims and the route requirement, with no request-pipeline dependencies.
// An unauthenticated caller is sent to login with the original destination
// preserved; a caller with the wrong role is sent to plain /login.
func Decide(claims *security.SessionClaims, requirement config.RouteRequirement, originalURL string) GuardDecision {
	switch requirement {
	case config.RoutePublic:
		return GuardDecision{Allow: true}
	case config.RouteAuthenticated:
		if claims == nil {
			return GuardDecision{RedirectTo: loginRedirect(originalURL)}
		}
		return GuardDecision{Allow: true}
	case config.RouteCustomer:
		return decideRole(claims, domain.RoleCustomer, originalURL)
	case config.RouteEndUser:
		return decideRole(claims, domain.RoleEndUser, originalURL)
	default:
		return GuardDecision{RedirectTo: loginRedirect(originalURL)}
	}
}

func decideRole(claims *security.SessionClaims, required domain.Role, originalURL string) GuardDecision {
	if claims == nil {
		return GuardDecision{RedirectTo: loginRedirect(originalURL)}
	}
	switch claims.Role {
	case required:
		return GuardDecision{Allow: true}
	case domain.RoleCustomer, domain.RoleEndUser:
		// Valid session, wrong role: no callback, the destination would be
		// rejected again after re-login into the same role.
		return GuardDecision{RedirectTo: "/login"}
	default:
		return GuardDecision{RedirectTo: loginRedirect(originalURL)}
	}
}

func loginRedirect(originalURL string) string {
	return "/login?callbackUrl=" + url.QueryEscape(originalURL)
}

// RouteGuard enforces role-scoped path prefixes. Tokens are read from the
// Authorization header (Bearer) or the session cookie.
type RouteGuard struct {
	tokens security.TokenManager
}

func NewRouteGuard(tokens security.TokenManager) *RouteGuard {
	return &RouteGuard{tokens: tokens}
}

// Middleware wraps a handler with the guard check.
func (g *RouteGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requirement := config.GetRouteRequirement(r.URL.Path)

		var claims *security.SessionClaims
		if token := extractToken(r); token != "" {
			if parsed, err := g.tokens.ValidateToken(token); err == nil {
				claims = parsed
			}
		}

		decision := Decide(claims, requirement, r.URL.RequestURI())
		if !decision.Allow {
			http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
			return
		}

		if claims != nil {
			r = r.WithContext(context.WithValue(r.Context(), claimsContextKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "BEARER ") {
		return header[7:]
	}
	if cookie, err := r.Cookie("session"); err == nil {
		return cookie.Value
	}
	return ""
}

// requireClaims fetches claims for handlers behind the guard. A missing
// claim set here means a routing misconfiguration, not a user error.
func requireClaims(w http.ResponseWriter, r *http.Request) (*security.SessionClaims, bool) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return claims, true
}
