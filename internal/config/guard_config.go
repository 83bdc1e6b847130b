// config/guard_config.go
package config

import "strings"

type RouteRequirement int

const (
	RoutePublic        RouteRequirement = iota // No session required
	RouteAuthenticated                         // Any valid session
	RouteCustomer                              // customer role required
	RouteEndUser                               // enduser role required
)

// routePrefixRequirements maps path prefixes to their required role.
// Longest prefix wins; unlisted paths are public.
var routePrefixRequirements = []struct {
	Prefix      string
	Requirement RouteRequirement
}{
	// Customer-only surfaces
	{"/api/v1/cart", RouteCustomer},
	{"/api/v1/wishlist", RouteCustomer},
	{"/api/v1/checkout", RouteCustomer},
	{"/api/v1/orders", RouteCustomer},
	{"/cart", RouteCustomer},
	{"/checkout", RouteCustomer},
	{"/orders", RouteCustomer},

	// End-user dashboard surfaces
	{"/api/v1/dashboard", RouteEndUser},
	{"/dashboard", RouteEndUser},

	// Any signed-in user
	{"/api/v1/notifications", RouteAuthenticated},
	{"/api/v1/me", RouteAuthenticated},

	// Public
	{"/api/v1/auth", RoutePublic},
	{"/api/v1/products", RoutePublic},
	{"/api/v1/navigation", RoutePublic},
	{"/api/v1/upload", RoutePublic},
	{"/api/v1/images", RoutePublic},
}

// GetRouteRequirement returns the access requirement for a request path.
func GetRouteRequirement(path string) RouteRequirement {
	best := RoutePublic
	bestLen := -1
	for _, r := range routePrefixRequirements {
		if strings.HasPrefix(path, r.Prefix) && len(r.Prefix) > bestLen {
			best = r.Requirement
			bestLen = len(r.Prefix)
		}
	}
	return best
}
