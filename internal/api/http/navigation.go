package http

import (
	"net/http"

	"rentmart-backend/internal/domain"
)

// NavEntry is one navigation menu item.
type NavEntry struct {
	Label       string `json:"label"`
	Destination string `json:"destination"`
	Icon        string `json:"icon"`
}

// Static navigation tables keyed by role. Not computed, not personalized
// beyond the role claim.
var (
	guestNav = []NavEntry{
		{Label: "Browse", Destination: "/products", Icon: "grid"},
		{Label: "Sign in", Destination: "/login", Icon: "log-in"},
		{Label: "Register", Destination: "/register", Icon: "user-plus"},
	}
	customerNav = []NavEntry{
		{Label: "Browse", Destination: "/products", Icon: "grid"},
		{Label: "Cart", Destination: "/cart", Icon: "shopping-cart"},
		{Label: "Wishlist", Destination: "/wishlist", Icon: "heart"},
		{Label: "My Orders", Destination: "/orders", Icon: "package"},
		{Label: "Notifications", Destination: "/notifications", Icon: "bell"},
	}
	endUserNav = []NavEntry{
		{Label: "Dashboard", Destination: "/dashboard", Icon: "layout"},
		{Label: "My Products", Destination: "/dashboard/products", Icon: "box"},
		{Label: "Bookings", Destination: "/dashboard/orders", Icon: "calendar"},
		{Label: "Notifications", Destination: "/notifications", Icon: "bell"},
	}
)

// NavigationFor returns the ordered menu entries for a role claim; a nil
// role (no session) yields the guest menu.
func NavigationFor(role *domain.Role) []NavEntry {
	if role == nil {
		return guestNav
	}
	switch *role {
	case domain.RoleCustomer:
		return customerNav
	case domain.RoleEndUser:
		return endUserNav
	default:
		return guestNav
	}
}

// HandleNavigation serves the menu for the current session's role.
func HandleNavigation(w http.ResponseWriter, r *http.Request) {
	var role *domain.Role
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		role = &claims.Role
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": NavigationFor(role)})
}
