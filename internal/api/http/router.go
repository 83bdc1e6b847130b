package http

import (
	"net/http"

	"rentmart-backend/internal/security"
	"rentmart-backend/internal/service"
	"rentmart-backend/internal/storage"

	"github.com/gorilla/mux"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth         service.AuthService
	Product      service.ProductService
	Cart         service.CartService
	Pricing      service.PricingService
	Order        service.OrderService
	Notification service.NotificationService
	Tokens       security.TokenManager
	Images       storage.ImageStore
}

// NewRouter builds the full route table behind the session guard.
func NewRouter(s Services) *mux.Router {
	authHandler := NewAuthHandler(s.Auth)
	productHandler := NewProductHandler(s.Product)
	cartHandler := NewCartHandler(s.Cart)
	checkoutHandler := NewCheckoutHandler(s.Cart, s.Pricing, s.Order)
	orderHandler := NewOrderHandler(s.Order)
	notificationHandler := NewNotificationHandler(s.Notification)
	imageHandler := NewImageHandler(s.Images)
	guard := NewRouteGuard(s.Tokens)

	router := mux.NewRouter()
	router.Use(guard.Middleware)

	// Auth
	router.HandleFunc("/api/v1/auth/register", authHandler.HandleRegister).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/auth/login", authHandler.HandleLogin).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/auth/logout", authHandler.HandleLogout).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/me", authHandler.HandleMe).Methods(http.MethodGet)

	// Navigation menu for the caller's role
	router.HandleFunc("/api/v1/navigation", HandleNavigation).Methods(http.MethodGet)

	// Public product catalog
	router.HandleFunc("/api/v1/products", productHandler.HandleList).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/products/categories", productHandler.HandleCategories).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/products/{id:[0-9]+}", productHandler.HandleGet).Methods(http.MethodGet)

	// Cart and wishlist (customer)
	router.HandleFunc("/api/v1/cart", cartHandler.HandleGetCart).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/cart/items", cartHandler.HandleAddItem).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/cart/items/{productId:[0-9]+}", cartHandler.HandleUpdateItem).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/cart/items/{productId:[0-9]+}", cartHandler.HandleRemoveItem).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/cart", cartHandler.HandleClearCart).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/wishlist", cartHandler.HandleGetWishlist).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/wishlist/items", cartHandler.HandleAddToWishlist).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/wishlist/items/{productId:[0-9]+}/move", cartHandler.HandleMoveToCart).Methods(http.MethodPost)

	// Checkout and customer orders
	router.HandleFunc("/api/v1/checkout/quote", checkoutHandler.HandleQuote).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/checkout/submit", checkoutHandler.HandleSubmit).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/checkout/data", checkoutHandler.HandleGetCheckoutData).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/checkout/data", checkoutHandler.HandleSaveCheckoutData).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/checkout/confirmation", checkoutHandler.HandleGetOrderData).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/orders", orderHandler.HandleListMyOrders).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/orders/{id:[0-9]+}", orderHandler.HandleGetOrder).Methods(http.MethodGet)

	// End-user dashboard
	router.HandleFunc("/api/v1/dashboard/products", productHandler.HandleListMine).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/dashboard/products", productHandler.HandleCreate).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/dashboard/products/{id:[0-9]+}", productHandler.HandleUpdate).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/dashboard/products/{id:[0-9]+}", productHandler.HandleDelete).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/dashboard/bookings", orderHandler.HandleListBookings).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/dashboard/bookings/{id:[0-9]+}", orderHandler.HandleGetOrder).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/dashboard/bookings/{id:[0-9]+}/status", orderHandler.HandleUpdateStatus).Methods(http.MethodPut)

	// Notifications (any signed-in role)
	router.HandleFunc("/api/v1/notifications", notificationHandler.HandleList).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/notifications/read-all", notificationHandler.HandleMarkAllRead).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/notifications/{id:[0-9]+}/read", notificationHandler.HandleMarkRead).Methods(http.MethodPost)

	// Image storage
	router.HandleFunc("/api/v1/images/upload-url", imageHandler.HandleUploadURL).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/upload/{token}", imageHandler.HandleUpload).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/images/{key}", imageHandler.HandleDownload).Methods(http.MethodGet)

	return router
}
