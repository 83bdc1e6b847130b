package http

import (
	"encoding/json"
	"io"
	"net/http"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/service"
)

// maxCheckoutBlobBytes bounds the opaque checkout-state blob.
const maxCheckoutBlobBytes = 64 << 10

type CheckoutHandler struct {
	cartSvc    service.CartService
	pricingSvc service.PricingService
	orderSvc   service.OrderService
}

func NewCheckoutHandler(cartSvc service.CartService, pricingSvc service.PricingService, orderSvc service.OrderService) *CheckoutHandler {
	return &CheckoutHandler{cartSvc: cartSvc, pricingSvc: pricingSvc, orderSvc: orderSvc}
}

type quoteRequest struct {
	CouponCode     string `json:"coupon_code"`
	DeliveryMethod string `json:"delivery_method"`
}

// HandleQuote prices the caller's current cart. The quote is informational;
// submission recomputes it from scratch.
func (h *CheckoutHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	method, ok := domain.ParseDeliveryMethod(req.DeliveryMethod)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown delivery method")
		return
	}

	cart, err := h.cartSvc.GetCart(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	quote, err := h.pricingSvc.Quote(r.Context(), cart.Items, req.CouponCode, method)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quote": quote})
}

func (h *CheckoutHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var input service.SubmitOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orders, err := h.orderSvc.SubmitOrder(r.Context(), claims.UserID, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"orders": orders})
}

// HandleSaveCheckoutData persists in-progress checkout form state so the
// multi-step flow survives page reloads and device switches.
func (h *CheckoutHandler) HandleSaveCheckoutData(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	blob, err := io.ReadAll(io.LimitReader(r.Body, maxCheckoutBlobBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unable to read request body")
		return
	}
	if err := h.cartSvc.SaveCheckoutData(r.Context(), claims.UserID, blob); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *CheckoutHandler) HandleGetCheckoutData(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	blob, err := h.cartSvc.GetCheckoutData(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"checkout_data": blob})
}

// HandleGetOrderData serves the order summary of the last submission, read
// by the confirmation page.
func (h *CheckoutHandler) HandleGetOrderData(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	blob, err := h.cartSvc.GetOrderData(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order_data": blob})
}

type OrderHandler struct {
	orderSvc service.OrderService
}

func NewOrderHandler(orderSvc service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

func (h *OrderHandler) HandleListMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)
	orders, total, err := h.orderSvc.ListMyOrders(r.Context(), claims.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders, "total": total})
}

func (h *OrderHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	order, err := h.orderSvc.GetOrder(r.Context(), claims.UserID, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

// HandleListBookings lists rentals of the caller's own products.
func (h *OrderHandler) HandleListBookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)
	orders, total, err := h.orderSvc.ListBookings(r.Context(), claims.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders, "total": total})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	next, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown order status")
		return
	}

	order, err := h.orderSvc.UpdateOrderStatus(r.Context(), claims.UserID, orderID, next)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}
