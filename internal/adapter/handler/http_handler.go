package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rl1809/luxestore/internal/core/domain"
	"github.com/rl1809/luxestore/internal/core/service"
)

// HTTPHandler exposes the storefront operations as a JSON API. The
// original reached these through delegated DOM events; here every
// ledger operation is a named route.
type HTTPHandler struct {
	users    *service.UserService
	cart     *service.CartService
	wishlist *service.WishlistService
	browse   *service.BrowseService
}

func NewHTTPHandler(users *service.UserService, cart *service.CartService, wishlist *service.WishlistService, browse *service.BrowseService) *HTTPHandler {
	return &HTTPHandler{
		users:    users,
		cart:     cart,
		wishlist: wishlist,
		browse:   browse,
	}
}

// Routes builds the router.
func (h *HTTPHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/session", h.Session)

		r.Get("/cart", h.GetCart)
		r.Post("/cart/items/{productID}", h.AddToCart)
		r.Patch("/cart/items/{productID}", h.AdjustQuantity)
		r.Delete("/cart/items/{productID}", h.RemoveFromCart)
		r.Post("/cart/checkout", h.Checkout)

		r.Get("/wishlist", h.GetWishlist)
		r.Post("/wishlist/{productID}", h.ToggleWishlist)

		r.Get("/products/recently-viewed", h.RecentlyViewed)
		r.Get("/products/{productID}", h.GetProduct)

		r.Post("/newsletter", h.Subscribe)
	})

	return r
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type AdjustRequest struct {
	Action string `json:"action"` // "increase" or "decrease"
}

// UserResponse is the user record minus the password field.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}

type CartResponse struct {
	Items []domain.CartLine `json:"items"`
	Total int               `json:"total"`
}

type ToggleResponse struct {
	Added bool `json:"added"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse(user))
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse(user))
}

func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.users.Logout(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *HTTPHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := h.users.CurrentUser()
	if user == nil {
		writeJSON(w, http.StatusOK, SessionResponse{Authenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{Authenticated: true, User: userResponse(user)})
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CartResponse{
		Items: h.cart.Items(),
		Total: h.cart.Total(),
	})
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	if err := h.cart.Add(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CartResponse{Items: h.cart.Items(), Total: h.cart.Total()})
}

func (h *HTTPHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	var delta int
	switch req.Action {
	case "increase":
		delta = 1
	case "decrease":
		delta = -1
	default:
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "action must be increase or decrease"})
		return
	}

	if err := h.cart.Adjust(r.Context(), id, delta); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CartResponse{Items: h.cart.Items(), Total: h.cart.Total()})
}

func (h *HTTPHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	if err := h.cart.Remove(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CartResponse{Items: h.cart.Items(), Total: h.cart.Total()})
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var shipping domain.ShippingDetails
	if err := json.NewDecoder(r.Body).Decode(&shipping); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	receipt, err := h.cart.Checkout(r.Context(), shipping)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *HTTPHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.wishlist.List())
}

func (h *HTTPHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	added, err := h.wishlist.Toggle(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{Added: added})
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	product, err := h.browse.RecordView(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *HTTPHandler) RecentlyViewed(w http.ResponseWriter, r *http.Request) {
	products, err := h.browse.RecentlyViewed(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := h.browse.Subscribe(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "subscribed"})
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
		return 0, false
	}
	return id, true
}

func userResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrValidationFailed), errors.Is(err, service.ErrEmptyCart):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrOutOfStock), errors.Is(err, service.ErrStockLimitReached):
		status = http.StatusConflict
	}

	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
