package transport

import (
	"nevyra-be/internal/logger"
	"nevyra-be/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Cart     *CartHandler
	Address  *AddressHandler
	Product  *ProductHandler
	Payment  *PaymentHandler
	Order    *OrderHandler
	Checkout *CheckoutHandler
}

func NewRouter(h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.AuthMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Get("/{id}", h.Product.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", h.Cart.Get)
			r.Post("/", h.Cart.Add)
			r.Delete("/", h.Cart.Clear)
			r.Patch("/{itemID}", h.Cart.UpdateQuantity)
			r.Delete("/{itemID}", h.Cart.Remove)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", h.Address.List)
			r.Post("/", h.Address.Create)
			r.Put("/{id}", h.Address.Update)
			r.Delete("/{id}", h.Address.Delete)
			r.Post("/{id}/default", h.Address.SetDefault)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/create-order", h.Payment.CreateOrder)
			r.Post("/verify", h.Payment.Verify)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", h.Order.Finalize)
			r.Get("/", h.Order.List)
			r.Get("/{id}", h.Order.Get)
			r.With(middleware.RequireAdmin).Patch("/{id}/status", h.Order.UpdateStatus)
		})

		r.With(middleware.RequireAuth).Post("/checkout", h.Checkout.Checkout)
	})

	return r
}
