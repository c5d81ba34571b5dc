package main

import (
	"database/sql"
	"log"
	"net/http"

	"nevyra-be/internal/address"
	"nevyra-be/internal/cart"
	"nevyra-be/internal/checkout"
	"nevyra-be/internal/config"
	"nevyra-be/internal/db"
	"nevyra-be/internal/logger"
	"nevyra-be/internal/order"
	"nevyra-be/internal/payment"
	"nevyra-be/internal/product"
	"nevyra-be/internal/transport"
	"nevyra-be/internal/user"

	"go.uber.org/zap"
)

// Seams for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	return startServerFunc(":"+cfg.AppPort, router)
}

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	paymentRepo := payment.NewRepository(database)
	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productSvc, paymentRepo)

	orch := checkout.NewOrchestrator(gateway, paymentRepo, orderSvc, cartSvc)

	router := transport.NewRouter(transport.Handlers{
		Auth:     transport.NewAuthHandler(userSvc),
		Cart:     transport.NewCartHandler(cartSvc),
		Address:  transport.NewAddressHandler(addressSvc),
		Product:  transport.NewProductHandler(productSvc),
		Payment:  transport.NewPaymentHandler(gateway, paymentRepo),
		Order:    transport.NewOrderHandler(orderSvc),
		Checkout: transport.NewCheckoutHandler(orch, cartSvc, addressSvc),
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return router
}
