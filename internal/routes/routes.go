// Package routes wires services to handlers and registers the API surface.
package routes

import (
	"swiftsub/internal/config"
	"swiftsub/internal/handlers"
	"swiftsub/internal/middleware"
	"swiftsub/internal/repositories"
	agentsvc "swiftsub/internal/services/agent"
	"swiftsub/internal/services/auth"
	"swiftsub/internal/services/checkout"
	"swiftsub/internal/services/gateway"
	"swiftsub/internal/services/payment"
	"swiftsub/internal/services/topup"
	"swiftsub/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	store := repositories.NewStore(db)
	cache := repositories.CacheService

	gatewayClient := gateway.NewClient(gateway.Config{
		BaseURL:   config.GetEnv("GATEWAY_BASE_URL", "https://api.paystack.co"),
		SecretKey: config.GetEnv("GATEWAY_SECRET_KEY", ""),
		Timeout:   config.GetDurationEnv("GATEWAY_TIMEOUT", gateway.DefaultTimeout),
	})

	authService := auth.NewService(store.Users(), config.GetEnv("JWT_SECRET", "swiftsub"))
	walletService := wallet.NewService(store, cache, &wallet.NoopMetricsCollector{})
	paymentService := payment.NewService(store, gatewayClient, cache)
	topupService := topup.NewService(store, cache)
	agentService := agentsvc.NewService(store)
	checkoutService := checkout.NewService(store, cache, checkout.Config{
		ServiceFeePercent: config.GetFloatEnv("SERVICE_FEE_PERCENT", checkout.DefaultServiceFeePercent),
	})

	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(walletService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	topupHandler := handlers.NewTopupHandler(topupService)
	agentHandler := handlers.NewAgentHandler(agentService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	adminHandler := handlers.NewAdminHandler(walletService, checkoutService, agentService, store)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Authenticated endpoints
	protected := api.Group("", middleware.Auth)
	protected.Get("/wallet", walletHandler.GetWallet)
	protected.Post("/checkout", checkoutHandler.Checkout)
	protected.Get("/orders", checkoutHandler.ListOrders)
	protected.Post("/payment/verify", paymentHandler.VerifyPayment)
	protected.Post("/topup", topupHandler.Submit)
	protected.Post("/agent/request", agentHandler.Submit)

	// Admin endpoints
	admin := api.Group("/admin", middleware.Auth, middleware.AdminOnly)
	admin.Get("/topups", topupHandler.ListPending)
	admin.Post("/topups/:id/decide", topupHandler.Decide)
	admin.Post("/agents/:id/decide", adminHandler.DecideAgent)
	admin.Post("/wallet", adminHandler.WalletTransaction)
	admin.Post("/orders/:id/fail", adminHandler.FailOrder)
	admin.Get("/reconciliation", adminHandler.ReconciliationQueue)
}
