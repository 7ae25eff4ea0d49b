package main

import (
	"context"
	"log"
	"net/http"

	"minecart-be/internal/cache"
	"minecart-be/internal/cart"
	"minecart-be/internal/chat"
	"minecart-be/internal/config"
	"minecart-be/internal/db"
	"minecart-be/internal/favorite"
	"minecart-be/internal/logger"
	"minecart-be/internal/notification"
	"minecart-be/internal/order"
	"minecart-be/internal/payment"
	"minecart-be/internal/payment/webhook"
	"minecart-be/internal/product"
	"minecart-be/internal/rest"
	"minecart-be/internal/user"
)

// seams for tests
var (
	initDBFunc      = db.InitDB
	startServerFunc = func(addr string, handler http.Handler) error {
		return http.ListenAndServe(addr, handler)
	}
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	database := initDBFunc(cfg)
	defer database.Close()

	views := cache.NewStore(256)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, views)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo, views)

	favoriteRepo := favorite.NewRepository(database)
	favoriteSvc := favorite.NewService(favoriteRepo)

	notificationRepo := notification.NewRepository(database)
	notificationSvc := notification.NewService(notificationRepo)

	paymentRepo := payment.NewRepository(database)
	gateway := payment.NewPixGateway(cfg.PixAPIKey, cfg.PixBaseURL, cfg.PixCallbackToken)
	reporter := notification.NewReporter(notificationSvc, views)

	orderRepo := order.NewRepository(database)

	// poller and order service need each other: the poller finalizes orders,
	// the order service registers watches. Wire the poller with a late-bound
	// finalizer to break the cycle.
	finalizer := &lateFinalizer{}
	poller := payment.NewPoller(gateway, finalizer, reporter, payment.PollerConfig{})
	orderSvc := order.NewService(orderRepo, paymentRepo, gateway, poller, cartSvc, views)
	finalizer.Service = orderSvc

	chatRepo := chat.NewRepository(database)
	chatSvc := chat.NewService(chatRepo, notificationSvc)
	hub := chat.NewHub(chatSvc)
	go hub.Run(context.Background())

	router := rest.NewRouter(rest.Deps{
		Users:         userSvc,
		Products:      productSvc,
		Carts:         cartSvc,
		Favorites:     favoriteSvc,
		Orders:        orderSvc,
		Payments:      paymentRepo,
		Gateway:       gateway,
		Poller:        poller,
		Notifications: notificationSvc,
		Chats:         chatSvc,
		ChatHub:       hub,
		Webhook:       webhook.NewWebhookHandler(orderSvc, gateway, paymentRepo),
	})

	log.Printf("🚀 MineCart server running at http://localhost:%s/", cfg.AppPort)
	return startServerFunc(":"+cfg.AppPort, router)
}

// lateFinalizer delegates to the order service once it exists.
type lateFinalizer struct {
	order.Service
}
