package main

import (
	"fmt"
	"log"

	"localeats/configs"
	"localeats/controllers"
	"localeats/repository"
	"localeats/routes"
	"localeats/services"
	"localeats/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	if err := configs.ConnectionDB(cfg); err != nil {
		log.Fatalf("database: %v", err)
	}
	db := configs.DB()

	if err := configs.SetupDatabase(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemo(); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	discountRepo := repository.NewDiscountRepository(db)

	// Cart store: in-process, TTL-evicted
	cartStore := repository.NewMemoryCartStore(cfg.CartTTL)
	stopSweeper := make(chan struct{})
	cartStore.StartSweeper(cfg.CartTTL/4, stopSweeper)
	defer close(stopSweeper)

	// External collaborators
	var payments services.PaymentGateway = services.SandboxPaymentGateway{}
	if cfg.PaymentGatewayURL != "" {
		payments = services.NewHTTPPaymentGateway(cfg.PaymentGatewayURL)
	}
	var notifier services.NotificationSender = services.LogNotificationSender{}
	if cfg.NotifierURL != "" {
		notifier = services.NewHTTPNotificationSender(cfg.NotifierURL)
	}

	// Live order tracking
	track := ws.NewTrackHub()
	go track.Run()

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	discountSvc := services.NewDiscountService(db, discountRepo)
	cartSvc := services.NewCartService(cartStore, catalogRepo, discountSvc)
	orderSvc := services.NewOrderService(db, orderRepo, userRepo, catalogRepo,
		cartSvc, discountSvc, payments, notifier, track)
	track.Access = orderSvc

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	routes.RegisterRoutes(r, &routes.Deps{
		Cfg:         cfg,
		Auth:        controllers.NewAuthController(authSvc),
		Catalog:     controllers.NewCatalogController(catalogRepo),
		Cart:        controllers.NewCartController(cartSvc),
		Orders:      controllers.NewOrderController(orderSvc),
		OwnerOrders: controllers.NewOwnerOrderController(orderSvc),
		Track:       track,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
