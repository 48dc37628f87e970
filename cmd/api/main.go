package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nmoreno/bazaar-backend/api"
	"github.com/nmoreno/bazaar-backend/api/routes"
	"github.com/nmoreno/bazaar-backend/internal/auth"
	"github.com/nmoreno/bazaar-backend/internal/cart"
	"github.com/nmoreno/bazaar-backend/internal/catalog"
	checkoutsvc "github.com/nmoreno/bazaar-backend/internal/checkout"
	"github.com/nmoreno/bazaar-backend/internal/orders"
	"github.com/nmoreno/bazaar-backend/internal/reviews"
	"github.com/nmoreno/bazaar-backend/internal/users"
	"github.com/nmoreno/bazaar-backend/pkg/auth/session"
	"github.com/nmoreno/bazaar-backend/pkg/config"
	"github.com/nmoreno/bazaar-backend/pkg/db"
	"github.com/nmoreno/bazaar-backend/pkg/logger"
	"github.com/nmoreno/bazaar-backend/pkg/mail"
	"github.com/nmoreno/bazaar-backend/pkg/metrics"
	"github.com/nmoreno/bazaar-backend/pkg/migrate"
	"github.com/nmoreno/bazaar-backend/pkg/redis"
	"github.com/nmoreno/bazaar-backend/pkg/social"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	mailClient, err := mail.NewClient(cfg.Mail)
	if err != nil {
		logg.Error(context.Background(), "failed to create mail client", err)
		os.Exit(1)
	}

	socialClient, err := social.NewClient(cfg.Social)
	if err != nil {
		logg.Error(context.Background(), "failed to create social client", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	announceMetrics := metrics.NewAnnouncementMetrics(prometheus.DefaultRegisterer)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	shopRepo := catalog.NewShopRepository(dbClient.DB())
	productRepo := catalog.NewProductRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())
	invoiceRepo := checkoutsvc.NewInvoiceRepository(dbClient.DB())
	userRepo := users.NewRepository(dbClient.DB())
	reviewRepo := reviews.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		ShopRepo:    shopRepo,
		ProductRepo: productRepo,
		Announcer:   socialClient,
		Metrics:     announceMetrics,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		TxRunner:    dbClient,
		CartRepo:    cartRepo,
		OrderRepo:   orderRepo,
		InvoiceRepo: invoiceRepo,
		UserRepo:    userRepo,
		Mailer:      mailClient,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviewRepo, productRepo, orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	handler := routes.NewRouter(routes.RouterParams{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		Redis:           redisClient,
		SessionChecker:  sessionManager,
		HTTPMetrics:     httpMetrics,
		AuthService:     authService,
		CatalogService:  catalogService,
		CartService:     cartService,
		CheckoutService: checkoutService,
		ReviewService:   reviewService,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(addr, handler, logg)
	if err := server.Run(runCtx); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
