package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/kuhabites/kuha-web/api/controllers"
	"github.com/kuhabites/kuha-web/api/routes"
	"github.com/kuhabites/kuha-web/internal/articles"
	"github.com/kuhabites/kuha-web/internal/auth"
	"github.com/kuhabites/kuha-web/internal/cart"
	"github.com/kuhabites/kuha-web/internal/catalog"
	"github.com/kuhabites/kuha-web/internal/checkout"
	"github.com/kuhabites/kuha-web/internal/contact"
	"github.com/kuhabites/kuha-web/internal/events"
	"github.com/kuhabites/kuha-web/internal/inbox"
	"github.com/kuhabites/kuha-web/internal/involvement"
	"github.com/kuhabites/kuha-web/internal/menu"
	"github.com/kuhabites/kuha-web/internal/orders"
	"github.com/kuhabites/kuha-web/internal/prefs"
	"github.com/kuhabites/kuha-web/pkg/auth/session"
	"github.com/kuhabites/kuha-web/pkg/config"
	"github.com/kuhabites/kuha-web/pkg/db"
	"github.com/kuhabites/kuha-web/pkg/imarika"
	"github.com/kuhabites/kuha-web/pkg/kuha"
	"github.com/kuhabites/kuha-web/pkg/logger"
	"github.com/kuhabites/kuha-web/pkg/metrics"
	"github.com/kuhabites/kuha-web/pkg/migrate"
	"github.com/kuhabites/kuha-web/pkg/redis"
	"github.com/kuhabites/kuha-web/pkg/upstream"
)

const shutdownTimeout = 15 * time.Second

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
		Format:      cfg.App.ResolvedLogFormat(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func() error
	defer func() {
		var errs error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = multierr.Append(errs, closers[i]())
		}
		if errs != nil {
			logg.Error(context.Background(), "error releasing resources", errs)
		}
	}()

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
	}

	var store prefs.Store
	switch cfg.Prefs.NormalizedDriver() {
	case config.PrefsDriverRedis:
		store = prefs.NewRedisStore(redisClient)
	default:
		dbClient, err := db.New(ctx, cfg.Prefs.NormalizedDriver(), cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap prefs database", err)
			os.Exit(1)
		}
		closers = append(closers, dbClient.Close)

		if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run migrations", err)
			os.Exit(1)
		}
		store = prefs.NewGormStore(dbClient)
	}

	prefsService, err := prefs.Load(ctx, store)
	if err != nil {
		logg.Error(ctx, "failed to load prefs", err)
		os.Exit(1)
	}

	var sessionManager *session.Manager
	if redisClient != nil {
		sessionManager, err = session.NewManager(redisClient, cfg.JWT.TTL())
	} else {
		sessionManager, err = session.NewManager(session.NewMemoryStore(), cfg.JWT.TTL())
	}
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	upstreamMetrics := metrics.NewUpstreamMetrics(registry)

	kuhaClient, err := kuha.NewClient(cfg.Storefront.BaseURL,
		upstream.WithTimeout(cfg.Storefront.Timeout),
		upstream.WithMetrics(upstreamMetrics),
		upstream.WithLogger(logg),
	)
	if err != nil {
		logg.Error(ctx, "failed to create storefront client", err)
		os.Exit(1)
	}
	imarikaClient, err := imarika.NewClient(cfg.Foundation.BaseURL, cfg.Foundation.SubmitBaseURL,
		upstream.WithTimeout(cfg.Foundation.Timeout),
		upstream.WithMetrics(upstreamMetrics),
		upstream.WithLogger(logg),
	)
	if err != nil {
		logg.Error(ctx, "failed to create foundation client", err)
		os.Exit(1)
	}

	maxUpload := cfg.Media.MaxUploadBytes()
	cartProvider := cart.NewProvider()

	authService, err := auth.NewService(auth.ServiceParams{
		Storefront: kuhaClient,
		Foundation: imarikaClient,
		Prefs:      prefsService,
		Sessions:   sessionManager,
		JWTConfig:  cfg.JWT,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(kuhaClient)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}
	checkoutService, err := checkout.NewService(cartProvider, kuhaClient)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(kuhaClient)
	if err != nil {
		logg.Error(ctx, "failed to create orders service", err)
		os.Exit(1)
	}
	menuService, err := menu.NewService(kuhaClient, maxUpload)
	if err != nil {
		logg.Error(ctx, "failed to create menu service", err)
		os.Exit(1)
	}
	inboxService, err := inbox.NewService(kuhaClient)
	if err != nil {
		logg.Error(ctx, "failed to create inbox service", err)
		os.Exit(1)
	}
	contactService, err := contact.NewService(cfg.Storefront.WhatsAppPhone, cfg.Storefront.WhatsAppMessage)
	if err != nil {
		logg.Error(ctx, "failed to create contact service", err)
		os.Exit(1)
	}
	articlesService, err := articles.NewService(imarikaClient, prefsService, maxUpload)
	if err != nil {
		logg.Error(ctx, "failed to create articles service", err)
		os.Exit(1)
	}
	eventsService, err := events.NewService(imarikaClient, prefsService, maxUpload)
	if err != nil {
		logg.Error(ctx, "failed to create events service", err)
		os.Exit(1)
	}
	involvementService, err := involvement.NewService(imarikaClient)
	if err != nil {
		logg.Error(ctx, "failed to create involvement service", err)
		os.Exit(1)
	}

	readiness := map[string]controllers.Pinger{"prefs": prefsService}
	if redisClient != nil {
		readiness["redis"] = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"prefs_driver": cfg.Prefs.NormalizedDriver(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			readiness,
			redisClient,
			sessionManager,
			authService,
			prefsService,
			cartProvider,
			catalogService,
			checkoutService,
			ordersService,
			menuService,
			inboxService,
			contactService,
			articlesService,
			eventsService,
			involvementService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "graceful shutdown failed", err)
		}
	}
}
