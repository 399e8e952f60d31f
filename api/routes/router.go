package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kuhabites/kuha-web/api/controllers"
	cartcontrollers "github.com/kuhabites/kuha-web/api/controllers/cart"
	foundationcontrollers "github.com/kuhabites/kuha-web/api/controllers/foundation"
	storefrontcontrollers "github.com/kuhabites/kuha-web/api/controllers/storefront"
	"github.com/kuhabites/kuha-web/api/middleware"
	"github.com/kuhabites/kuha-web/internal/articles"
	"github.com/kuhabites/kuha-web/internal/auth"
	"github.com/kuhabites/kuha-web/internal/catalog"
	"github.com/kuhabites/kuha-web/internal/checkout"
	"github.com/kuhabites/kuha-web/internal/events"
	"github.com/kuhabites/kuha-web/internal/inbox"
	"github.com/kuhabites/kuha-web/internal/involvement"
	"github.com/kuhabites/kuha-web/internal/menu"
	"github.com/kuhabites/kuha-web/internal/orders"
	pkgAuth "github.com/kuhabites/kuha-web/pkg/auth"
	"github.com/kuhabites/kuha-web/pkg/auth/session"
	"github.com/kuhabites/kuha-web/pkg/config"
	"github.com/kuhabites/kuha-web/pkg/logger"
	"github.com/kuhabites/kuha-web/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	readiness map[string]controllers.Pinger,
	redisClient *redis.Client,
	sessions session.Checker,
	authService auth.Service,
	prefsService controllers.PrefsService,
	cartProvider cartcontrollers.Cart,
	catalogService catalog.Service,
	checkoutService checkout.Service,
	ordersService orders.Service,
	menuService menu.Service,
	inboxService inbox.Service,
	whatsApp storefrontcontrollers.WhatsApp,
	articlesService articles.Service,
	eventsService events.Service,
	involvementService involvement.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	var rateStore middleware.RateLimitStore
	if redisClient != nil {
		rateStore = redisClient
	}
	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	maxUpload := cfg.Media.MaxUploadBytes()

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/storefront", func(r chi.Router) {
		r.Get("/restaurants", storefrontcontrollers.Restaurants(catalogService, logg))
		r.Get("/restaurants/{restaurantId}/menu", storefrontcontrollers.RestaurantMenu(catalogService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(cartProvider, logg))
			r.Delete("/", cartcontrollers.CartClear(cartProvider, logg))
			r.Post("/items", cartcontrollers.CartAddItem(cartProvider, logg))
			r.Patch("/items/{itemId}", cartcontrollers.CartUpdateQuantity(cartProvider, logg))
			r.Delete("/items/{position}", cartcontrollers.CartRemoveItem(cartProvider, logg))
			r.Delete("/items/by-id/{itemId}", cartcontrollers.CartRemoveItemByID(cartProvider, logg))
		})

		r.Post("/checkout", storefrontcontrollers.Checkout(checkoutService, logg))
		r.Post("/messages", storefrontcontrollers.SendMessage(inboxService, logg))
		r.Get("/contact/whatsapp", storefrontcontrollers.WhatsAppLink(whatsApp, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.StorefrontLogin(authService, logg))
			r.With(
				middleware.Auth(cfg.JWT, sessions, logg),
				middleware.RequireRole(pkgAuth.RoleStorefrontAdmin, logg),
			).Post("/logout", controllers.Logout(authService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Use(middleware.RequireRole(pkgAuth.RoleStorefrontAdmin, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", storefrontcontrollers.AdminOrders(ordersService, logg))
				r.Patch("/{orderId}/complete", storefrontcontrollers.AdminCompleteOrder(ordersService, logg))
				r.Delete("/{orderId}", storefrontcontrollers.AdminDeleteOrder(ordersService, logg))
			})
			r.Route("/menu-items", func(r chi.Router) {
				r.Get("/", storefrontcontrollers.AdminMenuItems(menuService, logg))
				r.Post("/", storefrontcontrollers.AdminCreateMenuItem(menuService, maxUpload, logg))
				r.Put("/{itemId}", storefrontcontrollers.AdminUpdateMenuItem(menuService, maxUpload, logg))
				r.Delete("/{itemId}", storefrontcontrollers.AdminDeleteMenuItem(menuService, logg))
			})
			r.Route("/messages", func(r chi.Router) {
				r.Get("/", storefrontcontrollers.AdminMessages(inboxService, logg))
				r.Delete("/{messageId}", storefrontcontrollers.AdminDeleteMessage(inboxService, logg))
			})
		})
	})

	r.Route("/api/v1/foundation", func(r chi.Router) {
		r.Get("/articles", foundationcontrollers.Articles(articlesService, logg))
		r.Get("/events", foundationcontrollers.Events(eventsService, logg))
		r.Post("/submissions/{formType}", foundationcontrollers.Submit(involvementService, logg))
		r.Post("/partners", foundationcontrollers.Partner(involvementService, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.FoundationLogin(authService, logg))
			r.With(
				middleware.Auth(cfg.JWT, sessions, logg),
				middleware.RequireRole(pkgAuth.RoleFoundationAdmin, logg),
			).Post("/logout", controllers.Logout(authService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Use(middleware.RequireRole(pkgAuth.RoleFoundationAdmin, logg))

			r.Post("/articles", foundationcontrollers.AdminCreateArticle(articlesService, maxUpload, logg))
			r.Put("/articles/{articleId}", foundationcontrollers.AdminUpdateArticle(articlesService, maxUpload, logg))
			r.Delete("/articles/{articleId}", foundationcontrollers.AdminDeleteArticle(articlesService, logg))

			r.Post("/events", foundationcontrollers.AdminCreateEvent(eventsService, maxUpload, logg))
			r.Put("/events/{eventId}", foundationcontrollers.AdminUpdateEvent(eventsService, maxUpload, logg))
			r.Delete("/events/{eventId}", foundationcontrollers.AdminDeleteEvent(eventsService, logg))
		})
	})

	r.Route("/api/v1/prefs", func(r chi.Router) {
		r.Get("/", controllers.PrefsGet(prefsService, logg))
		r.Put("/audio", controllers.PrefsSetAudio(prefsService, logg))
		r.Post("/install-prompt/dismiss", controllers.PrefsDismissInstallPrompt(prefsService, logg))
	})

	return r
}
