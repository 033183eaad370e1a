package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fahasa-storefront/internal/handler/api"
	"fahasa-storefront/internal/handler/middleware"
	"fahasa-storefront/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Cart     *api.CartHandler
	Checkout *api.CheckoutHandler
	Loyalty  *api.LoyaltyHandler
}

func NewHandlers(auth *api.AuthHandler, cart *api.CartHandler, checkout *api.CheckoutHandler, loyalty *api.LoyaltyHandler) Handlers {
	return Handlers{Auth: auth, Cart: cart, Checkout: checkout, Loyalty: loyalty}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, gatherer prometheus.Gatherer, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, gatherer, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.SessionMiddleware(cfg.Cookie, cfg.Store.TTL))
	engine.Use(middleware.WrapLogger(logger, cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, gatherer prometheus.Gatherer, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	if gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// guests and signed-in users share the cart and quote routes
	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.OptionalAuth())
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		cart := apiGroup.Group("/cart")
		{
			addRoutes(cart, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Cart.Get},
				{Method: http.MethodDelete, Path: "", Handler: h.Cart.Clear},
				{Method: http.MethodPost, Path: "/items", Handler: h.Cart.AddItem},
				{Method: http.MethodPatch, Path: "/items/:productId", Handler: h.Cart.SetQuantity},
				{Method: http.MethodDelete, Path: "/items/:productId", Handler: h.Cart.RemoveItem},
				{Method: http.MethodPut, Path: "/items/:productId/selection", Handler: h.Cart.SetSelected},
				{Method: http.MethodPut, Path: "/selection", Handler: h.Cart.SelectAll},
				{Method: http.MethodPost, Path: "/sync", Handler: h.Cart.Flush},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Cart.Refresh},
			})
		}

		checkout := apiGroup.Group("/checkout")
		{
			addRoutes(checkout, []route{
				{Method: http.MethodGet, Path: "/quote", Handler: h.Checkout.Quote},
				{Method: http.MethodPost, Path: "/orders", Handler: h.Checkout.PlaceOrder, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
			})
		}

		authRequired := apiGroup.Group("")
		authRequired.Use(authMiddleware.RequireAuth())
		addRoutes(authRequired, []route{
			{Method: http.MethodPost, Path: "/orders/:id/confirm-delivery", Handler: h.Checkout.ConfirmDelivery},
			{Method: http.MethodGet, Path: "/loyalty/me", Handler: h.Loyalty.Me},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
