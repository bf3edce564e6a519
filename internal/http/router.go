package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mercatodev/storefront/internal/auth"
	"github.com/mercatodev/storefront/internal/config"
	"github.com/mercatodev/storefront/internal/http/handlers"
	"github.com/mercatodev/storefront/internal/http/middlewares"
	"github.com/mercatodev/storefront/internal/observability"
	mongorepo "github.com/mercatodev/storefront/internal/repo/mongo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, database *mongo.Database, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(reg)

	// middleware
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("storefront-api"))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORS(cfg.CORSOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.BodyLimit(middlewares.DefaultBodyLimit))
	r.Use(middlewares.ErrorHandler(cfg.Env))

	// health
	ping := func() error {
		if database == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return database.Client().Ping(ctx, nil)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/", handlers.Welcome)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up repositories
	usersRepo := mongorepo.NewUsersRepo(database)
	productsRepo := mongorepo.NewProductsRepo(database)
	cartsRepo := mongorepo.NewCartsRepo(database)

	jwtManager := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLDays)*24*time.Hour)
	guard := middlewares.NewAuthMiddleware(jwtManager, usersRepo)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager)
	productsHandler := handlers.NewProductsHandler(productsRepo)
	cartHandler := handlers.NewCartHandler(cartsRepo, productsRepo)
	profileHandler := handlers.NewProfileHandler()

	api := r.Group("/api")

	authLimiter := middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)

	authGroup := api.Group("/auth")
	authGroup.Use(authLimiter.Middleware(middlewares.KeyByIP))
	authGroup.POST("/signup", authHandler.SignUp)
	authGroup.POST("/login", authHandler.Login)

	// catalog routes carry no auth, matching the legacy API (see DESIGN.md)
	products := api.Group("/products")
	products.GET("", productsHandler.ListProducts)
	products.GET("/:id", productsHandler.GetProductByID)
	products.POST("", productsHandler.CreateProduct)
	products.PUT("/:id", productsHandler.UpdateProduct)
	products.DELETE("/:id", productsHandler.DeleteProduct)

	cartGroup := api.Group("/cart")
	cartGroup.Use(guard.RequireAuth())
	cartGroup.GET("", cartHandler.GetCart)
	cartGroup.POST("/:productId", cartHandler.AddToCart)
	cartGroup.DELETE("/:productId", cartHandler.RemoveFromCart)

	profileGroup := api.Group("/profile")
	profileGroup.Use(guard.RequireAuth())
	profileGroup.GET("", profileHandler.GetProfile)

	return r
}
