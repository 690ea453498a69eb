package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stackmart/shophub/internal/auth"
	"github.com/stackmart/shophub/internal/cache"
	"github.com/stackmart/shophub/internal/config"
	"github.com/stackmart/shophub/internal/http/handlers"
	"github.com/stackmart/shophub/internal/http/middlewares"
	"github.com/stackmart/shophub/internal/observability"
	mongorepo "github.com/stackmart/shophub/internal/repo/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, cfg config.Config, client *mongo.Client, store cache.Store, prom *observability.Prom) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers.SetErrorVerbosity(cfg.ExposeErrors)

	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(otelgin.Middleware("shophub"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// health
	ping := func() error {
		if client == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return client.Ping(ctx, readpref.Primary())
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "Hello World!"})
	})

	// fixed envelope for unmatched routes
	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"message": "Not found"},
		})
	})

	// wire up repositories
	database := client.Database(cfg.MongoDB)
	usersRepo := mongorepo.NewUsersRepo(database, prom)
	productsRepo := mongorepo.NewProductsRepo(database, prom)
	ordersRepo := mongorepo.NewOrdersRepo(database, prom)

	tokens := auth.NewIssuer(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
	gate := middlewares.NewAuthMiddleware(tokens)

	usersHandler := handlers.NewUsersHandler(usersRepo, tokens)
	productsHandler := handlers.NewProductsHandlerWithCache(productsRepo, store)
	ordersHandler := handlers.NewOrdersHandler(ordersRepo)

	// token issuance stays open regardless of the users policy
	r.POST("/users/signUp", usersHandler.SignUp)
	r.POST("/users/logIn", usersHandler.LogIn)
	r.POST("/users/renewToken", usersHandler.RenewToken)

	// which groups sit behind the gate is policy, not wiring (cfg.Auth)
	users := r.Group("/users")
	if cfg.Auth.Users {
		users.Use(gate.RequireAuth())
	}
	users.GET("", usersHandler.ListUsers)
	users.GET("/:id", usersHandler.GetUserById)
	users.PATCH("/:id", usersHandler.UpdateUser)
	users.DELETE("/:id", usersHandler.DeleteUser)

	products := r.Group("/products")
	if cfg.Auth.Products {
		products.Use(gate.RequireAuth())
	}
	products.GET("", productsHandler.ListProducts)
	products.GET("/:id", productsHandler.GetProductById)
	products.POST("", productsHandler.CreateProduct)
	products.PATCH("/:id", productsHandler.UpdateProduct)
	products.DELETE("/:id", productsHandler.DeleteProduct)

	orders := r.Group("/orders")
	if cfg.Auth.Orders {
		orders.Use(gate.RequireAuth())
	}
	orders.GET("", ordersHandler.ListOrders)
	orders.GET("/:id", ordersHandler.GetOrderById)
	orders.POST("", ordersHandler.CreateOrder)
	orders.PATCH("/:id", ordersHandler.UpdateOrder)
	orders.DELETE("/:id", ordersHandler.DeleteOrder)

	log.Debug("router configured",
		"auth_users", cfg.Auth.Users,
		"auth_products", cfg.Auth.Products,
		"auth_orders", cfg.Auth.Orders,
	)

	return r
}
