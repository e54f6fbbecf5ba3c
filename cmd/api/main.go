package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finquery/controllers"
	"finquery/core"
	"finquery/internal/analytics"
	"finquery/internal/auth"
	"finquery/models"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	godotenv.Load()

	logger, err := core.NewLogger()
	if err != nil {
		panic(err)
	}

	// connect to the database
	db, err := core.InitDB()
	if err != nil {
		logger.Fatalf("Error connecting to database: %v", err)
	}

	// migrate the full schema; the reference tables are populated by
	// external scripts but their shape is defined here
	err = db.AutoMigrate(
		&models.User{},
		&models.UserCompany{},
		&models.Company{},
		&models.Financial{},
		&models.StockPrice{},
	)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	tokens, err := auth.NewTokenIssuer(os.Getenv("JWT_SECRET_KEY"))
	if err != nil {
		logger.Fatalf("Error creating token issuer: %v", err)
	}

	engine := createServer(db, tokens, logger)

	addr := ":8000"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	server := &http.Server{Addr: addr, Handler: engine}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server error: %v", err)
		}
	}()
	logger.Infow("server started", "addr", addr)

	// drain in-flight requests and the connection pool on shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error shutting down server: %v", err)
	}

	if err := core.CloseDB(db); err != nil {
		logger.Errorf("Error closing database: %v", err)
	}

	logger.Info("server stopped")
}

func createServer(db *gorm.DB, tokens *auth.TokenIssuer, logger *zap.SugaredLogger) *gin.Engine {
	// set up http server
	engine := gin.Default()
	err := engine.SetTrustedProxies(nil)
	if err != nil {
		panic(err)
	}

	engine.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "https://"+os.Getenv("UI_DOMAIN"))
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	engine.Use(controllers.RequestLogger(logger.With("component", "http")))

	queryEngine := analytics.NewEngine(db)

	router := controllers.Router{
		HealthController: &controllers.HealthController{
			DB: db,
		},
		UsersController: &controllers.UsersController{
			DB:     db,
			Tokens: tokens,
			Logger: logger.With("controller", "users"),
		},
		CompaniesController: &controllers.CompaniesController{
			DB:     db,
			Engine: queryEngine,
			Logger: logger.With("controller", "companies"),
		},
		StocksController: &controllers.StocksController{
			DB:     db,
			Engine: queryEngine,
			Logger: logger.With("controller", "stocks"),
		},
		SearchController: &controllers.SearchController{
			Engine: queryEngine,
			Logger: logger.With("controller", "search"),
		},
		Auth: controllers.RequireAuth(tokens),
	}

	router.RegisterRoutes(engine)
	return engine
}
