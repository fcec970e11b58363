package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "marketpos/api/swagger" // swagger docs
	"marketpos/internal/database"
	"marketpos/internal/handler"
	"marketpos/internal/repository"
	"marketpos/internal/service"
	"marketpos/internal/websocket"
)

// @title           Market POS API
// @version         1.0
// @description     Point-of-sale and supplier ledger backend for a small retail store.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "marketpos"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	if err := database.Seed(context.Background(), db); err != nil {
		log.Fatalf("Database seeding failed: %v", err)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	supplierRepo := repository.NewSupplierRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	catalogService := service.NewCatalogService(supplierRepo, sequenceRepo, settingsRepo, auditRepo, txManager, wsHub)
	purchaseService := service.NewPurchaseService(invoiceRepo, supplierRepo, sequenceRepo, auditRepo, txManager, wsHub)
	posService := service.NewPOSService(saleRepo, supplierRepo, settingsRepo, auditRepo, txManager, wsHub)
	stockService := service.NewStockService(supplierRepo, invoiceRepo, saleRepo)
	settingsService := service.NewSettingsService(settingsRepo, auditRepo, txManager)
	userService := service.NewUserService(userRepo, auditRepo, txManager)
	statisticsService := service.NewStatisticsService(saleRepo, invoiceRepo)
	assistantService := service.NewAssistantService(
		os.Getenv("OPENAI_API_KEY"),
		os.Getenv("OPENAI_BASE_URL"),
		os.Getenv("OPENAI_MODEL"),
		stockService,
		statisticsService,
	)

	// Initialize Handlers
	catalogHandler := handler.NewCatalogHandler(catalogService, settingsService)
	invoiceHandler := handler.NewInvoiceHandler(purchaseService)
	posHandler := handler.NewPOSHandler(posService)
	stockHandler := handler.NewStockHandler(stockService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	userHandler := handler.NewUserHandler(userService)
	assistantHandler := handler.NewAssistantHandler(assistantService)
	auditHandler := handler.NewAuditHandler(auditRepo)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, service.JWTSecret())
	})

	// Register API Routes
	root := router.Group("")
	catalogHandler.RegisterRoutes(root)
	invoiceHandler.RegisterRoutes(root)
	posHandler.RegisterRoutes(root)
	stockHandler.RegisterRoutes(root)
	settingsHandler.RegisterRoutes(root)
	userHandler.RegisterRoutes(root)
	assistantHandler.RegisterRoutes(root)
	auditHandler.RegisterRoutes(root)
	statisticsHandler.RegisterRoutes(root)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
