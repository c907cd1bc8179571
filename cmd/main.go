package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/franciscosanchezn/little-lemon-app/internal/auth"
	"github.com/franciscosanchezn/little-lemon-app/internal/config"
	"github.com/franciscosanchezn/little-lemon-app/internal/controllers"
	"github.com/franciscosanchezn/little-lemon-app/internal/database"
	"github.com/franciscosanchezn/little-lemon-app/internal/kvstore"
	"github.com/franciscosanchezn/little-lemon-app/internal/middleware"
	"github.com/franciscosanchezn/little-lemon-app/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
)

// application holds the explicitly wired components. The stores are opened
// once here and injected; nothing hangs off package-level state.
type application struct {
	configuration *config.Config
	kv            kvstore.Store
	tokens        *auth.SessionTokenGenerator
	menuService   services.MenuService
	profiles      services.ProfileService

	sessionController controllers.SessionController
	menuController    controllers.MenuController
	profileController controllers.ProfileController
}

// @title Little Lemon Local API
// @version 1.0
// @description On-device restaurant menu and profile API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()

	app, err := newApplication(configuration)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer app.kv.Close()

	// Initialize schema and seed data up front. A failure is not fatal:
	// menu requests re-attempt it, which is the manual retry path.
	if err := app.menuService.EnsureReady(context.Background()); err != nil {
		log.WithError(err).Error("Menu store not ready at startup, requests will retry")
	}

	// Initialize Gin router
	router := setupRouter(app)

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// newApplication opens both stores and wires services and controllers
func newApplication(configuration *config.Config) (*application, error) {
	kv, err := kvstore.Open(configuration.KVPath)
	if err != nil {
		return nil, err
	}

	db, err := database.InitDatabase(database.FromConfig(configuration))
	if err != nil {
		kv.Close()
		return nil, err
	}

	tokens := auth.NewSessionTokenGenerator([]byte(configuration.JWTSecret), 24*time.Hour)

	menuService := services.NewMenuService(db, kv)
	profiles := services.NewProfileService(kv)

	return &application{
		configuration:     configuration,
		kv:                kv,
		tokens:            tokens,
		menuService:       menuService,
		profiles:          profiles,
		sessionController: controllers.NewSessionController(profiles, tokens),
		menuController:    controllers.NewMenuController(menuService),
		profileController: controllers.NewProfileController(profiles),
	}, nil
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	log.Infof("Configuration loaded: %s", conf.String())
	return conf
}

// setupRouter initializes the Gin router and sets up the routes
func setupRouter(app *application) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestID())

	setupRoutes(router, app)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine, app *application) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		// Onboarding and session inspection are reachable without a session:
		// they are the login screen
		v1.POST("/onboarding", app.sessionController.CompleteOnboarding)
		v1.GET("/session", app.sessionController.GetSession)

		// Everything behind the menu screen requires an active session
		authenticated := v1.Group("")
		authenticated.Use(middleware.SessionAuth(app.tokens, app.profiles))
		{
			authenticated.GET("/menu", app.menuController.GetMenu)
			authenticated.GET("/menu/categories", app.menuController.GetCategories)
			authenticated.POST("/menu/items", app.menuController.CreateMenuItem)
			authenticated.DELETE("/menu/items/:id", app.menuController.DeleteMenuItem)

			authenticated.GET("/profile", app.profileController.GetProfile)
			authenticated.PUT("/profile", app.profileController.UpdateProfile)

			authenticated.POST("/logout", app.sessionController.Logout)

			if app.configuration.DevResetEnabled {
				authenticated.POST("/admin/reset", app.menuController.ResetMenu)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "little-lemon-app",
	})
}
