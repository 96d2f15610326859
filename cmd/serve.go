package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"chart-catalog/core/config"
	"chart-catalog/core/logger"
	"chart-catalog/core/middleware/rayid"
	"chart-catalog/feature/chart"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "chart-catalog/docs/swagger"
)

// @title Chart Catalog API
// @version 1.0
// @description API serving the generated chart catalog documents.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated catalogs over HTTP",
	Long:  `Starts the HTTP server exposing the catalog documents produced by convert runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			// Log error if happened
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. API key check (when configured)
		if cfg.Server.ApiKey != "" {
			app.Use(func(c *fiber.Ctx) error {
				if c.Get("X-Api-Key") != cfg.Server.ApiKey {
					return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
						"error": "invalid api key",
					})
				}
				return c.Next()
			})
		}

		// 4. Register catalog routes
		handler := chart.NewHandler(cfg.Pipeline, logg)
		handler.RegisterRoutes(app)

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
