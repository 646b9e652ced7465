package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"animal-search-admin/core/loader"
	"animal-search-admin/core/logger"
	"animal-search-admin/core/metrics"
	"animal-search-admin/core/middleware/auth"
	"animal-search-admin/core/middleware/rayid"
	"animal-search-admin/feature/integrity"
	"animal-search-admin/feature/moderation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "animal-search-admin/docs/swagger"
)

// @title Animal Search Admin API
// @version 1.0
// @description Moderation API for the lost-and-found pet app: pending match and duplicate queues and operator decisions.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the moderation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		a, err := bootstrap(ctx)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.Close()
		zap.ReplaceGlobals(a.logger)

		if a.cfg.Server.SeedFile != "" {
			n, err := a.seedFrom(ctx, a.cfg.Server.SeedFile)
			if err != nil {
				a.logger.Fatal("Failed to seed record store", zap.Error(err))
			}
			a.logger.Info("Seeded record store", zap.String("file", a.cfg.Server.SeedFile), zap.Int("documents", n))
		}

		app, err := newServer(a)
		if err != nil {
			a.logger.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			a.logger.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				a.logger.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		a.logger.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

// newServer builds the fiber app with middleware and every feature loaded.
func newServer(a *app) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every log line can be traced
	app.Use(rayid.New())
	app.Use(metrics.Middleware())

	logg := a.logger
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// Public endpoints
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "backend": a.cfg.Server.Backend})
	})
	app.Get("/metrics", metrics.Handler())
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Everything registered after this point requires the API key
	app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

	mgr := loader.NewManager()
	mgr.Register(moderation.NewFeature(a.cfg.Moderation, a.moderationDeps()))
	mgr.Register(integrity.NewFeature(a.integrityOptions()))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	logg.Info("Features loaded", zap.Strings("features", mgr.Loaded()))
	return app, nil
}
