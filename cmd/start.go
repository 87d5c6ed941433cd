package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ingress-identity/core/loader"
	"ingress-identity/core/logger"
	"ingress-identity/core/middleware/auth"
	"ingress-identity/core/middleware/rayid"
	"ingress-identity/feature/identity"
	"ingress-identity/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "ingress-identity/docs/swagger"
)

// @title Ingress Identity API
// @version 1.0
// @description Player metadata aggregated from spreadsheet manifests.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the identity server",
	Long:  `Loads every manifest, starts the background refresher and serves the HTTP API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rt, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger
		zap.ReplaceGlobals(logg)

		go rt.identity.StartRefresher(ctx, rt.cfg.Identity.RefreshInterval())

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(identity.NewFeature(rt.identity))
		mgr.Register(integrity.NewFeature(rt.integrity))

		// RayID must be first to trace everything.
		app.Use(rayid.New())

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

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cancel()
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
