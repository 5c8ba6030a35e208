package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/config"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/middleware"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/routes"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const migrateFlag = "migrate"

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE:  runServe,
	}
	cmd.Flags().Bool(migrateFlag, true, "Run database migrations before serving")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The root command runs serve without registering its flags.
	migrate := true
	if cmd.Flags().Lookup(migrateFlag) != nil {
		if migrate, err = cmd.Flags().GetBool(migrateFlag); err != nil {
			return err
		}
	}
	st, err := config.OpenStore(ctx, cfg, migrate)
	if err != nil {
		return err
	}

	locker, closeLocker, err := config.NewLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	staticDir := ""
	if cfg.ImageStorage == config.ImagesLocal {
		staticDir = cfg.StaticDir
	}
	engine, err := routes.NewEngine(routes.Dependencies{
		Store:     st,
		Services:  services.New(st, locker),
		Sessions:  middleware.NewSessionManager(cfg.SecretKey, cfg.SessionTTL, !cfg.IsDevelopment()),
		Images:    config.NewImageUploader(cfg),
		StaticDir: staticDir,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
