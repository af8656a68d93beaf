package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"truthlens/internal/handler"
	"truthlens/internal/session"
)

const maxUploadSize = 10 << 20

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the TruthLens HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Starting TruthLens API...")

		a, err := newApp(cfg, logger, nil)
		if err != nil {
			return err
		}
		defer a.Close()
		for _, w := range a.warnings {
			logger.Warn(w)
		}

		botCtx, stopBot := context.WithCancel(context.Background())
		defer stopBot()
		if a.bot != nil {
			go func() {
				if err := a.bot.Start(botCtx); err != nil {
					logger.Error("Telegram bot stopped", zap.Error(err))
				}
			}()
		}

		apiHandler := handler.NewHandler(a.analyzer, session.NewStore(cfg.SessionIdle(), cfg.Server.MaxSessions), a.builder, a.client, a.sinks, logger)

		// Setup Gin router
		gin.SetMode(gin.ReleaseMode)
		router := gin.Default()
		router.MaxMultipartMemory = maxUploadSize
		router.Use(handler.CORS())

		apiHandler.RegisterRoutes(router)

		serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
		srv := &http.Server{
			Addr:    serverAddr,
			Handler: router,
		}

		errCh := make(chan error, 1)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		logger.Info("TruthLens API is running",
			zap.String("address", serverAddr),
			zap.String("api", cfg.API.BaseURL),
			zap.Bool("pdf", cfg.Report.Enabled),
			zap.Int("share_sinks", len(a.sinks)))

		// Wait for interrupt signal
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case <-quit:
		case err := <-errCh:
			return fmt.Errorf("failed to start server: %w", err)
		case <-cmd.Context().Done():
		}

		logger.Info("Shutting down server...")
		stopBot()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		logger.Info("Server exited")
		return nil
	},
}
