package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vereinskasse/kassenbuch/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, engine, closeStore, err := setup()
		exitOnError(err, "setup failed")
		defer closeStore()

		addr := fmt.Sprintf(":%s", cfg.Port)
		slog.Info("starting kassenbuch server", "addr", addr, "db_path", cfg.DBPath)

		server := &http.Server{
			Addr:         addr,
			Handler:      api.NewRouter(engine),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Graceful shutdown.
		go func() {
			sigint := make(chan os.Signal, 1)
			signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
			<-sigint

			slog.Info("shutting down server")
			if err := server.Close(); err != nil {
				slog.Error("server shutdown error", "error", err)
			}
		}()

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			exitOnError(err, "server error")
		}

		slog.Info("server stopped")
	},
}
