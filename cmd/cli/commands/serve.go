package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/pkg/api"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and serve the frontend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			migrate, _ := cmd.Flags().GetBool("migrate")
			if migrate && app.Persistent {
				if _, err := runMigrations(app); err != nil {
					return err
				}
			}
			if !app.Persistent {
				app.Logger.Warn("No databaseURL configured, using in-memory store; data is lost on restart")
			}

			handler := api.NewHandler(app.Database, app.Cfg, app.Logger)
			srv := &http.Server{
				Addr:         app.Cfg.Server.Addr,
				Handler:      api.NewRouter(handler),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 35 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("HTTP server started",
					zap.String("addr", srv.Addr),
					zap.String("default_room", app.Cfg.DefaultRoomCode))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
				return nil
			case sig := <-quit:
				app.Logger.Info("Shutting down", zap.String("signal", sig.String()))
			}

			ctx, cancel := context.WithTimeout(app.Ctx, 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				app.Logger.Error("Server shutdown failed", zap.Error(err))
				return err
			}

			app.Logger.Info("Server stopped")
			return nil
		},
	}

	cmd.Flags().Bool("migrate", true, "Apply pending database migrations before serving")

	return cmd
}
