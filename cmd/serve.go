package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iksnae/support-analytics/internal"
	"github.com/iksnae/support-analytics/internal/api"
	"github.com/iksnae/support-analytics/internal/publish"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve dashboards over HTTP and a websocket",
	Long: `Start the HTTP API. Every request loads fresh data:

  GET /api/dashboard?status=   whole dashboard
  GET /api/stats               headline counters
  GET /api/categories          issues per category
  GET /api/sentiments          messages per sentiment
  GET /api/issues?status=      issue list
  GET /healthz                 liveness
  GET /ws/dashboard            websocket, send {"action":"refresh"} for updates

When nats.url is configured each freshly built dashboard is also published
to JetStream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		env, err := openDashboardEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.cfg.NATS.URL != "" {
			pub, err := publish.NewPublisher(ctx, env.cfg.NATS)
			if err != nil {
				return err
			}
			defer pub.Close()
			env.service.AddHook(pub.Hook())
			internal.LogInfo("Publishing dashboards to %s", publish.Subject(env.cfg.NATS.SubjectPrefix))
		}

		addr := env.cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		server := api.NewServer(env.service)
		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Listen(addr)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		internal.LogInfo("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			internal.LogWarn("Error shutting down server: %v", err)
		}
		internal.LogInfo("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}
