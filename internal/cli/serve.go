package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/AI2HU/gego-site/internal/api"
	"github.com/AI2HU/gego-site/internal/logger"
	"github.com/AI2HU/gego-site/internal/scheduler"
)

var (
	servePort       string
	serveHost       string
	serveCORSOrigin string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the website API server",
	Long: `Start the website API server. It proxies the metrics backend and returns
dashboards, prompt pages and insight text as JSON, serves the blog, and, when
IndexNow is enabled, resubmits the site's pages on the configured schedule.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to run the API server on (overrides config)")
	serveCmd.Flags().StringVarP(&serveHost, "host", "H", "", "Host to bind the API server to (overrides config)")
	serveCmd.Flags().StringVarP(&serveCORSOrigin, "cors-origin", "c", "", "CORS origin to allow (overrides config, use '*' for all origins)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort != "" {
		cfg.Server.Port = servePort
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if serveCORSOrigin != "" {
		cfg.Server.CORSOrigin = serveCORSOrigin
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	posts, err := newBlogStore()
	if err != nil {
		return err
	}

	var submitter api.URLSubmitter
	var sched *scheduler.Scheduler
	if cfg.IndexNow.Enabled {
		client, err := newIndexNowClient()
		if err != nil {
			return fmt.Errorf("failed to configure IndexNow: %w", err)
		}
		submitter = client

		if cfg.IndexNow.Schedule != "" {
			sched = scheduler.New(client, posts, cfg.IndexNow.StaticPaths, cfg.IndexNow.Schedule)
		}
	}

	server := api.NewServer(newBackendClient(), submitter, posts, cfg.Server.CORSOrigin)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if sched != nil {
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer sched.Stop()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, FormatHeader("🚀 Starting gego-site API Server"))
	fmt.Fprintln(out, FormatDim("================================"))
	fmt.Fprintln(out, FormatLabelValue("Listen:", cfg.Address()))
	fmt.Fprintln(out, FormatLabelValue("Backend:", cfg.Backend.BaseURL))
	fmt.Fprintln(out, FormatLabelValue("CORS Origin:", cfg.Server.CORSOrigin))
	fmt.Fprintln(out, FormatLabelValue("IndexNow:", fmt.Sprintf("%t", submitter != nil)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, FormatTitle("📚 Available Endpoints:"))
	fmt.Fprintln(out, "    GET    /api/v1/health                 - Health check")
	fmt.Fprintln(out, "    GET    /api/v1/metrics                - Raw backend metrics")
	fmt.Fprintln(out, "    GET    /api/v1/analytics              - Analytics dashboard")
	fmt.Fprintln(out, "    GET    /api/v1/analytics/overview     - Dashboard and first prompts page")
	fmt.Fprintln(out, "    GET    /api/v1/prompts                - Prompts page")
	fmt.Fprintln(out, "    GET    /api/v1/insights/page-window   - Pagination window")
	fmt.Fprintln(out, "    POST   /api/v1/indexnow               - Submit URLs to IndexNow")
	fmt.Fprintln(out, "    GET    /api/v1/blog                   - Blog index")
	fmt.Fprintln(out, "    GET    /api/v1/blog/:slug             - Blog post")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Press Ctrl+C to stop the server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run(cfg.Address())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return <-errCh
}
