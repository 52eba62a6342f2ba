package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AI2HU/gego-site/internal/backend"
	"github.com/AI2HU/gego-site/internal/blog"
	"github.com/AI2HU/gego-site/internal/config"
	"github.com/AI2HU/gego-site/internal/indexnow"
	"github.com/AI2HU/gego-site/internal/logger"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gego-site",
	Short: "Website backend for the Gego AI visibility tracker",
	Long: `gego-site serves the Gego website API: it proxies the metrics backend and
turns brand metrics into dashboards, insight text and prompt listings.

It also notifies search engines about site pages through IndexNow and serves
the markdown blog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "init" {
			return nil
		}

		if cfgFile == "" {
			cfgFile = config.GetConfigPath()
		}

		var err error
		cfg, err = config.LoadWithEnv(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Logging.Level
		if logLevel != "" {
			level = logLevel
		}
		logger.Init(logger.ParseLogLevel(level), os.Stderr)

		if !config.Exists(cfgFile) {
			logger.Debug("No config file at %s, using defaults and environment", cfgFile)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = logger.Sync()
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gego-site/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warning, error")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(indexNowCmd)
	rootCmd.AddCommand(blogCmd)
}

func newBackendClient() *backend.Client {
	return backend.New(cfg.Backend)
}

func newBlogStore() (*blog.Store, error) {
	return blog.NewStore(cfg.Blog.Dir, cfg.Blog.CacheSize)
}

func newIndexNowClient() (*indexnow.Client, error) {
	return indexnow.New(cfg.IndexNow, cfg.Server.SiteURL)
}

// brandQuery builds a backend query from a CLI argument
func brandQuery(arg string, isWebsite bool) backend.Query {
	if isWebsite {
		return backend.Query{Website: arg}
	}
	return backend.Query{BrandName: arg}
}
