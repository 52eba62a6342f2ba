package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AI2HU/gego-site/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gego-site configuration",
	Long:  `Interactive wizard to set up the backend URL, the public site URL, IndexNow and the blog directory.`,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	configPath := cfgFile
	if configPath == "" {
		configPath = config.GetConfigPath()
	}

	fmt.Fprintln(out, FormatHeader("🚀 Welcome to gego-site setup"))
	fmt.Fprintln(out, FormatDim("============================="))
	fmt.Fprintln(out)

	if config.Exists(configPath) {
		fmt.Fprintf(out, "Configuration file already exists at: %s\n", configPath)
		confirmed, err := promptYesNo(reader, out, "Do you want to overwrite it? (y/N): ")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	}

	newCfg, err := runWizard(reader, out)
	if err != nil {
		return err
	}

	if err := newCfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "\n%s %s\n", FormatSuccess("✅ Configuration saved to:"), configPath)
	printConfigSummary(out, newCfg)
	return nil
}

// runWizard asks for each setting, starting from the defaults
func runWizard(reader *bufio.Reader, out io.Writer) (*config.Config, error) {
	c := config.DefaultConfig()

	fmt.Fprintln(out, FormatTitle("\n📊 Metrics backend"))
	backendURL, err := promptDefault(reader, out, "Backend URL", c.Backend.BaseURL, validateBaseURL)
	if err != nil {
		return nil, err
	}
	c.Backend.BaseURL = backendURL

	fmt.Fprintln(out, FormatTitle("\n🌐 Website"))
	siteURL, err := promptDefault(reader, out, "Public site URL", c.Server.SiteURL, validateBaseURL)
	if err != nil {
		return nil, err
	}
	c.Server.SiteURL = siteURL

	port, err := promptDefault(reader, out, "API port", c.Server.Port, nil)
	if err != nil {
		return nil, err
	}
	c.Server.Port = port

	blogDir, err := promptDefault(reader, out, "Blog directory", c.Blog.Dir, nil)
	if err != nil {
		return nil, err
	}
	c.Blog.Dir = blogDir

	fmt.Fprintln(out, FormatTitle("\n🔔 IndexNow"))
	enable, err := promptYesNo(reader, out, "Notify search engines with IndexNow? (y/N): ")
	if err != nil {
		return nil, err
	}
	if enable {
		generated := strings.ReplaceAll(uuid.New().String(), "-", "")
		key, err := promptDefault(reader, out, "IndexNow key", generated, validateIndexNowKey)
		if err != nil {
			return nil, err
		}
		c.IndexNow.Enabled = true
		c.IndexNow.Key = key

		schedule, err := promptDefault(reader, out, "Resubmission schedule (cron)", c.IndexNow.Schedule, validateCronExpression)
		if err != nil {
			return nil, err
		}
		c.IndexNow.Schedule = schedule
	}

	return c, nil
}

func printConfigSummary(out io.Writer, c *config.Config) {
	fmt.Fprintln(out, FormatHeader("\n📋 Configuration Summary"))
	fmt.Fprintln(out, FormatDim("========================"))
	fmt.Fprintln(out, FormatLabelValue("Backend:", c.Backend.BaseURL))
	fmt.Fprintln(out, FormatLabelValue("Site URL:", c.Server.SiteURL))
	fmt.Fprintln(out, FormatLabelValue("Listen:", c.Address()))
	fmt.Fprintln(out, FormatLabelValue("Blog:", c.Blog.Dir))
	if c.IndexNow.Enabled {
		fmt.Fprintln(out, FormatLabelValue("IndexNow key:", c.IndexNow.Key))
		fmt.Fprintln(out, FormatLabelValue("IndexNow schedule:", c.IndexNow.Schedule))
	} else {
		fmt.Fprintln(out, FormatLabelValue("IndexNow:", "disabled"))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Start the API: gego-site serve")
	fmt.Fprintln(out, "  2. Inspect a brand: gego-site analytics <brand>")
}
