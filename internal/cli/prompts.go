package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AI2HU/gego-site/internal/analytics"
	"github.com/AI2HU/gego-site/internal/models"
)

var (
	promptsPage    int
	promptsPerPage int
	promptsWebsite bool
)

var promptsCmd = &cobra.Command{
	Use:   "prompts [brand]",
	Short: "List tracked prompts and their first LLM response",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrompts,
}

func init() {
	promptsCmd.Flags().IntVarP(&promptsPage, "page", "p", 1, "Page to show")
	promptsCmd.Flags().IntVarP(&promptsPerPage, "per-page", "n", analytics.DefaultPageSize, "Prompts per page")
	promptsCmd.Flags().BoolVarP(&promptsWebsite, "website", "w", false, "Treat the argument as a website instead of a brand name")
}

func runPrompts(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	page, perPage := analytics.NormalizePageRequest(promptsPage, promptsPerPage)
	resp, err := newBackendClient().FetchPrompts(ctx, brandQuery(args[0], promptsWebsite), page, perPage)
	if err != nil {
		return fmt.Errorf("failed to fetch prompts: %w", err)
	}

	printPromptsPage(cmd.OutOrStdout(), analytics.BuildPromptsPage(resp), perPage)
	return nil
}

func printPromptsPage(out io.Writer, p *models.PromptsPage, perPage int) {
	if len(p.Prompts) == 0 {
		fmt.Fprintf(out, "%sNo prompts tracked for this brand yet.%s\n", WarningStyle, Reset)
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s#\tLLM\tPROMPT\tRESPONSE%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s─\t───\t──────\t────────%s\n", DimStyle, Reset)

	offset := (max(p.Pagination.Page, 1) - 1) * perPage
	for i, item := range p.Prompts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			FormatCount(offset+i+1),
			item.LLM,
			FormatValue(truncateMiddle(item.Prompt, 60)),
			truncateMiddle(item.Response, 60),
		)
	}
	w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", FormatLabel("Pages:"), formatPageWindow(p.Pages, p.Pagination.Page))
	fmt.Fprintln(out, FormatMeta(fmt.Sprintf("%d prompts in total", p.Pagination.TotalItems)))
}

// formatPageWindow renders the window with the current page highlighted
func formatPageWindow(pages []models.PageItem, current int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		if !p.Ellipsis && p.Page == current {
			parts[i] = FormatValue("[" + p.String() + "]")
			continue
		}
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
