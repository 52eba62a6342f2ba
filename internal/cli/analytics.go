package cli

import (
	"context"
	"encoding/json"
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
	analyticsWebsite bool
	analyticsJSON    bool
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics [brand]",
	Short: "Show the analytics dashboard for a brand",
	Long:  `Fetch a brand's metrics from the backend and print mention rate, sentiment, ranking and citations per LLM together with the advisory insights.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalytics,
}

func init() {
	analyticsCmd.Flags().BoolVarP(&analyticsWebsite, "website", "w", false, "Treat the argument as a website instead of a brand name")
	analyticsCmd.Flags().BoolVar(&analyticsJSON, "json", false, "Print the dashboard as JSON")
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	q := brandQuery(args[0], analyticsWebsite)
	m, err := newBackendClient().FetchMetrics(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to fetch metrics: %w", err)
	}

	d := analytics.BuildDashboard(q.Label(), m)
	if analyticsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}

	printDashboard(cmd.OutOrStdout(), d)
	return nil
}

func printDashboard(out io.Writer, d *models.Dashboard) {
	fmt.Fprintf(out, "%s📊 AI Visibility: %s%s\n", HeaderStyle, CountStyle+d.Brand+Reset, Reset)
	fmt.Fprintln(out, FormatDim("================================"))
	fmt.Fprintln(out)

	ranking := "N/A"
	if d.HasRanking {
		ranking = fmt.Sprintf("#%.1f", d.Ranking)
	}
	fmt.Fprintf(out, "%sMention Rate: %s%%\n", LabelStyle, FormatCount(d.MentionRate))
	fmt.Fprintf(out, "%sSentiment: %s/100\n", LabelStyle, FormatCount(d.Sentiment))
	fmt.Fprintf(out, "%sAverage Ranking: %s\n", LabelStyle, FormatValue(ranking))
	fmt.Fprintf(out, "%sCitations: %s\n", LabelStyle, FormatCount(d.Citations))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sLLM\tMENTIONS\tSENTIMENT\tRANK\tCITED SOURCES%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s───\t────────\t─────────\t────\t─────────────%s\n", DimStyle, Reset)
	for i := range d.MentionsByLLM {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			FormatValue(d.MentionsByLLM[i].LLM),
			valueCell(d.MentionsByLLM[i], "%"),
			valueCell(d.SentimentByLLM[i], ""),
			analytics.RankLabel(d.RankingByLLM[i]),
			d.CitationsByLLM[i].Subtitle,
		)
	}
	w.Flush()
	fmt.Fprintln(out)

	if len(d.TopSources) > 0 {
		fmt.Fprintln(out, FormatSuccess("Top Cited Sources:"))
		for i, src := range d.TopSources {
			fmt.Fprintf(out, "  %s%d.%s %s\n", CountStyle, i+1, Reset, src)
		}
		fmt.Fprintln(out)
	}

	printInsight(out, "Mentions", d.Insights.Mentions)
	printInsight(out, "Sentiment", d.Insights.Sentiment)
	printInsight(out, "Ranking", d.Insights.Ranking)
	printInsight(out, "Citations", d.Insights.Citations)
}

func valueCell(c models.LLMComparison, suffix string) string {
	if !c.HasData {
		return FormatDim("-")
	}
	return fmt.Sprintf("%d%s", c.Value, suffix)
}

func printInsight(out io.Writer, title, text string) {
	fmt.Fprintln(out, FormatTitle(title+" insight"))
	for _, line := range strings.Split(text, analytics.LineBreak) {
		fmt.Fprintf(out, "  %s\n", line)
	}
	fmt.Fprintln(out)
}
