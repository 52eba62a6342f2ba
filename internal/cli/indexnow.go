package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AI2HU/gego-site/internal/scheduler"
)

var indexNowCmd = &cobra.Command{
	Use:   "indexnow",
	Short: "Notify search engines about site URLs",
}

var indexNowSubmitCmd = &cobra.Command{
	Use:   "submit [url...]",
	Short: "Submit URLs or site paths to IndexNow",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIndexNowSubmit,
}

var indexNowResubmitCmd = &cobra.Command{
	Use:   "resubmit",
	Short: "Submit every static page and blog post once",
	RunE:  runIndexNowResubmit,
}

func init() {
	indexNowCmd.AddCommand(indexNowSubmitCmd)
	indexNowCmd.AddCommand(indexNowResubmitCmd)
}

func runIndexNowSubmit(cmd *cobra.Command, args []string) error {
	client, err := newIndexNowClient()
	if err != nil {
		return fmt.Errorf("failed to configure IndexNow: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	urls := client.Resolve(args...)
	status, err := client.Submit(ctx, urls)
	if err != nil {
		return fmt.Errorf("failed to submit URLs: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s URLs to %s (status %d)\n", FormatSuccess("✅ Submitted"), FormatCount(len(urls)), client.Endpoint(), status)
	for _, u := range urls {
		fmt.Fprintf(out, "  %s\n", FormatMeta(u))
	}
	return nil
}

func runIndexNowResubmit(cmd *cobra.Command, args []string) error {
	client, err := newIndexNowClient()
	if err != nil {
		return fmt.Errorf("failed to configure IndexNow: %w", err)
	}
	posts, err := newBlogStore()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sched := scheduler.New(client, posts, cfg.IndexNow.StaticPaths, cfg.IndexNow.Schedule)
	n, err := sched.ExecuteNow(ctx)
	if err != nil {
		return fmt.Errorf("failed to resubmit site: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s URLs\n", FormatSuccess("✅ Resubmitted"), FormatCount(n))
	return nil
}
