package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AI2HU/gego-site/internal/blog"
)

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Inspect blog posts",
}

var blogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published blog posts",
	RunE:  runBlogList,
}

func init() {
	blogCmd.AddCommand(blogListCmd)
}

func runBlogList(cmd *cobra.Command, args []string) error {
	store, err := newBlogStore()
	if err != nil {
		return err
	}

	posts, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	printPosts(cmd.OutOrStdout(), posts)
	return nil
}

func printPosts(out io.Writer, posts []*blog.Post) {
	if len(posts) == 0 {
		fmt.Fprintf(out, "%sNo published posts found.%s\n", WarningStyle, Reset)
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sDATE\tSLUG\tTITLE\tTAGS\tREAD%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s────\t────\t─────\t────\t────%s\n", DimStyle, Reset)
	for _, p := range posts {
		date := "-"
		if !p.Date.IsZero() {
			date = p.Date.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d min\n",
			FormatMeta(date),
			p.Slug,
			FormatValue(p.Title),
			strings.Join(p.Tags, ", "),
			p.ReadingTime,
		)
	}
	w.Flush()
}
