package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KovyD20/Video-games-database-project/internal/catalog"
	"github.com/KovyD20/Video-games-database-project/internal/review"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Pages int
}

// ShowResult is the show command payload.
type ShowResult struct {
	Item    catalog.Detail  `json:"item"`
	Reviews []review.Review `json:"reviews"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item with its reviews",
		Long: `Load catalog pages until the item appears, then print its details
and the reviews stored for it.

Example:
  gamesdb show 3498
  gamesdb show 3498 --pages 10`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, catalog.ID(args[0]), cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Pages, "pages", "p", 5, "maximum number of pages to search")

	return cmd
}

func runShow(opts *ShowOptions, id catalog.ID, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	a, err := openApp(cmd, opts.RootOptions, formatter)
	if err != nil {
		return err
	}
	defer closeApp(a)

	if err := requireAPIKey(a, formatter); err != nil {
		return err
	}

	it, found, err := a.FindItem(cmd.Context(), id, opts.Pages)
	if err != nil {
		return reportError(formatter, "failed to load catalog", err)
	}
	if !found {
		return formatter.Fail(ExitFailure, ErrCodeNotFound,
			fmt.Sprintf("item %s not found in the first %d page(s)", id, opts.Pages), nil)
	}

	result := ShowResult{
		Item:    catalog.Describe(it),
		Reviews: a.Reviews.For(id),
	}
	return formatter.Render(result, func(w io.Writer) {
		writeShowText(w, result)
	})
}

func writeShowText(w io.Writer, r ShowResult) {
	d := r.Item
	fmt.Fprintln(w, d.Name)
	fmt.Fprintf(w, "Released:   %s\n", d.Released)
	fmt.Fprintf(w, "Rating:     %s\n", d.Rating)
	fmt.Fprintf(w, "Metacritic: %s\n", d.Metacritic)
	if d.Genres != "" {
		fmt.Fprintf(w, "Genres:     %s\n", d.Genres)
	}
	if d.Platforms != "" {
		fmt.Fprintf(w, "Platforms:  %s\n", d.Platforms)
	}
	fmt.Fprintln(w)
	writeReviewsText(w, r.Reviews)
}

func writeReviewsText(w io.Writer, reviews []review.Review) {
	if len(reviews) == 0 {
		fmt.Fprintln(w, "No reviews yet.")
		return
	}
	fmt.Fprintf(w, "Reviews (%d):\n", len(reviews))
	for _, rv := range reviews {
		fmt.Fprintf(w, "  %s (%d/5): %s\n", rv.Author, rv.Rating, rv.Text)
	}
}
