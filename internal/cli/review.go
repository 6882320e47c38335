package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KovyD20/Video-games-database-project/internal/catalog"
	"github.com/KovyD20/Video-games-database-project/internal/review"
)

// ReviewAddOptions holds flags for the review add command.
type ReviewAddOptions struct {
	*RootOptions
	Rating int
}

// ReviewListResult is the review list command payload.
type ReviewListResult struct {
	Item    catalog.ID      `json:"item"`
	Reviews []review.Review `json:"reviews"`
}

// NewReviewCommand creates the review command group.
func NewReviewCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Post and list item reviews",
	}
	cmd.AddCommand(newReviewAddCommand(rootOpts))
	cmd.AddCommand(newReviewListCommand(rootOpts))
	return cmd
}

func newReviewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReviewAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <item-id> <text>",
		Short: "Post a review as the signed-in user",
		Long: `Post a review as the signed-in user.

Example:
  gamesdb review add 3498 "Great game" --rating 5`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReviewAdd(opts, catalog.ID(args[0]), args[1], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Rating, "rating", "r", 0,
		fmt.Sprintf("rating from %d to %d (required)", review.MinRating, review.MaxRating))
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}

func runReviewAdd(opts *ReviewAddOptions, id catalog.ID, text string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	a, err := openApp(cmd, opts.RootOptions, formatter)
	if err != nil {
		return err
	}
	defer closeApp(a)

	r, err := a.SubmitReview(cmd.Context(), id, text, opts.Rating)
	if err != nil {
		return reportError(formatter, "review not saved", err)
	}
	return formatter.Render(r, func(w io.Writer) {
		fmt.Fprintf(w, "Review saved for item %s (%d reviews)\n", id, len(a.Reviews.For(id)))
	})
}

func newReviewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list <item-id>",
		Short:         "List the reviews of an item",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			a, err := openApp(cmd, rootOpts, formatter)
			if err != nil {
				return err
			}
			defer closeApp(a)

			id := catalog.ID(args[0])
			result := ReviewListResult{Item: id, Reviews: a.Reviews.For(id)}
			return formatter.Render(result, func(w io.Writer) {
				writeReviewsText(w, result.Reviews)
			})
		},
	}
}
