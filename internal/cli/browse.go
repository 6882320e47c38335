package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KovyD20/Video-games-database-project/internal/app"
	"github.com/KovyD20/Video-games-database-project/internal/catalog"
	"github.com/KovyD20/Video-games-database-project/internal/config"
)

// BrowseOptions holds flags for the browse command.
type BrowseOptions struct {
	*RootOptions
	Pages  int
	Search string
}

// ItemSummary is one row of a catalog listing.
type ItemSummary struct {
	ID         catalog.ID `json:"id"`
	Name       string     `json:"name"`
	Released   string     `json:"released,omitempty"`
	Rating     float64    `json:"rating"`
	Metacritic *int       `json:"metacritic,omitempty"`
}

// BrowseResult is the browse command payload.
type BrowseResult struct {
	Items    []ItemSummary `json:"items"`
	Loaded   int           `json:"loaded"`
	NextPage int           `json:"next_page"`
	HasMore  bool          `json:"has_more"`
	Search   string        `json:"search,omitempty"`
}

// NewBrowseCommand creates the browse command.
func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BrowseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List catalog items page by page",
		Long: `Load catalog pages and list the items seen so far.

Each page is requested only while the catalog has more to give; an empty
page ends the listing. Items repeated across pages are listed once.

Example:
  gamesdb browse --pages 3
  gamesdb browse --pages 5 --search "zelda"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Pages, "pages", "p", 1, "number of pages to load")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "only list items whose name contains this text")

	return cmd
}

func runBrowse(opts *BrowseOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Pages < 1 {
		return formatter.Fail(ExitCommandError, ErrCodeValidation, "--pages must be at least 1", nil)
	}

	a, err := openApp(cmd, opts.RootOptions, formatter)
	if err != nil {
		return err
	}
	defer closeApp(a)

	if err := requireAPIKey(a, formatter); err != nil {
		return err
	}

	formatter.VerboseLog("Scrolling through up to %d page(s)", opts.Pages)
	if err := a.ScrollPages(cmd.Context(), opts.Pages); err != nil {
		return reportError(formatter, "failed to load catalog", err)
	}

	snap := a.Loader.Snapshot()
	matched := catalog.Filter(snap.Items, opts.Search)

	result := BrowseResult{
		Items:    make([]ItemSummary, 0, len(matched)),
		Loaded:   len(snap.Items),
		NextPage: snap.NextPage,
		HasMore:  snap.HasMore,
		Search:   opts.Search,
	}
	for _, it := range matched {
		result.Items = append(result.Items, ItemSummary{
			ID:         it.ID,
			Name:       it.Name,
			Released:   it.Released,
			Rating:     it.Rating,
			Metacritic: it.Metacritic,
		})
	}

	return formatter.Render(result, func(w io.Writer) {
		writeBrowseText(w, result)
	})
}

func writeBrowseText(w io.Writer, r BrowseResult) {
	for _, it := range r.Items {
		released := it.Released
		if released == "" {
			released = "TBA"
		}
		fmt.Fprintf(w, "%8s  %s (%s)  %s / 5\n",
			it.ID, it.Name, released, strconv.FormatFloat(it.Rating, 'f', -1, 64))
	}

	more := "end of catalog"
	if r.HasMore {
		more = fmt.Sprintf("next page %d", r.NextPage)
	}
	if r.Search != "" {
		fmt.Fprintf(w, "%d of %d loaded items match %q (%s)\n", len(r.Items), r.Loaded, r.Search, more)
		return
	}
	fmt.Fprintf(w, "%d items loaded (%s)\n", r.Loaded, more)
}

func requireAPIKey(a *app.App, f *OutputFormatter) error {
	if a.Config.APIKey != "" {
		return nil
	}
	return f.Fail(ExitCommandError, ErrCodeConfig,
		fmt.Sprintf("missing API key: set %s or pass --api-key", config.EnvAPIKey), nil)
}
