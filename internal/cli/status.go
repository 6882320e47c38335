package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// StatusResult is the status command payload.
type StatusResult struct {
	Database  string   `json:"database"`
	Keys      []string `json:"keys"`
	LastWrite string   `json:"last_write,omitempty"`
	SignedIn  bool     `json:"signed_in"`
	User      string   `json:"user,omitempty"`
	Reviews   int      `json:"reviews"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what the local database holds",
		Long: `Show the stored records, the most recent write, the signed-in user and
the number of saved reviews.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			a, err := openApp(cmd, rootOpts, formatter)
			if err != nil {
				return err
			}
			defer closeApp(a)

			st, err := a.Status(cmd.Context())
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to read database", err)
			}

			result := StatusResult{
				Database:  st.Database,
				Keys:      st.Keys,
				LastWrite: st.LastWrite,
				Reviews:   st.Reviews,
			}
			if st.User != nil {
				result.SignedIn = true
				result.User = st.User.DisplayName()
			}
			return formatter.Render(result, func(w io.Writer) {
				writeStatusText(w, result)
			})
		},
	}
}

func writeStatusText(w io.Writer, r StatusResult) {
	fmt.Fprintf(w, "Database: %s\n", r.Database)
	if len(r.Keys) == 0 {
		fmt.Fprintln(w, "Stored:   nothing yet")
	} else {
		fmt.Fprintf(w, "Stored:   %s (last write: %s)\n", strings.Join(r.Keys, ", "), r.LastWrite)
	}
	if r.SignedIn {
		fmt.Fprintf(w, "Session:  %s\n", r.User)
	} else {
		fmt.Fprintln(w, "Session:  not signed in")
	}
	fmt.Fprintf(w, "Reviews:  %d\n", r.Reviews)
}
