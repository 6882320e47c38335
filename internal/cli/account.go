package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KovyD20/Video-games-database-project/internal/session"
)

// RegisterOptions holds flags for the register command.
type RegisterOptions struct {
	*RootOptions
	session.Registration
}

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	session.Credentials
}

// WhoamiResult is the whoami command payload.
type WhoamiResult struct {
	SignedIn bool          `json:"signed_in"`
	User     *session.User `json:"user,omitempty"`
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create the local profile and sign in",
		Long: `Create the local profile and sign in.

Only one profile is kept; registering again replaces it. The password is
required but never stored.

Example:
  gamesdb register --email a@x.com --password p --username a`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password (not stored)")
	cmd.Flags().StringVar(&opts.Username, "username", "", "display name")
	cmd.Flags().StringVar(&opts.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&opts.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "phone number")

	return cmd
}

func runRegister(opts *RegisterOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	a, err := openApp(cmd, opts.RootOptions, formatter)
	if err != nil {
		return err
	}
	defer closeApp(a)

	u, err := a.Sessions.Register(cmd.Context(), opts.Registration)
	if err != nil {
		return reportError(formatter, "registration failed", err)
	}
	return formatter.Render(u, func(w io.Writer) {
		fmt.Fprintf(w, "Registered and signed in as %s\n", u.DisplayName())
	})
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the local profile",
		Long: `Sign in to the local profile by email.

The password must be given but is not checked.

Example:
  gamesdb login --email a@x.com --password p`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password")

	return cmd
}

func runLogin(opts *LoginOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	a, err := openApp(cmd, opts.RootOptions, formatter)
	if err != nil {
		return err
	}
	defer closeApp(a)

	u, err := a.Sessions.Login(cmd.Context(), opts.Credentials)
	if err != nil {
		return reportError(formatter, "login failed", err)
	}
	return formatter.Render(u, func(w io.Writer) {
		fmt.Fprintf(w, "Welcome back, %s\n", u.DisplayName())
	})
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and delete the local profile",
		Long: `Sign out and delete the local profile.

Reviews already posted are kept. Logging out twice is not an error.`,
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

			if err := a.Sessions.Logout(cmd.Context()); err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeDatabase, "logout failed", err)
			}
			return formatter.Render(WhoamiResult{SignedIn: false}, func(w io.Writer) {
				fmt.Fprintln(w, "Signed out")
			})
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Print the signed-in profile",
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

			result := WhoamiResult{}
			if u, ok := a.Sessions.Current(); ok {
				result = WhoamiResult{SignedIn: true, User: &u}
			}
			return formatter.Render(result, func(w io.Writer) {
				writeWhoamiText(w, result)
			})
		},
	}
}

func writeWhoamiText(w io.Writer, r WhoamiResult) {
	if !r.SignedIn {
		fmt.Fprintln(w, "Not signed in")
		return
	}
	u := r.User
	fmt.Fprintf(w, "Signed in as %s <%s>\n", u.DisplayName(), u.Email)
	if name := u.FirstName + " " + u.LastName; name != " " {
		fmt.Fprintf(w, "Name:  %s\n", name)
	}
	if u.Phone != "" {
		fmt.Fprintf(w, "Phone: %s\n", u.Phone)
	}
	fmt.Fprintf(w, "ID:    %s\n", u.ID)
}
