package cli

import (
	"errors"
	"io"
	"os"

	"github.com/dmitrijs2005/resilia/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the resilia command tree. Without a subcommand the
// interactive REPL is started. in, out and logOut default to the process
// streams when nil.
func NewRootCommand(in io.Reader, out, logOut io.Writer) *cobra.Command {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if logOut == nil {
		logOut = os.Stderr
	}

	var app *App

	// run closes the store once the command is done, whatever its outcome.
	run := func(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) (err error) {
			defer func() { err = errors.Join(err, app.Close()) }()
			return fn(cmd, args)
		}
	}

	root := &cobra.Command{
		Use:           "resilia",
		Short:         "Resilia wellness companion, device-local edition",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			app, err = NewApp(cmd.Context(), cfg, in, out, logOut)
			return err
		},
		RunE: run(func(cmd *cobra.Command, args []string) error {
			app.Root(cmd.Context())
			return nil
		}),
	}
	root.SetOut(out)
	root.SetErr(logOut)
	config.AddFlags(root.PersistentFlags())

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return app.Register(cmd.Context())
		}),
	}

	var email string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in; the password is always prompted for",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return app.Login(cmd.Context(), email)
		}),
	}
	loginCmd.Flags().StringVarP(&email, "email", "e", "", "account email")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return app.Logout(cmd.Context())
		}),
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in profile",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return app.Whoami(cmd.Context())
		}),
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Edit the profile interactively",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return app.EditProfile(cmd.Context())
		}),
	}

	var clearPhoto bool
	photoCmd := &cobra.Command{
		Use:   "photo [IMAGE_FILE]",
		Short: "Set or remove the profile photo",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return app.SetPhoto(cmd.Context(), path, clearPhoto)
		}),
	}
	photoCmd.Flags().BoolVar(&clearPhoto, "clear", false, "remove the profile photo")

	moodCmd := &cobra.Command{
		Use:   "mood [LABEL|NUMBER]",
		Short: "Log a mood check-in",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			var label string
			if len(args) == 1 {
				label = args[0]
			}
			return app.Mood(cmd.Context(), label)
		}),
	}

	moodsCmd := &cobra.Command{
		Use:   "moods",
		Short: "Show the mood history",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return app.Moods(cmd.Context())
		}),
	}

	trendsCmd := &cobra.Command{
		Use:   "trends",
		Short: "Show mood statistics",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return app.Trends(cmd.Context())
		}),
	}

	var title string
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Record a conversation",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return app.Chat(cmd.Context(), title)
		}),
	}
	chatCmd.Flags().StringVarP(&title, "title", "t", "", "conversation title")

	var all bool
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversations",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return app.History(cmd.Context(), all)
		}),
	}
	historyCmd.Flags().BoolVarP(&all, "all", "a", false, "show every conversation")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show device and store details",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return app.Status(cmd.Context())
		}),
	}

	var yes bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase every account, the session and all history on this device",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return app.Reset(cmd.Context(), yes)
		}),
	}
	resetCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	root.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd, profileCmd, photoCmd,
		moodCmd, moodsCmd, trendsCmd, chatCmd, historyCmd, statusCmd, resetCmd)
	return root
}
