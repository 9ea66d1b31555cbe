package cli

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"redmine-hours/internal/config"
	"redmine-hours/internal/tracker"
	"redmine-hours/internal/validation"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd       *cobra.Command
	config    *config.Config
	manager   *tracker.Manager
	validator *validation.InputValidator

	// newManager builds the manager once the configuration is resolved;
	// tests replace it to inject a fake transport.
	newManager func(cfg *config.Config) *tracker.Manager
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand() *RootCommand {
	root := &RootCommand{
		validator: validation.NewInputValidator(),
		newManager: func(cfg *config.Config) *tracker.Manager {
			return tracker.NewManager(config.CreateClient(cfg), cfg.Redmine.User)
		},
	}

	root.cmd = &cobra.Command{
		Use:   "rh",
		Short: "Review and book your Redmine work hours",
		Long: `Redmine Hours (rh) reconciles locally edited work hours against a
Redmine time-tracking server and colors each day against the expected
schedule.

EXAMPLES:
  rh month                        # Show the current month, day by day
  rh day 2024-03-12               # Select a day and list its entries
  rh add 1234 5678                # Put issues on the selected day
  rh log 1234 1.5 -m "review"     # Book hours on an issue
  rh upload                       # Push all pending changes
  rh status                       # Show what would be uploaded

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    RH_URL               Redmine server URL
    RH_KEY               API key
    RH_USER              User whose entries are loaded (default: me)
    RH_HTTP_TIMEOUT      HTTP timeout (default: 30s)
    RH_DEBUG             Enable debug logging (default: false)

  A .env file in the working directory is loaded on startup.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.configure()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("url", "", "Redmine server URL (overrides RH_URL)")
	flags.String("key", "", "API key (overrides RH_KEY)")
	flags.String("user", "", "User whose entries are loaded (overrides RH_USER)")
	flags.Duration("timeout", 0, "HTTP timeout (overrides RH_HTTP_TIMEOUT)")
	flags.Bool("debug", false, "Enable debug logging (overrides RH_DEBUG)")
}

// configure resolves the configuration from defaults, environment and
// flags, sets up logging and builds the reconciliation manager.
func (r *RootCommand) configure() error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return err
	}
	r.config = cfg

	if cfg.Application.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	if r.manager == nil {
		r.manager = r.newManager(cfg)
	}
	return nil
}

// overridesFromFlags collects the flags the user explicitly set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("url") {
		value, _ := flags.GetString("url")
		overrides.URL = &value
	}
	if flags.Changed("key") {
		value, _ := flags.GetString("key")
		overrides.Key = &value
	}
	if flags.Changed("user") {
		value, _ := flags.GetString("user")
		overrides.User = &value
	}
	if flags.Changed("timeout") {
		value, _ := flags.GetDuration("timeout")
		overrides.Timeout = &value
	}
	if flags.Changed("debug") {
		value, _ := flags.GetBool("debug")
		overrides.Debug = &value
	}

	return overrides
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	monthCmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show a month against the expected schedule",
		Long: `Load a month of time entries and print one line per day with the
booked hours, the expected hours and the day's status.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewMonthCommand(r).Execute(cmd.Context(), args)
		},
	}

	dayCmd := &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Select a day and list its entries",
		Long: `Select a day (today when omitted). Issues worked on during the
preceding week are carried onto the day as zero-hour placeholders, and
their details are loaded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewDayCommand(r).Execute(cmd.Context(), args)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <issue-id>...",
		Short: "Put issues on the selected day",
		Long: `Create zero-hour entries on the selected day for the given issue
ids. Unknown ids are looked up on the server; ids that do not resolve
are reported without blocking the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewAddCommand(r).Execute(cmd.Context(), args)
		},
	}

	logCmd := &cobra.Command{
		Use:   "log <issue-id> <hours>",
		Short: "Book hours on an issue",
		Long: `Book hours on an issue for the selected day. A negative amount takes
hours back; taking back more than is booked is rejected. The entry is
created first when the issue is not on the day yet.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comment, _ := cmd.Flags().GetString("message")
			return NewLogCommand(r).Execute(cmd.Context(), args, comment, cmd.Flags().Changed("message"))
		},
	}
	logCmd.Flags().StringP("message", "m", "", "Comment for the entry")

	doneCmd := &cobra.Command{
		Use:   "done <issue-id> <ratio>",
		Short: "Set an issue's completion ratio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewDoneCommand(r).Execute(cmd.Context(), args)
		},
	}

	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Push all pending changes to the server",
		Long: `Walk every entry and issue, pushing creates, updates and deletions
for the ones that diverged from the server. Failures of single items
are collected and reported together; the rest is uploaded anyway.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewUploadCommand(r).Execute(cmd.Context(), args)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the pending changes without uploading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewStatusCommand(r).Execute(cmd.Context(), args)
		},
	}

	reloadCmd := &cobra.Command{
		Use:   "reload",
		Short: "Drop the loaded state and fetch the month again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewReloadCommand(r).Execute(cmd.Context(), args)
		},
	}

	r.cmd.AddCommand(monthCmd, dayCmd, addCmd, logCmd, doneCmd, uploadCmd, statusCmd, reloadCmd)
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now
