package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tasklist/internal/config"
	"tasklist/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	factory AppFactory
	config  *config.Config
	app     *App
	release func() error
}

// NewRootCommand creates the root cobra command with global flags. The
// application is built by factory once flags and environment are read.
func NewRootCommand(factory AppFactory) *RootCommand {
	root := &RootCommand{factory: factory}

	root.cmd = &cobra.Command{
		Use:   "tl",
		Short: "A command-line task list",
		Long: `Task List (tl) keeps an ordered list of things to do.

FEATURES:
  • Add, delete, complete and toggle tasks
  • Reorder tasks by position or interactively
  • Export to JSON, YAML or CSV and import browser dumps
  • Fully configurable via config file, environment variables and flags

EXAMPLES:
  tl add Buy milk                          # Append a task
  tl list                                  # Show all tasks in order
  tl list --status pending --search milk   # Filter the list
  tl complete 1                            # Complete the first task
  tl toggle 1710409800000                  # Toggle a task by ID
  tl move 3 1                              # Move the third task to the top
  tl export --format csv > tasks.csv       # Export to CSV
  tl import tasks.json                     # Replace the list from a file
  tl clear                                 # Remove every task
  tl lists --storage-key work              # Show stored lists, marking "work"
  tl ui                                    # Interactive list

CONFIGURATION:
  Configuration follows this priority order: flags > environment variables > config file > defaults
  The config file is config.yaml in the storage directory, or the file named by --config / TL_CONFIG.

  Storage Configuration:
    TL_DB_DIR                              Storage directory (default: ~/.tasklist)
    TL_DB_FILENAME                         Database filename (default: tl.db)
    TL_STORAGE_KEY                         Key holding the list (default: tasks)
    TL_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    TL_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)

  Display Configuration:
    TL_DATE_FORMAT                         Date added format (default: 1/2/2006)
    TL_LIST_FORMAT                         Default list format (default: table)
    TL_DONE_MARK                           Completed mark (default: [x])
    TL_PENDING_MARK                        Pending mark (default: [ ])
    TL_NAME_WIDTH                          Cut listed names to this width, 0 for none (default: 60)

  Application Configuration:
    TL_APP_TIMEOUT                         Command timeout (default: 60s)
    TL_APP_VERBOSE                         Enable verbose output (default: false)
    TL_DEBUG                               Print debug output to stderr

TASK REFERENCES:
  Commands taking a task accept its position in the list (1 is the first task)
  or its ID as shown by "tl list --format json".

GETTING HELP:
  tl [command] --help                      # Get help for any specific command
  tl completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and releases the application afterwards
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.release != nil {
		if closeErr := r.release(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close task store: %w", closeErr)
		}
		r.release = nil
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides TL_CONFIG)")

	// Storage configuration
	flags.String("db-dir", "", "Storage directory (overrides TL_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TL_DB_FILENAME)")
	flags.String("storage-key", "", "Key holding the list (overrides TL_STORAGE_KEY)")

	// Display configuration
	flags.String("date-format", "", "Date added format (overrides TL_DATE_FORMAT)")
	flags.String("list-format", "", "Default list format (overrides TL_LIST_FORMAT)")
	flags.Int("name-width", 0, "Cut listed names to this width, 0 for none (overrides TL_NAME_WIDTH)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides TL_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TL_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	addCmd := &cobra.Command{
		Use:   "add [task name]",
		Short: "Add a task to the end of the list",
		Long:  "Add a task to the end of the list. All arguments are joined into the name; a blank name adds nothing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewAddCommand(r.app).Execute(ctx, args)
		},
	}

	listOpts := ListOptions{}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in order",
		Long: `List tasks in list order with their position, completion mark, name and date added.

Examples:
  tl list                        # Table of all tasks
  tl list --format json          # The tasks as JSON
  tl list --status completed     # Only completed tasks
  tl list --search "milk"        # Tasks whose name contains "milk"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewListCommand(r.app).Execute(ctx, listOpts)
		},
	}
	listCmd.Flags().StringVarP(&listOpts.Format, "format", "f", "", "Output format: table or json (default from TL_LIST_FORMAT)")
	listCmd.Flags().StringVarP(&listOpts.Status, "status", "s", "", "Filter by status: all, pending or completed")
	listCmd.Flags().StringVarP(&listOpts.Search, "search", "q", "", "Filter by text in the task name")

	deleteCmd := &cobra.Command{
		Use:   "delete <task>",
		Short: "Delete a task",
		Long:  "Delete a task by list position or ID. This cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewDeleteCommand(r.app).Execute(ctx, args)
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <task>",
		Short: "Flip a task between completed and pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewToggleCommand(r.app).Execute(ctx, args)
		},
	}

	completeCmd := &cobra.Command{
		Use:   "complete <task>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewCompleteCommand(r.app).Execute(ctx, args)
		},
	}

	moveCmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a task to another position",
		Long: `Move the task at position <from> to position <to>. Positions start at 1
and <to> is counted after the task has been taken out of the list.

Example:
  tl move 3 1    # Move the third task to the top`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewMoveCommand(r.app).Execute(ctx, args)
		},
	}

	exportOpts := ExportOptions{}
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the list",
		Long: `Export the whole list in the specified format.

Supported formats:
  json - the stored JSON array (default)
  yaml - YAML sequence of tasks
  csv  - comma-separated values with a header row`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewExportCommand(r.app).Execute(ctx, exportOpts)
		},
	}
	exportCmd.Flags().StringVarP(&exportOpts.Format, "format", "f", "json", "Export format: json, yaml or csv")
	exportCmd.Flags().StringVarP(&exportOpts.Output, "output", "o", "", "Write to a file instead of stdout")

	var importFormat string
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the list from a file",
		Long: `Replace the whole list with the tasks in a file. "-" reads stdin.

The format is taken from the file extension unless --format is given. A JSON
file in the stored shape, such as a browser local storage dump, is accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewImportCommand(r.app).Execute(ctx, args[0], importFormat)
		},
	}
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Import format: json, yaml or csv")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every task",
		Long:  "Remove every task and the stored list itself. This cannot be undone; export first to keep a copy.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewClearCommand(r.app).Execute(ctx)
		},
	}

	listsCmd := &cobra.Command{
		Use:   "lists",
		Short: "Show the keys in the task store",
		Long:  `Show every key in the task store. The key selected by --storage-key or TL_STORAGE_KEY is marked with "*".`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewListsCommand(r.app).Execute(ctx)
		},
	}

	uiCmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Interactive sessions are not bound by the command timeout
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			return NewUICommand(r.app).Execute(ctx)
		},
	}

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		deleteCmd,
		toggleCmd,
		completeCmd,
		moveCmd,
		exportCmd,
		importCmd,
		clearCmd,
		listsCmd,
		uiCmd,
	)
}

// commandContext bounds a command by the configured application timeout
func (r *RootCommand) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// setup loads configuration and builds the application
func (r *RootCommand) setup(cmd *cobra.Command) error {
	if r.app != nil {
		return nil
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg
	logging.SetOutput(cmd.ErrOrStderr())
	logging.SetVerbose(cfg.Application.Verbose)
	logging.Debugf("config: storage %s key %q\n", cfg.GetDatabasePath(), cfg.Storage.Key)

	app, release, err := r.factory(cfg)
	if err != nil {
		return err
	}
	r.app = app.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	r.release = release
	return nil
}

// loadConfig reads defaults, config file and environment, then applies the
// flags that were set on the command line
func (r *RootCommand) loadConfig() (*config.Config, error) {
	flags := r.cmd.PersistentFlags()

	loader := config.NewLoader()
	if path, _ := flags.GetString("config"); strings.TrimSpace(path) != "" {
		loader = loader.WithConfigFile(path)
	}

	overrides := &config.ConfigOverrides{}
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("storage-key") {
		v, _ := flags.GetString("storage-key")
		overrides.StorageKey = &v
	}
	if flags.Changed("date-format") {
		v, _ := flags.GetString("date-format")
		overrides.DateFormat = &v
	}
	if flags.Changed("list-format") {
		v, _ := flags.GetString("list-format")
		overrides.ListFormat = &v
	}
	if flags.Changed("name-width") {
		v, _ := flags.GetInt("name-width")
		overrides.NameWidth = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return loader.LoadWithOverrides(overrides)
}
