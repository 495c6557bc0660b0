// Package cli wires the leaf command line: the root command, its
// global flags and the shared state every subcommand runs against.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/karitori/leaf/internal/config"
	"github.com/karitori/leaf/internal/logutil"
	"github.com/karitori/leaf/internal/output"
	"github.com/karitori/leaf/internal/store"
)

// Flags holds the global flag values shared by every command.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Plain      bool
	NoColor    bool
}

// App carries the services commands operate on. The root command's
// Before hook populates it; command structs hold a pointer to it from
// construction time.
type App struct {
	Config    *config.Config
	Progress  *store.ProgressStore
	Bookmarks *store.BookmarkStore
	Out       *output.Formatter
	Log       zerolog.Logger
	StateDir  string
}

// New assembles the root command with all subcommands registered.
func New(version string) *cli.Command {
	var logCloser func()

	flags := &Flags{}
	app := &App{}

	root := &cli.Command{
		Name:      "leaf",
		Usage:     "Read books in your terminal",
		UsageText: "leaf [global options] <file>\n   leaf [global options] command [command options]",
		Description: `Leaf opens EPUB, MOBI, Markdown and plain text books in a paginated
terminal reader and remembers where you stopped.

Run 'leaf <file>' to start reading. Progress, bookmarks and settings
live under the XDG state and config directories.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (trace, debug, info, warn, error)",
				Sources:     cli.EnvVars("LEAF_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <state-dir>/leaf.log)",
				Sources:     cli.EnvVars("LEAF_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("LEAF_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Aliases:     []string{"p"},
				Usage:       "use the line pager instead of the full-screen reader",
				Sources:     cli.EnvVars("LEAF_PLAIN"),
				Destination: &flags.Plain,
			},
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "disable colored output",
				Destination: &flags.NoColor,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if flags.NoColor {
				color.NoColor = true
			}

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			stateDir := store.StateDir()

			// Logs always go to a file. The reader owns the terminal,
			// so writing log lines to stderr would corrupt the screen.
			level := flags.LogLevel
			if level == "" {
				level = cfg.Log.Level
			}
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogFile(stateDir)
			}

			logger, closer, err := logutil.New(level, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			*app = App{
				Config:    cfg,
				Progress:  store.NewProgressStore(stateDir),
				Bookmarks: store.NewBookmarkStore(stateDir),
				Out:       output.NewFormatter(!isTTY(os.Stdout), os.Stdout),
				Log:       logger,
				StateDir:  stateDir,
			}
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	readCmd := NewReadCmd(flags, app)
	root = NewRecentCmd(app).Register(root)
	root = NewFormatsCmd(app).Register(root)
	root = NewCleanCmd(app).Register(root)
	root = NewPasswordCmd(app).Register(root)

	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() == 0 {
			return fmt.Errorf("no book given. Run 'leaf --help' for usage")
		}
		return readCmd.Run(ctx, c)
	}

	return root
}

func isTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
