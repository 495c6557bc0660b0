package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
)

// CleanCmd wipes reading history and bookmarks.
type CleanCmd struct {
	app *App

	// flags
	force bool
}

// NewCleanCmd creates the clean command.
func NewCleanCmd(app *App) *CleanCmd {
	return &CleanCmd{app: app}
}

// Register adds the clean command to the application.
func (cmd *CleanCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "clean",
		Usage:     "Delete reading history and bookmarks",
		UsageText: "leaf clean [--force]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return root
}

func (cmd *CleanCmd) run(ctx context.Context, c *cli.Command) error {
	if !cmd.force {
		var confirm bool
		err := huh.NewConfirm().
			Title("Delete all reading data?").
			Description("History and bookmarks under " + cmd.app.StateDir + " will be removed.").
			Value(&confirm).
			Run()
		if err != nil {
			return err
		}
		if !confirm {
			cmd.app.Out.PrintInfo("Nothing deleted.")
			return nil
		}
	}

	books, err := cmd.app.Progress.Clear()
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	marks, err := cmd.app.Bookmarks.ClearAll()
	if err != nil {
		return fmt.Errorf("clear bookmarks: %w", err)
	}

	cmd.app.Out.PrintSuccess(fmt.Sprintf("Removed %d books and %d bookmarks.", books, marks))
	return nil
}
