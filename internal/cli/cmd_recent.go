package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// RecentCmd lists recently read books.
type RecentCmd struct {
	app *App
}

// NewRecentCmd creates the recent command.
func NewRecentCmd(app *App) *RecentCmd {
	return &RecentCmd{app: app}
}

// Register adds the recent command to the application.
func (cmd *RecentCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "recent",
		Usage:     "List recently read books",
		UsageText: "leaf recent",
		Action:    cmd.run,
	})
	return root
}

func (cmd *RecentCmd) run(ctx context.Context, c *cli.Command) error {
	records, err := cmd.app.Progress.Recent()
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	cmd.app.Out.PrintRecent(records)
	return nil
}
