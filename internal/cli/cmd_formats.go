package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/karitori/leaf/internal/parser"
)

// FormatsCmd prints the supported book formats.
type FormatsCmd struct {
	app *App
}

// NewFormatsCmd creates the formats command.
func NewFormatsCmd(app *App) *FormatsCmd {
	return &FormatsCmd{app: app}
}

// Register adds the formats command to the application.
func (cmd *FormatsCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "formats",
		Usage:     "List supported book formats",
		UsageText: "leaf formats",
		Action:    cmd.run,
	})
	return root
}

func (cmd *FormatsCmd) run(ctx context.Context, c *cli.Command) error {
	cmd.app.Out.PrintFormats(parser.Supported())
	return nil
}
