package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/karitori/leaf/internal/auth"
)

// PasswordCmd manages the startup password.
type PasswordCmd struct {
	app *App
}

// NewPasswordCmd creates the password command.
func NewPasswordCmd(app *App) *PasswordCmd {
	return &PasswordCmd{app: app}
}

// Register adds the password command to the application.
func (cmd *PasswordCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "password",
		Usage:     "Manage the startup password",
		UsageText: "leaf password <set|reset>",
		Commands: []*cli.Command{
			{
				Name:   "set",
				Usage:  "Set or change the password",
				Action: cmd.runSet,
			},
			{
				Name:   "reset",
				Usage:  "Remove the password",
				Action: cmd.runReset,
			},
		},
	})
	return root
}

func (cmd *PasswordCmd) runSet(ctx context.Context, c *cli.Command) error {
	guard := auth.NewGuard(cmd.app.Config)

	// Changing an existing password requires the current one first.
	if guard.Enabled() {
		if err := verifyGuard(guard); err != nil {
			return err
		}
	}

	var password, confirm string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("New password").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("password must not be empty")
				}
				return nil
			}).
			Value(&password),
		huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	if err := guard.Set(password); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	cmd.app.Out.PrintSuccess("Password updated.")
	return nil
}

func (cmd *PasswordCmd) runReset(ctx context.Context, c *cli.Command) error {
	guard := auth.NewGuard(cmd.app.Config)
	if !guard.Enabled() {
		cmd.app.Out.PrintInfo("No password is set.")
		return nil
	}

	if err := verifyGuard(guard); err != nil {
		return err
	}
	if err := guard.Reset(); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	cmd.app.Out.PrintSuccess("Password removed.")
	return nil
}
