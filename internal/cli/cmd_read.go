package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/karitori/leaf/internal/auth"
	"github.com/karitori/leaf/internal/output"
	"github.com/karitori/leaf/internal/pager"
	"github.com/karitori/leaf/internal/paginate"
	"github.com/karitori/leaf/internal/reading"
	"github.com/karitori/leaf/internal/tui"
)

// ReadCmd opens a book for reading. It runs as the root action rather
// than a named subcommand.
type ReadCmd struct {
	flags *Flags
	app   *App
}

// NewReadCmd creates the read command.
func NewReadCmd(flags *Flags, app *App) *ReadCmd {
	return &ReadCmd{flags: flags, app: app}
}

// Run opens the book named by the first argument and hands it to the
// selected front end.
func (cmd *ReadCmd) Run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	interactive := isTTY(os.Stdin) && isTTY(os.Stdout)

	guard := auth.NewGuard(cmd.app.Config)
	if guard.Enabled() {
		if !interactive {
			return errors.New("a password is set; reading requires an interactive terminal")
		}
		if err := verifyGuard(guard); err != nil {
			return err
		}
	}

	rows, cols := paginate.DetectViewport()

	if interactive {
		cmd.app.Out.StartSpinner("Opening " + filepath.Base(path))
	}
	sess, err := reading.Open(path, rows, cols, reading.Stores{
		Progress:  cmd.app.Progress,
		Bookmarks: cmd.app.Bookmarks,
	}, cmd.app.Log)
	cmd.app.Out.StopSpinner()
	if err != nil {
		return err
	}

	doc := sess.Document()
	cmd.app.Out.PrintSplash(output.SplashInfo{
		Title:      doc.Title,
		Author:     doc.Author,
		Format:     doc.Format,
		Chapters:   doc.TotalChapters(),
		Pages:      sess.TotalPages(),
		ResumePage: sess.PageNumber(),
	})

	if !interactive {
		content, _ := sess.Flatten()
		_, _ = io.WriteString(os.Stdout, content+"\n")
		return sess.Close()
	}

	if cmd.flags.Plain || cmd.app.Config.Reading.PlainPager {
		return cmd.runPager(sess, rows, cols)
	}

	if err := tui.Run(sess, cmd.app.Log); err != nil {
		_ = sess.Close()
		return err
	}
	return nil
}

// runPager drives the line pager over the flattened book and maps the
// final cursor back to a page before saving.
func (cmd *ReadCmd) runPager(sess *reading.Session, rows, cols int) error {
	content, starts := sess.Flatten()

	pg := pager.New(content, rows, cols)
	if n := sess.PageNumber(); n >= 1 && n <= len(starts) {
		pg.SetStart(starts[n-1])
	}

	line, err := pg.Run()
	if err != nil {
		_ = sess.Close()
		return err
	}
	if page, ok := sess.PageForLine(line); ok {
		sess.JumpToPage(page.Number)
	}
	return sess.Close()
}

// promptPassword collects one password attempt through a huh form.
func promptPassword(attempt int) (string, error) {
	title := "Password"
	if attempt > 1 {
		title = fmt.Sprintf("Password (attempt %d of %d)", attempt, auth.MaxAttempts)
	}

	var password string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Run()
	return password, err
}

func verifyGuard(guard *auth.Guard) error {
	err := guard.Verify(promptPassword)
	if errors.Is(err, auth.ErrLocked) {
		return errors.New("too many failed password attempts")
	}
	return err
}
