package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karitori/leaf/internal/config"
	"github.com/karitori/leaf/internal/output"
	"github.com/karitori/leaf/internal/store"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	dir := t.TempDir()
	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	var buf bytes.Buffer
	return &App{
		Config:    cfg,
		Progress:  store.NewProgressStore(dir),
		Bookmarks: store.NewBookmarkStore(dir),
		Out:       output.NewFormatter(false, &buf),
		Log:       zerolog.Nop(),
		StateDir:  dir,
	}, &buf
}

func TestRecentCommand(t *testing.T) {
	app, buf := newTestApp(t)

	require.NoError(t, app.Progress.Put(store.Progress{
		FileHash:     "aaaa",
		FileName:     "moby.epub",
		CurrentPage:  10,
		TotalPages:   100,
		LastReadTime: time.Now(),
	}))

	cmd := NewRecentCmd(app)
	require.NoError(t, cmd.run(context.Background(), nil))

	assert.Contains(t, buf.String(), "moby.epub")
	assert.Contains(t, buf.String(), "page 10/100 (10%)")
}

func TestRecentCommandEmpty(t *testing.T) {
	app, buf := newTestApp(t)

	cmd := NewRecentCmd(app)
	require.NoError(t, cmd.run(context.Background(), nil))

	assert.Contains(t, buf.String(), "No reading history yet.")
}

func TestFormatsCommand(t *testing.T) {
	app, buf := newTestApp(t)

	cmd := NewFormatsCmd(app)
	require.NoError(t, cmd.run(context.Background(), nil))

	out := buf.String()
	assert.Contains(t, out, "Supported formats")
	assert.Contains(t, out, "EPUB (.epub)")
	assert.Contains(t, out, "Text (.txt)")
}

func TestCleanForced(t *testing.T) {
	app, buf := newTestApp(t)

	require.NoError(t, app.Progress.Put(store.Progress{FileHash: "aaaa", FileName: "a.txt"}))
	_, err := app.Bookmarks.Add("aaaa", store.Bookmark{PageNumber: 1})
	require.NoError(t, err)

	cmd := NewCleanCmd(app)
	cmd.force = true
	require.NoError(t, cmd.run(context.Background(), nil))

	assert.Contains(t, buf.String(), "Removed 1 books and 1 bookmarks.")

	_, err = app.Progress.Get("aaaa")
	assert.ErrorIs(t, err, store.ErrNotFound)
	marks, err := app.Bookmarks.List("aaaa")
	require.NoError(t, err)
	assert.Empty(t, marks)
}

func TestPasswordResetWithoutPassword(t *testing.T) {
	app, buf := newTestApp(t)

	cmd := NewPasswordCmd(app)
	require.NoError(t, cmd.runReset(context.Background(), nil))

	assert.Contains(t, buf.String(), "No password is set.")
}

func TestNewRegistersCommands(t *testing.T) {
	root := New("1.2.3")

	assert.Equal(t, "leaf", root.Name)
	assert.Equal(t, "1.2.3", root.Version)
	assert.NotNil(t, root.Action)

	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"recent", "formats", "clean", "password"}, names)
}
