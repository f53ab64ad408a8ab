package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/nitron/internal/config"
	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/store/memory"
)

// keepOpen lets one memory store outlive the per-command Close.
type keepOpen struct{ domain.RecordStore }

func (keepOpen) Close() error { return nil }

type testEnv struct {
	store   *memory.Store
	cfg     *config.Config
	clock   time.Time
	backend string
}

func newTestEnv() *testEnv {
	env := &testEnv{
		cfg:   &config.Config{Store: config.StoreMemory, Location: time.UTC},
		clock: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
	}
	env.store = memory.New(time.UTC, env.tick)
	return env
}

func (e *testEnv) tick() time.Time {
	e.clock = e.clock.Add(time.Minute)
	return e.clock
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := RunWithOptions("v1.2.3", args, Options{
		Out: &out,
		Open: func(_ context.Context, backend string) (domain.RecordStore, *config.Config, error) {
			e.backend = backend
			return keepOpen{e.store}, e.cfg, nil
		},
		Now: func() time.Time { return e.clock },
	})
	return out.String(), err
}

func TestBuildParser(t *testing.T) {
	parser, cmds, err := buildParser(&runtime{globals: &GlobalFlags{}})
	require.NoError(t, err)
	require.NotNil(t, cmds.BookmarkAdd)
	require.NotNil(t, cmds.Import)

	names := map[string]bool{}
	for _, c := range parser.Commands() {
		names[c.Name] = true
	}
	for _, want := range []string{"bookmark", "history", "summary", "import"} {
		assert.True(t, names[want], "missing command %q", want)
	}
	assert.Len(t, parser.Find("bookmark").Commands(), 4)
	assert.Len(t, parser.Find("history").Commands(), 6)
}

func TestVersion(t *testing.T) {
	env := newTestEnv()
	out, err := env.run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "nitronctl v1.2.3\n", out)
}

func TestHelp(t *testing.T) {
	env := newTestEnv()
	out, err := env.run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "bookmark")
	assert.Contains(t, out, "history")
}

func TestUnknownCommand(t *testing.T) {
	env := newTestEnv()
	_, err := env.run(t, "frobnicate")
	assert.Error(t, err)
}

func TestBookmarkCommands(t *testing.T) {
	env := newTestEnv()

	out, err := env.run(t, "bookmark", "add", "https://a.example")
	require.NoError(t, err)
	assert.Equal(t, "Bookmarked https://a.example\n", out)

	_, err = env.run(t, "bookmark", "add", "https://b.example")
	require.NoError(t, err)

	out, err = env.run(t, "bookmark", "list")
	require.NoError(t, err)
	assert.Equal(t, "https://b.example\nhttps://a.example\n", out)

	out, err = env.run(t, "bookmark", "count")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	_, err = env.run(t, "bookmark", "delete", "https://a.example")
	require.NoError(t, err)

	out, err = env.run(t, "--json", "bookmark", "list")
	require.NoError(t, err)
	var urls []string
	require.NoError(t, json.Unmarshal([]byte(out), &urls))
	assert.Equal(t, []string{"https://b.example"}, urls)
}

func TestBookmarkAddRejectsInvalidURL(t *testing.T) {
	env := newTestEnv()

	_, err := env.run(t, "bookmark", "add", "ftp://files.example")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidURL))

	out, err := env.run(t, "bookmark", "list")
	require.NoError(t, err)
	assert.Equal(t, "No bookmarks\n", out)
}

func TestBookmarkAddRequiresURL(t *testing.T) {
	env := newTestEnv()
	_, err := env.run(t, "bookmark", "add")
	assert.Error(t, err)
}

func TestHistoryCommands(t *testing.T) {
	env := newTestEnv()

	out, err := env.run(t, "history", "recent")
	require.NoError(t, err)
	assert.Equal(t, "No history\n", out)

	for _, u := range []string{"https://a.example/x", "https://b.example", "https://a.example/y"} {
		_, err := env.run(t, "history", "add", u)
		require.NoError(t, err)
	}

	out, err = env.run(t, "history", "recent")
	require.NoError(t, err)
	assert.Equal(t, "https://a.example/y\n", out)

	out, err = env.run(t, "history", "list", "--by-day")
	require.NoError(t, err)
	assert.Contains(t, out, "Friday, March 15, 2024\n  https://a.example/y\n")

	out, err = env.run(t, "history", "count")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	_, err = env.run(t, "history", "delete", "https://b.example")
	require.NoError(t, err)
	out, err = env.run(t, "history", "list")
	require.NoError(t, err)
	assert.Equal(t, "https://a.example/y\nhttps://a.example/x\n", out)

	out, err = env.run(t, "history", "clear")
	require.NoError(t, err)
	assert.Equal(t, "History cleared\n", out)

	out, err = env.run(t, "--json", "history", "count")
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":0}`, out)
}

func TestHistoryRecentJSONEmpty(t *testing.T) {
	env := newTestEnv()
	out, err := env.run(t, "--json", "history", "recent")
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":null}`, out)
}

func TestSummaryCommand(t *testing.T) {
	env := newTestEnv()

	out, err := env.run(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "No browsing history yet")

	for _, u := range []string{"https://a.example/1", "https://a.example/2", "https://b.example"} {
		_, err := env.run(t, "history", "add", u)
		require.NoError(t, err)
	}

	out, err = env.run(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Sites Visited: 2")
	assert.Contains(t, out, "1. a.example (2 visits)")
}

func TestImportCommand(t *testing.T) {
	env := newTestEnv()
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	yaml := `---
- Developer:
    - Github:
        - href: https://github.com/
    - Broken:
        - href: ftp://nope.example
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	out, err := env.run(t, "import", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "Imported 1 of 2 bookmarks (0 already present, 1 invalid)\n", out)

	out, err = env.run(t, "--json", "import", "--file", path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":2,"added":0,"skipped":1,"invalid":1}`, out)
}

func TestImportCommandRequiresFile(t *testing.T) {
	env := newTestEnv()
	_, err := env.run(t, "import")
	assert.Error(t, err)
}

func TestStoreFlagIsPassedToOpener(t *testing.T) {
	env := newTestEnv()
	_, err := env.run(t, "--store", "sqlite", "bookmark", "count")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", env.backend)

	_, err = env.run(t, "--store", "mongo", "bookmark", "count")
	assert.Error(t, err)
}

func TestOpenErrorIsReported(t *testing.T) {
	var out bytes.Buffer
	err := RunWithOptions("dev", []string{"bookmark", "list"}, Options{
		Out: &out,
		Open: func(context.Context, string) (domain.RecordStore, *config.Config, error) {
			return nil, nil, domain.Unavailable("open", errors.New("connection refused"))
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}
