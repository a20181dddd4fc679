package cli

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/sheettracker/internal/gateway"
	"github.com/idilsaglam/sheettracker/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const readme = `# Blind 75
- [Two Sum](https://leetcode.com/problems/two-sum)
- [Valid Anagram](https://leetcode.com/problems/valid-anagram) and [ignored](https://x)
plain text line
`

type result struct {
	code int
	out  string
	err  string
}

// harness runs commands against one data dir with captured output.
type harness struct {
	t   *testing.T
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SHEETTRACKER_DATA_DIR", "")
	t.Setenv("SHEETTRACKER_SERVER_URL", "")

	prevLogger := newLogger
	newLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }
	t.Cleanup(func() { newLogger = prevLogger })
	return &harness{t: t, dir: t.TempDir()}
}

func (h *harness) run(input string, args ...string) result {
	h.t.Helper()
	var out, errOut bytes.Buffer
	prevOut, prevErr, prevIn := ui.Out, ui.Err, stdin
	ui.Out, ui.Err, stdin = &out, &errOut, strings.NewReader(input)
	defer func() { ui.Out, ui.Err, stdin = prevOut, prevErr, prevIn }()

	code := Run(append([]string{"--data-dir", h.dir}, args...))
	return result{code: code, out: out.String(), err: errOut.String()}
}

func markdownServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/readme.md" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, readme)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestImportGitHubThenList(t *testing.T) {
	h := newHarness(t)
	upstream := markdownServer(t)

	res := h.run("", "import", "github", upstream.URL+"/readme.md")
	require.Equal(t, exitOK, res.code, res.err)
	assert.Contains(t, res.out, "Added 2 questions from GitHub.")

	// same document again: everything is already tracked
	res = h.run("", "import", "github", upstream.URL+"/readme.md")
	require.Equal(t, exitOK, res.code, res.err)
	assert.Contains(t, res.out, "Added 2 questions from GitHub. (2 already tracked)")

	res = h.run("", "ls", "--links")
	require.Equal(t, exitOK, res.code, res.err)
	assert.Contains(t, res.out, " 1. ")
	assert.Contains(t, res.out, "Two Sum")
	assert.Contains(t, res.out, "Valid Anagram")
	assert.Contains(t, res.out, "https://leetcode.com/problems/two-sum")
	assert.NotContains(t, res.out, "ignored")
	assert.Contains(t, res.out, "GitHub Import")
}

func TestImportExcelCSV(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "sheet.csv")
	require.NoError(t, os.WriteFile(path, []byte("Problem Name,URL\nTwo Sum,https://a\n,https://b\n"), 0o644))

	res := h.run("", "import", "excel", path)
	require.Equal(t, exitOK, res.code, res.err)
	assert.Contains(t, res.out, "Added 2 questions from Excel.")

	res = h.run("", "ls")
	assert.Contains(t, res.out, "Untitled Question")
	assert.Contains(t, res.out, "Excel Import")
}

func TestImportPartialFailure(t *testing.T) {
	h := newHarness(t)
	upstream := markdownServer(t)

	res := h.run("", "import", "github", upstream.URL+"/readme.md", upstream.URL+"/missing.md")

	assert.Equal(t, exitErr, res.code)
	assert.Contains(t, res.out, "Added 2 questions from GitHub.")
	assert.Contains(t, res.err, "Import failed: "+upstream.URL+"/missing.md")
	assert.Contains(t, res.err, "1 of 2 imports failed")
}

func TestImportInvalidURL(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "import", "github", "not a url")

	assert.Equal(t, exitErr, res.code)
	assert.Contains(t, res.err, "Import failed")
}

func TestImportThroughRemoteGateway(t *testing.T) {
	h := newHarness(t)
	upstream := markdownServer(t)
	svc := gateway.NewService(gateway.NewHTTPFetcher(upstream.Client()), nil)
	gw := httptest.NewServer(gateway.NewServer(gateway.DefaultConfig(), svc, nil).Handler())
	t.Cleanup(gw.Close)

	res := h.run("", "--server", gw.URL, "import", "github", upstream.URL+"/readme.md")
	require.Equal(t, exitOK, res.code, res.err)
	assert.Contains(t, res.out, "Added 2 questions from GitHub.")

	res = h.run("", "--server", gw.URL, "import", "github", upstream.URL+"/missing.md")
	assert.Equal(t, exitErr, res.code)
	assert.Contains(t, res.err, "Failed to parse GitHub content")
}

func TestDoneCelebratesOnlyOnTransition(t *testing.T) {
	h := newHarness(t)
	upstream := markdownServer(t)
	require.Equal(t, exitOK, h.run("", "import", "github", upstream.URL+"/readme.md").code)

	res := h.run("", "done", "1")
	require.Equal(t, exitOK, res.code, res.err)
	assert.Contains(t, res.out, "marked done")
	assert.NotContains(t, res.out, "All questions completed!")

	res = h.run("", "done", "2")
	require.Equal(t, exitOK, res.code, res.err)
	assert.Contains(t, res.out, "All questions completed!")

	res = h.run("", "ls", "--filter", "pending")
	assert.Contains(t, res.out, "no questions match your filter")

	res = h.run("", "done", "2")
	assert.Contains(t, res.out, "marked pending")
	assert.NotContains(t, res.out, "All questions completed!")
}

func TestRemoveShiftsIndexes(t *testing.T) {
	h := newHarness(t)
	upstream := markdownServer(t)
	require.Equal(t, exitOK, h.run("", "import", "github", upstream.URL+"/readme.md").code)

	res := h.run("", "rm", "1")
	require.Equal(t, exitOK, res.code, res.err)

	res = h.run("", "ls")
	assert.NotContains(t, res.out, "Two Sum")
	assert.Contains(t, res.out, " 1. ")
	assert.Contains(t, res.out, "Valid Anagram")
}

func TestIndexErrorsAreUsage(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "rm", "9")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.err, "sheettracker ls")

	res = h.run("", "done", "abc")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.err, "not a number")
}

func TestClearAsksFirst(t *testing.T) {
	h := newHarness(t)
	upstream := markdownServer(t)
	require.Equal(t, exitOK, h.run("", "import", "github", upstream.URL+"/readme.md").code)

	res := h.run("n\n", "clear")
	require.Equal(t, exitOK, res.code, res.err)
	assert.Contains(t, res.err, "Are you sure you want to clear all data? This cannot be undone.")
	assert.Contains(t, res.out, "nothing cleared")

	res = h.run("yes\n", "clear")
	require.Equal(t, exitOK, res.code, res.err)
	assert.Contains(t, res.out, "cleared 2 questions")

	res = h.run("", "ls")
	assert.Contains(t, res.out, "no questions yet")
}

func TestClearYesFlagSkipsPrompt(t *testing.T) {
	h := newHarness(t)
	upstream := markdownServer(t)
	require.Equal(t, exitOK, h.run("", "import", "github", upstream.URL+"/readme.md").code)

	res := h.run("", "clear", "--yes")
	require.Equal(t, exitOK, res.code, res.err)
	assert.NotContains(t, res.err, "Are you sure")
	assert.Contains(t, res.out, "cleared 2 questions")
}

func TestBoltBackend(t *testing.T) {
	h := newHarness(t)
	upstream := markdownServer(t)

	res := h.run("", "--backend", "bolt", "import", "github", upstream.URL+"/readme.md")
	require.Equal(t, exitOK, res.code, res.err)

	res = h.run("", "--backend", "bolt", "ls", "--search", "anagram")
	require.Equal(t, exitOK, res.code, res.err)
	assert.Contains(t, res.out, "Valid Anagram")
	assert.NotContains(t, res.out, "Two Sum")

	// the json backend keeps its own state
	res = h.run("", "ls")
	assert.Contains(t, res.out, "no questions yet")
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)

	for _, args := range [][]string{
		{"nope"},
		{"ls", "--filter", "sideways"},
		{"--backend", "sqlite", "ls"},
		{"import", "github"},
		{"import", "sheets", "a.csv"},
		{"ls", "extra"},
		{"done"},
		{"rm", "1", "2"},
		{"serve", "now"},
		{"ls", "--bogus"},
	} {
		res := h.run("", args...)
		assert.Equal(t, exitUsage, res.code, fmt.Sprint(args))
		assert.Contains(t, res.err, "sheettracker --help", fmt.Sprint(args))
	}
}

func TestGroupCommandsPrintHelp(t *testing.T) {
	h := newHarness(t)

	res := h.run("")
	assert.Equal(t, exitOK, res.code)
	assert.Contains(t, res.out, "Usage:")

	res = h.run("", "import")
	assert.Equal(t, exitOK, res.code)
	assert.Contains(t, res.out, "github")
}
