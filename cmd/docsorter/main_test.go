package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsorter/internal/filing"
)

// setupWorkspace writes a rule file and tool settings that point nowhere, so
// PDFs fall through to the embedded-text path only.
func setupWorkspace(t *testing.T) (rulesPath, settingsPath string) {
	t.Helper()
	dir := t.TempDir()
	rulesPath = filepath.Join(dir, "groups.json")
	settingsPath = filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(rulesPath,
		[]byte(`{"groups":[{"name":"Invoices","type":"TIM","keywords":["ΤΙΜΟΛΟΓΙΟ"]}]}`), 0o644))
	require.NoError(t, os.WriteFile(settingsPath,
		[]byte(`{"tesseract_cmd":"/nonexistent/tesseract","poppler_path":""}`), 0o644))
	return rulesPath, settingsPath
}

func TestOrganizeCommand(t *testing.T) {
	rulesPath, settingsPath := setupWorkspace(t)
	in, out := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "scan.pdf"), []byte("not really a pdf"), 0o644))

	rootCmd.SetArgs([]string{
		"--rules", rulesPath, "--settings", settingsPath, "--log-level", "error",
		"organize", in, out, "--no-progress",
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.FileExists(t, filepath.Join(out, "Λοιπά", "notes.txt"))
	assert.FileExists(t, filepath.Join(out, "Unsorted", "CHECK_scan.pdf"))
}

func TestRulesAddAndList(t *testing.T) {
	rulesPath, settingsPath := setupWorkspace(t)

	rootCmd.SetArgs([]string{
		"--rules", rulesPath, "--settings", settingsPath, "--log-level", "error",
		"rules", "add", "--name", "Receipts", "--type", "APY", "--keyword", "ΑΠΟΔΕΙΞΗ", "--keyword", " ",
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	data, err := os.ReadFile(rulesPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ΑΠΟΔΕΙΞΗ"`)
	assert.Less(t, strings.Index(string(data), "Invoices"), strings.Index(string(data), "Receipts"))
}

func TestPresenter(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	p := newPresenter(&buf, true)
	cb := p.callbacks()

	cb.Log("ERROR broken.pdf: boom")
	cb.Progress(1, 2)
	cb.Done(filing.Summary{RunID: "r1", Total: 2, Moved: 1, Failed: 1})

	assert.Contains(t, buf.String(), "ERROR broken.pdf: boom\n")
	assert.Contains(t, buf.String(), "2 files: 1 moved, 0 unsorted, 0 simulated, 1 failed (run r1)")
}
