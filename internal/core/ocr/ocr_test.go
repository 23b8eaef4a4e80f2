package ocr

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsorter/internal/settings"
)

// fakeTools returns settings whose paths exist on disk.
func fakeTools(t *testing.T) settings.Settings {
	t.Helper()
	dir := t.TempDir()
	tess := filepath.Join(dir, "tesseract")
	require.NoError(t, os.WriteFile(tess, nil, 0o755))
	return settings.Settings{TesseractCmd: tess, PopplerPath: dir}
}

func notAPDF(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "scan.pdf")
	require.NoError(t, os.WriteFile(p, []byte("not a pdf"), 0o644))
	return p
}

// pagesRunner emulates pdftoppm writing n images and tesseract echoing the image name.
func pagesRunner(n int, calls *[]string) Runner {
	return RunnerFunc(func(_ context.Context, _ *slog.Logger, name string, args ...string) ([]byte, []byte, error) {
		*calls = append(*calls, filepath.Base(name))
		if strings.HasPrefix(filepath.Base(name), "pdftoppm") {
			prefix := args[len(args)-1]
			for i := 1; i <= n; i++ {
				if err := os.WriteFile(prefix+"-"+string(rune('0'+i))+".png", nil, 0o644); err != nil {
					return nil, nil, err
				}
			}
			return nil, nil, nil
		}
		return []byte("text of " + filepath.Base(args[0]) + "\n-----\n"), nil, nil
	})
}

func TestBridge_FirstPages(t *testing.T) {
	var calls []string
	b := NewBridge(Config{}, fakeTools(t), nil).WithRunner(pagesRunner(3, &calls))

	got, err := b.FirstPages(context.Background(), notAPDF(t), 2)
	require.NoError(t, err)
	assert.Contains(t, got, "TEXT OF PAGE-1.PNG")
	assert.Contains(t, got, "TEXT OF PAGE-2.PNG")
	assert.NotContains(t, got, "PAGE-3")
	assert.NotContains(t, got, "-----")
	assert.Equal(t, []string{"pdftoppm", "tesseract", "tesseract"}, calls)
}

func TestBridge_MissingEngine(t *testing.T) {
	tools := fakeTools(t)
	tools.TesseractCmd = "docsorter-no-such-tesseract"
	b := NewBridge(Config{}, tools, nil).WithRunner(pagesRunner(1, new([]string)))

	got, err := b.FirstPages(context.Background(), notAPDF(t), 2)
	assert.ErrorIs(t, err, ErrEngineNotFound)
	assert.Empty(t, got)
}

func TestBridge_MissingRasterizer(t *testing.T) {
	for _, poppler := range []string{"", filepath.Join(t.TempDir(), "missing")} {
		tools := fakeTools(t)
		tools.PopplerPath = poppler
		b := NewBridge(Config{}, tools, nil)

		_, err := b.FirstPages(context.Background(), notAPDF(t), 2)
		assert.ErrorIs(t, err, ErrRasterizerNotFound, "poppler=%q", poppler)
	}
}

func TestBridge_ToolFailureIsSoft(t *testing.T) {
	failing := RunnerFunc(func(context.Context, *slog.Logger, string, ...string) ([]byte, []byte, error) {
		return nil, []byte("boom"), errors.New("exit status 1")
	})
	b := NewBridge(Config{}, fakeTools(t), nil).WithRunner(failing)

	got, err := b.FirstPages(context.Background(), notAPDF(t), 2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNativeReader_FallsBackToPdftotext(t *testing.T) {
	tools := fakeTools(t)
	var gotArgs []string
	r := NewNativeReader(Config{}, tools, nil).WithRunner(RunnerFunc(
		func(_ context.Context, _ *slog.Logger, name string, args ...string) ([]byte, []byte, error) {
			gotArgs = append([]string{filepath.Base(name)}, args...)
			return []byte("Τιμολόγιο 12/03/2024"), nil, nil
		}))

	got := r.Text(context.Background(), notAPDF(t), 2)
	assert.Equal(t, "Τιμολόγιο 12/03/2024", got)
	require.NotEmpty(t, gotArgs)
	assert.True(t, strings.HasPrefix(gotArgs[0], "pdftotext"))
	assert.Equal(t, "-", gotArgs[len(gotArgs)-1])
}

func TestNativeReader_NoPopplerNoText(t *testing.T) {
	r := NewNativeReader(Config{}, settings.Settings{}, nil).WithRunner(RunnerFunc(
		func(context.Context, *slog.Logger, string, ...string) ([]byte, []byte, error) {
			t.Fatal("runner must not be called without a poppler path")
			return nil, nil, nil
		}))

	assert.Empty(t, r.Text(context.Background(), notAPDF(t), 2))
}
