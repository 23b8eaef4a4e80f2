package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsorter/internal/common"
)

func TestLoad_MissingFilePersistsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewStore(path, nil)

	got := s.Load()
	assert.Equal(t, Defaults(), got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk Settings
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, Defaults(), onDisk)
}

func TestLoad_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tesseract_cmd":"/opt/tess","poppler_path":"/opt/poppler"}`), 0o644))

	got := NewStore(path, nil).Load()
	assert.Equal(t, Settings{TesseractCmd: "/opt/tess", PopplerPath: "/opt/poppler"}, got)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tesseract_cmd":"tess"}`), 0o644))

	got := NewStore(path, nil).Load()
	assert.Equal(t, "tess", got.TesseractCmd)
	assert.Equal(t, Defaults().PopplerPath, got.PopplerPath)
}

func TestLoad_MalformedFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	got := NewStore(path, nil).Load()
	assert.Equal(t, Defaults(), got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	s := NewStore(path, nil)

	got, err := s.Set("poppler_path", "/srv/poppler")
	require.NoError(t, err)
	assert.Equal(t, "/srv/poppler", got.PopplerPath)
	assert.Equal(t, "/srv/poppler", s.Load().PopplerPath)

	_, err = s.Set("nope", "x")
	require.Error(t, err)
	assert.True(t, common.HasCode(err, common.CodeSettings))
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
