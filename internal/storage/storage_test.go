package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/document"
	"github.com/jonathan/cv-studio/internal/types"
)

func TestFileStore_LoadMissingFileReturnsTemplate(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cv.json"))

	doc, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, document.Template(), doc)
}

func TestFileStore_SaveThenLoadRoundTrips(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cv.json"))

	doc := document.Template()
	doc.PersonalInfo.Name = "Ada Lovelace"
	doc.Summary = "Engineer."

	require.NoError(t, store.Save(doc))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestFileStore_CorruptFileFallsBackToTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := NewFileStore(path)

	doc, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, document.Template(), doc)
}

func TestFileStore_SaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "cv.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(document.Template()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_LoadRestoresShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.json")
	// A hand-edited file with missing collections still loads fully shaped.
	require.NoError(t, os.WriteFile(path, []byte(`{"personalInfo": {"name": "Ada"}, "summary": "hi"}`), 0o644))
	store := NewFileStore(path)

	doc, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, "Ada", doc.PersonalInfo.Name)
	assert.NotNil(t, doc.Experience)
	assert.NotNil(t, doc.Education)
	assert.NotNil(t, doc.Skills)
	assert.NotNil(t, doc.Projects)
}

func TestFileStore_SaveOverwritesPrevious(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cv.json"))

	first := document.Template()
	first.Summary = "first"
	require.NoError(t, store.Save(first))

	second := document.Template()
	second.Summary = "second"
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Summary)
}

func TestFileStore_SaveEnsuresShape(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cv.json"))

	doc := types.Document{Summary: "bare"}
	require.NoError(t, store.Save(doc))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, loaded.Skills)
}
