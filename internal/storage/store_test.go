package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStartsEmpty(t *testing.T) {
	t.Parallel()

	store, err := Open(filepath.Join(t.TempDir(), "nested", "storage.json"))
	require.NoError(t, err)

	_, ok := store.Get(KeyToken)
	assert.False(t, ok)
}

func TestSetPersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storage.json")
	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyToken, "abc.def.ghi"))

	reopened, err := Open(path)
	require.NoError(t, err)
	token, ok := reopened.Get(KeyToken)
	require.True(t, ok)
	require.Equal(t, "abc.def.ghi", token)

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "temporary file must be renamed away")
}

func TestRemove(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storage.json")
	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyToken, "token"))
	require.NoError(t, store.Remove(KeyToken))
	require.NoError(t, store.Remove("never-set"))

	reopened, err := Open(path)
	require.NoError(t, err)
	_, ok := reopened.Get(KeyToken)
	require.False(t, ok)
}

func TestJSONHelpers(t *testing.T) {
	t.Parallel()

	store, err := Open(filepath.Join(t.TempDir(), "storage.json"))
	require.NoError(t, err)

	type prefs struct {
		API string `json:"api"`
	}

	var out prefs
	found, err := store.GetJSON(KeyCurrentPrefs, &out)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.SetJSON(KeyCurrentPrefs, prefs{API: "cats"}))
	raw, _ := store.Get(KeyCurrentPrefs)
	require.JSONEq(t, `{"api":"cats"}`, raw)

	found, err = store.GetJSON(KeyCurrentPrefs, &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "cats", out.API)

	require.NoError(t, store.Set(KeyCurrentPrefs, "{not json"))
	found, err = store.GetJSON(KeyCurrentPrefs, &out)
	require.True(t, found)
	require.Error(t, err)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	_, err := Open(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse storage")
}
