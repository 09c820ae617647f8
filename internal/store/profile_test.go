package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapsense/snapsense-server/internal/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadProfiles_Absent(t *testing.T) {
	s := setupTestStore(t)

	got := s.LoadProfiles(context.Background())

	assert.Equal(t, LoadStatusEmpty, got.Status)
	assert.True(t, got.UseSeed())
	assert.NoError(t, got.Err)
}

func TestLoadProfiles_RawSlotContents(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		status LoadStatus
	}{
		{"empty array", `[]`, LoadStatusEmpty},
		{"json null", `null`, LoadStatusEmpty},
		{"not json", `{{{`, LoadStatusCorrupt},
		{"object instead of array", `{"id":"aria"}`, LoadStatusCorrupt},
		{"wrong field types", `[{"id":"aria","age":"seven"}]`, LoadStatusCorrupt},
		{"one profile", `[{"id":"aria","name":"Aria","age":7}]`, LoadStatusLoaded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestStore(t)
			require.NoError(t, s.setRaw(ProfilesKey, []byte(tt.raw)))

			got := s.LoadProfiles(context.Background())

			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.status == LoadStatusCorrupt, got.Err != nil)
			assert.Equal(t, tt.status != LoadStatusLoaded, got.UseSeed())
		})
	}
}

func TestSaveProfiles_RoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	profiles := domain.DemoProfiles()

	require.NoError(t, s.SaveProfiles(ctx, profiles))
	got := s.LoadProfiles(ctx)

	assert.Equal(t, LoadStatusLoaded, got.Status)
	assert.Equal(t, profiles, got.Profiles)
}

func TestSaveProfiles_StoresCamelCaseJSON(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SaveProfiles(context.Background(), domain.DemoProfiles()[:1]))

	raw, err := s.getRaw(ProfilesKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"favoriteModule":"Color Mixing"`)
	assert.Contains(t, string(raw), `"avatarEmoji":"🎈"`)
}

func TestSaveProfiles_NilWritesEmptyArray(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SaveProfiles(context.Background(), nil))

	raw, err := s.getRaw(ProfilesKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestSelectedProfileID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id, err := s.LoadSelectedProfileID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, s.SaveSelectedProfileID(ctx, "dev"))
	id, err = s.LoadSelectedProfileID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dev", id)

	require.NoError(t, s.SaveSelectedProfileID(ctx, ""))
	id, err = s.LoadSelectedProfileID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	// Clearing an already empty slot is fine.
	require.NoError(t, s.SaveSelectedProfileID(ctx, ""))
}

func TestSelectedProfileID_Corrupt(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.setRaw(SelectedProfileKey, []byte("not-json")))

	_, err := s.LoadSelectedProfileID(context.Background())
	assert.Error(t, err)
}

func TestCanceledContext(t *testing.T) {
	s := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.SaveProfiles(ctx, domain.DemoProfiles()), context.Canceled)
	assert.ErrorIs(t, s.SaveSelectedProfileID(ctx, "aria"), context.Canceled)
	assert.Equal(t, LoadStatusCorrupt, s.LoadProfiles(ctx).Status)
}

func TestNew_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "kv")
	ctx := context.Background()

	s, err := New(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveProfiles(ctx, domain.DemoProfiles()))
	require.NoError(t, s.SaveSelectedProfileID(ctx, "aria"))
	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Close())

	reopened, err := New(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Len(t, reopened.LoadProfiles(ctx).Profiles, 2)
	id, err := reopened.LoadSelectedProfileID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "aria", id)
}

func TestLoadStatus_String(t *testing.T) {
	assert.Equal(t, "loaded", LoadStatusLoaded.String())
	assert.Equal(t, "empty", LoadStatusEmpty.String())
	assert.Equal(t, "corrupt", LoadStatusCorrupt.String())
}
