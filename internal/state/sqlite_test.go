package state

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bython/internal/testutil"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_OpenMigrate(t *testing.T) {
	store := setupTestStore(t)

	for _, table := range []string{"runs", "content_hashes"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		require.NoError(t, err, "table %s", table)
		_ = rows.Close()
	}

	version, err := store.GetMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Migrating twice is a no-op.
	require.NoError(t, store.Migrate())
}

func TestSQLiteStore_OpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(path))
	require.NoError(t, store.Migrate())
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore(nil)
	require.NoError(t, reopened.Open(path))
	defer reopened.Close()
	require.NoError(t, reopened.Migrate())
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)

	_, err := store.CreateRun()
	require.Error(t, err)
	_, err = store.GetContentHash("a.by")
	require.Error(t, err)
	require.Error(t, store.SetContentHash("a.by", "h", "a.py"))
	require.Error(t, store.Migrate())
	require.NoError(t, store.Close())
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	store := setupTestStore(t)

	latest, err := store.GetLatestRun()
	require.NoError(t, err)
	assert.Nil(t, latest)

	run, err := store.CreateRun()
	require.NoError(t, err)
	assert.Equal(t, RunStatusRunning, run.Status)
	assert.Len(t, run.ID, 36)

	require.NoError(t, store.CompleteRun(run.ID, RunStatusFailed, 5, 2))

	got, err := store.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusFailed, got.Status)
	assert.Equal(t, 5, got.Files)
	assert.Equal(t, 2, got.Errors)
	require.NotNil(t, got.CompletedAt)

	second, err := store.CreateRun()
	require.NoError(t, err)
	latest, err = store.GetLatestRun()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)

	_, err = store.GetRun("missing")
	require.ErrorContains(t, err, "run not found")
	require.ErrorContains(t, store.CompleteRun("missing", RunStatusCompleted, 0, 0), "run not found")
}

func TestSQLiteStore_ContentHashes(t *testing.T) {
	store := setupTestStore(t)

	h, err := store.GetContentHash("src/a.by")
	require.NoError(t, err)
	assert.Nil(t, h)

	require.NoError(t, store.SetContentHash("src/a.by", "abc", "out/a.py"))
	require.NoError(t, store.SetContentHash("src/b.by", "def", "out/b.py"))
	require.NoError(t, store.SetContentHash("src/a.by", "xyz", "out/a2.py"))

	h, err = store.GetContentHash("src/a.by")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "xyz", h.ContentHash)
	assert.Equal(t, "out/a2.py", h.OutputPath)
	assert.False(t, h.UpdatedAt.IsZero())

	all, err := store.ListContentHashes()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "src/a.by", all[0].FilePath)
	assert.Equal(t, "src/b.by", all[1].FilePath)

	require.NoError(t, store.DeleteContentHash("src/a.by"))
	h, err = store.GetContentHash("src/a.by")
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestHashContent(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashContent(nil))
	assert.NotEqual(t, HashContent([]byte("x = 1")), HashContent([]byte("x = 2")))
}

// --- failure paths ---

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &SQLiteStore{db: db, path: "mock", logger: testutil.NewTestLogger(t)}, mock
}

func TestSQLiteStore_DatabaseErrors(t *testing.T) {
	boom := errors.New("disk I/O error")

	tests := []struct {
		name      string
		expect    func(mock sqlmock.Sqlmock)
		call      func(s *SQLiteStore) error
		errSubstr string
	}{
		{
			name:      "create run",
			expect:    func(mock sqlmock.Sqlmock) { mock.ExpectExec("INSERT INTO runs").WillReturnError(boom) },
			call:      func(s *SQLiteStore) error { _, err := s.CreateRun(); return err },
			errSubstr: "failed to create run",
		},
		{
			name:      "complete run",
			expect:    func(mock sqlmock.Sqlmock) { mock.ExpectExec("UPDATE runs").WillReturnError(boom) },
			call:      func(s *SQLiteStore) error { return s.CompleteRun("id", RunStatusCompleted, 1, 0) },
			errSubstr: "failed to complete run",
		},
		{
			name:      "get content hash",
			expect:    func(mock sqlmock.Sqlmock) { mock.ExpectQuery("SELECT file_path").WillReturnError(boom) },
			call:      func(s *SQLiteStore) error { _, err := s.GetContentHash("a.by"); return err },
			errSubstr: "failed to get content hash",
		},
		{
			name:      "set content hash",
			expect:    func(mock sqlmock.Sqlmock) { mock.ExpectExec("INSERT INTO content_hashes").WillReturnError(boom) },
			call:      func(s *SQLiteStore) error { return s.SetContentHash("a.by", "h", "a.py") },
			errSubstr: "failed to set content hash",
		},
		{
			name:      "delete content hash",
			expect:    func(mock sqlmock.Sqlmock) { mock.ExpectExec("DELETE FROM content_hashes").WillReturnError(boom) },
			call:      func(s *SQLiteStore) error { return s.DeleteContentHash("a.by") },
			errSubstr: "failed to delete content hash",
		},
		{
			name:      "list content hashes",
			expect:    func(mock sqlmock.Sqlmock) { mock.ExpectQuery("SELECT file_path").WillReturnError(boom) },
			call:      func(s *SQLiteStore) error { _, err := s.ListContentHashes(); return err },
			errSubstr: "failed to list content hashes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.expect(mock)

			err := tt.call(store)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
			assert.ErrorIs(t, err, boom)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLiteStore_CompleteRunNoRows(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("UPDATE runs").WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.CompleteRun("gone", RunStatusCompleted, 0, 0)
	require.ErrorContains(t, err, "run not found: gone")
	require.NoError(t, mock.ExpectationsWereMet())
}
