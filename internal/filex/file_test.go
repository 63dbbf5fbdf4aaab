package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_CreatesRelativeToCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir(filepath.Join("data", "store"))
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(tmp, "data", "store"))
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	require.Equal(t, want, gotResolved)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "vault")

	first, err := EnsureDir(dir)
	require.NoError(t, err)
	second, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "vault")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := EnsureDir(path)
	require.Error(t, err)
}

func TestSQLiteFilePath(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{dsn: "recordvault.db", want: "recordvault.db"},
		{dsn: "file:data/recordvault.db?_pragma=busy_timeout(5000)", want: "data/recordvault.db"},
		{dsn: ":memory:", want: ""},
		{dsn: "file:test?mode=memory&cache=shared", want: ""},
		{dsn: "", want: ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, SQLiteFilePath(tt.dsn), tt.dsn)
	}
}

func TestEnsureSQLiteDir(t *testing.T) {
	tmp := t.TempDir()
	dsn := "file:" + filepath.Join(tmp, "nested", "dir", "vault.db") + "?_pragma=busy_timeout(5000)"

	require.NoError(t, EnsureSQLiteDir(dsn))
	fi, err := os.Stat(filepath.Join(tmp, "nested", "dir"))
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	require.NoError(t, EnsureSQLiteDir(":memory:"))
}
