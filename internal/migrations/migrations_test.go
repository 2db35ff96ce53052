package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_ArePaired(t *testing.T) {
	entries, err := fs.ReadDir(MigrationFiles, ".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	require.Equal(t, ups, downs)
}

func TestMigrationFiles_CreateStoreTables(t *testing.T) {
	up, err := fs.ReadFile(MigrationFiles, "000001_create_freight_tables.up.sql")
	require.NoError(t, err)

	for _, table := range []string{"freight_records", "time_periods", "analysis_results"} {
		require.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table)
	}
}
