package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverURL_CambiaEsquemaAPgx5(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/pos?sslmode=disable", driverURL("postgres://u:p@localhost:5432/pos?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/pos", driverURL("postgresql://u@db/pos"))
	assert.Equal(t, "pgx5://ya/convertido", driverURL("pgx5://ya/convertido"))
}

func TestArchivosEmbebidos_ParUpDown(t *testing.T) {
	ups, err := fs.Glob(files, "sql/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(files, "sql/*.down.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
