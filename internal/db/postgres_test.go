package db

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationDSN(t *testing.T) {
	poolCfg, err := pgxpool.ParseConfig("host=db port=6543 user=admin password=p@ss/word dbname=store sslmode=disable")
	require.NoError(t, err)

	got := migrationDSN(poolCfg, "disable")

	assert.Equal(t, "pgx5://admin:p%40ss%2Fword@db:6543/store?sslmode=disable", got)
}
