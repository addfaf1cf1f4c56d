package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPostgresDSNFromEnv(t *testing.T) {
	for _, k := range []string{"PG_HOST", "PG_PORT", "PG_USER", "PG_PASSWORD", "PG_DB", "PG_SSLMODE"} {
		t.Setenv(k, "")
	}
	assert.Equal(t, "postgres://postgres@localhost:5432/service_reports?sslmode=disable", BuildPostgresDSNFromEnv())

	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_USER", "map")
	t.Setenv("PG_PASSWORD", "pw")
	t.Setenv("PG_DB", "partners")
	t.Setenv("PG_SSLMODE", "require")
	assert.Equal(t, "postgres://map:pw@db:5432/partners?sslmode=require", BuildPostgresDSNFromEnv())
}

func TestOpenPostgresFromEnv_Lazy(t *testing.T) {
	t.Setenv("PG_HOST", "127.0.0.1")
	t.Setenv("PG_MAX_OPEN_CONNS", "2")
	db, err := OpenPostgresFromEnv()
	assert.NoError(t, err)
	assert.Equal(t, 2, db.Stats().MaxOpenConnections)
	_ = db.Close()
}

func TestOpenRedisFromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	assert.Nil(t, OpenRedisFromEnv())

	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_DB", "3")
	rc := OpenRedisFromEnv()
	if assert.NotNil(t, rc) {
		assert.Equal(t, "cache:6379", rc.Options().Addr)
		assert.Equal(t, 3, rc.Options().DB)
		_ = rc.Close()
	}
}
