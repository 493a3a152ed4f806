package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysSetVariables(t *testing.T) {
	t.Setenv("BLOGLIST_HTTP_ADDR", ":8081")
	t.Setenv("BLOGLIST_STORAGE", "postgres")
	t.Setenv("BLOGLIST_DATABASE_MAX_CONNS", "25")
	t.Setenv("BLOGLIST_TOKEN_TTL", "90s")
	t.Setenv("BLOGLIST_S3_BUCKET", "reports")

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseEnv(&c))

	assert.Equal(t, ":8081", c.HTTPAddr)
	assert.Equal(t, StoragePostgres, c.Storage)
	assert.Equal(t, int32(25), c.DatabaseMaxConns)
	assert.Equal(t, 90*time.Second, c.TokenTTL)
	assert.Equal(t, "reports", c.S3Bucket)
	assert.True(t, c.ArchiveEnabled())

	assert.Equal(t, "secretKey", c.SecretKey, "unset variables keep current values")
}

func TestParseEnv_BadValue(t *testing.T) {
	t.Setenv("BLOGLIST_BCRYPT_COST", "high")

	var c Config
	c.LoadDefaults()
	assert.Error(t, parseEnv(&c))
}
