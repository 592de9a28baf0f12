package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:pw@localhost:5432/folders")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "postgres://app:pw@localhost:5432/folders", cfg.DatabaseURL)
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:pw@localhost:5432/folders")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestCoerceDatabaseURL(t *testing.T) {
	assert.Equal(t,
		"postgres://app@db/folders",
		coerceDatabaseURL("postgresql://app@db/folders"),
	)
	assert.Equal(t,
		"postgres://app@db/folders",
		coerceDatabaseURL(" postgres://app@db/folders "),
	)
	assert.Empty(t, coerceDatabaseURL("mysql://app@db/folders"))
	assert.Empty(t, coerceDatabaseURL(""))
}

func TestResolveDatabaseURLFromFragments(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_URL", "")
	t.Setenv("PGURL", "")
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGUSER", "app")
	t.Setenv("PGPASSWORD", "pw")
	t.Setenv("PGDATABASE", "folders")
	t.Setenv("PGPORT", "5433")
	t.Setenv("PGSSLMODE", "disable")

	url := resolveDatabaseURL()
	assert.Equal(t, "postgres://app:pw@db.internal:5433/folders?sslmode=disable", url)
}
