package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_FileValues(t *testing.T) {
	p := writeConfig(t, `
app:
  http:
    port: 8081
jwt:
  secret: s3cret
  accessTokenTTLMin: 30
db:
  driver: sqlite
  dsn: ":memory:"
cors:
  allowOrigins: ["https://a.test", "https://b.test"]
`)
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 8081, c.App.HTTP.Port)
	assert.Equal(t, "s3cret", c.JWT.Secret)
	assert.Equal(t, 30*time.Minute, c.JWT.TTL())
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, c.CORS.AllowOrigins)
}

func TestLoad_Defaults(t *testing.T) {
	p := writeConfig(t, "jwt:\n  secret: x\n")
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 3333, c.App.HTTP.Port)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, 15*time.Minute, c.JWT.TTL())
	assert.Equal(t, 20, c.Limits.AuthPerWindow)
	assert.Equal(t, int64(1<<20), c.Limits.MaxBodyBytes)
	assert.True(t, c.DB.AutoMigrate)
}

func TestLoad_EnvOverride(t *testing.T) {
	p := writeConfig(t, "jwt:\n  secret: from-file\n")
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_APP_HTTP_PORT", "9999")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, 9999, c.App.HTTP.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			JWT: JWT{Secret: "k", AccessTokenTTLMin: 5},
			DB:  DB{Driver: "postgres"},
		}
	}

	c := base()
	assert.NoError(t, c.Validate())

	c = base()
	c.JWT.Secret = "  "
	assert.Error(t, c.Validate())

	c = base()
	c.JWT.AccessTokenTTLMin = 0
	assert.EqualError(t, c.Validate(), "jwt.accessTokenTTLMin must be positive, got 0")

	c = base()
	c.DB.Driver = "oracle"
	assert.EqualError(t, c.Validate(), `db.driver "oracle" is not supported`)
}
