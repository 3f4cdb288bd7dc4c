package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "data/microloan.db", cfg.Database.SQLitePath)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 5_000.0, cfg.Loan.MinAmount)
	assert.Equal(t, 200_000.0, cfg.Loan.MaxAmount)
	assert.Equal(t, 650, cfg.Loan.MinCibil)
	assert.Equal(t, []int{6, 12, 18, 24}, cfg.Loan.Tenures)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":8081"
auth:
  secret: "from-file"
loan:
  max_amount: 100000
`), 0o600))

	t.Setenv("AUTH_SECRET", "from-env")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Server.Addr)
	assert.Equal(t, "from-env", cfg.Auth.Secret, "env wins over file")
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 100_000.0, cfg.Loan.MaxAmount)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Error(t, cfg.Validate(), "secret is required")

	cfg.Auth.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())

	cfg.Loan.MaxAmount = cfg.Loan.MinAmount
	assert.Error(t, cfg.Validate())
}
