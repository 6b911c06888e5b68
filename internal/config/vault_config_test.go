package config_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github/chapool/wallet-core/internal/config"
)

func TestPrintVaultEnv(t *testing.T) {
	cfg := config.DefaultVaultConfigFromEnv()
	_, err := json.MarshalIndent(cfg, "", "  ")

	if err != nil {
		t.Fatal(err)
	}
}

func TestVaultConfigDefaults(t *testing.T) {
	cfg := config.DefaultVaultConfigFromEnv()

	require.GreaterOrEqual(t, cfg.KDFIterations, 100000)
	require.Equal(t, 24, cfg.MnemonicWordCount)
	require.Equal(t, 5, cfg.MaxFailedAttempts)
	require.Equal(t, 5*time.Minute, cfg.AutoLockAfter)
	require.Equal(t, 5*time.Minute, cfg.LockoutCooldown)
}
