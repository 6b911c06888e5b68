package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Logger holds the logging configuration.
type Logger struct {
	Level              string `json:"level"`
	PrettyPrintConsole bool   `json:"prettyPrintConsole"`
}

// VaultConfig holds the full configuration of the key management core.
// All values are resolved from the environment with the WALLET_ prefix.
type VaultConfig struct {
	StoragePath       string        `json:"storagePath"`
	KDFIterations     int           `json:"kdfIterations"`
	MnemonicWordCount int           `json:"mnemonicWordCount"`
	AutoLockAfter     time.Duration `json:"autoLockAfter"`
	MaxFailedAttempts int           `json:"maxFailedAttempts"`
	LockoutCooldown   time.Duration `json:"lockoutCooldown"`
	Logger            Logger        `json:"logger"`
}

// DefaultVaultConfigFromEnv returns the config resolved from ENV with
// sensible defaults applied.
func DefaultVaultConfigFromEnv() VaultConfig {
	v := viper.New()
	v.SetEnvPrefix("WALLET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage_path", "./data/vault")
	v.SetDefault("kdf_iterations", 100000)
	v.SetDefault("mnemonic_word_count", 24)
	v.SetDefault("auto_lock_after", 5*time.Minute)
	v.SetDefault("max_failed_attempts", 5)
	v.SetDefault("lockout_cooldown", 5*time.Minute)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.pretty_print_console", false)

	return VaultConfig{
		StoragePath:       v.GetString("storage_path"),
		KDFIterations:     v.GetInt("kdf_iterations"),
		MnemonicWordCount: v.GetInt("mnemonic_word_count"),
		AutoLockAfter:     v.GetDuration("auto_lock_after"),
		MaxFailedAttempts: v.GetInt("max_failed_attempts"),
		LockoutCooldown:   v.GetDuration("lockout_cooldown"),
		Logger: Logger{
			Level:              v.GetString("logger.level"),
			PrettyPrintConsole: v.GetBool("logger.pretty_print_console"),
		},
	}
}
