package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Environment: "development"},
		Logger:   LoggerConfig{Level: "info"},
		Database: DatabaseConfig{Path: "/some/path/bookswap.db"},
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := &Config{
				App:      AppConfig{Environment: tt.env},
				Logger:   LoggerConfig{Level: "info"},
				Database: DatabaseConfig{Path: "/db"},
			}

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG"} {
		cfg := &Config{
			App:      AppConfig{Environment: "development"},
			Logger:   LoggerConfig{Level: level},
			Database: DatabaseConfig{Path: "/db"},
		}
		assert.NoError(t, cfg.Validate(), "level %s", level)
	}

	cfg := &Config{
		App:      AppConfig{Environment: "development"},
		Logger:   LoggerConfig{Level: "verbose"},
		Database: DatabaseConfig{Path: "/db"},
	}
	assert.Error(t, cfg.Validate())
}

func TestExpandPath_Tilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/BookSwap/db", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "BookSwap", "db"), got)
}

func TestExpandPath_EmptyUsesDefault(t *testing.T) {
	got, err := expandPath("", "/default/db")
	require.NoError(t, err)
	assert.Equal(t, "/default/db", got)
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("BOOKSWAP_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "BOOKSWAP_TEST_KEY", "fallback"))
	assert.Equal(t, "from-env", getConfigValue("", "BOOKSWAP_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getConfigValue("", "BOOKSWAP_TEST_MISSING", "fallback"))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nBOOKSWAP_ENVFILE_KEY=hello\nQUOTED=\"world\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("BOOKSWAP_ENVFILE_KEY", "")
	os.Unsetenv("BOOKSWAP_ENVFILE_KEY")
	t.Setenv("QUOTED", "")
	os.Unsetenv("QUOTED")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "hello", os.Getenv("BOOKSWAP_ENVFILE_KEY"))
	assert.Equal(t, "world", os.Getenv("QUOTED"))
}
