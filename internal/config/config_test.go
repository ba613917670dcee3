package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
)

const sampleConfig = `
[bot]
log_level = "debug"

[telegram]
bot_token = "from-file"
allowed_chat_ids = [1, 2]

[gemini]
api_key = "file-key"

[handler]
timeout = "90s"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_File(t *testing.T) {
	viper.Reset()
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	require.NoError(t, Load(writeConfig(t, sampleConfig)))

	assert.Equal(t, "debug", viper.GetString("bot.log_level"))

	key, err := APIKey()
	require.NoError(t, err)
	assert.Equal(t, "file-key", key)

	timeout, err := HandlerTimeout()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, timeout)

	idle, err := IdleTimeout()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, idle)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	viper.Reset()
	t.Setenv("API_KEY", "env-key")
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")

	require.NoError(t, Load(writeConfig(t, sampleConfig)))

	key, err := APIKey()
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)

	token, err := BotToken()
	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
}

func TestLoad_GeminiKeyFallback(t *testing.T) {
	viper.Reset()
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	require.NoError(t, Load(writeConfig(t, "")))

	key, err := APIKey()
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", key)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	viper.Reset()

	err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoad_NoConfigFile(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	require.NoError(t, Load(""))

	timeout, err := HandlerTimeout()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Minute, timeout)
}

func TestAPIKey_Missing(t *testing.T) {
	viper.Reset()
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	require.NoError(t, Load(writeConfig(t, "")))

	_, err := APIKey()
	require.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.EqualError(t, err, "API_KEY environment variable is not set")
}

func TestDuration_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a duration", value: "soon"},
		{name: "zero", value: "0s"},
		{name: "negative", value: "-1m"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			viper.Reset()
			viper.Set("handler.timeout", tc.value)

			_, err := HandlerTimeout()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "handler.timeout")
		})
	}
}
