package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
)

const (
	DefaultHandlerTimeout = "3m"
	DefaultIdleTimeout    = "24h"
)

// Load reads .env files, the environment and the TOML config at path into viper. Without a path,
// config.toml in the working directory is used if present.
func Load(path string) error {
	// .env files are optional
	_ = godotenv.Load(".env", ".env.local")

	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("bot.log_pretty", false)
	viper.SetDefault("handler.timeout", DefaultHandlerTimeout)
	viper.SetDefault("session.idle_timeout", DefaultIdleTimeout)
	viper.SetDefault("metrics.listen_addr", "")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("gemini.api_key", "API_KEY", "GEMINI_API_KEY")
	_ = viper.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Info().Msg("no config file found, using defaults and environment")
			return nil
		}
		return fmt.Errorf("could not read config file: %w", err)
	}

	log.Info().Str("file", viper.ConfigFileUsed()).Msg("read config file")

	return nil
}

// APIKey returns the Gemini credential, or domain.ErrMissingCredential when none is configured.
func APIKey() (string, error) {
	key := strings.TrimSpace(viper.GetString("gemini.api_key"))
	if key == "" {
		return "", domain.ErrMissingCredential
	}

	return key, nil
}

func BotToken() (string, error) {
	token := strings.TrimSpace(viper.GetString("telegram.bot_token"))
	if token == "" {
		return "", errors.New("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	return token, nil
}

func HandlerTimeout() (time.Duration, error) {
	return duration("handler.timeout")
}

func IdleTimeout() (time.Duration, error) {
	return duration("session.idle_timeout")
}

func duration(key string) (time.Duration, error) {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s in config: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s in config: must be positive", key)
	}

	return d, nil
}
