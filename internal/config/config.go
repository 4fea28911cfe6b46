// Package config loads runtime settings from file, environment and .env,
// in ascending precedence of defaults < file < environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pkgherald/pkgherald/internal/sysinfo"
)

// DefaultPrefix is the base directory for config discovery.
const DefaultPrefix = "/etc/pkgherald"

// EnvPrefix namespaces the environment variables, e.g. PKGHERALD_BOT_TOKEN.
const EnvPrefix = "PKGHERALD"

type Config struct {
	BotToken     string `mapstructure:"bot_token"`
	ChatID       string `mapstructure:"chat_id"`
	Distro       string `mapstructure:"distro"`
	AlwaysNotify bool   `mapstructure:"always_notify"`
	IPEndpoint   string `mapstructure:"ip_endpoint"`
	Log          Log    `mapstructure:"log"`
}

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func Default() *Config {
	return &Config{
		IPEndpoint: sysinfo.DefaultIPEndpoint,
		Log:        Log{Level: "warn"},
	}
}

// Load reads the configuration. An explicit cfgFile must exist; otherwise
// config.{yaml,json} is searched in prefix, DefaultPrefix and the working
// directory, and running without any file at all is fine.
func Load(cfgFile, prefix string) (*Config, error) {
	// A .env next to the binary keeps chat credentials out of shell
	// profiles. Values already present in the environment win.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	cfg := Default()
	if prefix == "" {
		prefix = DefaultPrefix
	}

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(prefix)
		if prefix != DefaultPrefix {
			v.AddConfigPath(DefaultPrefix)
		}
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Register every key so values that exist only in the environment
	// still make it through Unmarshal.
	v.SetDefault("bot_token", cfg.BotToken)
	v.SetDefault("chat_id", cfg.ChatID)
	v.SetDefault("distro", cfg.Distro)
	v.SetDefault("always_notify", cfg.AlwaysNotify)
	v.SetDefault("ip_endpoint", cfg.IPEndpoint)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings dispatch cannot do without.
func (c *Config) Validate() error {
	var missing []string
	if c.BotToken == "" {
		missing = append(missing, "bot_token")
	}
	if c.ChatID == "" {
		missing = append(missing, "chat_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s (set them in the config file or as %s_* environment variables)",
			strings.Join(missing, ", "), EnvPrefix)
	}
	return nil
}
