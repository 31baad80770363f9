package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	CMS    CMSConfig    `mapstructure:"cms"`
	Site   SiteConfig   `mapstructure:"site"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port string    `mapstructure:"port"`
	TLS  TLSConfig `mapstructure:"tls"`
}

// TLSConfig holds TLS-specific configuration.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// CMSConfig holds the connection settings for the headless CMS bucket.
type CMSConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	Bucket  string        `mapstructure:"bucket"`
	ReadKey string        `mapstructure:"read_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SiteConfig holds the site identity used by templates and SEO endpoints.
type SiteConfig struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	BaseURL     string `mapstructure:"base_url"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("cms.api_url", "https://api.cosmicjs.com/v3")
	viper.SetDefault("cms.timeout", "10s")
	viper.SetDefault("site.name", "Inkwell")
	viper.SetDefault("site.description", "Stories that inspire")
	viper.SetDefault("site.base_url", "http://localhost:8080")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	// Set up viper to read from config file
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/inkwell/")
	viper.AddConfigPath("$HOME/.inkwell")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Set up viper to read from environment variables
	viper.SetEnvPrefix("INKWELL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Unmarshal the config into the Config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
