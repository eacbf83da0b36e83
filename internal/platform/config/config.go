package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	LogLevel       string
	MigrationsPath string
	DefaultUser    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("DEFAULT_USER", "system")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		DefaultUser:    viper.GetString("DEFAULT_USER"),
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	return cfg, nil
}
