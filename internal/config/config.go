package config

import (
	"fmt"
	"os"
)

// Config holds all runtime configuration for a reset run. Values are
// resolved in layers: defaults, then environment, then CLI flags, then
// interactive prompts.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	// PasswordSet records that a password was supplied explicitly
	// (flag or env), even if it is empty. Without it an empty
	// password cannot be told apart from "prompt me".
	PasswordSet bool

	// Fresh names a schema to drop before loading; Initial suppresses
	// the drop entirely. Neither set means "ask, if interactive".
	Fresh   string
	Initial bool

	NoInsert bool

	BaseDir      string
	MySQLBin     string
	OTELEndpoint string
}

// FromEnv constructs a Config from environment variables with sensible
// local-development defaults.
func FromEnv() Config {
	_, pwdSet := os.LookupEnv("MYSQL_PWD")
	return Config{
		Host:         getEnv("DEVDB_HOST", "127.0.0.1"),
		Port:         getEnvInt("DEVDB_PORT", 3306),
		User:         getEnv("DEVDB_USER", "root"),
		Password:     os.Getenv("MYSQL_PWD"),
		PasswordSet:  pwdSet,
		BaseDir:      getEnv("DEVDB_DIR", "."),
		MySQLBin:     getEnv("MYSQL_BIN", "mysql"),
		OTELEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

// Addr returns the host:port the client will be pointed at.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return fallback
}
