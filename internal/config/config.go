package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Persistence
	DataBackend  string // "sqlite" or "memory"
	SQLiteDBPath string
	StateKey     string // blob key holding the serialized store state

	// AMQP (optional sync pipeline)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets plan export (worker)
	GoogleSpreadsheetID string
	GooglePlanSheet     string

	// Worker
	SyncInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8081"),
		DataBackend:  getEnv("DATA_BACKEND", "sqlite"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/budget.db"),
		StateKey:     getEnv("STATE_KEY", "budget-app-storage"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "budget"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sync_plans"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GooglePlanSheet:     getEnv("GOOGLE_PLAN_SHEET_NAME", "Plans"),

		SyncInterval: getEnvDuration("SYNC_INTERVAL", 30*time.Second),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	case "memory":
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [sqlite memory]", c.DataBackend))
	}

	if c.StateKey == "" {
		errors = append(errors, "state key cannot be empty")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.SyncInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at least 1 second", c.SyncInterval))
	} else if c.SyncInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at most 24 hours", c.SyncInterval))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
