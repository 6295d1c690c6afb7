package profile

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Profile is the runtime configuration of one organizer process.
type Profile struct {
	// Mode can be "prod", "dev" or "demo". Demo mode seeds a sample schedule.
	Mode string
	// LogLevel is the minimum slog level: debug, info, warn or error.
	LogLevel string
	// LogFormat selects the slog handler: "text" or "json".
	LogFormat string
	// HistoryLimit caps the in-memory change journal.
	HistoryLimit int
	// Version is the resolved version string for this mode.
	Version string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// FromEnv fills unset fields from ASTROPLAN_* environment variables.
func (p *Profile) FromEnv() {
	if p.Mode == "" {
		p.Mode = getEnvOrDefault("ASTROPLAN_MODE", "dev")
	}
	if p.LogLevel == "" {
		p.LogLevel = getEnvOrDefault("ASTROPLAN_LOG_LEVEL", "info")
	}
	if p.LogFormat == "" {
		p.LogFormat = getEnvOrDefault("ASTROPLAN_LOG_FORMAT", "text")
	}
	if p.HistoryLimit == 0 {
		p.HistoryLimit = getEnvOrDefaultInt("ASTROPLAN_HISTORY_LIMIT", 50)
	}
}

// Validate normalizes the profile and rejects values the process cannot run with.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	switch p.LogFormat {
	case "", "text":
		p.LogFormat = "text"
	case "json":
	default:
		return errors.Errorf("unsupported log format %q, want text or json", p.LogFormat)
	}

	if p.HistoryLimit < 0 {
		return errors.Errorf("history limit must not be negative, got %d", p.HistoryLimit)
	}
	if p.HistoryLimit == 0 {
		p.HistoryLimit = 50
	}

	return nil
}
