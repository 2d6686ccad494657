package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/medications"
)

type Config struct {
	Port string

	// DBDSN vacío => repos in-memory.
	DBDSN string

	// Location es la zona en la que se calcula "hoy".
	Location *time.Location

	LookaheadDays       int
	RefillThresholdDays int

	Odin OdinConfig
}

type OdinConfig struct {
	BaseURL string
	APIKey  string
}

func (o OdinConfig) Enabled() bool {
	return strings.TrimSpace(o.BaseURL) != "" && strings.TrimSpace(o.APIKey) != ""
}

// LoadDotEnv carga .env si existe. Las variables ya definidas en el entorno ganan.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load lee la configuración desde el entorno (después de LoadDotEnv).
func Load() (*Config, error) {
	lookahead, err := getInt("NOTIFY_LOOKAHEAD_DAYS", appointments.DefaultLookaheadDays)
	if err != nil {
		return nil, err
	}
	if lookahead < 0 {
		return nil, fmt.Errorf("invalid NOTIFY_LOOKAHEAD_DAYS: must be >= 0")
	}

	refill, err := getInt("REFILL_THRESHOLD_DAYS", medications.DefaultRefillThresholdDays)
	if err != nil {
		return nil, err
	}
	if refill < 0 {
		return nil, fmt.Errorf("invalid REFILL_THRESHOLD_DAYS: must be >= 0")
	}

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DBDSN:               getEnv("DB_DSN", ""),
		Location:            loc,
		LookaheadDays:       lookahead,
		RefillThresholdDays: refill,
		Odin: OdinConfig{
			BaseURL: getEnv("ODIN_BASE_URL", ""),
			APIKey:  getEnv("ODIN_API_KEY", ""),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
