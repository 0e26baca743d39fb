package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the grading service.
type Config struct {
	AppName     string
	AppEnv      string
	AppPort     string
	JWTSecret   string
	LatePenalty float64
	// RateLimit caps evaluation requests per client per minute.
	RateLimit int
	// PinnedNow fixes the evaluation instant for every request when set.
	PinnedNow *time.Time
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// AuthEnabled reports whether bearer tokens are required on grading routes.
func (c Config) AuthEnabled() bool {
	return strings.TrimSpace(c.JWTSecret) != ""
}

// Clock returns the configured source of "now".
func (c Config) Clock() func() time.Time {
	if c.PinnedNow == nil {
		return time.Now
	}
	pinned := *c.PinnedNow
	return func() time.Time { return pinned }
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GEMA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GEMA Grade Evaluator")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("grading.late_penalty", 0.1)
	v.SetDefault("grading.rate_limit", 120)

	cfg := Config{
		AppName:     v.GetString("app.name"),
		AppEnv:      v.GetString("app.env"),
		AppPort:     v.GetString("app.port"),
		JWTSecret:   v.GetString("jwt.secret"),
		LatePenalty: v.GetFloat64("grading.late_penalty"),
		RateLimit:   v.GetInt("grading.rate_limit"),
	}

	if cfg.LatePenalty < 0 || cfg.LatePenalty > 1 {
		return Config{}, fmt.Errorf("late penalty must be within [0,1], got %v", cfg.LatePenalty)
	}

	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 120
	}

	if pinned := strings.TrimSpace(v.GetString("grading.now")); pinned != "" {
		parsed, err := time.Parse(time.RFC3339, pinned)
		if err != nil {
			return Config{}, fmt.Errorf("invalid grading now: %w", err)
		}
		cfg.PinnedNow = &parsed
	}

	return cfg, nil
}
