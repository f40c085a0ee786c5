package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envHTTPAddr        = "HTTP_ADDR"
	envDBAdapter       = "DB_ADAPTER"
	envSweepSchedule   = "SWEEP_SCHEDULE"
	envOTelEnabled     = "OTEL_ENABLED"
	envAllowedOrigins  = "CORS_ALLOWED_ORIGINS"
	envServiceVersion  = "SERVICE_VERSION"
	envCreateSchema    = "CREATE_SCHEMA"
	envShutdownTimeout = "SHUTDOWN_TIMEOUT"

	adapterMemory = "memory"
	adapterPGX    = "pgx.pool"
	adapterSQL    = "sql.db"
	adapterSQLX   = "sqlx.db"

	defaultHTTPAddr        = ":8080"
	defaultServiceVersion  = "dev"
	defaultShutdownTimeout = 10 * time.Second
)

var ErrInvalidSetting = errors.New("invalid setting")

type settings struct {
	HTTPAddr        string
	DBAdapter       string
	SweepSchedule   string
	OTelEnabled     bool
	CreateSchema    bool
	AllowedOrigins  []string
	ServiceVersion  string
	ShutdownTimeout time.Duration
}

func loadSettings() (settings, error) {
	s := settings{
		HTTPAddr:        envOr(envHTTPAddr, defaultHTTPAddr),
		DBAdapter:       envOr(envDBAdapter, adapterMemory),
		SweepSchedule:   strings.TrimSpace(os.Getenv(envSweepSchedule)),
		ServiceVersion:  envOr(envServiceVersion, defaultServiceVersion),
		ShutdownTimeout: defaultShutdownTimeout,
	}

	switch s.DBAdapter {
	case adapterMemory, adapterPGX, adapterSQL, adapterSQLX:
	default:
		return settings{}, errors.Join(ErrInvalidSetting, fmt.Errorf("%s=%q", envDBAdapter, s.DBAdapter))
	}

	var err error

	if s.OTelEnabled, err = boolEnv(envOTelEnabled); err != nil {
		return settings{}, err
	}

	if s.CreateSchema, err = boolEnv(envCreateSchema); err != nil {
		return settings{}, err
	}

	if raw := os.Getenv(envShutdownTimeout); raw != "" {
		if s.ShutdownTimeout, err = time.ParseDuration(raw); err != nil {
			return settings{}, errors.Join(ErrInvalidSetting, fmt.Errorf("%s: %w", envShutdownTimeout, err))
		}
	}

	if raw := os.Getenv(envAllowedOrigins); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				s.AllowedOrigins = append(s.AllowedOrigins, origin)
			}
		}
	}

	return s, nil
}

// SweepEnabled reports whether the stale pending sweep runs. It is off unless SWEEP_SCHEDULE is set.
func (s settings) SweepEnabled() bool {
	return s.SweepSchedule != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func boolEnv(key string) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Join(ErrInvalidSetting, fmt.Errorf("%s: %w", key, err))
	}

	return v, nil
}
