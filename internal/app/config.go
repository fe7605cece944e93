package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/membership-registry/internal/data/db"
	"github.com/yungbote/membership-registry/internal/observability"
	"github.com/yungbote/membership-registry/internal/platform/envutil"
	"github.com/yungbote/membership-registry/internal/platform/logger"
)

type Config struct {
	LogMode string

	HTTPAddr        string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	// MetricsAddr, when set, serves /metrics on a separate listener.
	MetricsAddr string

	Postgres    db.PostgresConfig
	AutoMigrate bool
	Seed        bool
	SeedFile    string

	// Location decides the civil date used for activity derivation.
	Location *time.Location

	Otel observability.OtelConfig
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		LogMode:         envutil.String("LOG_MODE", "development"),
		HTTPAddr:        envutil.String("HTTP_ADDR", ":"+envutil.String("PORT", "8080")),
		ShutdownTimeout: envutil.Duration("HTTP_SHUTDOWN_TIMEOUT", 15*time.Second),
		CORSOrigins:     splitList(envutil.String("CORS_ALLOWED_ORIGINS", "")),
		MetricsAddr:     envutil.String("METRICS_ADDR", ""),
		Postgres: db.PostgresConfig{
			Host:            envutil.String("POSTGRES_HOST", "localhost"),
			Port:            envutil.String("POSTGRES_PORT", "5432"),
			User:            envutil.String("POSTGRES_USER", "postgres"),
			Password:        envutil.String("POSTGRES_PASSWORD", ""),
			Name:            envutil.String("POSTGRES_NAME", "registry"),
			SSLMode:         envutil.String("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    envutil.Int("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    envutil.Int("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envutil.Duration("POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		AutoMigrate: envutil.Bool("DB_AUTOMIGRATE", true),
		Seed:        envutil.Bool("DB_SEED", true),
		SeedFile:    envutil.String("DB_SEED_FILE", ""),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", observability.DefaultServiceName),
			Environment: envutil.String("OTEL_ENVIRONMENT", envutil.String("APP_ENV", "development")),
			Version:     envutil.String("OTEL_SERVICE_VERSION", ""),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: float64(envutil.Int("OTEL_SAMPLE_PERCENT", 100)) / 100,
		},
	}

	tz := envutil.String("APP_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("APP_TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	if log != nil {
		log.Info("Config loaded",
			"http_addr", cfg.HTTPAddr,
			"postgres_host", cfg.Postgres.Host,
			"postgres_db", cfg.Postgres.Name,
			"automigrate", cfg.AutoMigrate,
			"seed", cfg.Seed,
			"timezone", tz,
			"otel", cfg.Otel.Enabled,
		)
	}
	return cfg, nil
}

// Clock returns now in the configured location.
func (c Config) Clock() func() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
