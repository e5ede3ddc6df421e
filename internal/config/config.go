package config

import (
	"strings"

	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all configuration for the service.
type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	HTTPPort    string `mapstructure:"HTTP_PORT"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	RedisAddress  string `mapstructure:"REDIS_ADDRESS"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	MinIOEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket    string `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	MapboxToken    string `mapstructure:"MAPBOX_TOKEN"`
	MapboxEndpoint string `mapstructure:"MAPBOX_ENDPOINT"`

	NATSURL string `mapstructure:"NATS_URL"`

	SessionSecret string `mapstructure:"SESSION_SECRET"`
	SessionTTLHrs int    `mapstructure:"SESSION_TTL_HOURS"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPEmail    string `mapstructure:"SMTP_EMAIL"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	MetricsPort    string `mapstructure:"METRICS_PORT"`
}

// LoadConfig reads configuration from environment variables with sane defaults.
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	viper.SetDefault("SERVICE_NAME", "prorental")
	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "prorental")
	viper.SetDefault("REDIS_ADDRESS", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	viper.SetDefault("MINIO_BUCKET", "property-images")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("MAPBOX_TOKEN", "")
	viper.SetDefault("MAPBOX_ENDPOINT", "https://api.mapbox.com")
	viper.SetDefault("NATS_URL", "nats://localhost:4222")
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("SESSION_TTL_HOURS", 168) // 7 days, matches the original cookie lifetime
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_EMAIL", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("METRICS_PORT", "9091")

	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, err
	}

	if cfg.SessionSecret == "" {
		appLogger.Fatal("SESSION_SECRET is not set. This is required for signing session tokens.")
	}
	if cfg.MongoURI == "" {
		appLogger.Fatal("MONGO_URI is not set. This is required.")
	}
	if cfg.MapboxToken == "" {
		appLogger.Warn("MAPBOX_TOKEN is empty; geocoding requests will be rejected by the provider")
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.String("redis_address", cfg.RedisAddress),
		zap.String("minio_endpoint", cfg.MinIOEndpoint),
		zap.String("minio_bucket", cfg.MinIOBucket),
		zap.String("nats_url", cfg.NATSURL),
		zap.Bool("smtp_configured", cfg.SMTPEmail != ""),
		zap.String("metrics_port", cfg.MetricsPort),
	)

	return &cfg, nil
}

// Origins splits the configured ALLOWED_ORIGINS list.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
