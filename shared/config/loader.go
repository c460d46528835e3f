package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/like-mike/loja/shared/models"
	"gopkg.in/yaml.v3"
)

var globalConfig *models.Config

// LoadEnv loads a .env file into the process environment if one exists.
// Variables already set win.
func LoadEnv(paths ...string) {
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			return
		}
	}
}

// LoadConfig reads and parses the configuration file once. A missing file
// is not an error: defaults and the environment still apply.
func LoadConfig(path string) (*models.Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config.yml"
	}

	var config models.Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&config); err != nil {
		return nil, err
	}
	applyDefaults(&config)

	globalConfig = &config
	return &config, nil
}

// GetConfig returns the global configuration
func GetConfig() *models.Config {
	return globalConfig
}

func applyEnvOverrides(cfg *models.Config) error {
	setString(&cfg.Server.UIPort, "UI_PORT")
	setString(&cfg.Server.APIPort, "API_PORT")
	setString(&cfg.Server.APIURL, "API_URL")
	setString(&cfg.Server.AllowedOrigins, "CORS_ALLOWED_ORIGINS")

	setString(&cfg.Database.DSN, "POSTGRES_DSN")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")

	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.AdminUser, "ADMIN_USER")
	setString(&cfg.Auth.AdminPass, "ADMIN_PASS")

	setString(&cfg.Telemetry.ServiceName, "OTEL_SERVICE_NAME")
	setString(&cfg.Telemetry.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&cfg.Log.Level, "LOG_LEVEL")

	if err := setDuration(&cfg.Auth.AccessTTL, "ACCESS_TOKEN_TTL"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Auth.RefreshTTL, "REFRESH_TOKEN_TTL"); err != nil {
		return err
	}
	if err := setBool(&cfg.Telemetry.Enabled, "OTEL_ENABLED"); err != nil {
		return err
	}
	return setBool(&cfg.Database.Seed, "DB_SEED")
}

func applyDefaults(cfg *models.Config) {
	def := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	def(&cfg.App.Name, "loja")
	def(&cfg.App.Environment, "development")
	if cfg.App.PageSize <= 0 {
		cfg.App.PageSize = 10
	}
	if cfg.App.MaxPageSize < cfg.App.PageSize {
		cfg.App.MaxPageSize = 100
	}

	def(&cfg.Server.UIPort, "8080")
	def(&cfg.Server.APIPort, "8000")
	def(&cfg.Server.APIURL, "http://localhost:"+cfg.Server.APIPort+"/api")
	def(&cfg.Server.AllowedOrigins, "http://localhost:"+cfg.Server.UIPort)

	def(&cfg.Database.Host, "localhost")
	def(&cfg.Database.Port, "5432")
	def(&cfg.Database.User, "postgres")
	def(&cfg.Database.Password, "postgres")
	def(&cfg.Database.Name, "loja")
	def(&cfg.Database.SSLMode, "disable")

	def(&cfg.Auth.AdminUser, "admin")
	def(&cfg.Auth.AdminPass, "admin")
	if cfg.Auth.AccessTTL <= 0 {
		cfg.Auth.AccessTTL = 5 * time.Minute
	}
	if cfg.Auth.RefreshTTL <= 0 {
		cfg.Auth.RefreshTTL = 24 * time.Hour
	}

	def(&cfg.Telemetry.ServiceName, cfg.App.Name)
	def(&cfg.Telemetry.OTLPEndpoint, "localhost:4317")
	def(&cfg.Log.Level, "info")
}

// ConnString builds the lib/pq connection string, preferring the DSN.
func ConnString(db models.DatabaseConfig) string {
	if db.DSN != "" {
		return db.DSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}
