package models

import "time"

// Config represents the main application configuration
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

// AppConfig contains basic application information
type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	// PageSize is the default page size of API listings.
	PageSize    int `yaml:"page_size"`
	MaxPageSize int `yaml:"max_page_size"`
}

type ServerConfig struct {
	UIPort  string `yaml:"ui_port"`
	APIPort string `yaml:"api_port"`
	// APIURL is handed to pages so front-end code can reach the API.
	APIURL string `yaml:"api_url"`
	// AllowedOrigins is the CORS allow list of the API, comma separated.
	AllowedOrigins string `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	Seed     bool   `yaml:"seed"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	AccessTTL  time.Duration `yaml:"access_ttl"`
	RefreshTTL time.Duration `yaml:"refresh_ttl"`
	AdminUser  string        `yaml:"admin_user"`
	AdminPass  string        `yaml:"admin_pass"`
	// SecureCookie marks the token cookie Secure (HTTPS only).
	SecureCookie bool `yaml:"secure_cookie"`
}

type TelemetryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	ServiceName  string `yaml:"service_name"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}
