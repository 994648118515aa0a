package config

import (
	"os"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/arachchispices/spicestore/pkg/helper"
)

type (
	// APIServerConfig is the root configuration for the spicestore server.
	APIServerConfig struct {
		Server     ServerConfig     `yaml:"server"`
		Database   DatabaseConfig   `yaml:"database"`
		Session    SessionConfig    `yaml:"session"`
		Logger     LoggerConfig     `yaml:"logger"`
		Metrics    MetricsConfig    `yaml:"metrics"`
		Tracing    TracingConfig    `yaml:"tracing"`
		Uploads    UploadConfig     `yaml:"uploads"`
		SuperAdmin SuperAdminConfig `yaml:"super_admin"`
		I18n       I18nConfig       `yaml:"i18n"`
	}

	// ServerConfig holds the HTTP listener settings.
	ServerConfig struct {
		Port int `yaml:"port"`
	}

	// DatabaseConfig selects the backing store. Type "memory" keeps every
	// entity in process memory and loses everything on restart.
	DatabaseConfig struct {
		Type     string `yaml:"type"` // memory, sqlite, mysql, postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		SSLMode  string `yaml:"sslmode"`
	}

	// SessionConfig holds the session store and cookie settings.
	SessionConfig struct {
		Type         string             `yaml:"type"` // memory or redis
		TTL          Duration           `yaml:"ttl"`
		CookieName   string             `yaml:"cookie_name"`
		CookieSecure bool               `yaml:"cookie_secure"`
		Redis        SessionRedisConfig `yaml:"redis"`
	}

	// SessionRedisConfig holds the Redis connection for session storage.
	SessionRedisConfig struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level"`       // debug, info, warn, error
		Format     string `yaml:"format"`      // json, console
		Output     string `yaml:"output"`      // stdout, file
		FilePath   string `yaml:"file_path"`   // path to log file when output is file
		MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
		MaxBackups int    `yaml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
		Compress   bool   `yaml:"compress"`    // whether to compress backup files
		Color      bool   `yaml:"color"`       // whether to use color in console output
		Stacktrace bool   `yaml:"stacktrace"`  // whether to include stacktrace in error logs
	}

	// MetricsConfig holds the Prometheus settings.
	MetricsConfig struct {
		Enabled   bool      `yaml:"enabled"`
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}

	// TracingConfig holds the OpenTelemetry settings.
	TracingConfig struct {
		Enabled     bool    `yaml:"enabled"`
		ServiceName string  `yaml:"service_name"`
		Endpoint    string  `yaml:"endpoint"` // e.g. localhost:4317
		Protocol    string  `yaml:"protocol"` // grpc or http
		Insecure    bool    `yaml:"insecure"`
		SamplerRate float64 `yaml:"sampler_rate"`
		Environment string  `yaml:"environment"`
	}

	// UploadConfig controls image upload handling.
	UploadConfig struct {
		Dir     string `yaml:"dir"`
		MaxSize int64  `yaml:"max_size"` // bytes
	}

	// SuperAdminConfig seeds the initial administrator account.
	SuperAdminConfig struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	}

	// I18nConfig points at the translation files.
	I18nConfig struct {
		Path        string `yaml:"path"`
		DefaultLang string `yaml:"default_lang"`
	}
)

// LoadConfig loads configuration from a YAML file with environment variable
// placeholder support.
func LoadConfig(filename string) (*APIServerConfig, string, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfgPath := helper.GetCfgPath(filename)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, cfgPath, err
	}

	data = resolveEnv(data)
	var cfg APIServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, cfgPath, err
	}

	setDefaults(&cfg)
	return &cfg, cfgPath, nil
}

func setDefaults(cfg *APIServerConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5050
	}
	if cfg.Database.Type == "" {
		cfg.Database.Type = "memory"
	}
	if cfg.Session.Type == "" {
		cfg.Session.Type = "memory"
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = Duration(24 * time.Hour)
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "spice_session"
	}
	if cfg.Session.Redis.Prefix == "" {
		cfg.Session.Redis.Prefix = "spicestore:session:"
	}
	if cfg.Uploads.Dir == "" {
		cfg.Uploads.Dir = "data/uploads"
	}
	if cfg.Uploads.MaxSize <= 0 {
		cfg.Uploads.MaxSize = 5 << 20
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "spicestore"
	}
	if cfg.I18n.Path == "" {
		cfg.I18n.Path = "configs/i18n"
	}
	if cfg.I18n.DefaultLang == "" {
		cfg.I18n.DefaultLang = "en"
	}
}

// resolveEnv replaces ${VAR} and ${VAR:default} placeholders in YAML content.
func resolveEnv(content []byte) []byte {
	regex := regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

	return regex.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := regex.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string
		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}
		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}
