package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	Extract   ExtractConfig
	Tolerance ToleranceConfig
	Review    ReviewConfig
	Email     EmailConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExtractConfig holds text recovery settings.
type ExtractConfig struct {
	MinUsableChars int  `mapstructure:"min_usable_chars"`
	OCREnabled     bool `mapstructure:"ocr_enabled"`
	TimeoutSecs    int  `mapstructure:"timeout_secs"`
}

// ToleranceConfig holds the reconciliation and chain-gap tolerances. They
// differ by two orders of magnitude and are configured independently.
type ToleranceConfig struct {
	Reconcile string `mapstructure:"reconcile"`
	ChainGap  string `mapstructure:"chain_gap"`
}

// ReviewConfig holds pending-review settings.
type ReviewConfig struct {
	TTL               time.Duration `mapstructure:"ttl"`
	SweepIntervalSecs int           `mapstructure:"sweep_interval_secs"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	NotifyAddrs string `mapstructure:"notify_addrs"`
}

// NotifyList splits the comma-separated notification recipients.
func (e *EmailConfig) NotifyList() []string {
	var out []string
	for _, a := range strings.Split(e.NotifyAddrs, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the INVESTCO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVESTCO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "investco")
	v.SetDefault("db.password", "investco_secret")
	v.SetDefault("db.name", "investco_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "investco-statements")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Extraction defaults
	v.SetDefault("extract.min_usable_chars", 100)
	v.SetDefault("extract.ocr_enabled", true)
	v.SetDefault("extract.timeout_secs", 120)

	// Tolerance defaults: a dollar for reconciliation, a cent for chain gaps
	v.SetDefault("tolerance.reconcile", "1.00")
	v.SetDefault("tolerance.chain_gap", "0.01")

	// Review defaults
	v.SetDefault("review.ttl", "24h")
	v.SetDefault("review.sweep_interval_secs", 600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@investco.local")
	v.SetDefault("email.from_name", "Investco")
	v.SetDefault("email.notify_addrs", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "INVESTCO_SERVER_PORT",
		"server.read_timeout":        "INVESTCO_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "INVESTCO_SERVER_WRITE_TIMEOUT",
		"server.environment":         "INVESTCO_SERVER_ENVIRONMENT",
		"db.host":                    "INVESTCO_DB_HOST",
		"db.port":                    "INVESTCO_DB_PORT",
		"db.user":                    "INVESTCO_DB_USER",
		"db.password":                "INVESTCO_DB_PASSWORD",
		"db.name":                    "INVESTCO_DB_NAME",
		"db.sslmode":                 "INVESTCO_DB_SSLMODE",
		"db.max_open":                "INVESTCO_DB_MAX_OPEN",
		"db.max_idle":                "INVESTCO_DB_MAX_IDLE",
		"s3.region":                  "INVESTCO_S3_REGION",
		"s3.bucket":                  "INVESTCO_S3_BUCKET",
		"s3.endpoint":                "INVESTCO_S3_ENDPOINT",
		"s3.access_key":              "INVESTCO_S3_ACCESS_KEY",
		"s3.secret_key":              "INVESTCO_S3_SECRET_KEY",
		"s3.max_file_size_mb":        "INVESTCO_S3_MAX_FILE_SIZE_MB",
		"log.level":                  "INVESTCO_LOG_LEVEL",
		"log.format":                 "INVESTCO_LOG_FORMAT",
		"extract.min_usable_chars":   "INVESTCO_EXTRACT_MIN_USABLE_CHARS",
		"extract.ocr_enabled":        "INVESTCO_EXTRACT_OCR_ENABLED",
		"extract.timeout_secs":       "INVESTCO_EXTRACT_TIMEOUT_SECS",
		"tolerance.reconcile":        "INVESTCO_TOLERANCE_RECONCILE",
		"tolerance.chain_gap":        "INVESTCO_TOLERANCE_CHAIN_GAP",
		"review.ttl":                 "INVESTCO_REVIEW_TTL",
		"review.sweep_interval_secs": "INVESTCO_REVIEW_SWEEP_INTERVAL_SECS",
		"email.provider":             "INVESTCO_EMAIL_PROVIDER",
		"email.region":               "INVESTCO_EMAIL_REGION",
		"email.from_address":         "INVESTCO_EMAIL_FROM_ADDRESS",
		"email.from_name":            "INVESTCO_EMAIL_FROM_NAME",
		"email.notify_addrs":         "INVESTCO_EMAIL_NOTIFY_ADDRS",
		"cors.allowed_origins":       "INVESTCO_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVESTCO_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVESTCO_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Extract = ExtractConfig{
		MinUsableChars: v.GetInt("extract.min_usable_chars"),
		OCREnabled:     v.GetBool("extract.ocr_enabled"),
		TimeoutSecs:    v.GetInt("extract.timeout_secs"),
	}
	cfg.Tolerance = ToleranceConfig{
		Reconcile: v.GetString("tolerance.reconcile"),
		ChainGap:  v.GetString("tolerance.chain_gap"),
	}
	cfg.Review = ReviewConfig{
		TTL:               v.GetDuration("review.ttl"),
		SweepIntervalSecs: v.GetInt("review.sweep_interval_secs"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		NotifyAddrs: v.GetString("email.notify_addrs"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
