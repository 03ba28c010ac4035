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
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Listing   ListingConfig
	Cache     CacheConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Export    ExportConfig
}

// ErrorPolicy decides how a failed listing query is presented.
type ErrorPolicy string

const (
	// ErrorPolicyDegrade renders an empty result in place of the failed page.
	ErrorPolicyDegrade ErrorPolicy = "degrade"
	// ErrorPolicySurface reports the failure to the caller.
	ErrorPolicySurface ErrorPolicy = "surface"
)

// ListingConfig holds the report listing settings.
type ListingConfig struct {
	PageSize         int           `mapstructure:"page_size"`
	CompletionStatus string        `mapstructure:"completion_status"`
	ErrorPolicy      ErrorPolicy   `mapstructure:"error_policy"`
	ClampPage        bool          `mapstructure:"clamp_page"`
	StoreCacheTTL    time.Duration `mapstructure:"store_cache_ttl"`
}

// CacheConfig selects the backend for the store-name cache.
type CacheConfig struct {
	Backend       string `mapstructure:"backend"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

// SessionConfig holds browser session cookie settings.
type SessionConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	Secure     bool   `mapstructure:"secure"`
}

// RateLimitConfig holds per-IP login throttling settings.
type RateLimitConfig struct {
	LoginRPS   float64 `mapstructure:"login_rps"`
	LoginBurst int     `mapstructure:"login_burst"`
}

// ExportConfig holds CSV/XLSX export settings.
type ExportConfig struct {
	BatchSize int `mapstructure:"batch_size"`
	MaxRows   int `mapstructure:"max_rows"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
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

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds settings for the bucket that stores report photos.
// An empty Bucket disables presigning; photo keys are then passed through.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the CLEANREPORTS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLEANREPORTS")
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
	v.SetDefault("db.user", "cleanreports")
	v.SetDefault("db.password", "cleanreports_secret")
	v.SetDefault("db.name", "cleanreports_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "12h")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "cleanreports")

	// S3 defaults
	v.SetDefault("s3.region", "ap-northeast-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Listing defaults
	v.SetDefault("listing.page_size", 20)
	v.SetDefault("listing.completion_status", "清掃完了")
	v.SetDefault("listing.error_policy", string(ErrorPolicyDegrade))
	v.SetDefault("listing.clamp_page", false)
	v.SetDefault("listing.store_cache_ttl", "60s")

	// Cache defaults
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)

	// Session defaults
	v.SetDefault("session.cookie_name", "cleanreports_session")
	v.SetDefault("session.secure", false)

	// Rate limit defaults
	v.SetDefault("rate_limit.login_rps", 1.0)
	v.SetDefault("rate_limit.login_burst", 5)

	// Export defaults
	v.SetDefault("export.batch_size", 200)
	v.SetDefault("export.max_rows", 10000)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "CLEANREPORTS_SERVER_PORT",
		"server.read_timeout":       "CLEANREPORTS_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "CLEANREPORTS_SERVER_WRITE_TIMEOUT",
		"server.environment":        "CLEANREPORTS_SERVER_ENVIRONMENT",
		"db.host":                   "CLEANREPORTS_DB_HOST",
		"db.port":                   "CLEANREPORTS_DB_PORT",
		"db.user":                   "CLEANREPORTS_DB_USER",
		"db.password":               "CLEANREPORTS_DB_PASSWORD",
		"db.name":                   "CLEANREPORTS_DB_NAME",
		"db.sslmode":                "CLEANREPORTS_DB_SSLMODE",
		"db.max_open":               "CLEANREPORTS_DB_MAX_OPEN",
		"db.max_idle":               "CLEANREPORTS_DB_MAX_IDLE",
		"jwt.secret":                "CLEANREPORTS_JWT_SECRET",
		"jwt.access_expiry":         "CLEANREPORTS_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":        "CLEANREPORTS_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                "CLEANREPORTS_JWT_ISSUER",
		"s3.region":                 "CLEANREPORTS_S3_REGION",
		"s3.bucket":                 "CLEANREPORTS_S3_BUCKET",
		"s3.endpoint":               "CLEANREPORTS_S3_ENDPOINT",
		"s3.access_key":             "CLEANREPORTS_S3_ACCESS_KEY",
		"s3.secret_key":             "CLEANREPORTS_S3_SECRET_KEY",
		"s3.presign_expiry":         "CLEANREPORTS_S3_PRESIGN_EXPIRY",
		"log.level":                 "CLEANREPORTS_LOG_LEVEL",
		"log.format":                "CLEANREPORTS_LOG_FORMAT",
		"cors.allowed_origins":      "CLEANREPORTS_CORS_ALLOWED_ORIGINS",
		"listing.page_size":         "CLEANREPORTS_LISTING_PAGE_SIZE",
		"listing.completion_status": "CLEANREPORTS_LISTING_COMPLETION_STATUS",
		"listing.error_policy":      "CLEANREPORTS_LISTING_ERROR_POLICY",
		"listing.clamp_page":        "CLEANREPORTS_LISTING_CLAMP_PAGE",
		"listing.store_cache_ttl":   "CLEANREPORTS_LISTING_STORE_CACHE_TTL",
		"cache.backend":             "CLEANREPORTS_CACHE_BACKEND",
		"cache.redis_addr":          "CLEANREPORTS_CACHE_REDIS_ADDR",
		"cache.redis_password":      "CLEANREPORTS_CACHE_REDIS_PASSWORD",
		"cache.redis_db":            "CLEANREPORTS_CACHE_REDIS_DB",
		"session.cookie_name":       "CLEANREPORTS_SESSION_COOKIE_NAME",
		"session.secure":            "CLEANREPORTS_SESSION_SECURE",
		"rate_limit.login_rps":      "CLEANREPORTS_RATE_LIMIT_LOGIN_RPS",
		"rate_limit.login_burst":    "CLEANREPORTS_RATE_LIMIT_LOGIN_BURST",
		"export.batch_size":         "CLEANREPORTS_EXPORT_BATCH_SIZE",
		"export.max_rows":           "CLEANREPORTS_EXPORT_MAX_ROWS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CLEANREPORTS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CLEANREPORTS_SERVER_PORT") == "" {
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
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Listing = ListingConfig{
		PageSize:         v.GetInt("listing.page_size"),
		CompletionStatus: v.GetString("listing.completion_status"),
		ErrorPolicy:      ErrorPolicy(strings.ToLower(v.GetString("listing.error_policy"))),
		ClampPage:        v.GetBool("listing.clamp_page"),
		StoreCacheTTL:    v.GetDuration("listing.store_cache_ttl"),
	}
	if cfg.Listing.PageSize <= 0 {
		return nil, fmt.Errorf("listing.page_size must be positive, got %d", cfg.Listing.PageSize)
	}
	if cfg.Listing.ErrorPolicy != ErrorPolicyDegrade && cfg.Listing.ErrorPolicy != ErrorPolicySurface {
		return nil, fmt.Errorf("listing.error_policy must be %q or %q, got %q",
			ErrorPolicyDegrade, ErrorPolicySurface, cfg.Listing.ErrorPolicy)
	}

	cfg.Cache = CacheConfig{
		Backend:       v.GetString("cache.backend"),
		RedisAddr:     v.GetString("cache.redis_addr"),
		RedisPassword: v.GetString("cache.redis_password"),
		RedisDB:       v.GetInt("cache.redis_db"),
	}

	cfg.Session = SessionConfig{
		CookieName: v.GetString("session.cookie_name"),
		Secure:     v.GetBool("session.secure"),
	}

	cfg.RateLimit = RateLimitConfig{
		LoginRPS:   v.GetFloat64("rate_limit.login_rps"),
		LoginBurst: v.GetInt("rate_limit.login_burst"),
	}

	cfg.Export = ExportConfig{
		BatchSize: v.GetInt("export.batch_size"),
		MaxRows:   v.GetInt("export.max_rows"),
	}

	return cfg, nil
}
