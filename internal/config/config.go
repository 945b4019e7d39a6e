package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

type Config struct {
	App          AppConfig
	JWT          JWTConfig
	Backend      BackendConfig
	Attendance   AttendanceConfig
	Store        StoreConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	OAuth2Google OAuth2GoogleConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	FrontendURL    string
	AllowedOrigins []string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// BackendConfig points at the spreadsheet web-app
type BackendConfig struct {
	ScriptURL string
	Timeout   time.Duration // 0 = no timeout
}

type AttendanceConfig struct {
	MinRowID              int
	NoticeTTL             time.Duration
	RosterRefreshInterval time.Duration
	SessionRetention      time.Duration
	Locale                string
}

type StoreConfig struct {
	Type string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Enabled reports whether Google sign-in is configured.
func (c OAuth2GoogleConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RedirectURL != ""
}

func Load() (*Config, error) {
	// .env is optional; real deployments pass the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}
	var err error

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Spreadsheet backend
	backendTimeout, err := getEnvDuration("BACKEND_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	config.Backend = BackendConfig{
		ScriptURL: getEnv("SCRIPT_URL", ""),
		Timeout:   backendTimeout,
	}

	// Attendance rules
	minRowID, err := strconv.Atoi(getEnv("ATTENDANCE_MIN_ROW_ID", "9"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_MIN_ROW_ID: %w", err)
	}
	noticeTTL, err := getEnvDuration("NOTICE_TTL", 5*time.Second)
	if err != nil {
		return nil, err
	}
	rosterInterval, err := getEnvDuration("ROSTER_REFRESH_INTERVAL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	retention, err := getEnvDuration("SESSION_RETENTION", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	config.Attendance = AttendanceConfig{
		MinRowID:              minRowID,
		NoticeTTL:             noticeTTL,
		RosterRefreshInterval: rosterInterval,
		SessionRetention:      retention,
		Locale:                getEnv("ATTENDANCE_LOCALE", "id"),
	}

	// Session store
	config.Store = StoreConfig{
		Type: strings.ToLower(getEnv("SESSION_STORE", StorePostgres)),
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "absensi"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Backend.ScriptURL == "" {
		return fmt.Errorf("SCRIPT_URL is required")
	}
	if !strings.HasPrefix(c.Backend.ScriptURL, "http://") && !strings.HasPrefix(c.Backend.ScriptURL, "https://") {
		return fmt.Errorf("SCRIPT_URL must start with http:// or https://")
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must not be negative")
	}
	if c.Attendance.MinRowID < 1 {
		return fmt.Errorf("ATTENDANCE_MIN_ROW_ID must be at least 1")
	}
	if c.Attendance.NoticeTTL <= 0 {
		return fmt.Errorf("NOTICE_TTL must be positive")
	}
	if c.Attendance.RosterRefreshInterval <= 0 {
		return fmt.Errorf("ROSTER_REFRESH_INTERVAL must be positive")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	switch c.Store.Type {
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("SESSION_STORE must be one of: postgres, redis, memory")
	}

	// Google sign-in is optional but must be complete when started
	g := c.OAuth2Google
	if g.ClientID != "" || g.ClientSecret != "" || g.RedirectURL != "" {
		if !g.Enabled() {
			return fmt.Errorf("CLIENT_ID, CLIENT_SECRET and REDIRECT_URL must be set together")
		}
		if len(g.Scopes) == 0 {
			return fmt.Errorf("SCOPES is required")
		}
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the configured time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
