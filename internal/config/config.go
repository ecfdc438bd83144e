package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultServerAddr     = ":9090"
	defaultGatewayAddr    = ":8080"
	defaultDatabaseURL    = "shareit.db"
	defaultServerURL      = "http://localhost:9090"
	defaultGatewayTimeout = "10s"
	defaultServiceTTL     = "60s"
	defaultRateWindow     = "1m"
)

type Config struct {
	App          AppConfig          `yaml:"app"`
	HTTP         HTTPConfig         `yaml:"http"`
	Database     DatabaseConfig     `yaml:"database"`
	Logging      LoggingConfig      `yaml:"logging"`
	Gateway      GatewayConfig      `yaml:"gateway"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	ServiceToken ServiceTokenConfig `yaml:"service_token"`
	CORS         CORSConfig         `yaml:"cors"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL         string `yaml:"url"`
	AutoMigrate bool   `yaml:"auto_migrate"`
	LogLevel    string `yaml:"log_level"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

type GatewayConfig struct {
	ServerURL string        `yaml:"server_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

// RateLimitConfig drives the gateway limiter. With RedisAddr set the limiter is a
// shared fixed window of Limit requests per Window; otherwise a local token bucket
// of RPS/Burst per client.
type RateLimitConfig struct {
	Enabled       bool          `yaml:"enabled"`
	RPS           float64       `yaml:"rps"`
	Burst         int           `yaml:"burst"`
	Limit         int           `yaml:"limit"`
	Window        time.Duration `yaml:"window"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisPrefix   string        `yaml:"redis_prefix"`
}

// ServiceTokenConfig enables signed gateway-to-server calls when Secret is set.
type ServiceTokenConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads .env (when present), then the optional YAML file at path, then
// environment overrides. role selects defaults for "server" or "gateway".
func Load(path, role string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults(role)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.App.Name = getEnv("APP_NAME", c.App.Name)
	c.App.Environment = strings.ToLower(getEnv("APP_ENV", c.App.Environment))
	c.HTTP.Addr = getEnv("HTTP_ADDR", c.HTTP.Addr)
	c.Database.URL = getEnv("DATABASE_URL", c.Database.URL)
	c.Database.LogLevel = getEnv("DB_LOG_LEVEL", c.Database.LogLevel)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
	c.Logging.Output = getEnv("LOG_OUTPUT", c.Logging.Output)
	c.Gateway.ServerURL = getEnv("SHAREIT_SERVER_URL", c.Gateway.ServerURL)
	c.ServiceToken.Secret = getEnv("SERVICE_TOKEN_SECRET", c.ServiceToken.Secret)
	c.RateLimit.RedisAddr = getEnv("REDIS_ADDR", c.RateLimit.RedisAddr)
	c.RateLimit.RedisPassword = getEnv("REDIS_PASSWORD", c.RateLimit.RedisPassword)
	c.RateLimit.RedisPrefix = getEnv("RATE_LIMIT_REDIS_PREFIX", c.RateLimit.RedisPrefix)

	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		c.Database.AutoMigrate = parseBool(v)
	}
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		c.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORS.AllowedOrigins = splitList(v)
	}

	var err error
	if c.Gateway.Timeout, err = parseDurationEnv("GATEWAY_TIMEOUT", c.Gateway.Timeout); err != nil {
		return err
	}
	if c.ServiceToken.TTL, err = parseDurationEnv("SERVICE_TOKEN_TTL", c.ServiceToken.TTL); err != nil {
		return err
	}
	if c.RateLimit.Window, err = parseDurationEnv("RATE_LIMIT_WINDOW", c.RateLimit.Window); err != nil {
		return err
	}
	if c.RateLimit.Limit, err = parseIntEnv("RATE_LIMIT_LIMIT", c.RateLimit.Limit); err != nil {
		return err
	}
	if c.RateLimit.Burst, err = parseIntEnv("RATE_LIMIT_BURST", c.RateLimit.Burst); err != nil {
		return err
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS value %q: %w", v, err)
		}
		c.RateLimit.RPS = rps
	}
	return nil
}

func (c *Config) applyDefaults(role string) {
	if c.App.Name == "" {
		c.App.Name = "shareit-" + role
	}
	if c.App.Environment == "" {
		c.App.Environment = "dev"
	}
	if c.HTTP.Addr == "" {
		if role == "gateway" {
			c.HTTP.Addr = defaultGatewayAddr
		} else {
			c.HTTP.Addr = defaultServerAddr
		}
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 15 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.URL == "" {
		c.Database.URL = defaultDatabaseURL
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Gateway.ServerURL == "" {
		c.Gateway.ServerURL = defaultServerURL
	}
	if c.Gateway.Timeout == 0 {
		c.Gateway.Timeout, _ = time.ParseDuration(defaultGatewayTimeout)
	}
	if c.ServiceToken.TTL == 0 {
		c.ServiceToken.TTL, _ = time.ParseDuration(defaultServiceTTL)
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
	if c.RateLimit.Limit == 0 {
		c.RateLimit.Limit = 600
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window, _ = time.ParseDuration(defaultRateWindow)
	}
	if c.RateLimit.RedisPrefix == "" {
		c.RateLimit.RedisPrefix = "shareit:ratelimit"
	}
}

func (c *Config) Validate() error {
	if c.Gateway.Timeout <= 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT must be > 0")
	}
	if c.ServiceToken.TTL <= 0 {
		return fmt.Errorf("SERVICE_TOKEN_TTL must be > 0")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
			return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0")
		}
		if c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0 {
			return fmt.Errorf("RATE_LIMIT_LIMIT and RATE_LIMIT_WINDOW must be > 0")
		}
	}
	if IsProdLike(c.App.Environment) && strings.TrimSpace(c.ServiceToken.Secret) == "" {
		return fmt.Errorf("in prod/release SERVICE_TOKEN_SECRET must be set")
	}
	return nil
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBool(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
