package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"

	"github.com/kisanmitra/kisanmitra/pkg/apiclient"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Metrics MetricsConfig
	Server  ServerConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every inconsistent setting at once.
func (c *Config) Validate() error {
	var err error
	if !c.App.IsDev() && !c.App.IsProd() {
		err = multierr.Append(err, fmt.Errorf("%s must be %s or %s, got %q", EnvAppEnv, AppEnvDev, AppEnvProd, c.App.Env))
	}
	switch strings.ToLower(strings.TrimSpace(c.App.LogFormat)) {
	case "", LogFormatJSON, LogFormatConsole:
	default:
		err = multierr.Append(err, fmt.Errorf("%s must be %s or %s, got %q", EnvLogFormat, LogFormatJSON, LogFormatConsole, c.App.LogFormat))
	}
	if c.API.Timeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvAPITimeout))
	}
	if _, baseErr := c.API.ResolveBaseURL(c.App); baseErr != nil {
		err = multierr.Append(err, baseErr)
	}
	switch strings.ToLower(strings.TrimSpace(c.Cache.Backend)) {
	case CacheBackendNone, CacheBackendMemory:
	case CacheBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			err = multierr.Append(err, fmt.Errorf("%s=redis requires %s or %s", EnvCacheBackend, EnvRedisURL, EnvRedisAddr))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("%s must be one of none, memory, redis; got %q", EnvCacheBackend, c.Cache.Backend))
	}
	if c.Cache.TTL <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvCacheTTL))
	}
	return err
}

type AppConfig struct {
	Env          string `envconfig:"KISANMITRA_APP_ENV" default:"development"`
	Name         string `envconfig:"KISANMITRA_APP_NAME" default:"KisanMitra"`
	Version      string `envconfig:"KISANMITRA_APP_VERSION" default:"1.0.0"`
	LogLevel     string `envconfig:"KISANMITRA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KISANMITRA_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"KISANMITRA_LOG_FORMAT" default:"json"`
	LogNoColor   bool   `envconfig:"KISANMITRA_LOG_NO_COLOR" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return matchesAny(a.Env, devAliases)
}

func (a AppConfig) IsProd() bool {
	return matchesAny(a.Env, prodAliases)
}

// Mode maps the application environment onto the endpoint selection mode.
func (a AppConfig) Mode() apiclient.Mode {
	if a.IsProd() {
		return apiclient.ModeProduction
	}
	return apiclient.ModeDevelopment
}

// UserAgent identifies this build on outbound requests.
func (a AppConfig) UserAgent() string {
	return fmt.Sprintf("%s/%s", a.Name, a.Version)
}

type APIConfig struct {
	BaseURL          string        `envconfig:"KISANMITRA_API_BASE_URL"`
	DevBaseURL       string        `envconfig:"KISANMITRA_API_DEV_BASE_URL" default:"http://localhost:8000"`
	ProdBaseURL      string        `envconfig:"KISANMITRA_API_PROD_BASE_URL"`
	Timeout          time.Duration `envconfig:"KISANMITRA_API_TIMEOUT" default:"10s"`
	MaxResponseBytes int64         `envconfig:"KISANMITRA_API_MAX_RESPONSE_BYTES" default:"4194304"`
}

// ResolveBaseURL picks the override, else the base URL for the app's mode.
func (a APIConfig) ResolveBaseURL(app AppConfig) (string, error) {
	candidate := strings.TrimSpace(a.BaseURL)
	if candidate == "" {
		if app.IsProd() {
			candidate = strings.TrimSpace(a.ProdBaseURL)
		} else {
			candidate = strings.TrimSpace(a.DevBaseURL)
		}
	}
	if candidate == "" {
		return "", errors.New("no API base URL configured for " + string(app.Mode()))
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid API base URL %q", candidate)
	}
	return candidate, nil
}

// Endpoints builds the immutable endpoint configuration for the app's mode.
func (a APIConfig) Endpoints(app AppConfig) (apiclient.Endpoints, error) {
	base, err := a.ResolveBaseURL(app)
	if err != nil {
		return apiclient.Endpoints{}, err
	}
	return apiclient.NewEndpoints(app.Mode(), base, a.Timeout)
}

type CacheConfig struct {
	Backend string        `envconfig:"KISANMITRA_CACHE_BACKEND" default:"none"`
	TTL     time.Duration `envconfig:"KISANMITRA_CACHE_TTL" default:"10m"`
	Size    int           `envconfig:"KISANMITRA_CACHE_SIZE" default:"256"`
}

// Enabled reports whether a cache backend was selected.
func (c CacheConfig) Enabled() bool {
	backend := strings.ToLower(strings.TrimSpace(c.Backend))
	return backend != "" && backend != CacheBackendNone
}

type RedisConfig struct {
	URL          string        `envconfig:"KISANMITRA_REDIS_URL"`
	Address      string        `envconfig:"KISANMITRA_REDIS_ADDR"`
	Password     string        `envconfig:"KISANMITRA_REDIS_PASSWORD"`
	DB           int           `envconfig:"KISANMITRA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KISANMITRA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KISANMITRA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KISANMITRA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KISANMITRA_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"KISANMITRA_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type MetricsConfig struct {
	Addr string `envconfig:"KISANMITRA_METRICS_ADDR"`
}

type ServerConfig struct {
	Port        string        `envconfig:"KISANMITRA_SERVER_PORT" default:"8000"`
	CORSOrigins []string      `envconfig:"KISANMITRA_SERVER_CORS_ORIGINS" default:"http://localhost:8081,http://localhost:19006"`
	ReadTimeout time.Duration `envconfig:"KISANMITRA_SERVER_READ_TIMEOUT" default:"15s"`
}

func matchesAny(value string, options []string) bool {
	trimmed := strings.TrimSpace(value)
	for _, opt := range options {
		if strings.EqualFold(trimmed, opt) {
			return true
		}
	}
	return false
}
