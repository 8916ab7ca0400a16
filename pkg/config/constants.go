package config

const (
	EnvPrefix = "KISANMITRA"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	LogFormatJSON    = "json"
	LogFormatConsole = "console"

	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	EnvAppEnv         = "KISANMITRA_APP_ENV"
	EnvLogLevel       = "KISANMITRA_LOG_LEVEL"
	EnvLogFormat      = "KISANMITRA_LOG_FORMAT"
	EnvAPIBaseURL     = "KISANMITRA_API_BASE_URL"
	EnvAPIDevBaseURL  = "KISANMITRA_API_DEV_BASE_URL"
	EnvAPIProdBaseURL = "KISANMITRA_API_PROD_BASE_URL"
	EnvAPITimeout     = "KISANMITRA_API_TIMEOUT"
	EnvCacheBackend   = "KISANMITRA_CACHE_BACKEND"
	EnvCacheTTL       = "KISANMITRA_CACHE_TTL"
	EnvRedisURL       = "KISANMITRA_REDIS_URL"
	EnvRedisAddr      = "KISANMITRA_REDIS_ADDR"
	EnvMetricsAddr    = "KISANMITRA_METRICS_ADDR"
	EnvServerPort     = "KISANMITRA_SERVER_PORT"
)

var devAliases = []string{AppEnvDev, "dev", "local"}

var prodAliases = []string{AppEnvProd, "prod"}
