package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/riskibarqy/football-scout/internal/platform/logging"
	"github.com/riskibarqy/football-scout/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config stores runtime configuration for the service. Keys are the
// lower-cased environment variable names, in YAML files as well.
type Config struct {
	AppEnv         string        `koanf:"app_env"`
	ServiceName    string        `koanf:"app_service_name"`
	ServiceVersion string        `koanf:"app_service_version"`
	HTTPAddr       string        `koanf:"app_http_addr"`
	ReadTimeout    time.Duration `koanf:"app_read_timeout"`
	WriteTimeout   time.Duration `koanf:"app_write_timeout"`
	LogLevelName   string        `koanf:"app_log_level"`
	LogLevel       logging.Level `koanf:"-"`

	DataBackend       string `koanf:"data_backend"`
	DBURL             string `koanf:"db_url"`
	DBApplicationName string `koanf:"db_application_name"`
	DBBootstrapSeed   bool   `koanf:"db_bootstrap_seed"`

	CacheTTL                   time.Duration `koanf:"cache_ttl"`
	RedisAddr                  string        `koanf:"redis_addr"`
	RedisDialTimeout           time.Duration `koanf:"redis_dial_timeout"`
	RedisCircuitEnabled        bool          `koanf:"redis_circuit_enabled"`
	RedisCircuitFailureCount   int           `koanf:"redis_circuit_failure_count"`
	RedisCircuitOpenTimeout    time.Duration `koanf:"redis_circuit_open_timeout"`
	RedisCircuitHalfOpenMaxReq int           `koanf:"redis_circuit_half_open_max_req"`

	RankingWorkers          int     `koanf:"ranking_workers"`
	PredictionWeightAttack  float64 `koanf:"prediction_weight_attack"`
	PredictionWeightDefense float64 `koanf:"prediction_weight_defense"`
	PredictionWeightReferee float64 `koanf:"prediction_weight_referee"`

	CORSAllowedOriginsRaw string   `koanf:"cors_allowed_origins"`
	CORSAllowedOrigins    []string `koanf:"-"`
	MetricsEnabled        bool     `koanf:"metrics_enabled"`
	DocsEnabled           bool     `koanf:"app_docs_enabled"`

	PprofEnabled bool   `koanf:"pprof_enabled"`
	PprofAddr    string `koanf:"pprof_addr"`

	UptraceEnabled     bool   `koanf:"uptrace_enabled"`
	UptraceDSN         string `koanf:"uptrace_dsn"`
	UptraceLogsEnabled bool   `koanf:"uptrace_logs_enabled"`

	PyroscopeEnabled           bool          `koanf:"pyroscope_enabled"`
	PyroscopeServerAddress     string        `koanf:"pyroscope_server_address"`
	PyroscopeAppName           string        `koanf:"pyroscope_app_name"`
	PyroscopeAuthToken         string        `koanf:"pyroscope_auth_token"`
	PyroscopeBasicAuthUser     string        `koanf:"pyroscope_basic_auth_user"`
	PyroscopeBasicAuthPassword string        `koanf:"pyroscope_basic_auth_password"`
	PyroscopeUploadRate        time.Duration `koanf:"pyroscope_upload_rate"`

	ImportSQLitePath string `koanf:"import_sqlite_path"`
	ImportLeagueID   string `koanf:"import_league_id"`
	ImportBatchSize  int    `koanf:"import_batch_size"`
}

func defaults() Config {
	return Config{
		AppEnv:                     EnvDev,
		ServiceName:                "football-scout",
		ServiceVersion:             "dev",
		HTTPAddr:                   ":8080",
		ReadTimeout:                10 * time.Second,
		WriteTimeout:               15 * time.Second,
		LogLevelName:               "info",
		DataBackend:                BackendMemory,
		CacheTTL:                   30 * time.Second,
		RedisDialTimeout:           2 * time.Second,
		RedisCircuitEnabled:        true,
		RedisCircuitFailureCount:   3,
		RedisCircuitOpenTimeout:    10 * time.Second,
		RedisCircuitHalfOpenMaxReq: 1,
		RankingWorkers:             8,
		PredictionWeightAttack:     0.45,
		PredictionWeightDefense:    0.35,
		PredictionWeightReferee:    0.20,
		CORSAllowedOriginsRaw:      "*",
		MetricsEnabled:             true,
		DocsEnabled:                true,
		PprofAddr:                  ":6060",
		UptraceLogsEnabled:         true,
		PyroscopeAppName:           "football-scout",
		PyroscopeUploadRate:        15 * time.Second,
		ImportLeagueID:             "arg-primera",
		ImportBatchSize:            500,
	}
}

// Load layers defaults, the YAML file named by CONFIG_FILE and the
// environment, in that order. Blank environment values are ignored.
func Load() (Config, error) {
	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load CONFIG_FILE %s: %w", path, err)
		}
	}

	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(key), strings.TrimSpace(value)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	appEnv, err := parseAppEnv(c.AppEnv)
	if err != nil {
		return err
	}
	c.AppEnv = appEnv

	level, err := logging.ParseLevel(c.LogLevelName)
	if err != nil {
		return fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}
	c.LogLevel = level

	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("APP_HTTP_ADDR is required")
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("APP_READ_TIMEOUT must be > 0")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("APP_WRITE_TIMEOUT must be > 0")
	}

	c.DataBackend = strings.ToLower(strings.TrimSpace(c.DataBackend))
	switch c.DataBackend {
	case BackendMemory:
	case BackendPostgres:
		if strings.TrimSpace(c.DBURL) == "" {
			return fmt.Errorf("DB_URL is required when DATA_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("invalid DATA_BACKEND %q: valid values are %s, %s", c.DataBackend, BackendMemory, BackendPostgres)
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}
	if c.RedisDialTimeout <= 0 {
		return fmt.Errorf("REDIS_DIAL_TIMEOUT must be > 0")
	}
	if c.RedisCircuitFailureCount < 1 {
		return fmt.Errorf("REDIS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if c.RedisCircuitOpenTimeout <= 0 {
		return fmt.Errorf("REDIS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	if c.RedisCircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("REDIS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	if c.RankingWorkers < 1 {
		return fmt.Errorf("RANKING_WORKERS must be >= 1")
	}
	sum := c.PredictionWeightAttack + c.PredictionWeightDefense + c.PredictionWeightReferee
	if c.PredictionWeightAttack < 0 || c.PredictionWeightDefense < 0 || c.PredictionWeightReferee < 0 {
		return fmt.Errorf("PREDICTION_WEIGHT_* must be >= 0")
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("PREDICTION_WEIGHT_* must sum to 1, got %.4f", sum)
	}

	c.CORSAllowedOrigins = splitCSV(c.CORSAllowedOriginsRaw)

	if c.PprofEnabled && strings.TrimSpace(c.PprofAddr) == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	if strings.TrimSpace(c.UptraceDSN) == "" {
		c.UptraceDSN = parseUptraceDSNFromOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if c.PyroscopeEnabled && strings.TrimSpace(c.PyroscopeServerAddress) == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if c.PyroscopeUploadRate <= 0 {
		return fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}
	if c.ImportBatchSize < 1 {
		return fmt.Errorf("IMPORT_BATCH_SIZE must be >= 1")
	}

	return nil
}

func (c Config) RedisCircuit() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          c.RedisCircuitEnabled,
		FailureThreshold: c.RedisCircuitFailureCount,
		OpenTimeout:      c.RedisCircuitOpenTimeout,
		HalfOpenMaxReq:   c.RedisCircuitHalfOpenMaxReq,
	}
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
