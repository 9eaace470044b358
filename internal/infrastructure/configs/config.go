package configs

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/plamen9/airline-bingo/internal/infrastructure/env"
)

type Config struct {
	HTTP        HTTPConfig        `koanf:"http"`
	Ords        OrdsConfig        `koanf:"ords"`
	RateLimiter RateLimiterConfig `koanf:"rate_limiter"`
	Tracing     TracingConfig     `koanf:"tracing"`
}

type HTTPConfig struct {
	Host           string        `koanf:"host"`
	Port           uint16        `koanf:"port"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
}

// OrdsConfig points at the external data service that owns all persistent
// game state. AuthType "basic" enables Username/Password on every call.
type OrdsConfig struct {
	BaseURL  string        `koanf:"base_url"`
	Timeout  time.Duration `koanf:"timeout"`
	AuthType string        `koanf:"auth_type"`
	Username string        `koanf:"username"`
	Password string        `koanf:"password"`
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int           `koanf:"requests_per_time_frame"`
	TimeFrame            time.Duration `koanf:"time_frame"`
}

type TracingConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Endpoint    string `koanf:"endpoint"`
	Environment string `koanf:"environment"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Load from YAML file if one was found; env vars and defaults cover the
	// rest.
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyDefaults(k)
	applyEnvOverrides(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	setDefault(k, "http.host", "0.0.0.0")
	setDefault(k, "http.port", 3000)
	setDefault(k, "http.allowed_origins", []string{"*"})
	setDefault(k, "http.read_timeout", 10*time.Second)
	setDefault(k, "http.write_timeout", 30*time.Second)

	setDefault(k, "ords.base_url", "http://localhost:8080/ords/bingo_schema")
	setDefault(k, "ords.timeout", 10*time.Second)
	setDefault(k, "ords.auth_type", "none")

	setDefault(k, "rate_limiter.requests_per_time_frame", 50)
	setDefault(k, "rate_limiter.time_frame", time.Second*5)

	setDefault(k, "tracing.enabled", false)
	setDefault(k, "tracing.endpoint", "http://localhost:4318")
	setDefault(k, "tracing.environment", "development")
}

func applyEnvOverrides(k *koanf.Koanf) {
	if host := env.GetString("HTTP_HOST", ""); host != "" {
		k.Set("http.host", host)
	}
	if port := env.GetInt("PORT", 0); port > 0 {
		k.Set("http.port", port)
	}

	if baseURL := env.GetString("ORDS_BASE_URL", ""); baseURL != "" {
		k.Set("ords.base_url", baseURL)
	}
	if timeout := env.GetInt("ORDS_TIMEOUT_SECONDS", 0); timeout > 0 {
		k.Set("ords.timeout", time.Duration(timeout)*time.Second)
	}
	if authType := env.GetString("ORDS_AUTH_TYPE", ""); authType != "" {
		k.Set("ords.auth_type", authType)
	}
	if username := env.GetString("ORDS_USERNAME", ""); username != "" {
		k.Set("ords.username", username)
	}
	if password := env.GetString("ORDS_PASSWORD", ""); password != "" {
		k.Set("ords.password", password)
	}

	if maxRate := env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 0); maxRate > 0 {
		k.Set("rate_limiter.requests_per_time_frame", maxRate)
	}
	if timeFrame := env.GetInt("RATE_LIMIT_TIME_FRAME_SECONDS", 0); timeFrame > 0 {
		k.Set("rate_limiter.time_frame", time.Duration(timeFrame)*time.Second)
	}

	if env.GetBool("TRACING_ENABLED", false) {
		k.Set("tracing.enabled", true)
	}
	if endpoint := env.GetString("OTLP_ENDPOINT", ""); endpoint != "" {
		k.Set("tracing.endpoint", endpoint)
	}
	if environment := env.GetString("ENVIRONMENT", ""); environment != "" {
		k.Set("tracing.environment", environment)
	}
}

func setDefault(k *koanf.Koanf, key string, value any) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}
