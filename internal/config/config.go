package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Completion CompletionConfig `mapstructure:"completion"`
	Razorpay   RazorpayConfig   `mapstructure:"razorpay"`
	Stripe     StripeConfig     `mapstructure:"stripe"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	Env            string        `mapstructure:"env"`
	Version        string        `mapstructure:"version"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, /path/to/log
}

type OpenAIConfig struct {
	APIKey        string `mapstructure:"api_key"`
	BaseURL       string `mapstructure:"base_url"`
	StandardModel string `mapstructure:"standard_model"`
	FastModel     string `mapstructure:"fast_model"`
}

// GeminiConfig enables the fallback tier when an API key or a Vertex
// project is set.
type GeminiConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Project  string `mapstructure:"project"`
	Location string `mapstructure:"location"`
	Model    string `mapstructure:"model"`
}

func (g GeminiConfig) Enabled() bool { return g.APIKey != "" || g.Project != "" }

type CompletionConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	BaseDelay         time.Duration `mapstructure:"base_delay"`
	SampleConcurrency int           `mapstructure:"sample_concurrency"`
}

type RazorpayConfig struct {
	KeyID     string `mapstructure:"key_id"`
	KeySecret string `mapstructure:"key_secret"`
}

func (r RazorpayConfig) Enabled() bool { return r.KeyID != "" && r.KeySecret != "" }

type StripeConfig struct {
	SecretKey      string `mapstructure:"secret_key"`
	PublishableKey string `mapstructure:"publishable_key"`
	WebhookSecret  string `mapstructure:"webhook_secret"`
}

func (s StripeConfig) Enabled() bool { return s.SecretKey != "" }

type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"` // sqlite, postgres
	DSN         string `mapstructure:"dsn"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// RedisConfig is optional; an empty Addr disables usage counters and
// webhook de-duplication.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// envBindings maps config keys to the plain environment names deployments
// already use. APP_<SECTION>_<KEY> works for every key as well.
var envBindings = map[string][]string{
	"server.port":            {"PORT"},
	"server.env":             {"APP_ENV", "ENV"},
	"server.version":         {"APP_VERSION"},
	"server.allowed_origins": {"CORS_ALLOWED_ORIGINS"},
	"openai.api_key":         {"OPENAI_API_KEY"},
	"openai.base_url":        {"OPENAI_BASE_URL"},
	"gemini.api_key":         {"GEMINI_API_KEY"},
	"gemini.project":         {"GOOGLE_CLOUD_PROJECT"},
	"gemini.location":        {"GOOGLE_CLOUD_LOCATION"},
	"razorpay.key_id":        {"RAZORPAY_KEY_ID"},
	"razorpay.key_secret":    {"RAZORPAY_KEY_SECRET"},
	"stripe.secret_key":      {"STRIPE_SECRET_KEY"},
	"stripe.publishable_key": {"STRIPE_PUBLISHABLE_KEY"},
	"stripe.webhook_secret":  {"STRIPE_WEBHOOK_SECRET"},
	"database.dsn":           {"DATABASE_URL"},
	"database.driver":        {"DATABASE_DRIVER"},
	"redis.addr":             {"REDIS_ADDR"},
	"redis.password":         {"REDIS_PASSWORD"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.env", "dev")
	v.SetDefault("server.version", "1.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 150*time.Second)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:3001"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("openai.standard_model", "gpt-4-turbo-preview")
	v.SetDefault("openai.fast_model", "gpt-3.5-turbo")
	v.SetDefault("gemini.location", "us-central1")
	v.SetDefault("gemini.model", "gemini-2.5-flash")

	v.SetDefault("completion.timeout", 90*time.Second)
	v.SetDefault("completion.max_retries", 2)
	v.SetDefault("completion.base_delay", 500*time.Millisecond)
	v.SetDefault("completion.sample_concurrency", 5)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "sphere.db")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.db", 0)
}

// Load reads defaults, then config/<env>.yaml when present (or configPath),
// then the environment.
func Load(env, configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath == "" {
		v.SetConfigName(env) // dev.yaml, prod.yaml
		v.AddConfigPath("./config")
		v.AddConfigPath("../config")
	} else {
		v.SetConfigFile(configPath)
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		args := append([]string{key, "APP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Server.AllowedOrigins = normalizeOrigins(cfg.Server.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the gateway must not start with.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return errors.New("config: openai.api_key (OPENAI_API_KEY) is required")
	}
	for _, o := range c.Server.AllowedOrigins {
		if o == "*" {
			return errors.New("config: wildcard CORS origin is not allowed, list origins explicitly")
		}
	}
	if c.Completion.Timeout <= 0 {
		return errors.New("config: completion.timeout must be positive")
	}
	if c.Completion.MaxRetries < 0 {
		return errors.New("config: completion.max_retries must not be negative")
	}
	return nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		for _, part := range strings.Split(o, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
