package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "CB"

type Config struct {
	// Client
	APIBaseURL     string        `mapstructure:"api_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	// Token persistence
	TokenStore    string `mapstructure:"token_store"` // file | redis | memory
	TokenFile     string `mapstructure:"token_file"`  // empty = user config dir
	Profile       string `mapstructure:"profile"`
	RedisURL      string `mapstructure:"redis_url"`
	RedisPassword string `mapstructure:"redis_password"`
	// Sandbox backend
	SandboxPort           string   `mapstructure:"sandbox_port"`
	SandboxJWTSecret      string   `mapstructure:"sandbox_jwt_secret"`
	SandboxAllowedOrigins []string `mapstructure:"sandbox_allowed_origins"`
	SandboxSeed           bool     `mapstructure:"sandbox_seed"`
}

var defaults = map[string]any{
	"api_base_url":            "http://localhost:8080/api/v1",
	"request_timeout":         time.Duration(0),
	"log_level":               "info",
	"token_store":             "file",
	"token_file":              "",
	"profile":                 "default",
	"redis_url":               "",
	"redis_password":          "",
	"sandbox_port":            "8080",
	"sandbox_jwt_secret":      "careerbridge-sandbox-secret",
	"sandbox_allowed_origins": []string{"http://localhost:3000", "http://127.0.0.1:3000"},
	"sandbox_seed":            true,
}

// LoadConfig reads .env (when present), then careerbridge.yaml (optional),
// then CB_* environment variables. Later sources win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New(), true)
}

func load(v *viper.Viper, searchFiles bool) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if searchFiles {
		v.SetConfigName("careerbridge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.careerbridge")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.SandboxAllowedOrigins = splitOrigins(cfg.SandboxAllowedOrigins)

	if cfg.TokenStore == "redis" && cfg.RedisURL == "" {
		log.Println("WARNING: CB_TOKEN_STORE=redis but CB_REDIS_URL is empty; token store will fail to open.")
	}

	return &cfg, nil
}

// splitOrigins accepts both a YAML list and a comma-separated env value.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}
