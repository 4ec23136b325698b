package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config file and from environment
// variables with the ZAHRO_ prefix (e.g. ZAHRO_LLM_GEMINI_API_KEY).
// Environment variables take precedence over file values; defaults cover
// everything except the Gemini API key.
//
// configPath may be empty, in which case only an optional ./config.yaml is
// consulted. Returns a validated Config or an error describing what failed.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// A missing default config file is fine; env vars and
			// defaults carry the configuration.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("ZAHRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers a default for every key so AutomaticEnv can bind
// them. The Gemini API key deliberately defaults to empty and fails
// validation when absent.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "zahro.db")
	v.SetDefault("store.redis_addr", "")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "gemini-3-flash-preview")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("llm.question_count", 30)

	v.SetDefault("quiz.max_upload_bytes", 20*1024*1024)
}

// validate runs struct validation and converts the first failure into a
// readable error.
func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		return fmt.Errorf("invalid configuration: field %s failed on %q", first.Namespace(), first.Tag())
	}
	return fmt.Errorf("invalid configuration: %w", err)
}
