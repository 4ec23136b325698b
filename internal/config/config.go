package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Quiz   QuizConfig   `mapstructure:"quiz"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig selects and configures the persistent store backend.
type StoreConfig struct {
	// Driver selects the backend: sqlite (default), redis or memory.
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite redis memory"`

	// SQLitePath is the database file path for the sqlite driver.
	SQLitePath string `mapstructure:"sqlite_path"`

	// Redis connection settings for the redis driver.
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

// LLMConfig contains all Gemini integration settings.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName         string `mapstructure:"model_name"     validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries"        validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`

	// QuestionCount is the batch size requested from the model per
	// extraction. The grading table is calibrated to 30.
	QuestionCount int `mapstructure:"question_count" validate:"required,gt=0"`
}

// QuizConfig contains quiz-facing limits.
type QuizConfig struct {
	// MaxUploadBytes caps the uploaded document size. Gemini accepts at
	// most 20 MiB of inline data per request.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" validate:"required,gt=0"`
}
