package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Kafka     KafkaConfig
	Agent     AgentConfig
	Support   SupportConfig
	Processor ProcessorConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// KafkaConfig holds event bus settings.
type KafkaConfig struct {
	BootstrapServers string
	ConsumerGroup    string
}

// AgentConfig configures the response engine.
type AgentConfig struct {
	AnthropicAPIKey string
	Model           string
	MaxTokens       int
	SearchLimit     int
	HistoryLimit    int
}

// SupportConfig carries customer-facing branding values.
type SupportConfig struct {
	CompanyName   string
	HelpCenterURL string
}

// ProcessorConfig controls the pipeline worker.
type ProcessorConfig struct {
	ShutdownGraceSeconds int
	Embedded             bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "support-pipeline"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Kafka: KafkaConfig{
			BootstrapServers: getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"),
			ConsumerGroup:    getEnv("KAFKA_CONSUMER_GROUP", "support-pipeline-processor"),
		},
		Agent: AgentConfig{
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Model:           getEnv("AGENT_MODEL", "claude-sonnet-4-5-20250929"),
			MaxTokens:       getEnvAsInt("AGENT_MAX_TOKENS", 1024),
			SearchLimit:     getEnvAsInt("AGENT_SEARCH_LIMIT", 3),
			HistoryLimit:    getEnvAsInt("AGENT_HISTORY_LIMIT", 10),
		},
		Support: SupportConfig{
			CompanyName:   getEnv("SUPPORT_COMPANY_NAME", "TechCorp"),
			HelpCenterURL: getEnv("SUPPORT_HELP_CENTER_URL", "https://help.techcorp.com"),
		},
		Processor: ProcessorConfig{
			ShutdownGraceSeconds: getEnvAsInt("PROCESSOR_SHUTDOWN_GRACE_SECONDS", 30),
			Embedded:             getEnvAsBool("PROCESSOR_EMBEDDED", true),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Brokers splits the bootstrap servers list.
func (k KafkaConfig) Brokers() []string {
	parts := strings.Split(k.BootstrapServers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}

// UseKafka decides whether the durable broker backend is selected. Local
// development and the default broker address fall back to the in-memory bus.
func (c *Config) UseKafka() bool {
	return c.Kafka.BootstrapServers != "" &&
		c.Kafka.BootstrapServers != "localhost:9092" &&
		c.App.Env != "development"
}

// ShutdownGrace returns how long in-flight work may run during shutdown.
func (p ProcessorConfig) ShutdownGrace() time.Duration {
	if p.ShutdownGraceSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(p.ShutdownGraceSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
