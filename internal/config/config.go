package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	Gemini GeminiConfig
	Tavily TavilyConfig
	Redis  RedisConfig
	DB     DBConfig
	Auth   AuthConfig
	Agent  AgentConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// GeminiConfig carries the ordered credential pool for the Gemini provider.
// The pool is immutable after load; at least one key is required.
type GeminiConfig struct {
	APIKeys     []string
	Model       string
	Temperature float64
}

type TavilyConfig struct {
	APIKey string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DBConfig struct {
	Path string
}

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

type AgentConfig struct {
	ContextTTL    time.Duration
	MaxMessages   int
	HistoryWindow int
}

// maxGeminiKeys bounds the GEMINI_API_KEY_N environment scan.
const maxGeminiKeys = 9

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.temperature", 0.2)
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("db.path", "studyforge.db")
	viper.SetDefault("auth.access_token_minutes", 30)
	viper.SetDefault("agent.context_ttl_minutes", 60)
	viper.SetDefault("agent.max_messages", 40)
	viper.SetDefault("agent.history_window", 20)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; environment variables can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
		Gemini: GeminiConfig{
			APIKeys:     viper.GetStringSlice("gemini.api_keys"),
			Model:       viper.GetString("gemini.model"),
			Temperature: viper.GetFloat64("gemini.temperature"),
		},
		Tavily: TavilyConfig{
			APIKey: viper.GetString("tavily.api_key"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		DB: DBConfig{
			Path: viper.GetString("db.path"),
		},
		Auth: AuthConfig{
			JWTSecret:      viper.GetString("auth.jwt_secret"),
			AccessTokenTTL: viper.GetDuration("auth.access_token_minutes") * time.Minute,
		},
		Agent: AgentConfig{
			ContextTTL:    viper.GetDuration("agent.context_ttl_minutes") * time.Minute,
			MaxMessages:   viper.GetInt("agent.max_messages"),
			HistoryWindow: viper.GetInt("agent.history_window"),
		},
	}

	// Numbered environment keys take priority over the yaml list so that
	// extra quota can be added without touching the config file.
	if keys := geminiKeysFromEnv(); len(keys) > 0 {
		config.Gemini.APIKeys = keys
	}
	if model := os.Getenv("GEMINI_MODEL_NAME"); model != "" {
		config.Gemini.Model = model
	}
	if tavilyKey := os.Getenv("TAVILY_API_KEY"); tavilyKey != "" {
		config.Tavily.APIKey = tavilyKey
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.DB.Path = dbPath
	}

	if len(config.Gemini.APIKeys) == 0 {
		return nil, fmt.Errorf("at least one Gemini API key is required (GEMINI_API_KEY_1..%d or gemini.api_keys)", maxGeminiKeys)
	}
	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is required (JWT_SECRET or auth.jwt_secret)")
	}

	return config, nil
}

// geminiKeysFromEnv collects GEMINI_API_KEY_1..GEMINI_API_KEY_9 in order.
// Gaps are skipped, preserving the ordinal order of the keys that exist.
func geminiKeysFromEnv() []string {
	var keys []string
	for i := 1; i <= maxGeminiKeys; i++ {
		if key := os.Getenv(fmt.Sprintf("GEMINI_API_KEY_%d", i)); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
