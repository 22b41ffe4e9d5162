package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	KRDict     KRDictConfig     `mapstructure:"krdict"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Server     ServerConfig     `mapstructure:"server"`
	State      StateConfig      `mapstructure:"state"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Quiz       QuizConfig       `mapstructure:"quiz"`
}

// KRDictConfig configures the dictionary API. Key is only read from KRDICT_API_KEY
// and may be empty: searches then fail with a configuration error.
type KRDictConfig struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Key       string        `mapstructure:"key"`
	Num       int           `mapstructure:"num" validate:"min=10,max=100"`
	Sort      string        `mapstructure:"sort" validate:"oneof=dict popular"`
	TransLang string        `mapstructure:"trans_lang" validate:"required"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type TranslatorConfig struct {
	BaseURL          string        `mapstructure:"base_url" validate:"required,url"`
	LangPair         string        `mapstructure:"langpair" validate:"required"`
	Timeout          time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxRetryAttempts uint          `mapstructure:"max_retry_attempts" validate:"max=5"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type StateConfig struct {
	Backend   string `mapstructure:"backend" validate:"oneof=file memory mysql sqlite3"`
	Directory string `mapstructure:"directory" validate:"required_if=Backend file"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	// Path is the SQLite database file.
	Path string `mapstructure:"path"`
}

type QuizConfig struct {
	DefaultCount   int    `mapstructure:"default_count" validate:"min=5,max=50"`
	HistoryLimit   int    `mapstructure:"history_limit" validate:"min=3,max=10"`
	VocabularyFile string `mapstructure:"vocabulary_file" validate:"omitempty,file"`
}

type ConfigLoader struct {
	viper     *viper.Viper
	validator *Validator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, err := NewValidator("mapstructure")
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/hanfr")
	}

	return &ConfigLoader{
		viper:     v,
		validator: validate,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("krdict.base_url", "https://krdict.korean.go.kr/api/search")
	v.SetDefault("krdict.num", 30)
	v.SetDefault("krdict.sort", "dict")
	v.SetDefault("krdict.trans_lang", "3")
	v.SetDefault("krdict.timeout", 10*time.Second)
	v.SetDefault("translator.base_url", "https://api.mymemory.translated.net")
	v.SetDefault("translator.langpair", "fr|ko")
	v.SetDefault("translator.timeout", 10*time.Second)
	v.SetDefault("translator.max_retry_attempts", 0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("state.backend", "file")
	v.SetDefault("state.directory", filepath.Join("data", "state"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "hanfr")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.path", filepath.Join("data", "hanfr.db"))
	v.SetDefault("quiz.default_count", 10)
	v.SetDefault("quiz.history_limit", 5)

	// Secrets are bound to environment variables only (not from config file)
	if err := v.BindEnv("krdict.key", "KRDICT_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind KRDICT_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Load reads configFile, or config.yml from the default locations when it is empty.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}
