// Package config assembles runtime settings from, in increasing priority:
// built-in defaults, an optional config file (YAML or JSON with comments)
// and environment variables (a `.env` file is loaded first when present).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the variable holding the config file path.
const EnvConfigFile = "WORDSCRAMBLE_CONFIG"

// Config holds every tunable of the server and terminal client.
type Config struct {
	Port      string `yaml:"port" json:"port"`
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"` // "json" or "console"
	DBPath    string `yaml:"dbPath" json:"dbPath"`

	Words struct {
		StartFile      string `yaml:"startFile" json:"startFile"`
		DictionaryFile string `yaml:"dictionaryFile" json:"dictionaryFile"`
		Language       string `yaml:"language" json:"language"`
	} `yaml:"words" json:"words"`

	DailySalt string `yaml:"dailySalt" json:"dailySalt"`

	Auth struct {
		JWTSecret      string `yaml:"jwtSecret" json:"jwtSecret"`
		JWTExpiresDays int    `yaml:"jwtExpiresDays" json:"jwtExpiresDays"`
		CookieName     string `yaml:"cookieName" json:"cookieName"`
		Production     bool   `yaml:"production" json:"production"`
	} `yaml:"auth" json:"auth"`

	ClientOrigin string `yaml:"clientOrigin" json:"clientOrigin"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	var c Config
	c.Port = "5175"
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.DBPath = "./data/wordscramble.db"
	c.Words.Language = "en"
	c.DailySalt = "local_dev_salt"
	c.Auth.JWTSecret = "dev_secret_change_me"
	c.Auth.JWTExpiresDays = 14
	c.Auth.CookieName = "wordscramble_token"
	c.ClientOrigin = "http://localhost:5173"
	return c
}

// Load reads `.env` (if any), then path (or $WORDSCRAMBLE_CONFIG when path
// is empty), then applies environment overrides.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// loadFile decodes path into cfg. .yaml/.yml use YAML, .json/.jsonc use
// JSON with comments and trailing commas allowed.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse yaml %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return fmt.Errorf("parse json %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported extension (want .yaml, .yml, .json or .jsonc)", path)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setStr(&cfg.Port, "PORT")
	setStr(&cfg.LogLevel, "LOG_LEVEL")
	setStr(&cfg.LogFormat, "LOG_FORMAT")
	setStr(&cfg.DBPath, "DB_PATH")
	setStr(&cfg.Words.StartFile, "WORDS_START_FILE")
	setStr(&cfg.Words.DictionaryFile, "WORDS_DICTIONARY_FILE")
	setStr(&cfg.Words.Language, "WORD_LANGUAGE")
	setStr(&cfg.DailySalt, "DAILY_SALT")
	setStr(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setStr(&cfg.Auth.CookieName, "COOKIE_NAME")
	setStr(&cfg.ClientOrigin, "CLIENT_ORIGIN")
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Auth.JWTExpiresDays = n
		}
	}
	if v := os.Getenv("NODE_ENV"); v != "" {
		cfg.Auth.Production = v == "production"
	}
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
