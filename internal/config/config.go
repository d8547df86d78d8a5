package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port            int
	LogLevel        string
	DatabaseURL     string
	NatsURL         string
	NatsToken       string
	APIToken        string
	RulesFile       string
	Refiner         string
	AnthropicAPIKey string
	AnthropicModel  string
	OllamaURL       string
	OllamaModel     string
	TaggerURL       string
	PauseThreshold  int
	PauseDefault    int
	TurnGaps        bool
	Workers         int
	StateFile       string
	SlackBotToken   string
	SlackChannel    string
	Language        string
	GRPCAddr        string
}

// Refiner backends.
const (
	RefinerNone      = "none"
	RefinerAnthropic = "anthropic"
	RefinerOllama    = "ollama"
)

type setting struct {
	key      string
	env      string
	fallback any
}

var settings = []setting{
	{"port", "CUNIT_PORT", 8760},
	{"log_level", "LOG_LEVEL", "info"},
	{"database_url", "DATABASE_URL", ""},
	{"nats_url", "NATS_URL", ""},
	{"nats_token", "NATS_TOKEN", ""},
	{"api_token", "CUNIT_API_TOKEN", ""},
	{"rules_file", "CUNIT_RULES", ""},
	{"refiner", "CUNIT_REFINER", RefinerNone},
	{"anthropic_api_key", "ANTHROPIC_API_KEY", ""},
	{"anthropic_model", "CUNIT_ANTHROPIC_MODEL", "claude-sonnet-4-20250514"},
	{"ollama_url", "OLLAMA_URL", "http://localhost:11434"},
	{"ollama_model", "OLLAMA_MODEL", "mistral:latest"},
	{"tagger_url", "CUNIT_TAGGER_URL", ""},
	{"pause_threshold", "CUNIT_PAUSE_THRESHOLD", 15},
	{"pause_default", "CUNIT_PAUSE_DEFAULT", 2},
	{"turn_gaps", "CUNIT_TURN_GAPS", true},
	{"workers", "CUNIT_WORKERS", 4},
	{"state_file", "CUNIT_STATE_FILE", "~/.cunit/batch-state.json"},
	{"slack_bot_token", "SLACK_BOT_TOKEN", ""},
	{"slack_channel", "SLACK_CHANNEL", ""},
	{"language", "CUNIT_LANGUAGE", "English"},
	{"grpc_addr", "CUNIT_GRPC_ADDR", ""},
}

// Load reads configuration from defaults, an optional YAML file named by
// CUNIT_CONFIG, and the environment, in increasing priority.
func Load() (Config, error) {
	v := viper.New()
	for _, s := range settings {
		v.SetDefault(s.key, s.fallback)
		if err := v.BindEnv(s.key, s.env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", s.env, err)
		}
	}

	if err := v.BindEnv("config_file", "CUNIT_CONFIG"); err != nil {
		return Config{}, fmt.Errorf("bind CUNIT_CONFIG: %w", err)
	}
	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		LogLevel:        v.GetString("log_level"),
		DatabaseURL:     v.GetString("database_url"),
		NatsURL:         v.GetString("nats_url"),
		NatsToken:       v.GetString("nats_token"),
		APIToken:        v.GetString("api_token"),
		RulesFile:       v.GetString("rules_file"),
		Refiner:         strings.ToLower(v.GetString("refiner")),
		AnthropicAPIKey: v.GetString("anthropic_api_key"),
		AnthropicModel:  v.GetString("anthropic_model"),
		OllamaURL:       v.GetString("ollama_url"),
		OllamaModel:     v.GetString("ollama_model"),
		TaggerURL:       v.GetString("tagger_url"),
		StateFile:       v.GetString("state_file"),
		SlackBotToken:   v.GetString("slack_bot_token"),
		SlackChannel:    v.GetString("slack_channel"),
		Language:        v.GetString("language"),
		GRPCAddr:        v.GetString("grpc_addr"),
	}

	var err error
	if cfg.Port, err = intValue(v, "port"); err != nil {
		return Config{}, err
	}
	if cfg.PauseThreshold, err = intValue(v, "pause_threshold"); err != nil {
		return Config{}, err
	}
	if cfg.PauseDefault, err = intValue(v, "pause_default"); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = intValue(v, "workers"); err != nil {
		return Config{}, err
	}
	if cfg.TurnGaps, err = strconv.ParseBool(v.GetString("turn_gaps")); err != nil {
		return Config{}, fmt.Errorf("turn_gaps: %w", err)
	}

	switch cfg.Refiner {
	case "":
		cfg.Refiner = RefinerNone
	case RefinerNone, RefinerAnthropic, RefinerOllama:
	default:
		return Config{}, fmt.Errorf("unknown refiner %q", cfg.Refiner)
	}
	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	return cfg, nil
}

func intValue(v *viper.Viper, key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
