package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkobayashi/ai-daily/internal/ai"
)

type Config struct {
	Hours      int             `yaml:"hours"`
	TopN       int             `yaml:"top_n"`
	Lang       string          `yaml:"lang"`
	Output     string          `yaml:"output"`
	Schedule   string          `yaml:"schedule"`
	RunOnStart bool            `yaml:"run_on_start"`
	FeedsFile  string          `yaml:"feeds_file"`
	LogLevel   string          `yaml:"log_level"`
	AI         AIConfig        `yaml:"ai"`
	Fetch      FetchConfig     `yaml:"fetch"`
	Publisher  PublisherConfig `yaml:"publisher"`
}

type AIConfig struct {
	APIKey  string `yaml:"api_key"`
	APIBase string `yaml:"api_base"`
	Model   string `yaml:"model"`
}

type FetchConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	Concurrency    int `yaml:"concurrency"`
}

type PublisherConfig struct {
	Type    string        `yaml:"type"`
	Email   EmailConfig   `yaml:"email"`
	Web     WebConfig     `yaml:"web"`
	Discord DiscordConfig `yaml:"discord"`
}

type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

type EmailConfig struct {
	SMTPHost string   `yaml:"smtp_host"`
	SMTPPort int      `yaml:"smtp_port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

type WebConfig struct {
	Addr string `yaml:"addr"`
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

func setDefaults(cfg *Config) {
	if cfg.Hours == 0 {
		cfg.Hours = 24
	}
	if cfg.TopN == 0 {
		cfg.TopN = 15
	}
	if cfg.Lang == "" {
		cfg.Lang = "zh"
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "0 8 * * *"
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if cfg.AI.APIBase == "" {
		cfg.AI.APIBase = strings.TrimSpace(os.Getenv("OPENAI_API_BASE"))
	}
	if cfg.AI.APIBase == "" {
		cfg.AI.APIBase = ai.DefaultAPIBase
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = ai.InferModel(cfg.AI.APIBase)
	}
	if cfg.Fetch.TimeoutSeconds == 0 {
		cfg.Fetch.TimeoutSeconds = 15
	}
	if cfg.Fetch.Concurrency == 0 {
		cfg.Fetch.Concurrency = 10
	}
	if cfg.Publisher.Type == "" {
		cfg.Publisher.Type = "file"
	}
	if cfg.Publisher.Web.Addr == "" {
		cfg.Publisher.Web.Addr = ":8080"
	}
	if cfg.Publisher.Email.SMTPPort == 0 {
		cfg.Publisher.Email.SMTPPort = 587
	}
}

func validate(cfg *Config) error {
	if cfg.AI.APIKey == "" {
		return fmt.Errorf("config: ai.api_key is required (set OPENAI_API_KEY env var)")
	}
	if cfg.Hours < 0 {
		return fmt.Errorf("config: hours must be positive, got %d", cfg.Hours)
	}
	if cfg.Lang != "zh" && cfg.Lang != "en" {
		return fmt.Errorf("config: unsupported lang %q (supported: zh, en)", cfg.Lang)
	}
	switch cfg.Publisher.Type {
	case "stdout", "file", "email", "web", "discord":
	default:
		return fmt.Errorf("config: unsupported publisher type %q (supported: stdout, file, email, web, discord)", cfg.Publisher.Type)
	}
	if cfg.Publisher.Type == "discord" {
		if cfg.Publisher.Discord.WebhookURL == "" {
			return fmt.Errorf("config: publisher.discord.webhook_url is required for discord publisher")
		}
	}
	if cfg.Publisher.Type == "email" {
		if cfg.Publisher.Email.SMTPHost == "" {
			return fmt.Errorf("config: publisher.email.smtp_host is required for email publisher")
		}
		if len(cfg.Publisher.Email.To) == 0 {
			return fmt.Errorf("config: publisher.email.to is required for email publisher")
		}
		if cfg.Publisher.Email.From == "" {
			return fmt.Errorf("config: publisher.email.from is required for email publisher")
		}
	}
	return nil
}

// Load reads the config file, expands environment variables, applies defaults,
// and validates the configuration. An empty path skips the file read and
// builds the config from defaults and environment variables alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}

		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
