package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 8300
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "tubelens"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379
	defaultRedisDB    = 0

	defaultTargetLanguage  = "Simplified Chinese"
	defaultSubtitleFormat  = "vtt"
	defaultDownloadRetries = 2
	defaultDownloadTimeout = 60
	defaultMaxAttempts     = 3
	defaultTurnTimeout     = 120
)

// AppConfig holds runtime configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Database       DatabaseConfig `yaml:"database"`
	Redis          RedisConfig    `yaml:"redis"`
	AI             AIConfig       `yaml:"ai"`
	Subtitles      SubtitleConfig `yaml:"subtitles"`
	Download       DownloadConfig `yaml:"download"`
	Summary        SummaryConfig  `yaml:"summary"`
}

type DatabaseConfig struct {
	DSN      string            `yaml:"dsn"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Name     string            `yaml:"name"`
	Charset  string            `yaml:"charset"`
	Loc      string            `yaml:"loc"`
	Params   map[string]string `yaml:"params"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// AIProvider describes one configured model backend.
type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

type AIModelAssignment struct {
	ProviderID string `yaml:"provider_id"`
	Model      string `yaml:"model"`
}

type AIConfig struct {
	Providers      []AIProvider       `yaml:"providers"`
	SummaryModel   *AIModelAssignment `yaml:"summary_model"`
	TargetLanguage string             `yaml:"target_language"`
}

// SubtitleConfig controls caption track selection. Language patterns are
// prefix lists matched against the extractor's language keys.
type SubtitleConfig struct {
	LanguagePatterns map[string][]string `yaml:"language_patterns"`
	PreferredFormat  string              `yaml:"preferred_format"`
}

type DownloadConfig struct {
	CookiesPath    string `yaml:"cookies_path"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
}

type SummaryConfig struct {
	MaxAttempts        int `yaml:"max_attempts"`
	TurnTimeoutSeconds int `yaml:"turn_timeout_seconds"`
}

// Load reads, defaults, and normalizes the YAML config. A missing file is
// not an error; defaults apply.
func Load(configPath string) (*AppConfig, error) {
	cfg := defaultAppConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			normalize(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	normalize(&cfg)
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Host:     defaultDBHost,
			Port:     defaultDBPort,
			User:     defaultDBUser,
			Password: defaultDBPassword,
			Name:     defaultDBName,
			Charset:  defaultDBCharset,
			Loc:      defaultDBLoc,
		},
		Redis: RedisConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		AI: AIConfig{
			TargetLanguage: defaultTargetLanguage,
		},
		Subtitles: SubtitleConfig{
			LanguagePatterns: map[string][]string{
				"en": {"en", "en-zh-Hans"},
				"cn": {"cn", "zh-Hans-zh-Hans", "zh-Hans"},
			},
			PreferredFormat: defaultSubtitleFormat,
		},
		Download: DownloadConfig{
			TimeoutSeconds: defaultDownloadTimeout,
			MaxRetries:     defaultDownloadRetries,
		},
		Summary: SummaryConfig{
			MaxAttempts:        defaultMaxAttempts,
			TurnTimeoutSeconds: defaultTurnTimeout,
		},
	}
}

func normalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	if cfg.Port <= 0 || cfg.Port > 65535 {
		cfg.Port = defaultPort
	}
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)

	if cfg.Database.Charset == "" {
		cfg.Database.Charset = defaultDBCharset
	}
	if cfg.Database.Loc == "" {
		cfg.Database.Loc = defaultDBLoc
	}
	if cfg.Database.Port <= 0 {
		cfg.Database.Port = defaultDBPort
	}

	if cfg.Redis.Port <= 0 {
		cfg.Redis.Port = defaultRedisPort
	}

	if strings.TrimSpace(cfg.AI.TargetLanguage) == "" {
		cfg.AI.TargetLanguage = defaultTargetLanguage
	}
	for i := range cfg.AI.Providers {
		cfg.AI.Providers[i].ID = strings.TrimSpace(cfg.AI.Providers[i].ID)
		cfg.AI.Providers[i].Type = strings.TrimSpace(cfg.AI.Providers[i].Type)
	}

	if len(cfg.Subtitles.LanguagePatterns) == 0 {
		cfg.Subtitles.LanguagePatterns = defaultAppConfig().Subtitles.LanguagePatterns
	}
	if strings.TrimSpace(cfg.Subtitles.PreferredFormat) == "" {
		cfg.Subtitles.PreferredFormat = defaultSubtitleFormat
	}

	if cfg.Download.TimeoutSeconds <= 0 {
		cfg.Download.TimeoutSeconds = defaultDownloadTimeout
	}
	if cfg.Download.MaxRetries < 0 {
		cfg.Download.MaxRetries = defaultDownloadRetries
	}

	if cfg.Summary.MaxAttempts <= 0 {
		cfg.Summary.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Summary.TurnTimeoutSeconds <= 0 {
		cfg.Summary.TurnTimeoutSeconds = defaultTurnTimeout
	}
}

func normalizeEnv(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		return "production"
	default:
		return "development"
	}
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// SummaryProvider resolves the provider assigned to summary generation,
// falling back to the first enabled provider.
func (c *AppConfig) SummaryProvider() *AIProvider {
	if c.AI.SummaryModel != nil && c.AI.SummaryModel.ProviderID != "" {
		for i := range c.AI.Providers {
			p := &c.AI.Providers[i]
			if p.ID == c.AI.SummaryModel.ProviderID && p.Enabled {
				resolved := *p
				if c.AI.SummaryModel.Model != "" {
					resolved.DefaultModel = c.AI.SummaryModel.Model
				}
				return &resolved
			}
		}
	}
	for i := range c.AI.Providers {
		if c.AI.Providers[i].Enabled {
			return &c.AI.Providers[i]
		}
	}
	return nil
}

// DSNValue builds the MySQL DSN, preferring an explicit dsn entry.
func (c DatabaseConfig) DSNValue() string {
	if dsn := strings.TrimSpace(c.DSN); dsn != "" {
		return dsn
	}

	params := neturl.Values{}
	params.Set("charset", c.Charset)
	params.Set("parseTime", "True")
	params.Set("loc", c.Loc)
	for k, v := range c.Params {
		if k = strings.TrimSpace(k); k != "" {
			params.Set(k, v)
		}
	}

	addr := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s", c.User, c.Password, addr, c.Name, params.Encode())
}

// URLValue builds the redis connection URL, preferring an explicit url entry.
func (c RedisConfig) URLValue() string {
	if u := strings.TrimSpace(c.URL); u != "" {
		if !strings.Contains(u, "://") {
			return "redis://" + u
		}
		return u
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}
	u := neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	if c.Username != "" || c.Password != "" {
		u.User = neturl.UserPassword(c.Username, c.Password)
	}
	return u.String()
}
