package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"SEOAutomation/internal/domain"
	"SEOAutomation/internal/seo"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "SEO_AUTOMATION_CONFIG"
	dotEnvFile      = ".env"

	apiKeyEnv         = "OPENAI_API_KEY"
	modelEnv          = "OPENAI_MODEL"
	endpointEnv       = "OPENAI_ENDPOINT"
	databaseDriverEnv = "DATABASE_DRIVER"
	databaseDSNEnv    = "DATABASE_DSN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	brandEnv          = "SEO_BRAND"
	logLevelEnv       = "LOG_LEVEL"
	logFormatEnv      = "LOG_FORMAT"
	httpAddrEnv       = "HTTP_ADDR"
	maxItemsEnv       = "SEO_MAX_ITEMS"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Database      DatabaseConfig     `yaml:"database"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	HTTP          HTTPConfig         `yaml:"http"`
	Notifications NotificationConfig `yaml:"notifications"`
	ChatGPT       ChatGPTConfig      `yaml:"chatgpt"`
	Feeds         FeedsConfig        `yaml:"feeds"`
	Content       ContentConfig      `yaml:"content"`
}

// LoggingConfig selects the slog level and handler ("text" or "json").
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DatabaseConfig describes the content repository connection. Driver is "pgx" or "sqlite".
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// SchedulerConfig controls the recurring trigger. Ticks are aligned to local midnight in Timezone.
type SchedulerConfig struct {
	Enabled    bool           `yaml:"enabled"`
	Timezone   string         `yaml:"timezone"`
	RunOnStart bool           `yaml:"runOnStart"`
	location   *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// HTTPConfig configures the manual trigger endpoint.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// ChatGPTConfig defines how to contact the chat completions API.
type ChatGPTConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	Model     string        `yaml:"model"`
	MaxTokens int           `yaml:"maxTokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

// FeedsConfig tunes competitor feed fetching.
type FeedsConfig struct {
	Timeout           time.Duration `yaml:"timeout"`
	Concurrency       int           `yaml:"concurrency"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
}

// ContentConfig is the settings store: brand, credential, competitors and publishing rules.
type ContentConfig struct {
	Brand              string     `yaml:"brand"`
	APIKey             string     `yaml:"apiKey"`
	Competitors        []string   `yaml:"competitors"`
	PostStatus         string     `yaml:"postStatus"`
	CategoryID         *int64     `yaml:"categoryId"`
	MinWords           int        `yaml:"minWords"`
	DuplicateThreshold int        `yaml:"duplicateThreshold"`
	Schedule           string     `yaml:"schedule"`
	MaxItems           int        `yaml:"maxItems"`
	ScanLimit          int        `yaml:"scanLimit"`
	MetaKeys           seo.KeyMap `yaml:"metaKeys"`
}

// Settings returns the normalized, immutable settings value handed to the pipeline.
func (c Config) Settings() domain.Settings {
	return domain.Settings{
		Brand:              c.Content.Brand,
		APIKey:             c.Content.APIKey,
		CompetitorFeedURLs: append([]string(nil), c.Content.Competitors...),
		PostStatus:         domain.PostStatus(c.Content.PostStatus),
		CategoryID:         c.Content.CategoryID,
		MinWords:           c.Content.MinWords,
		DuplicateThreshold: c.Content.DuplicateThreshold,
		Schedule:           domain.Schedule(c.Content.Schedule),
	}.Normalize()
}

// Load reads the YAML file named by SEO_AUTOMATION_CONFIG (if set) and applies environment overrides.
func Load() Config {
	return LoadFrom(os.Getenv(configPathEnv))
}

// LoadFrom reads YAML configuration from path (if non-empty) and applies environment overrides.
// A .env file in the working directory is loaded first without overriding existing variables.
func LoadFrom(path string) Config {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: cannot load %s: %v", dotEnvFile, err)
	}

	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			fileCfg := defaultConfig()
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = fileCfg
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if cfg.Content.MaxItems <= 0 {
		cfg.Content.MaxItems = defaultConfig().Content.MaxItems
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(logFormatEnv); v != "" {
		c.Logging.Format = v
	}

	if v := os.Getenv(databaseDriverEnv); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(httpAddrEnv); v != "" {
		c.HTTP.Addr = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(apiKeyEnv); v != "" {
		c.Content.APIKey = v
	}
	if v := os.Getenv(modelEnv); v != "" {
		c.ChatGPT.Model = v
	}
	if v := os.Getenv(endpointEnv); v != "" {
		c.ChatGPT.Endpoint = v
	}

	if v := os.Getenv(brandEnv); v != "" {
		c.Content.Brand = v
	}
	if v := os.Getenv(maxItemsEnv); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Content.MaxItems = n
		} else {
			log.Printf("config: invalid %s=%q: %v", maxItemsEnv, v, err)
		}
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Database:  DatabaseConfig{Driver: "sqlite", DSN: "seoautomation.db"},
		Scheduler: SchedulerConfig{Enabled: true, Timezone: defaultTimezone, location: tz},
		HTTP:      HTTPConfig{Addr: ":8080"},
		ChatGPT: ChatGPTConfig{
			Endpoint:  "https://api.openai.com/v1/chat/completions",
			Model:     "gpt-4o-mini",
			MaxTokens: 1600,
			Timeout:   80 * time.Second,
		},
		Feeds: FeedsConfig{
			Timeout:     15 * time.Second,
			Concurrency: 4,
		},
		Content: ContentConfig{
			Brand: "TurnUpHosting",
			Competitors: []string{
				"https://www.godaddy.com/blog/rss/",
				"https://www.hostinger.com/blog/feed/",
				"https://www.bluehost.com/blog/feed/",
				"https://www.namecheap.com/blog/feed/",
				"https://www.hosting.com/blog/rss/",
			},
			PostStatus:         string(domain.StatusDraft),
			MinWords:           1000,
			DuplicateThreshold: 80,
			Schedule:           string(domain.ScheduleDaily),
			MaxItems:           3,
			ScanLimit:          500,
			MetaKeys:           seo.DefaultKeyMap(),
		},
	}
}
