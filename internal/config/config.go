package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type ServerConfig struct {
	Port       int    `yaml:"port" mapstructure:"port"`
	CORSOrigin string `yaml:"cors_origin" mapstructure:"cors_origin"`
}

type DatabaseConfig struct {
	DSN          string `yaml:"url" mapstructure:"url"`
	MaxOpenConns int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
}

// AuthConfig describes the external identity provider whose ID tokens we accept.
type AuthConfig struct {
	Issuer        string `yaml:"issuer" mapstructure:"issuer"`
	IDTokenSecret string `yaml:"id_token_secret" mapstructure:"id_token_secret"`
}

type SessionConfig struct {
	CookieName string `yaml:"cookie_name" mapstructure:"cookie_name"`
	TTLHours   int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
	Secure     bool   `yaml:"secure" mapstructure:"secure"`
}

func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

type FilesConfig struct {
	RootDir  string `yaml:"root_dir" mapstructure:"root_dir"`
	FontPath string `yaml:"font_path" mapstructure:"font_path"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host" mapstructure:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port" mapstructure:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user" mapstructure:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password" mapstructure:"smtp_password"`
	FromEmail    string `yaml:"from_email" mapstructure:"from_email"`
}

func (e EmailConfig) Enabled() bool { return e.SMTPHost != "" }

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" mapstructure:"bot_token"`
	ChatID   int64  `yaml:"chat_id" mapstructure:"chat_id"`
}

func (t TelegramConfig) Enabled() bool { return t.BotToken != "" && t.ChatID != 0 }

type AppConfig struct {
	PublicURL string `yaml:"public_url" mapstructure:"public_url"`
	Timezone  string `yaml:"timezone" mapstructure:"timezone"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Auth     AuthConfig     `yaml:"auth" mapstructure:"auth"`
	Session  SessionConfig  `yaml:"session" mapstructure:"session"`
	Files    FilesConfig    `yaml:"files" mapstructure:"files"`
	Email    EmailConfig    `yaml:"email" mapstructure:"email"`
	Telegram TelegramConfig `yaml:"telegram" mapstructure:"telegram"`
	App      AppConfig      `yaml:"app" mapstructure:"app"`
}

// Location resolves App.Timezone. Load rejects unknown zones, so the UTC
// fallback only covers configs built by hand.
func (c *Config) Location() *time.Location {
	if c.App.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

var defaults = map[string]any{
	"server.port":             8080,
	"server.cors_origin":      "*",
	"database.url":            "postgres://localhost:5432/doabli?sslmode=disable",
	"database.max_open_conns": 10,
	"auth.issuer":             "",
	"auth.id_token_secret":    "",
	"session.cookie_name":     "doabli.sid",
	"session.ttl_hours":       24 * 7,
	"session.secure":          false,
	"files.root_dir":          "./files",
	"files.font_path":         "",
	"email.smtp_host":         "",
	"email.smtp_port":         587,
	"email.smtp_user":         "",
	"email.smtp_password":     "",
	"email.from_email":        "",
	"telegram.bot_token":      "",
	"telegram.chat_id":        0,
	"app.public_url":          "http://localhost:8080",
	"app.timezone":            "UTC",
}

// Load reads the YAML file at path and applies DOABLI_* environment overrides
// (e.g. DOABLI_DATABASE_URL). A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("DOABLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	if cfg.Session.TTLHours <= 0 {
		cfg.Session.TTLHours = 24 * 7
	}
	if cfg.App.Timezone != "" {
		if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
			return nil, fmt.Errorf("app.timezone %q: %w", cfg.App.Timezone, err)
		}
	}
	return &cfg, nil
}

// Dump renders cfg as YAML with secrets masked.
func Dump(cfg *Config) ([]byte, error) {
	masked := *cfg
	masked.Auth.IDTokenSecret = mask(masked.Auth.IDTokenSecret)
	masked.Email.SMTPPassword = mask(masked.Email.SMTPPassword)
	masked.Telegram.BotToken = mask(masked.Telegram.BotToken)
	masked.Database.DSN = maskDSN(masked.Database.DSN)
	return yaml.Marshal(&masked)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

// maskDSN hides the password part of a postgres URL.
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || scheme+3 > at {
		return dsn
	}
	creds := dsn[scheme+3 : at]
	colon := strings.Index(creds, ":")
	if colon < 0 {
		return dsn
	}
	return dsn[:scheme+3] + creds[:colon] + ":********" + dsn[at:]
}
