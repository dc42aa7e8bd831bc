package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the application:
// environment type, database connection, telegram bot settings and
// the deadline notifier policy.
type Config struct {
	Env      string         `yaml:"env"`      // Env is the current environment: local, development, production.
	Database PostgresConfig `yaml:"postgres"` // Database holds the postgres database configuration.
	Telegram TelegramConfig `yaml:"telegram"` // Telegram holds the bot token and polling settings.
	Notifier NotifierConfig `yaml:"notifier"` // Notifier holds the deadline alert policy.
	Monitor  MonitorConfig  `yaml:"monitor"`  // Monitor holds the monitoring server settings.
}

// PostgresConfig holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Name     string `yaml:"db_name"`  // Name is the name of the database.
}

// DSN builds a postgres connection string from the fields.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=disable",
		p.User, p.Password, net.JoinHostPort(p.Host, p.Port), p.Name,
	)
}

// TelegramConfig holds the bot token and polling settings. An empty
// token disables the bot and the secondary notification channel.
type TelegramConfig struct {
	Token         string        `yaml:"token"`          // Token is the unique telegram bot token.
	PollerTimeout time.Duration `yaml:"poller_timeout"` // PollerTimeout is the long-poll timeout for the bot.
	AlertChatID   int64         `yaml:"alert_chat_id"`  // AlertChatID receives mirrored deadline alerts; 0 disables.
}

// NotifierConfig holds the deadline notifier policy.
type NotifierConfig struct {
	Interval     time.Duration `yaml:"interval"`      // Interval between poll cycles.
	CriticalDays int           `yaml:"critical_days"` // Overdue days at which an alert escalates to critical.
	UpcomingDays int           `yaml:"upcoming_days"` // Days before the deadline at which an alert fires.
	MaxListed    int           `yaml:"max_listed"`    // Cap on items listed verbatim in one message.
}

// MonitorConfig holds the monitoring HTTP server settings.
type MonitorConfig struct {
	Port int `yaml:"port"` // Port for /healthz and /metrics.
}

// Defaults for the notifier policy and infrastructure knobs.
const (
	defaultPollerTimeout = 10 * time.Second
	defaultInterval      = 10 * time.Minute
	defaultCriticalDays  = 3
	defaultUpcomingDays  = 1
	defaultMaxListed     = 5
	defaultMonitorPort   = 8080
)

// MustLoad loads the configuration and panics on malformed input.
// A .env file is read first when present. If CONFIG_PATH points at a
// YAML file it takes precedence, otherwise everything comes from
// environment variables.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	setDefaults(vpr)

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}
		vpr.SetConfigFile(configPath)
		vpr.SetConfigType("yaml")
		if err := vpr.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	return &Config{
		Env: vpr.GetString("env"),
		Database: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Name:     vpr.GetString("postgres.db_name"),
		},
		Telegram: TelegramConfig{
			Token:         vpr.GetString("telegram.token"),
			PollerTimeout: mustDuration(vpr, "telegram.poller_timeout"),
			AlertChatID:   vpr.GetInt64("telegram.alert_chat_id"),
		},
		Notifier: NotifierConfig{
			Interval:     mustDuration(vpr, "notifier.interval"),
			CriticalDays: vpr.GetInt("notifier.critical_days"),
			UpcomingDays: vpr.GetInt("notifier.upcoming_days"),
			MaxListed:    vpr.GetInt("notifier.max_listed"),
		},
		Monitor: MonitorConfig{
			Port: vpr.GetInt("monitor.port"),
		},
	}
}

// setDefaults registers defaults and binds every key to its
// INSTRUMENTS_* environment variable.
func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("env", "production")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("telegram.poller_timeout", defaultPollerTimeout)
	vpr.SetDefault("notifier.interval", defaultInterval)
	vpr.SetDefault("notifier.critical_days", defaultCriticalDays)
	vpr.SetDefault("notifier.upcoming_days", defaultUpcomingDays)
	vpr.SetDefault("notifier.max_listed", defaultMaxListed)
	vpr.SetDefault("monitor.port", defaultMonitorPort)

	bindings := map[string]string{
		"env":                     "INSTRUMENTS_ENV",
		"postgres.host":           "DB_HOST",
		"postgres.port":           "DB_PORT",
		"postgres.user":           "DB_USERNAME",
		"postgres.password":       "DB_PASSWORD",
		"postgres.db_name":        "DB_NAME",
		"telegram.token":          "INSTRUMENTS_TELEGRAM_TOKEN",
		"telegram.poller_timeout": "INSTRUMENTS_TELEGRAM_TIMEOUT",
		"telegram.alert_chat_id":  "INSTRUMENTS_ALERT_CHAT_ID",
		"notifier.interval":       "INSTRUMENTS_NOTIFY_INTERVAL",
		"notifier.critical_days":  "INSTRUMENTS_NOTIFY_CRITICAL_DAYS",
		"notifier.upcoming_days":  "INSTRUMENTS_NOTIFY_UPCOMING_DAYS",
		"notifier.max_listed":     "INSTRUMENTS_NOTIFY_MAX_LISTED",
		"monitor.port":            "INSTRUMENTS_MONITOR_PORT",
	}
	for key, env := range bindings {
		_ = vpr.BindEnv(key, env)
	}
}

// mustDuration parses a duration key, panicking on malformed values so
// a bad deployment fails at boot instead of silently running with zero.
func mustDuration(vpr *viper.Viper, key string) time.Duration {
	value := vpr.GetDuration(key)
	if value <= 0 {
		panic("failed to parse duration from configuration: " + key)
	}
	return value
}
