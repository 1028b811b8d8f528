package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// DefaultRateLimit is the minimum interval between two requests to the tracker.
const DefaultRateLimit = 2 * time.Second

// DefaultClientTimeout bounds a single HTTP exchange with the tracker.
const DefaultClientTimeout = 30 * time.Second

// DefaultHeaders returns the browser-like headers attached to every tracker request.
// A fresh map is returned on every call.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Connection":      "keep-alive",
		"Cache-Control":   "max-age=0",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Encoding": "gzip, deflate",
		"Accept-Language": "en-US,en;q=0.8",
		"Accept-Charset":  "ISO-8859-1,utf-8;q=0.7,*;q=0.3",
	}
}

type Config struct {
	TrackerURL            string            `mapstructure:"tracker_url"`
	Username              string            `mapstructure:"username"`
	Password              string            `mapstructure:"password"`
	RateLimit             string            `mapstructure:"rate_limit"`     // Go duration string, minimum spacing between requests
	ClientTimeout         string            `mapstructure:"client_timeout"` // Go duration string like "30s", "1m", etc.
	UserAgent             string            `mapstructure:"user_agent"`
	ProxyConnectionString string            `mapstructure:"proxy_connection_string"`
	UploadURL             string            `mapstructure:"upload_url"` // defaults to <tracker_url>/upload.php
	Headers               map[string]string `mapstructure:"headers"`
	LogLevel              string            `mapstructure:"log_level"`
	Cache                 struct {
		Provider string `mapstructure:"provider"` // "memory", "redis" or empty to disable
		Size     int    `mapstructure:"size"`
		TTL      string `mapstructure:"ttl"`
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Metrics struct {
		Enabled bool   `mapstructure:"enabled"`
		Address string `mapstructure:"address"`
		Port    int    `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Msg("Logging configured")
	globalConfig = config
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	// Unmarshal only sees env values for keys viper already knows about.
	for _, key := range []string{"tracker_url", "username", "password", "upload_url", "cache.provider", "cache.redis.address", "cache.redis.password", "sentry.dsn"} {
		_ = viper.BindEnv(key)
	}

	viper.SetDefault("rate_limit", DefaultRateLimit.String())
	viper.SetDefault("client_timeout", DefaultClientTimeout.String())
	viper.SetDefault("cache.size", 256)
	viper.SetDefault("cache.ttl", "1h")
	viper.SetDefault("metrics.address", "localhost")
	viper.SetDefault("metrics.port", 9090)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if len(config.Headers) == 0 {
		config.Headers = DefaultHeaders()
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}

// ParseDuration parses a Go duration string, falling back to def when the value
// is empty or invalid. Invalid values are logged.
func ParseDuration(name, value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn().Err(err).Str(name, value).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return d
}
