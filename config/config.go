package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger         `mapstructure:"logger"`
	DB        Database       `mapstructure:"database"`
	API       API            `mapstructure:"api"`
	Ingest    Ingest         `mapstructure:"ingest"`
	Yahoo     YahooFinance   `mapstructure:"yahoo_finance"`
	Discovery Discovery      `mapstructure:"discovery"`
	Cache     Cache          `mapstructure:"cache"`
	View      View           `mapstructure:"view"`
	Ranking   Ranking        `mapstructure:"ranking"`
	Scheduler Scheduler      `mapstructure:"scheduler"`
	Telegram  TelegramConfig `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Ingest struct {
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	HistoryRange   string        `mapstructure:"history_range"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type YahooFinance struct {
	ChartBaseURL        string        `mapstructure:"chart_base_url"`
	QuoteBaseURL        string        `mapstructure:"quote_base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type Discovery struct {
	TrendingBaseURL   string        `mapstructure:"trending_base_url"`
	TrendingRegions   []string      `mapstructure:"trending_regions"`
	FinvizBaseURL     string        `mapstructure:"finviz_base_url"`
	FinvizCategories  []string      `mapstructure:"finviz_categories"`
	StocktwitsBaseURL string        `mapstructure:"stocktwits_base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type View struct {
	PageSize    int           `mapstructure:"page_size"`
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
}

type Ranking struct {
	Weights map[string]float64 `mapstructure:"weights"`
}

type Scheduler struct {
	UpdateCron string `mapstructure:"update_cron"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

func Load() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
