package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"StockPulse/internal/news"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

const (
	PriceAlphaVantage = "alphavantage"
	PriceYahoo        = "yahoo"

	NewsNewsAPI = "newsapi"
	NewsRSS     = "rss"

	TransportTwilio   = "twilio"
	TransportTelegram = "telegram"
)

// Config holds all run configuration. It is built once at startup and passed
// to each component; nothing reads the environment after Load returns.
type Config struct {
	Stock struct {
		Symbol       string          `yaml:"symbol"`
		CompanyName  string          `yaml:"company_name"`
		RawThreshold string          `yaml:"threshold_percent"`
		Threshold    decimal.Decimal `yaml:"-"`
	} `yaml:"stock"`
	Providers struct {
		Price       string `yaml:"price"`
		News        string `yaml:"news"`
		NewsFeedURL string `yaml:"news_feed_url"`
		MaxArticles int    `yaml:"max_articles"`
	} `yaml:"providers"`
	Transport   string `yaml:"transport"`
	HTTPTimeout string `yaml:"http_timeout"`

	// Credentials come from the environment only.
	AlphaVantageKey string `yaml:"-"`
	NewsAPIKey      string `yaml:"-"`
	Twilio          struct {
		AccountSID string
		AuthToken  string
		From       string
		To         string
	} `yaml:"-"`
	Telegram struct {
		BotToken string
		ChatID   string
	} `yaml:"-"`
	Proxy string `yaml:"-"`
}

// Load applies, in order: embedded defaults, the optional dotenv file, and
// environment variables. A missing dotenv file is not an error.
func Load(envFile string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	// Credentials
	cfg.AlphaVantageKey = os.Getenv("ALPHA_VANTAGE_API_KEY")
	cfg.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	cfg.Twilio.AccountSID = os.Getenv("TWILIO_SID")
	cfg.Twilio.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.Twilio.From = os.Getenv("TWILIO_PHONE_NUMBER")
	cfg.Twilio.To = os.Getenv("YOUR_PHONE_NUMBER")
	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.Telegram.ChatID = os.Getenv("TELEGRAM_CHAT_ID")
	cfg.Proxy = os.Getenv("HTTPS_PROXY")

	// Environment variable overrides
	if v := os.Getenv("STOCK_SYMBOL"); v != "" {
		cfg.Stock.Symbol = v
	}
	if v := os.Getenv("COMPANY_NAME"); v != "" {
		cfg.Stock.CompanyName = v
	}
	if v := os.Getenv("PERCENT_THRESHOLD"); v != "" {
		cfg.Stock.RawThreshold = v
	}
	if v := os.Getenv("PRICE_PROVIDER"); v != "" {
		cfg.Providers.Price = v
	}
	if v := os.Getenv("NEWS_PROVIDER"); v != "" {
		cfg.Providers.News = v
	}
	if v := os.Getenv("NEWS_FEED_URL"); v != "" {
		cfg.Providers.NewsFeedURL = v
	}
	if v := os.Getenv("MAX_ARTICLES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("MAX_ARTICLES: %w", err)
		}
		cfg.Providers.MaxArticles = n
	}
	if v := os.Getenv("NOTIFY_TRANSPORT"); v != "" {
		cfg.Transport = v
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		cfg.HTTPTimeout = v
	}

	if err := cfg.SetThreshold(cfg.Stock.RawThreshold); err != nil {
		return nil, err
	}
	if _, err := time.ParseDuration(cfg.HTTPTimeout); err != nil {
		return nil, fmt.Errorf("http_timeout %q: %w", cfg.HTTPTimeout, err)
	}
	return cfg, nil
}

// SetThreshold parses and stores the percentage threshold.
func (c *Config) SetThreshold(raw string) error {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("threshold_percent %q: %w", raw, err)
	}
	c.Stock.RawThreshold = raw
	c.Stock.Threshold = d
	return nil
}

// Timeout returns the HTTP timeout. Load has already rejected unparsable values.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks that every field needed by the selected providers is set.
func (c *Config) Validate() error {
	if c.Stock.Symbol == "" {
		return fmt.Errorf("stock.symbol is required")
	}
	if c.Stock.CompanyName == "" {
		return fmt.Errorf("stock.company_name is required")
	}
	if c.Stock.Threshold.IsNegative() {
		return fmt.Errorf("stock.threshold_percent must not be negative")
	}
	if c.Providers.MaxArticles <= 0 || c.Providers.MaxArticles > news.MaxArticles {
		return fmt.Errorf("providers.max_articles must be between 1 and %d", news.MaxArticles)
	}
	if c.Timeout() <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}

	switch c.Providers.Price {
	case PriceAlphaVantage:
		if c.AlphaVantageKey == "" {
			return fmt.Errorf("ALPHA_VANTAGE_API_KEY is required")
		}
	case PriceYahoo:
	default:
		return fmt.Errorf("unknown price provider %q (valid: %s, %s)", c.Providers.Price, PriceAlphaVantage, PriceYahoo)
	}

	switch c.Providers.News {
	case NewsNewsAPI:
		if c.NewsAPIKey == "" {
			return fmt.Errorf("NEWS_API_KEY is required")
		}
	case NewsRSS:
	default:
		return fmt.Errorf("unknown news provider %q (valid: %s, %s)", c.Providers.News, NewsNewsAPI, NewsRSS)
	}

	return nil
}

// ValidateTransport checks credentials for the selected transport. Dry runs skip it.
func (c *Config) ValidateTransport() error {
	switch c.Transport {
	case TransportTwilio:
		if c.Twilio.AccountSID == "" || c.Twilio.AuthToken == "" {
			return fmt.Errorf("TWILIO_SID and TWILIO_AUTH_TOKEN are required")
		}
		if c.Twilio.From == "" {
			return fmt.Errorf("TWILIO_PHONE_NUMBER is required")
		}
		if c.Twilio.To == "" {
			return fmt.Errorf("YOUR_PHONE_NUMBER is required")
		}
	case TransportTelegram:
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("TELEGRAM_CHAT_ID is required")
		}
	default:
		return fmt.Errorf("unknown transport %q (valid: %s, %s)", c.Transport, TransportTwilio, TransportTelegram)
	}
	return nil
}
