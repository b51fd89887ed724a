package main

import (
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"StockPulse/internal/collector"
	"StockPulse/internal/config"
	"StockPulse/internal/httpclient"
	"StockPulse/internal/news"
	"StockPulse/internal/notifier"
	"StockPulse/internal/pipeline"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

var (
	flagEnvFile   string
	flagSymbol    string
	flagCompany   string
	flagThreshold string
	flagDryRun    bool
)

var rootCmd = &cobra.Command{
	Use:           "stockpulse",
	Short:         "Text yourself the news when a stock moves",
	Long:          "stockpulse checks the last two daily closes of one stock and, if the move exceeds a threshold, sends the latest headlines about the company by SMS.",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runCheck,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stockpulse %s (commit: %s)\n", version, commit)
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file with credentials (ignored if missing)")
	rootCmd.Flags().StringVar(&flagSymbol, "symbol", "", "ticker symbol to check")
	rootCmd.Flags().StringVar(&flagCompany, "company", "", "company name used as the news query")
	rootCmd.Flags().StringVar(&flagThreshold, "threshold", "", "percentage move required to send news (strictly greater than)")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "log messages instead of sending them")

	rootCmd.AddCommand(versionCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := httpclient.New(cfg.Proxy, cfg.Timeout())

	transport, err := buildTransport(cfg, client)
	if err != nil {
		return err
	}
	p := pipeline.New(
		collector.NewCollector(buildPriceFetcher(cfg, client), cfg.Stock.Symbol),
		buildNewsFetcher(cfg, client),
		transport,
		cfg.Stock.CompanyName,
		cfg.Stock.Threshold,
		cfg.Providers.MaxArticles,
	)

	log.Printf("[INFO] run %s: checking %s (threshold %s%%)", uuid.NewString(), cfg.Stock.Symbol, cfg.Stock.Threshold.String())
	if _, err := p.Run(ctx); err != nil {
		return fmt.Errorf("error occurred: %w", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagEnvFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagSymbol != "" {
		cfg.Stock.Symbol = flagSymbol
	}
	if flagCompany != "" {
		cfg.Stock.CompanyName = flagCompany
	}
	if flagThreshold != "" {
		if err := cfg.SetThreshold(flagThreshold); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	if !flagDryRun {
		if err := cfg.ValidateTransport(); err != nil {
			return nil, fmt.Errorf("config validation: %w", err)
		}
	}
	return cfg, nil
}

func buildPriceFetcher(cfg *config.Config, client *http.Client) collector.PriceFetcher {
	if cfg.Providers.Price == config.PriceYahoo {
		return collector.NewYahooFetcher(client)
	}
	return collector.NewAlphaVantageFetcher(cfg.AlphaVantageKey, client)
}

func buildNewsFetcher(cfg *config.Config, client *http.Client) news.Fetcher {
	if cfg.Providers.News == config.NewsRSS {
		return news.NewRSSFetcher(cfg.Providers.NewsFeedURL, client)
	}
	return news.NewNewsAPIFetcher(cfg.NewsAPIKey, client)
}

func buildTransport(cfg *config.Config, client *http.Client) (notifier.Transport, error) {
	if flagDryRun {
		return notifier.LogTransport{}, nil
	}
	switch cfg.Transport {
	case config.TransportTwilio:
		return notifier.NewTwilioTransport(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.From, cfg.Twilio.To, client), nil
	case config.TransportTelegram:
		return notifier.NewTelegramTransport(cfg.Telegram.BotToken, cfg.Telegram.ChatID, client), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}
