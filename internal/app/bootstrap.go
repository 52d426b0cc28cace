package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/infra"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/strategy"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
)

// Bootstrap orchestrates application startup: env file, config, logger,
// banner and the strategy selected by config.
type Bootstrap struct {
	Config *infra.Config
}

func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration and installs the process logger.
func (b *Bootstrap) Initialize() error {
	// Local .env is optional; environment still overrides the file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", slog.Any("error", err))
	}

	cfg, err := infra.LoadConfig(infra.ResolveConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		// No config file: run on reference constants, env still applies.
		cfg = infra.DefaultConfig()
		slog.Info("no config file found, using defaults")
	}
	b.Config = cfg

	slog.SetDefault(infra.NewLogger(cfg))
	infra.PrintBanner(cfg)
	return nil
}

// NewStrategy builds the configured strategy variant.
func (b *Bootstrap) NewStrategy() (strategy.Strategy, error) {
	t := &b.Config.Trading
	switch t.Strategy {
	case "SPREAD":
		return strategy.NewSpreadQuoter(strategy.SpreadQuoterConfig{
			LotSize:          quant.Lots(t.LotSize),
			TickSize:         quant.Cents(t.TickSizeInCents),
			QuoteOffsetTicks: t.QuoteOffsetTicks,
		}), nil
	case "TOP":
		return strategy.NewTopQuoter(strategy.TopQuoterConfig{
			LotSize:  quant.Lots(t.LotSize),
			TickSize: quant.Cents(t.TickSizeInCents),
		}), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", t.Strategy)
	}
}
