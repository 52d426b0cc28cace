package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/app"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/engine"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/event"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/execution"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/infra"
)

func main() {
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := bootstrap.Config

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inbox := make(chan event.Event, 1024)

	// The exchange session carries market data in and, in live mode,
	// order actions out.
	var session *infra.FeedSession
	if cfg.Feed.URL != "" {
		session = infra.NewFeedSession(cfg, inbox)
	}

	exec, err := execution.NewExecutionClient(cfg, inbox, session)
	if err != nil {
		slog.Error("execution setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	strat, err := bootstrap.NewStrategy()
	if err != nil {
		slog.Error("strategy setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	dispatcher := engine.NewDispatcher(cfg, strat, exec, inbox)
	go dispatcher.Run(ctx)
	slog.Info("engine started", slog.String("strategy", cfg.Trading.Strategy))

	if session != nil {
		session.Start(ctx)
		defer session.Stop()
		slog.Info("exchange session started", slog.String("url", cfg.Feed.URL))
	} else {
		slog.Warn("no feed url configured, engine is idle")
	}

	<-ctx.Done()
	slog.Info("shutting down", slog.String("account", dispatcher.Account().String()))
}
