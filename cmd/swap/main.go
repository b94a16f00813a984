// ====================================
// File: cmd/swap/main.go
// ====================================
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/raydium-swap/internal/blockchain/solbc"
	"github.com/rovshanmuradov/raydium-swap/internal/bot"
	"github.com/rovshanmuradov/raydium-swap/internal/config"
	"github.com/rovshanmuradov/raydium-swap/internal/utils/logger"
	"github.com/rovshanmuradov/raydium-swap/internal/utils/metrics"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}

	logCfg := logger.DefaultConfig()
	logCfg.LogFile = cfg.LogFile
	logCfg.Development = cfg.DebugLogging
	appLogger, err := logger.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	log, _ := appLogger.WithRun()

	log.Info("🚀 Starting raydium swap",
		zap.Bool("dry_run", cfg.DryRun),
		zap.Bool("skip_swap", cfg.SkipSwap))

	collector := metrics.NewCollector()
	client := solbc.NewClient(cfg.RPC, log.Logger,
		solbc.WithConfirmTimeout(cfg.ConfirmTimeout),
		solbc.WithLatencyRecorder(collector),
	)

	runner, err := bot.NewRunner(cfg, client, log, bot.WithMetrics(collector))
	if err != nil {
		log.Fatal("💥 Failed to initialize", zap.Error(err))
	}

	_, runErr := runner.Run(context.Background())
	if runErr != nil {
		log.Error("💥 Swap failed", zap.Error(runErr))
	}

	if cfg.MetricsFile != "" {
		if err := collector.WriteToTextfile(cfg.MetricsFile); err != nil {
			log.Warn("Failed to write metrics", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}

	runner.Shutdown()
	if runErr != nil {
		os.Exit(1)
	}
}
