// internal/bot/runner.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/raydium-swap/internal/blockchain"
	"github.com/rovshanmuradov/raydium-swap/internal/config"
	"github.com/rovshanmuradov/raydium-swap/internal/dex/raydium"
	"github.com/rovshanmuradov/raydium-swap/internal/jito"
	"github.com/rovshanmuradov/raydium-swap/internal/pipeline"
	"github.com/rovshanmuradov/raydium-swap/internal/report"
	"github.com/rovshanmuradov/raydium-swap/internal/transaction"
	"github.com/rovshanmuradov/raydium-swap/internal/utils/logger"
	"github.com/rovshanmuradov/raydium-swap/internal/utils/metrics"
	"github.com/rovshanmuradov/raydium-swap/internal/wallet"
)

// Outcome: итог одного запуска.
type Outcome struct {
	Signature  solana.Signature
	Simulation *blockchain.SimulationResult
	Plan       *pipeline.Result
}

type Runner struct {
	logger    *logger.Logger
	config    *config.Config
	wallet    *wallet.Wallet
	builder   *pipeline.Builder
	submitter *transaction.Submitter
	out       io.Writer
	metrics   *metrics.Collector

	seeds  wallet.SeedSource
	picker jito.Picker
}

// Option настраивает Runner.
type Option func(*Runner)

// WithOutput задаёт, куда печатать отчёт и подпись. По умолчанию stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithMetrics включает сбор метрик запуска.
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Runner) { r.metrics = c }
}

// WithSources подменяет источник seed и выбор аккаунта чаевых.
func WithSources(seeds wallet.SeedSource, picker jito.Picker) Option {
	return func(r *Runner) {
		r.seeds = seeds
		r.picker = picker
	}
}

// NewRunner проверяет адреса пула и ключ кошелька и связывает компоненты.
func NewRunner(cfg *config.Config, client blockchain.Client, log *logger.Logger, opts ...Option) (*Runner, error) {
	keys, err := raydium.ParsePoolKeys(cfg.Pool)
	if err != nil {
		return nil, fmt.Errorf("invalid pool configuration: %w", err)
	}

	w, err := wallet.NewWallet(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	r := &Runner{
		logger: log,
		config: cfg,
		wallet: w,
		submitter: transaction.NewSubmitter(client, transaction.Options{
			SkipPreflight: cfg.SkipPreflight,
		}, log.Logger),
		out:   os.Stdout,
		seeds: wallet.RandomSeed{},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.builder = pipeline.NewBuilder(
		raydium.NewSwapInstructionBuilder(keys, log.Logger),
		jito.NewTipBuilder(r.picker),
		r.seeds,
		log.Logger,
	)
	return r, nil
}

// Plan переводит конфигурацию в план транзакции.
func (r *Runner) Plan() (pipeline.Plan, error) {
	mint, err := solana.PublicKeyFromBase58(r.config.TargetMint)
	if err != nil {
		return pipeline.Plan{}, fmt.Errorf("invalid mint: %w", err)
	}
	level, err := pipeline.ParsePriorityLevel(r.config.Priority)
	if err != nil {
		return pipeline.Plan{}, err
	}
	plan := pipeline.Plan{
		Wallet:           r.wallet.PublicKey,
		TargetMint:       mint,
		AmountIn:         r.config.AmountIn,
		MinAmountOut:     r.config.MinAmountOut,
		ComputeUnitLimit: r.config.ComputeUnitLimit,
		ComputeUnitPrice: r.config.ComputeUnitPrice,
		Tip:              r.config.Tip(),
		SkipSwap:         r.config.SkipSwap,
	}
	// пресет приоритета перекрывает явные значения compute budget
	return plan.WithPriority(level)
}

// Run собирает, подписывает и отправляет (или симулирует) одну транзакцию.
// SIGINT/SIGTERM отменяют ожидание подтверждения.
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case sig := <-shutdownCh:
			r.logger.Info("📡 Signal received: " + sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	start := time.Now()
	outcome, err := r.execute(ctx)
	if r.metrics != nil {
		r.metrics.RecordTransaction(ctx, r.mode(), time.Since(start), err)
	}
	return outcome, err
}

func (r *Runner) mode() string {
	if r.config.DryRun {
		return "simulate"
	}
	return "send"
}

func (r *Runner) execute(ctx context.Context) (*Outcome, error) {
	plan, err := r.Plan()
	if err != nil {
		return nil, err
	}

	done := r.logger.TrackPerformance("build_transaction")
	res, err := r.builder.Build(plan)
	done()
	if err != nil {
		return nil, err
	}
	outcome := &Outcome{Plan: res}
	if r.metrics != nil {
		r.metrics.SetPlannedLamports(res.FundingLamports, plan.TipLamports())
	}

	labels := make([]string, len(res.Steps))
	for i, s := range res.Steps {
		labels[i] = s.Label
	}
	ata, err := r.wallet.GetATA(plan.TargetMint)
	if err != nil {
		return outcome, fmt.Errorf("failed to derive token account: %w", err)
	}
	r.logger.Info("🧩 Transaction assembled",
		zap.String("wallet", r.wallet.String()),
		zap.String("mint", plan.TargetMint.String()),
		zap.String("token_account", ata.String()),
		zap.Float64("amount_sol", plan.AmountIn),
		zap.Strings("instructions", labels),
		zap.String("wsol_account", res.WSOL.Address.String()),
		zap.Uint64("tip_lamports", plan.TipLamports()))

	tx, err := r.submitter.Prepare(ctx, res.Instructions(), r.wallet, plan.RequiredLamports())
	if err != nil {
		return outcome, err
	}

	if r.config.DryRun {
		return outcome, r.simulate(ctx, tx, outcome)
	}

	sig, err := r.submitter.Send(ctx, tx)
	outcome.Signature = sig
	txLogger := r.logger.WithTransaction(sig.String())
	if err != nil {
		// транзакция могла попасть в сеть: подпись печатается всегда
		var confErr *transaction.ConfirmationError
		if errors.As(err, &confErr) {
			txLogger.Warn("⚠️ Confirmation not observed", zap.Error(err))
			fmt.Fprintln(r.out, sig.String())
		}
		return outcome, err
	}

	txLogger.Info("✅ Transaction confirmed")
	_, err = fmt.Fprintln(r.out, sig.String())
	return outcome, err
}

func (r *Runner) simulate(ctx context.Context, tx *solana.Transaction, outcome *Outcome) error {
	if err := report.WritePlan(r.out, outcome.Plan); err != nil {
		return err
	}

	sim, err := r.submitter.Simulate(ctx, tx)
	if err != nil {
		return err
	}
	outcome.Simulation = sim

	if err := report.WriteSimulation(r.out, sim); err != nil {
		return err
	}
	if sim.Err != nil {
		r.logger.Warn("⚠️ Simulation failed", zap.Any("error", sim.Err))
	} else {
		r.logger.Info("✅ Simulation succeeded", zap.Uint64("units_consumed", sim.UnitsConsumed))
	}
	return nil
}

// Shutdown сбрасывает буферы логгера.
func (r *Runner) Shutdown() {
	r.logger.Info("👋 Shutting down")

	if err := r.logger.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to sync logger during shutdown: %v\n", err)
	}
}
