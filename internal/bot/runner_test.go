package bot

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rovshanmuradov/raydium-swap/internal/blockchain"
	"github.com/rovshanmuradov/raydium-swap/internal/config"
	"github.com/rovshanmuradov/raydium-swap/internal/dex/raydium"
	"github.com/rovshanmuradov/raydium-swap/internal/jito"
	"github.com/rovshanmuradov/raydium-swap/internal/pipeline"
	"github.com/rovshanmuradov/raydium-swap/internal/transaction"
	"github.com/rovshanmuradov/raydium-swap/internal/utils/logger"
	"github.com/rovshanmuradov/raydium-swap/internal/utils/metrics"
)

const testSeed = "abcdefghijklmnopqrstuvwxyz012345"

func testConfig() *config.Config {
	return &config.Config{
		PrivateKey:       solana.NewWallet().PrivateKey.String(),
		RPC:              "http://localhost:8899",
		TargetMint:       config.DefaultTargetMint,
		AmountIn:         0.1,
		ComputeUnitLimit: config.DefaultComputeUnitLimit,
		ComputeUnitPrice: config.DefaultComputeUnitPrice,
		TipLamports:      config.DefaultTipLamports,
		ConfirmTimeout:   config.DefaultConfirmTimeout,
		Pool:             raydium.DefaultPoolConfig,
	}
}

func newTestRunner(t *testing.T, cfg *config.Config, client *MockClient) (*Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r, err := NewRunner(cfg, client, logger.Wrap(zap.NewNop()),
		WithOutput(&out),
		WithSources(fixedSeed(testSeed), fixedPicker(3)),
	)
	require.NoError(t, err)
	return r, &out
}

func TestRunnerDryRun(t *testing.T) {
	cfg := testConfig()
	cfg.DryRun = true
	client := new(MockClient)

	client.On("GetRecentBlockhash", mock.Anything).Return(solana.Hash{9}, nil)
	client.On("GetBalance", mock.Anything, mock.Anything, mock.Anything).Return(uint64(10_000_000_000), nil)
	client.On("SimulateTransaction", mock.Anything, mock.Anything).
		Return(&blockchain.SimulationResult{UnitsConsumed: 42_000, Logs: []string{"Program log: ok"}}, nil)

	r, out := newTestRunner(t, cfg, client)
	outcome, err := r.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, outcome.Simulation)
	assert.Equal(t, uint64(42_000), outcome.Simulation.UnitsConsumed)
	require.Len(t, outcome.Plan.Steps, 8)
	assert.Equal(t, pipeline.LabelSwap, outcome.Plan.Steps[5].Label)
	assert.Equal(t, jito.TipAccounts[3], outcome.Plan.TipAccount)
	assert.Equal(t, testSeed, outcome.Plan.WSOL.Seed)

	assert.Contains(t, out.String(), "Transaction plan")
	assert.Contains(t, out.String(), "raydium_swap")
	assert.Contains(t, out.String(), "42000")
	client.AssertNotCalled(t, "SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunnerSend(t *testing.T) {
	cfg := testConfig()
	client := new(MockClient)
	sig := solana.Signature{7, 7, 7}

	client.On("GetRecentBlockhash", mock.Anything).Return(solana.Hash{9}, nil)
	client.On("GetBalance", mock.Anything, mock.Anything, mock.Anything).Return(uint64(10_000_000_000), nil)
	client.On("SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything).Return(sig, nil).Once()
	client.On("WaitForTransactionConfirmation", mock.Anything, sig, mock.Anything).Return(nil)

	r, out := newTestRunner(t, cfg, client)
	outcome, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, sig, outcome.Signature)
	assert.Equal(t, sig.String()+"\n", out.String())
	client.AssertExpectations(t)
}

func TestRunnerLogsTransactionContext(t *testing.T) {
	cfg := testConfig()
	client := new(MockClient)
	sig := solana.Signature{4, 5, 6}

	client.On("GetRecentBlockhash", mock.Anything).Return(solana.Hash{9}, nil)
	client.On("GetBalance", mock.Anything, mock.Anything, mock.Anything).Return(uint64(10_000_000_000), nil)
	client.On("SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything).Return(sig, nil).Once()
	client.On("WaitForTransactionConfirmation", mock.Anything, sig, mock.Anything).Return(nil)

	core, logs := observer.New(zap.DebugLevel)
	var out bytes.Buffer
	r, err := NewRunner(cfg, client, logger.Wrap(zap.New(core)),
		WithOutput(&out),
		WithSources(fixedSeed(testSeed), fixedPicker(0)),
	)
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.NoError(t, err)

	confirmed := logs.FilterMessage("✅ Transaction confirmed").All()
	require.Len(t, confirmed, 1)
	assert.Equal(t, sig.String(), confirmed[0].ContextMap()["tx_hash"])

	built := logs.FilterMessage("Operation completed").All()
	require.Len(t, built, 1)
	assert.Equal(t, "build_transaction", built[0].ContextMap()["operation"])
	assert.Contains(t, built[0].ContextMap(), "duration")
}

func TestRunnerConfirmationFailurePrintsSignature(t *testing.T) {
	cfg := testConfig()
	client := new(MockClient)
	sig := solana.Signature{1, 2, 3}

	client.On("GetRecentBlockhash", mock.Anything).Return(solana.Hash{9}, nil)
	client.On("GetBalance", mock.Anything, mock.Anything, mock.Anything).Return(uint64(10_000_000_000), nil)
	client.On("SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything).Return(sig, nil).Once()
	client.On("WaitForTransactionConfirmation", mock.Anything, sig, mock.Anything).Return(errors.New("timeout"))

	r, out := newTestRunner(t, cfg, client)
	_, err := r.Run(context.Background())

	var confErr *transaction.ConfirmationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, sig, confErr.Signature)
	assert.Contains(t, out.String(), sig.String())
}

func TestRunnerInsufficientFunds(t *testing.T) {
	cfg := testConfig()
	client := new(MockClient)

	client.On("GetRecentBlockhash", mock.Anything).Return(solana.Hash{9}, nil)
	client.On("GetBalance", mock.Anything, mock.Anything, mock.Anything).Return(uint64(1_000), nil)

	r, out := newTestRunner(t, cfg, client)
	_, err := r.Run(context.Background())

	require.ErrorIs(t, err, transaction.ErrInsufficientFunds)
	assert.Empty(t, out.String())
	client.AssertNotCalled(t, "SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunnerPlan(t *testing.T) {
	cfg := testConfig()
	cfg.TipLamports = 0
	cfg.SkipSwap = true
	cfg.MinAmountOut = 500

	r, _ := newTestRunner(t, cfg, new(MockClient))
	plan, err := r.Plan()
	require.NoError(t, err)

	assert.False(t, plan.TipEnabled())
	assert.True(t, plan.SkipSwap)
	assert.Equal(t, uint64(500), plan.MinAmountOut)
	assert.Equal(t, solana.MustPublicKeyFromBase58(config.DefaultTargetMint), plan.TargetMint)
	assert.Equal(t, []pipeline.Stage{
		pipeline.StageComputeBudget,
		pipeline.StageFund,
		pipeline.StageInitialize,
		pipeline.StageCreateATA,
		pipeline.StageClose,
	}, pipeline.Stages(plan))
}

func TestNewRunnerInvalidPool(t *testing.T) {
	cfg := testConfig()
	cfg.Pool.SerumBids = "bad"

	_, err := NewRunner(cfg, new(MockClient), logger.Wrap(zap.NewNop()))
	require.Error(t, err)

	var addrErr *raydium.AddressError
	require.ErrorAs(t, err, &addrErr)
	assert.Equal(t, "serum_bids", addrErr.Field)
}

func TestNewRunnerInvalidKey(t *testing.T) {
	cfg := testConfig()
	cfg.PrivateKey = "short"

	_, err := NewRunner(cfg, new(MockClient), logger.Wrap(zap.NewNop()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load wallet")
}

func TestRunnerRecordsMetrics(t *testing.T) {
	cfg := testConfig()
	client := new(MockClient)
	collector := metrics.NewCollector()

	client.On("GetRecentBlockhash", mock.Anything).Return(solana.Hash{9}, nil)
	client.On("GetBalance", mock.Anything, mock.Anything, mock.Anything).Return(uint64(1_000), nil)

	var out bytes.Buffer
	r, err := NewRunner(cfg, client, logger.Wrap(zap.NewNop()),
		WithOutput(&out),
		WithMetrics(collector),
		WithSources(fixedSeed(testSeed), fixedPicker(0)),
	)
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.Error(t, err)

	count, err := testutil.GatherAndCount(collector.Registry(), "raydium_swap_transactions_total", "raydium_swap_planned_lamports")
	require.NoError(t, err)
	// один счётчик со статусом failed и две суммы: funding, tip
	assert.Equal(t, 3, count)
}

func TestRunnerShutdownSyncsLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r, err := NewRunner(testConfig(), new(MockClient), logger.Wrap(zap.New(core)))
	require.NoError(t, err)

	r.Shutdown()
	assert.Equal(t, 1, logs.FilterMessage("👋 Shutting down").Len())
}

func TestRunnerPlanPriority(t *testing.T) {
	cfg := testConfig()
	cfg.Priority = "extreme"

	r, _ := newTestRunner(t, cfg, new(MockClient))
	plan, err := r.Plan()
	require.NoError(t, err)
	assert.Equal(t, uint32(100_000), plan.ComputeUnitLimit)
	assert.Equal(t, uint64(20_000_000), plan.ComputeUnitPrice)

	cfg.Priority = "bogus"
	_, err = r.Plan()
	assert.Error(t, err)
}
