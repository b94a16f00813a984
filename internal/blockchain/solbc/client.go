// internal/blockchain/solbc/client.go
package solbc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rovshanmuradov/raydium-swap/internal/blockchain"
	"go.uber.org/zap"
)

const (
	DefaultConfirmTimeout  = 60 * time.Second
	DefaultPollInterval    = 500 * time.Millisecond
	DefaultMaxPollInterval = 2 * time.Second
)

var (
	// ErrNotConfirmed: транзакция ещё не достигла нужного уровня подтверждения.
	ErrNotConfirmed = errors.New("transaction not confirmed yet")
	// ErrConfirmationTimeout: подтверждение не получено за отведённое время.
	ErrConfirmationTimeout = errors.New("confirmation timeout")
)

// TransactionFailedError: транзакция попала в блок, но завершилась ошибкой программы.
type TransactionFailedError struct {
	Signature solana.Signature
	Reason    interface{}
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Signature, e.Reason)
}

// Client – тонкий адаптер для взаимодействия с блокчейном Solana через solana-go.
type Client struct {
	rpc    *rpc.Client
	logger *zap.Logger

	confirmTimeout  time.Duration
	pollInterval    time.Duration
	maxPollInterval time.Duration

	latency LatencyRecorder
}

// LatencyRecorder получает длительность каждого RPC-вызова.
type LatencyRecorder interface {
	RecordRPCLatency(method string, duration time.Duration, err error)
}

// Option настраивает Client.
type Option func(*Client)

// WithConfirmTimeout задаёт максимальное время ожидания подтверждения.
func WithConfirmTimeout(d time.Duration) Option {
	return func(c *Client) { c.confirmTimeout = d }
}

// WithPollInterval задаёт начальный и максимальный интервал опроса статуса.
func WithPollInterval(initial, max time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = initial
		c.maxPollInterval = max
	}
}

// WithLatencyRecorder включает замер задержек RPC.
func WithLatencyRecorder(r LatencyRecorder) Option {
	return func(c *Client) { c.latency = r }
}

// NewClient создаёт новый клиент, принимая RPC URL и логгер через dependency injection.
func NewClient(rpcURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		rpc:             rpc.New(rpcURL),
		logger:          logger.Named("solbc-client"),
		confirmTimeout:  DefaultConfirmTimeout,
		pollInterval:    DefaultPollInterval,
		maxPollInterval: DefaultMaxPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRecentBlockhash получает последний blockhash.
func (c *Client) GetRecentBlockhash(ctx context.Context) (solana.Hash, error) {
	start := time.Now()
	result, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	c.observe("getLatestBlockhash", start, err)
	if err != nil {
		c.logger.Error("GetRecentBlockhash error", zap.Error(err))
		return solana.Hash{}, err
	}
	return result.Value.Blockhash, nil
}

// GetBalance получает баланс аккаунта.
func (c *Client) GetBalance(ctx context.Context, pubkey solana.PublicKey, commitment rpc.CommitmentType) (uint64, error) {
	start := time.Now()
	result, err := c.rpc.GetBalance(ctx, pubkey, commitment)
	c.observe("getBalance", start, err)
	if err != nil {
		c.logger.Error("GetBalance error", zap.Error(err))
		return 0, err
	}
	return result.Value, nil
}

// SendTransactionWithOpts отправляет транзакцию с заданными опциями.
func (c *Client) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts blockchain.TransactionOptions) (solana.Signature, error) {
	start := time.Now()
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       opts.SkipPreflight,
		PreflightCommitment: opts.PreflightCommitment,
	})
	c.observe("sendTransaction", start, err)
	if err != nil {
		c.logger.Error("SendTransactionWithOpts error", zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// SimulateTransaction симулирует транзакцию и возвращает результат симуляции.
func (c *Client) SimulateTransaction(ctx context.Context, tx *solana.Transaction) (*blockchain.SimulationResult, error) {
	start := time.Now()
	result, err := c.rpc.SimulateTransaction(ctx, tx)
	c.observe("simulateTransaction", start, err)
	if err != nil {
		c.logger.Error("SimulateTransaction error", zap.Error(err))
		return nil, err
	}
	if result == nil || result.Value == nil {
		return nil, fmt.Errorf("empty simulation result")
	}
	units := uint64(0)
	if result.Value.UnitsConsumed != nil {
		units = *result.Value.UnitsConsumed
	}
	return &blockchain.SimulationResult{
		Err:           result.Value.Err,
		Logs:          result.Value.Logs,
		UnitsConsumed: units,
	}, nil
}

// GetSignatureStatuses получает статусы транзакций.
func (c *Client) GetSignatureStatuses(ctx context.Context, signatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	start := time.Now()
	result, err := c.rpc.GetSignatureStatuses(ctx, false, signatures...)
	c.observe("getSignatureStatuses", start, err)
	if err != nil {
		c.logger.Error("GetSignatureStatuses error", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// WaitForTransactionConfirmation опрашивает статус подписи с экспоненциальной задержкой,
// пока транзакция не достигнет commitment, не упадёт on-chain или не истечёт таймаут.
// Транзакция повторно не отправляется.
func (c *Client) WaitForTransactionConfirmation(ctx context.Context, signature solana.Signature, commitment rpc.CommitmentType) error {
	poll := func() (struct{}, error) {
		statuses, err := c.GetSignatureStatuses(ctx, signature)
		if err != nil {
			return struct{}{}, err
		}
		if statuses == nil || len(statuses.Value) == 0 || statuses.Value[0] == nil {
			return struct{}{}, ErrNotConfirmed
		}

		status := statuses.Value[0]
		if status.Err != nil {
			return struct{}{}, backoff.Permanent(&TransactionFailedError{Signature: signature, Reason: status.Err})
		}
		if !reached(status.ConfirmationStatus, commitment) {
			return struct{}{}, ErrNotConfirmed
		}
		return struct{}{}, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.pollInterval
	b.MaxInterval = c.maxPollInterval
	b.Reset()

	_, err := backoff.Retry(ctx, poll,
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(c.confirmTimeout),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Debug("Waiting for confirmation",
				zap.String("signature", signature.String()),
				zap.Duration("next_check", next),
				zap.Error(err))
		}),
	)
	if err == nil {
		return nil
	}

	var failed *TransactionFailedError
	if errors.As(err, &failed) || ctx.Err() != nil {
		return err
	}
	return fmt.Errorf("%w after %s: %w", ErrConfirmationTimeout, c.confirmTimeout, err)
}

func (c *Client) observe(method string, start time.Time, err error) {
	if c.latency != nil {
		c.latency.RecordRPCLatency(method, time.Since(start), err)
	}
}

// reached сообщает, удовлетворяет ли статус требуемому уровню подтверждения.
func reached(status rpc.ConfirmationStatusType, commitment rpc.CommitmentType) bool {
	switch commitment {
	case rpc.CommitmentFinalized:
		return status == rpc.ConfirmationStatusFinalized
	case rpc.CommitmentProcessed:
		return status == rpc.ConfirmationStatusProcessed ||
			status == rpc.ConfirmationStatusConfirmed ||
			status == rpc.ConfirmationStatusFinalized
	default:
		return status == rpc.ConfirmationStatusConfirmed ||
			status == rpc.ConfirmationStatusFinalized
	}
}

// Гарантируем, что Client реализует интерфейс blockchain.Client.
var _ blockchain.Client = (*Client)(nil)
