// internal/transaction/transaction.go
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/raydium-swap/internal/blockchain"
)

// ErrInsufficientFunds: баланса кошелька не хватает на пополнение WSOL и чаевые.
var ErrInsufficientFunds = errors.New("insufficient wallet balance")

// Signer подписывает транзакции и платит комиссию.
type Signer interface {
	Address() solana.PublicKey
	SignTransaction(tx *solana.Transaction) error
}

// ConfirmationError: транзакция отправлена, но подтверждение не получено.
type ConfirmationError struct {
	Signature solana.Signature
	Err       error
}

func (e *ConfirmationError) Error() string {
	return fmt.Sprintf("transaction %s not confirmed: %v", e.Signature, e.Err)
}

func (e *ConfirmationError) Unwrap() error {
	return e.Err
}

// Options управляет отправкой.
type Options struct {
	SkipPreflight bool
	Commitment    rpc.CommitmentType
}

// Submitter компилирует, подписывает и отправляет транзакции. Повторных отправок нет:
// транзакция либо исполняется целиком, либо ошибка возвращается вызывающему.
type Submitter struct {
	client blockchain.Client
	opts   Options
	logger *zap.Logger
}

// NewSubmitter создает Submitter поверх RPC-клиента.
func NewSubmitter(client blockchain.Client, opts Options, logger *zap.Logger) *Submitter {
	if opts.Commitment == "" {
		opts.Commitment = rpc.CommitmentConfirmed
	}
	return &Submitter{
		client: client,
		opts:   opts,
		logger: logger.Named("submitter"),
	}
}

// Prepare параллельно получает blockhash и баланс плательщика, проверяет,
// что баланса хватает на required лампортов, затем собирает и подписывает транзакцию.
// required == 0 отключает проверку баланса.
func (s *Submitter) Prepare(ctx context.Context, instructions []solana.Instruction, signer Signer, required uint64) (*solana.Transaction, error) {
	var (
		blockhash solana.Hash
		balance   uint64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hash, err := s.client.GetRecentBlockhash(gctx)
		if err != nil {
			return fmt.Errorf("failed to get recent blockhash: %w", err)
		}
		blockhash = hash
		return nil
	})
	if required > 0 {
		g.Go(func() error {
			b, err := s.client.GetBalance(gctx, signer.Address(), rpc.CommitmentConfirmed)
			if err != nil {
				return fmt.Errorf("failed to get wallet balance: %w", err)
			}
			balance = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if required > 0 && balance < required {
		return nil, fmt.Errorf("%w: have %d lamports, need at least %d", ErrInsufficientFunds, balance, required)
	}

	return s.Compile(instructions, blockhash, signer)
}

// Compile собирает транзакцию с заданным blockhash и подписывает её.
func (s *Submitter) Compile(instructions []solana.Instruction, blockhash solana.Hash, signer Signer) (*solana.Transaction, error) {
	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(signer.Address()))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	if err := signer.SignTransaction(tx); err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return tx, nil
}

// Send отправляет подписанную транзакцию один раз и ждёт подтверждения.
func (s *Submitter) Send(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := s.client.SendTransactionWithOpts(ctx, tx, blockchain.TransactionOptions{
		SkipPreflight:       s.opts.SkipPreflight,
		PreflightCommitment: s.opts.Commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	s.logger.Info("Transaction sent, waiting for confirmation",
		zap.String("signature", sig.String()),
		zap.String("commitment", string(s.opts.Commitment)))

	if err := s.client.WaitForTransactionConfirmation(ctx, sig, s.opts.Commitment); err != nil {
		return sig, &ConfirmationError{Signature: sig, Err: err}
	}
	return sig, nil
}

// Simulate прогоняет транзакцию без отправки в сеть.
func (s *Submitter) Simulate(ctx context.Context, tx *solana.Transaction) (*blockchain.SimulationResult, error) {
	res, err := s.client.SimulateTransaction(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate transaction: %w", err)
	}
	return res, nil
}
