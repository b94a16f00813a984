// internal/pipeline/plan.go
package pipeline

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/raydium-swap/internal/dex/raydium"
	"github.com/rovshanmuradov/raydium-swap/internal/jito"
)

const (
	// WSOLAccountSpace: размер SPL token аккаунта.
	WSOLAccountSpace = 165
	// RentBufferLamports добавляется к сумме свапа на ренту WSOL-аккаунта.
	RentBufferLamports = 4_000_000
	// MinFundingLamports: минимальное пополнение WSOL-аккаунта.
	MinFundingLamports = 15_000_000
)

var (
	ErrNoWallet     = errors.New("wallet is required")
	ErrNoTargetMint = errors.New("target mint is required")
	ErrBadAmount    = errors.New("amount in must be a non-negative finite number")
)

// Plan описывает одну транзакцию покупки.
type Plan struct {
	Wallet       solana.PublicKey
	TargetMint   solana.PublicKey
	AmountIn     float64 // SOL
	MinAmountOut uint64

	ComputeUnitLimit uint32
	ComputeUnitPrice uint64 // микролампорты за CU

	// Tip: nil означает чаевые по умолчанию, 0 отключает чаевые.
	Tip *uint64

	SkipSwap bool
}

// TipEnabled сообщает, нужна ли инструкция чаевых.
func (p Plan) TipEnabled() bool {
	return p.Tip == nil || *p.Tip > 0
}

// TipLamports возвращает фактический размер чаевых.
func (p Plan) TipLamports() uint64 {
	if !p.TipEnabled() {
		return 0
	}
	if p.Tip == nil {
		return jito.DefaultTipLamports
	}
	return *p.Tip
}

// Validate проверяет план до сборки инструкций.
func (p Plan) Validate() error {
	if p.Wallet.IsZero() {
		return ErrNoWallet
	}
	if p.TargetMint.IsZero() {
		return ErrNoTargetMint
	}
	if !(p.AmountIn >= 0) || p.AmountIn >= float64(^uint64(0))/raydium.LamportsPerSol {
		return fmt.Errorf("%w: %v", ErrBadAmount, p.AmountIn)
	}
	return nil
}

// FundingLamports возвращает сумму пополнения WSOL-аккаунта (вход свапа плюс запас на ренту),
// но не меньше MinFundingLamports.
func FundingLamports(amountIn float64) uint64 {
	fund := addSat(raydium.SolToLamports(amountIn), RentBufferLamports)
	if fund < MinFundingLamports {
		fund = MinFundingLamports
	}
	return fund
}

// RequiredLamports оценивает расход кошелька на транзакцию без учёта комиссий сети:
// пополнение WSOL (возвращается при закрытии за вычетом свапа) и чаевые.
func (p Plan) RequiredLamports() uint64 {
	return addSat(FundingLamports(p.AmountIn), p.TipLamports())
}

// addSat складывает без переполнения, упираясь в максимум uint64.
func addSat(a, b uint64) uint64 {
	if sum := a + b; sum >= a {
		return sum
	}
	return ^uint64(0)
}
