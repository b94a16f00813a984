// internal/pipeline/builder.go
package pipeline

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/raydium-swap/internal/dex/raydium"
	"github.com/rovshanmuradov/raydium-swap/internal/jito"
	"github.com/rovshanmuradov/raydium-swap/internal/wallet"
)

// Step: инструкция с меткой для логов и отчёта.
type Step struct {
	Stage       Stage
	Label       string
	Instruction solana.Instruction
}

// Result: собранные инструкции и вспомогательные данные.
type Result struct {
	Steps           []Step
	WSOL            wallet.SeededAccount
	TipAccount      solana.PublicKey
	FundingLamports uint64
}

// Instructions возвращает инструкции в порядке исполнения.
func (r *Result) Instructions() []solana.Instruction {
	out := make([]solana.Instruction, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Instruction
	}
	return out
}

// Builder собирает инструкции по плану.
type Builder struct {
	swap   *raydium.SwapInstructionBuilder
	tips   *jito.TipBuilder
	seeds  wallet.SeedSource
	logger *zap.Logger
}

// NewBuilder создает сборщик. Источник seed и выбор аккаунта чаевых
// внедряются, чтобы тесты были детерминированными.
func NewBuilder(
	swap *raydium.SwapInstructionBuilder,
	tips *jito.TipBuilder,
	seeds wallet.SeedSource,
	logger *zap.Logger,
) *Builder {
	return &Builder{
		swap:   swap,
		tips:   tips,
		seeds:  seeds,
		logger: logger.Named("pipeline"),
	}
}

// Build собирает инструкции всех выбранных шагов.
func (b *Builder) Build(plan Plan) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	wsol, err := wallet.DeriveSeededAccount(plan.Wallet, b.seeds, solana.TokenProgramID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive WSOL account: %w", err)
	}

	res := &Result{
		WSOL:            wsol,
		FundingLamports: FundingLamports(plan.AmountIn),
	}

	for _, stage := range Stages(plan) {
		if err := b.buildStage(stage, plan, res); err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage, err)
		}
	}

	b.logger.Debug("Instructions assembled",
		zap.Int("count", len(res.Steps)),
		zap.String("wsol_account", wsol.Address.String()),
		zap.Uint64("funding_lamports", res.FundingLamports),
		zap.Bool("swap", !plan.SkipSwap))

	return res, nil
}

func (b *Builder) buildStage(stage Stage, plan Plan, res *Result) error {
	add := func(label string, ix solana.Instruction) {
		res.Steps = append(res.Steps, Step{Stage: stage, Label: label, Instruction: ix})
	}

	switch stage {
	case StageComputeBudget:
		if plan.ComputeUnitLimit > 0 {
			add(LabelComputeLimit, computebudget.NewSetComputeUnitLimitInstruction(plan.ComputeUnitLimit).Build())
		}
		if plan.ComputeUnitPrice > 0 {
			add(LabelComputePrice, computebudget.NewSetComputeUnitPriceInstruction(plan.ComputeUnitPrice).Build())
		}

	case StageFund:
		ix, err := system.NewCreateAccountWithSeedInstruction(
			plan.Wallet,
			res.WSOL.Seed,
			res.FundingLamports,
			WSOLAccountSpace,
			solana.TokenProgramID,
			plan.Wallet,
			res.WSOL.Address,
			plan.Wallet,
		).ValidateAndBuild()
		if err != nil {
			return err
		}
		add(LabelCreateWSOL, ix)

	case StageInitialize:
		ix, err := token.NewInitializeAccountInstruction(
			res.WSOL.Address,
			raydium.WrappedSolMint,
			plan.Wallet,
			solana.SysVarRentPubkey,
		).ValidateAndBuild()
		if err != nil {
			return err
		}
		add(LabelInitWSOL, ix)

	case StageCreateATA:
		ix, err := wallet.CreateAssociatedTokenAccountIdempotentInstruction(plan.Wallet, plan.Wallet, plan.TargetMint)
		if err != nil {
			return err
		}
		add(LabelCreateATA, ix)

	case StageSwap:
		ix, err := b.swap.BuildBuyInstruction(raydium.SwapParams{
			Wallet:          plan.Wallet,
			SourceAccount:   res.WSOL.Address,
			DestinationMint: plan.TargetMint,
			AmountIn:        plan.AmountIn,
			MinAmountOut:    plan.MinAmountOut,
		})
		if err != nil {
			return err
		}
		add(LabelSwap, ix)

	case StageClose:
		ix, err := token.NewCloseAccountInstruction(
			res.WSOL.Address,
			plan.Wallet,
			plan.Wallet,
			nil,
		).ValidateAndBuild()
		if err != nil {
			return err
		}
		add(LabelCloseWSOL, ix)

	case StageTip:
		ix, account := b.tips.Instruction(plan.Wallet, plan.Tip)
		res.TipAccount = account
		add(LabelTip, ix)

	default:
		return fmt.Errorf("unknown stage %q", stage)
	}
	return nil
}
