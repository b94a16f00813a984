// internal/dex/raydium/instruction.go
package raydium

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/raydium-swap/internal/utils/binary"
)

// ErrNotSwapInstruction: данные не являются swap_base_in.
var ErrNotSwapInstruction = errors.New("not a swap_base_in instruction")

// SwapInstructionBuilder строит инструкции свапа для одного пула
type SwapInstructionBuilder struct {
	keys   *PoolKeys
	logger *zap.Logger
}

// NewSwapInstructionBuilder создает новый builder для инструкций
func NewSwapInstructionBuilder(keys *PoolKeys, logger *zap.Logger) *SwapInstructionBuilder {
	return &SwapInstructionBuilder{
		keys:   keys,
		logger: logger.Named("raydium-swap-builder"),
	}
}

// BuildBuyInstruction создает инструкцию swap_base_in: WSOL из SourceAccount
// меняется на DestinationMint, результат попадает в ATA кошелька.
func (b *SwapInstructionBuilder) BuildBuyInstruction(params SwapParams) (solana.Instruction, error) {
	destination, _, err := solana.FindAssociatedTokenAddress(params.Wallet, params.DestinationMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive destination token account: %w", err)
	}

	amountIn := SolToLamports(params.AmountIn)
	data := EncodeSwapData(amountIn, params.MinAmountOut)
	accounts := b.buildAccountMetas(params.SourceAccount, destination, params.Wallet)

	b.logger.Debug("Building Raydium swap instruction",
		zap.String("amm", b.keys.AmmID.String()),
		zap.String("mint", params.DestinationMint.String()),
		zap.Uint64("amount_in", amountIn),
		zap.Uint64("min_amount_out", params.MinAmountOut),
	)

	return solana.NewInstruction(b.keys.AmmProgramID, accounts, data), nil
}

// buildAccountMetas создает список аккаунтов в порядке, который ожидает программа.
// Ошибка в порядке или флагах обнаружится только при исполнении on-chain.
func (b *SwapInstructionBuilder) buildAccountMetas(source, destination, owner solana.PublicKey) solana.AccountMetaSlice {
	k := b.keys
	return solana.AccountMetaSlice{
		solana.NewAccountMeta(TokenProgramID, false, false),

		// AMM
		solana.NewAccountMeta(k.AmmID, true, false),
		solana.NewAccountMeta(k.AmmAuthority, false, false),
		solana.NewAccountMeta(k.AmmOpenOrders, true, false),
		solana.NewAccountMeta(k.AmmTargetOrders, true, false),
		solana.NewAccountMeta(k.PoolCoinVault, true, false),
		solana.NewAccountMeta(k.PoolPcVault, true, false),

		// Serum
		solana.NewAccountMeta(k.SerumProgramID, false, false),
		solana.NewAccountMeta(k.SerumMarket, true, false),
		solana.NewAccountMeta(k.SerumBids, true, false),
		solana.NewAccountMeta(k.SerumAsks, true, false),
		solana.NewAccountMeta(k.SerumEventQueue, true, false),
		solana.NewAccountMeta(k.SerumCoinVault, true, false),
		solana.NewAccountMeta(k.SerumPcVault, true, false),
		solana.NewAccountMeta(k.SerumVaultSigner, false, false),

		// User
		solana.NewAccountMeta(source, true, false),
		solana.NewAccountMeta(destination, true, false),
		solana.NewAccountMeta(owner, false, true),
	}
}

// EncodeSwapData сериализует данные инструкции swap_base_in (17 байт).
func EncodeSwapData(amountIn, minAmountOut uint64) []byte {
	data := make([]byte, SwapInstructionSize)
	binary.WriteUint8(SwapBaseInOpcode, data, 0)
	binary.WriteUint64LittleEndian(amountIn, data, 1)
	binary.WriteUint64LittleEndian(minAmountOut, data, 9)
	return data
}

// DecodeSwapData разбирает данные, созданные EncodeSwapData.
func DecodeSwapData(data []byte) (amountIn, minAmountOut uint64, err error) {
	if len(data) != SwapInstructionSize {
		return 0, 0, fmt.Errorf("%w: length %d", ErrNotSwapInstruction, len(data))
	}
	if op := binary.ReadUint8(data, 0); op != SwapBaseInOpcode {
		return 0, 0, fmt.Errorf("%w: opcode %d", ErrNotSwapInstruction, op)
	}
	return binary.ReadUint64LittleEndian(data, 1), binary.ReadUint64LittleEndian(data, 9), nil
}

// SolToLamports переводит SOL в лампорты с усечением дробной части, без округления.
func SolToLamports(amount float64) uint64 {
	return uint64(amount * LamportsPerSol)
}
