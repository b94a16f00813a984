// internal/dex/raydium/constants.go
package raydium

import (
	"github.com/gagliardetto/solana-go"
)

// Program IDs
var (
	TokenProgramID     = solana.TokenProgramID
	RaydiumV4ProgramID = solana.MPK("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	WrappedSolMint     = solana.MPK("So11111111111111111111111111111111111111112")
)

// Swap instruction layout: opcode(u8) + amountIn(u64 LE) + minAmountOut(u64 LE).
const (
	SwapBaseInOpcode    uint8 = 9
	SwapInstructionSize       = 1 + 8 + 8

	// SwapAccountsCount фиксированное число аккаунтов в swap_base_in (AMM v4 + Serum/OpenBook).
	SwapAccountsCount = 18
)

// LamportsPerSol: SOL имеет 9 знаков после запятой.
const LamportsPerSol = 1_000_000_000
