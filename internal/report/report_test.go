package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/raydium-swap/internal/blockchain"
	"github.com/rovshanmuradov/raydium-swap/internal/dex/raydium"
	"github.com/rovshanmuradov/raydium-swap/internal/pipeline"
	"github.com/rovshanmuradov/raydium-swap/internal/wallet"
)

func TestProgramName(t *testing.T) {
	assert.Equal(t, "System", ProgramName(solana.SystemProgramID))
	assert.Equal(t, "RaydiumAmmV4", ProgramName(raydium.RaydiumV4ProgramID))
	assert.Equal(t, "So11…1112", ProgramName(raydium.WrappedSolMint))
}

func TestWritePlan(t *testing.T) {
	from := solana.NewWallet().PublicKey()
	to := solana.NewWallet().PublicKey()
	wsol := solana.NewWallet().PublicKey()

	res := &pipeline.Result{
		Steps: []pipeline.Step{
			{
				Stage:       pipeline.StageTip,
				Label:       pipeline.LabelTip,
				Instruction: system.NewTransferInstruction(1_000_000, from, to).Build(),
			},
		},
		WSOL:            wallet.SeededAccount{Seed: "seed", Address: wsol},
		TipAccount:      to,
		FundingLamports: 104_000_000,
	}

	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "Transaction plan")
	assert.Contains(t, out, "jito_tip")
	assert.Contains(t, out, "System")
	assert.Contains(t, out, "12 B")
	assert.Contains(t, out, "1000000 lamports")
	assert.Contains(t, out, wsol.String())
	assert.Contains(t, out, "104000000 lamports")
	assert.Contains(t, out, to.String())
}

func TestWritePlanKeepsAddressCase(t *testing.T) {
	tipAccount := solana.MustPublicKeyFromBase58("96gYZGLnJYVFmbjzopPSU6QiEV5fGqZNyN9nmNhvrZU5")
	res := &pipeline.Result{
		WSOL:            wallet.SeededAccount{Seed: "seed", Address: raydium.WrappedSolMint},
		TipAccount:      tipAccount,
		FundingLamports: 15_000_000,
	}

	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, res))

	out := buf.String()
	assert.Contains(t, out, raydium.WrappedSolMint.String())
	assert.Contains(t, out, tipAccount.String())
	assert.NotContains(t, out, strings.ToUpper(raydium.WrappedSolMint.String()))
	assert.Contains(t, out, "15000000 lamports")
}

func TestWriteSimulation(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSimulation(&buf, &blockchain.SimulationResult{
		Logs:          []string{"Program 11111111111111111111111111111111 invoke [1]", "Program 11111111111111111111111111111111 success"},
		UnitsConsumed: 150,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "150")
	assert.Contains(t, out, "invoke [1]")
}

func TestWriteSimulationFailure(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSimulation(&buf, &blockchain.SimulationResult{
		Err: map[string]interface{}{"InstructionError": []interface{}{4, "Custom"}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "failed:")
}

func TestDescribe(t *testing.T) {
	limit := computebudget.NewSetComputeUnitLimitInstruction(60_000).Build()
	limitData, err := limit.Data()
	require.NoError(t, err)

	price := computebudget.NewSetComputeUnitPriceInstruction(1_000_000).Build()
	priceData, err := price.Data()
	require.NoError(t, err)

	tests := []struct {
		label    string
		data     []byte
		expected string
	}{
		{pipeline.LabelComputeLimit, limitData, "units=60000"},
		{pipeline.LabelComputePrice, priceData, "price=1000000 µlamports"},
		{pipeline.LabelSwap, raydium.EncodeSwapData(100_000_000, 5), "in=100000000 min_out=5"},
		{pipeline.LabelSwap, []byte{1, 2}, ""},
		{pipeline.LabelCloseWSOL, []byte{9}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, Describe(tt.label, tt.data))
		})
	}
}
