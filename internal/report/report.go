// internal/report/report.go
// Package report выводит план транзакции и результат симуляции таблицами для терминала.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rovshanmuradov/raydium-swap/internal/blockchain"
	"github.com/rovshanmuradov/raydium-swap/internal/dex/raydium"
	"github.com/rovshanmuradov/raydium-swap/internal/pipeline"
	"github.com/rovshanmuradov/raydium-swap/internal/utils/binary"
)

// Известные программы для человекочитаемого вывода.
var programNames = map[solana.PublicKey]string{
	computebudget.ProgramID:                   "ComputeBudget",
	solana.SystemProgramID:                    "System",
	solana.TokenProgramID:                     "Token",
	solana.SPLAssociatedTokenAccountProgramID: "AssociatedToken",
	raydium.RaydiumV4ProgramID:                "RaydiumAmmV4",
}

// ProgramName возвращает имя программы или сокращённый адрес.
func ProgramName(id solana.PublicKey) string {
	if name, ok := programNames[id]; ok {
		return name
	}
	s := id.String()
	if len(s) <= 12 {
		return s
	}
	return s[:4] + "…" + s[len(s)-4:]
}

// WritePlan печатает собранные инструкции: номер, метка, программа, аккаунты, размер данных.
func WritePlan(w io.Writer, res *pipeline.Result) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	// base58 чувствителен к регистру: футер без upper-case
	t.Style().Format.Footer = text.FormatDefault
	t.SetTitle("Transaction plan")
	t.AppendHeader(table.Row{"#", "Instruction", "Program", "Accounts", "Data", "Details"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	for i, step := range res.Steps {
		data, err := step.Instruction.Data()
		if err != nil {
			return fmt.Errorf("instruction %s: %w", step.Label, err)
		}
		t.AppendRow(table.Row{
			i + 1,
			step.Label,
			ProgramName(step.Instruction.ProgramID()),
			len(step.Instruction.Accounts()),
			fmt.Sprintf("%d B", len(data)),
			Describe(step.Label, data),
		})
	}

	t.AppendFooter(table.Row{"", "WSOL", res.WSOL.Address.String(), "", "", fmt.Sprintf("%d lamports", res.FundingLamports)})
	if !res.TipAccount.IsZero() {
		t.AppendFooter(table.Row{"", "Tip", res.TipAccount.String(), "", "", ""})
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Describe расшифровывает числовые параметры известных инструкций.
func Describe(label string, data []byte) string {
	switch label {
	case pipeline.LabelComputeLimit:
		// [2, u32 units]
		if binary.CheckLength(data, 0, 5) == nil && binary.ReadUint8(data, 0) == 2 {
			return fmt.Sprintf("units=%d", binary.ReadUint32LittleEndian(data, 1))
		}
	case pipeline.LabelComputePrice:
		// [3, u64 micro-lamports]
		if binary.CheckLength(data, 0, 9) == nil && binary.ReadUint8(data, 0) == 3 {
			return fmt.Sprintf("price=%d µlamports", binary.ReadUint64LittleEndian(data, 1))
		}
	case pipeline.LabelSwap:
		if in, minOut, err := raydium.DecodeSwapData(data); err == nil {
			return fmt.Sprintf("in=%d min_out=%d", in, minOut)
		}
	case pipeline.LabelTip:
		// system transfer: [u32 2, u64 lamports]
		if binary.CheckLength(data, 0, 12) == nil && binary.ReadUint32LittleEndian(data, 0) == 2 {
			return fmt.Sprintf("%d lamports", binary.ReadUint64LittleEndian(data, 4))
		}
	}
	return ""
}

// WriteSimulation печатает итог симуляции и логи программ.
func WriteSimulation(w io.Writer, sim *blockchain.SimulationResult) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Simulation")

	status := "ok"
	if sim.Err != nil {
		status = fmt.Sprintf("failed: %v", sim.Err)
	}
	t.AppendRow(table.Row{"Status", status})
	t.AppendRow(table.Row{"Units consumed", sim.UnitsConsumed})
	t.AppendRow(table.Row{"Log lines", len(sim.Logs)})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	if len(sim.Logs) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.Join(sim.Logs, "\n"))
	return err
}
