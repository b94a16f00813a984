// internal/jito/tip.go
// Package jito строит инструкции чаевых валидаторам Jito.
package jito

import (
	"math/rand/v2"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// DefaultTipLamports используется, когда размер чаевых не задан.
const DefaultTipLamports uint64 = 10_000_000

// TipAccounts: восемь аккаунтов Jito для чаевых валидаторам.
var TipAccounts = [8]solana.PublicKey{
	solana.MPK("96gYZGLnJYVFmbjzopPSU6QiEV5fGqZNyN9nmNhvrZU5"),
	solana.MPK("HFqU5x63VTqvQss8hp11i4wVV8bD44PvwucfZ2bU7gRe"),
	solana.MPK("Cw8CFyM9FkoMi7K7Crf6HNQqf4uEMzpKw6QNghXLvLkY"),
	solana.MPK("ADaUMid9yfUytqMBgopwjb2DTLSokTSzL1zt6iGPaS49"),
	solana.MPK("DfXygSm4jCyNCybVYYK6DwvWqjKee8pbDmJGcLWNDXjh"),
	solana.MPK("ADuUkR4vqLUMWXxW9gh6D6L8pMSawimctcNZ5pGwDcEt"),
	solana.MPK("DttWaMuVvTiduZRnguLF7jNxTgiMBZ1hyAumKUiL2KRL"),
	solana.MPK("3AVi9Tg9Uo68tJfuvoKvqKNWKkC5wPdSSdeBnizKZ6jT"),
}

// Picker выбирает индекс в [0, n). Подменяется в тестах.
type Picker interface {
	IntN(n int) int
}

type randPicker struct{}

func (randPicker) IntN(n int) int { return rand.IntN(n) }

// TipBuilder строит перевод чаевых на случайный аккаунт Jito
type TipBuilder struct {
	picker Picker
}

// NewTipBuilder создает builder. nil picker означает равномерный случайный выбор.
func NewTipBuilder(picker Picker) *TipBuilder {
	if picker == nil {
		picker = randPicker{}
	}
	return &TipBuilder{picker: picker}
}

// PickAccount выбирает аккаунт для чаевых.
func (b *TipBuilder) PickAccount() solana.PublicKey {
	return TipAccounts[b.picker.IntN(len(TipAccounts))]
}

// Instruction возвращает перевод tip лампортов (или DefaultTipLamports, если tip == nil)
// от payer на случайный аккаунт для чаевых, а также выбранный аккаунт.
func (b *TipBuilder) Instruction(payer solana.PublicKey, tip *uint64) (solana.Instruction, solana.PublicKey) {
	amount := DefaultTipLamports
	if tip != nil {
		amount = *tip
	}

	account := b.PickAccount()
	return system.NewTransferInstruction(amount, payer, account).Build(), account
}
