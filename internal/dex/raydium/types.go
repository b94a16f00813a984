// internal/dex/raydium/types.go
// Package raydium кодирует инструкцию swap_base_in для пулов Raydium AMM v4.
package raydium

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ErrEmptyAddress возвращается, когда адрес пула не задан в конфигурации.
var ErrEmptyAddress = errors.New("address is empty")

// SwapParams содержит параметры покупки токена за WSOL.
type SwapParams struct {
	// Кошелёк, подписывающий транзакцию
	Wallet solana.PublicKey
	// WSOL-аккаунт, с которого списывается вход
	SourceAccount solana.PublicKey
	// Минт покупаемого токена
	DestinationMint solana.PublicKey
	// Сумма в SOL; переводится в лампорты с усечением
	AmountIn float64
	// Минимальный выход в наименьших единицах токена. 0 отключает защиту от проскальзывания
	MinAmountOut uint64
}

// AddressError представляет ошибку разбора адреса пула
type AddressError struct {
	Field string
	Value string
	Err   error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid pool address %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *AddressError) Unwrap() error {
	return e.Err
}
