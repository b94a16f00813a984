// internal/dex/raydium/pool.go
package raydium

import (
	"github.com/gagliardetto/solana-go"
)

// PoolKeys: провалидированные адреса пула. После ParsePoolKeys не изменяются.
type PoolKeys struct {
	AmmProgramID    solana.PublicKey
	AmmID           solana.PublicKey
	AmmAuthority    solana.PublicKey
	AmmOpenOrders   solana.PublicKey
	AmmTargetOrders solana.PublicKey
	PoolCoinVault   solana.PublicKey
	PoolPcVault     solana.PublicKey

	SerumProgramID   solana.PublicKey
	SerumMarket      solana.PublicKey
	SerumBids        solana.PublicKey
	SerumAsks        solana.PublicKey
	SerumEventQueue  solana.PublicKey
	SerumCoinVault   solana.PublicKey
	SerumPcVault     solana.PublicKey
	SerumVaultSigner solana.PublicKey
}

// ParsePoolKeys разбирает все адреса конфигурации. Первая же ошибка
// возвращается как *AddressError, частично заполненный PoolKeys не отдаётся.
func ParsePoolKeys(cfg PoolConfig) (*PoolKeys, error) {
	var keys PoolKeys

	fields := []struct {
		name  string
		value string
		dst   *solana.PublicKey
	}{
		{"amm_program_id", cfg.AmmProgramID, &keys.AmmProgramID},
		{"amm_id", cfg.AmmID, &keys.AmmID},
		{"amm_authority", cfg.AmmAuthority, &keys.AmmAuthority},
		{"amm_open_orders", cfg.AmmOpenOrders, &keys.AmmOpenOrders},
		{"amm_target_orders", cfg.AmmTargetOrders, &keys.AmmTargetOrders},
		{"pool_coin_vault", cfg.PoolCoinVault, &keys.PoolCoinVault},
		{"pool_pc_vault", cfg.PoolPcVault, &keys.PoolPcVault},
		{"serum_program_id", cfg.SerumProgramID, &keys.SerumProgramID},
		{"serum_market", cfg.SerumMarket, &keys.SerumMarket},
		{"serum_bids", cfg.SerumBids, &keys.SerumBids},
		{"serum_asks", cfg.SerumAsks, &keys.SerumAsks},
		{"serum_event_queue", cfg.SerumEventQueue, &keys.SerumEventQueue},
		{"serum_coin_vault", cfg.SerumCoinVault, &keys.SerumCoinVault},
		{"serum_pc_vault", cfg.SerumPcVault, &keys.SerumPcVault},
		{"serum_vault_signer", cfg.SerumVaultSigner, &keys.SerumVaultSigner},
	}

	for _, f := range fields {
		if f.value == "" {
			return nil, &AddressError{Field: f.name, Value: f.value, Err: ErrEmptyAddress}
		}
		pk, err := solana.PublicKeyFromBase58(f.value)
		if err != nil {
			return nil, &AddressError{Field: f.name, Value: f.value, Err: err}
		}
		*f.dst = pk
	}

	return &keys, nil
}

