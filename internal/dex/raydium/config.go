// internal/dex/raydium/config.go
package raydium

// PoolConfig хранит адреса одного пула Raydium AMM v4 в base58.
// Адреса привязаны к конкретной торговой паре и не вычисляются.
type PoolConfig struct {
	AmmProgramID    string `mapstructure:"amm_program_id"`
	AmmID           string `mapstructure:"amm_id"`
	AmmAuthority    string `mapstructure:"amm_authority"`
	AmmOpenOrders   string `mapstructure:"amm_open_orders"`
	AmmTargetOrders string `mapstructure:"amm_target_orders"`
	PoolCoinVault   string `mapstructure:"pool_coin_vault"`
	PoolPcVault     string `mapstructure:"pool_pc_vault"`

	// OpenBook (бывший Serum) маркет
	SerumProgramID   string `mapstructure:"serum_program_id"`
	SerumMarket      string `mapstructure:"serum_market"`
	SerumBids        string `mapstructure:"serum_bids"`
	SerumAsks        string `mapstructure:"serum_asks"`
	SerumEventQueue  string `mapstructure:"serum_event_queue"`
	SerumCoinVault   string `mapstructure:"serum_coin_vault"`
	SerumPcVault     string `mapstructure:"serum_pc_vault"`
	SerumVaultSigner string `mapstructure:"serum_vault_signer"`
}

// DefaultPoolConfig: пул, с которым бот работает без внешней конфигурации.
// Open orders и target orders у этого пула совпадают.
var DefaultPoolConfig = PoolConfig{
	AmmProgramID:    "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8",
	AmmID:           "6BxoN7n1fMxT1azW3FhwMd88GDgueSgQkHdChjRMbjoE",
	AmmAuthority:    "5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1",
	AmmOpenOrders:   "AjNByeJoUb1H5Zrae2zxiJArSz9BuF9TyD7N1Fg1XCjw",
	AmmTargetOrders: "AjNByeJoUb1H5Zrae2zxiJArSz9BuF9TyD7N1Fg1XCjw",
	PoolCoinVault:   "8sN9Ed3Jmpd35wBoxqZxc2xeCMg28NG2nte9xRyVYkkm",
	PoolPcVault:     "CiDFjcCH4QGML7UTq7TBXG8rnVeQNuDSwaJHwNdopBJM",

	SerumProgramID:   "srmqPvymJeFKQ4zGQed1GFppgkRHL9kaELCbyksJtPX",
	SerumMarket:      "GD3tAeSiGMV3vNheU7tiGFtqRmerx9vQx5Du4pFTGSDx",
	SerumBids:        "FSbJGDRXsj14ZeTdzyUyQTWpdEqkRYYWLP4vpCrR2X14",
	SerumAsks:        "2amNMPYBYQV9kNJcUyuiunVRFfLeoExo6sEfYYAez755",
	SerumEventQueue:  "DoMgH2m6Uhi17qYTbba2ryBJ5Dbw8P6aRCFSiyxt9Bfz",
	SerumCoinVault:   "6yhdLpQd92CtC5FxQHyozRiSDvzSVCjHr3dBGV4WyKZf",
	SerumPcVault:     "A27jMwMy1vzGi5QZLoCkN1VPaSEv3AntUr7dQyLJyfoB",
	SerumVaultSigner: "2qBMFrCdaaX9rAU27rxemP1WYBxRt29tS966UtZf7Rdi",
}
