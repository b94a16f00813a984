// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/raydium-swap/internal/dex/raydium"
	"github.com/rovshanmuradov/raydium-swap/internal/pipeline"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	PrivateKey string `mapstructure:"private_key"`
	RPC        string `mapstructure:"rpc"`

	TargetMint       string  `mapstructure:"mint"`
	AmountIn         float64 `mapstructure:"amount"`
	MinAmountOut     uint64  `mapstructure:"min_out"`
	ComputeUnitLimit uint32  `mapstructure:"compute_unit_limit"`
	ComputeUnitPrice uint64  `mapstructure:"compute_unit_price"`
	Priority         string  `mapstructure:"priority"`
	TipLamports      uint64  `mapstructure:"tip"`
	SkipSwap         bool    `mapstructure:"skip_swap"`
	SkipPreflight    bool    `mapstructure:"skip_preflight"`

	DryRun         bool          `mapstructure:"dry_run"`
	DebugLogging   bool          `mapstructure:"debug_logging"`
	LogFile        string        `mapstructure:"log_file"`
	MetricsFile    string        `mapstructure:"metrics_file"`
	ConfirmTimeout time.Duration `mapstructure:"confirm_timeout"`

	Pool raydium.PoolConfig `mapstructure:"pool"`
}

const (
	DefaultTargetMint       = "umgcPr2uQHzmCerCu6kSPBiaUdMWZewRRQmQ54Apump"
	DefaultAmountIn         = 0.1
	DefaultComputeUnitLimit = 60_000
	DefaultComputeUnitPrice = 1_000_000
	DefaultTipLamports      = 1_000_000
	DefaultConfirmTimeout   = 60 * time.Second
	DefaultLogFile          = "swap.log"
	DefaultEnvFile          = ".env"

	envPrefix = "SWAP"
)

var (
	ErrMissingPrivateKey = errors.New("missing PRIVATE_KEY")
	ErrMissingRPC        = errors.New("missing RPC")
)

// NewFlagSet описывает флаги командной строки. Флаги имеют наивысший приоритет.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to config file (yaml/json)")
	fs.String("env-file", DefaultEnvFile, "path to .env file")
	fs.String("mint", DefaultTargetMint, "target token mint")
	fs.Float64("amount", DefaultAmountIn, "amount of SOL to swap")
	fs.Uint64("min-out", 0, "minimum amount of tokens to receive (0 disables slippage check)")
	fs.Uint64("tip", DefaultTipLamports, "jito tip in lamports (0 disables tip)")
	fs.String("priority", "", "compute budget preset: low, medium, high, extreme")
	fs.Bool("skip-swap", false, "build the transaction without the swap instruction")
	fs.Bool("dry-run", false, "simulate instead of sending")
	fs.Bool("debug", false, "enable debug logging")
	fs.String("metrics-file", "", "write prometheus metrics to this file after the run")
	return fs
}

// flag → ключ конфигурации
var flagKeys = map[string]string{
	"mint":         "mint",
	"amount":       "amount",
	"min-out":      "min_out",
	"tip":          "tip",
	"priority":     "priority",
	"skip-swap":    "skip_swap",
	"dry-run":      "dry_run",
	"debug":        "debug_logging",
	"metrics-file": "metrics_file",
}

// Load разбирает аргументы и собирает конфигурацию из всех источников.
func Load(args []string) (*Config, error) {
	fs := NewFlagSet("swap")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return LoadFromFlags(fs)
}

// LoadFromFlags: defaults → config file → .env → environment → flags.
func LoadFromFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	configPath, _ := fs.GetString("config")
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	envFile, _ := fs.GetString("env-file")
	if err := mergeEnvFile(v, envFile); err != nil {
		return nil, err
	}

	if err := bindEnvironment(v); err != nil {
		return nil, err
	}

	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, validateConfig(&cfg)
}

func defaults() map[string]interface{} {
	pool := raydium.DefaultPoolConfig
	return map[string]interface{}{
		"mint":               DefaultTargetMint,
		"amount":             DefaultAmountIn,
		"min_out":            0,
		"compute_unit_limit": DefaultComputeUnitLimit,
		"compute_unit_price": DefaultComputeUnitPrice,
		"tip":                DefaultTipLamports,
		"confirm_timeout":    DefaultConfirmTimeout,
		"log_file":           DefaultLogFile,

		// по ключу на поле, чтобы частичный блок pool в файле не обнулял остальные адреса
		"pool.amm_program_id":     pool.AmmProgramID,
		"pool.amm_id":             pool.AmmID,
		"pool.amm_authority":      pool.AmmAuthority,
		"pool.amm_open_orders":    pool.AmmOpenOrders,
		"pool.amm_target_orders":  pool.AmmTargetOrders,
		"pool.pool_coin_vault":    pool.PoolCoinVault,
		"pool.pool_pc_vault":      pool.PoolPcVault,
		"pool.serum_program_id":   pool.SerumProgramID,
		"pool.serum_market":       pool.SerumMarket,
		"pool.serum_bids":         pool.SerumBids,
		"pool.serum_asks":         pool.SerumAsks,
		"pool.serum_event_queue":  pool.SerumEventQueue,
		"pool.serum_coin_vault":   pool.SerumCoinVault,
		"pool.serum_pc_vault":     pool.SerumPcVault,
		"pool.serum_vault_signer": pool.SerumVaultSigner,
	}
}

// mergeEnvFile подмешивает .env поверх файла конфигурации. Отсутствующий файл не ошибка.
func mergeEnvFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat env file %s: %w", path, err)
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return nil
}

func bindEnvironment(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Секреты читаются и без префикса
	if err := v.BindEnv("private_key", envPrefix+"_PRIVATE_KEY", "PRIVATE_KEY"); err != nil {
		return err
	}
	return v.BindEnv("rpc", envPrefix+"_RPC", "RPC")
}

func validateConfig(cfg *Config) error {
	if cfg.PrivateKey == "" {
		return ErrMissingPrivateKey
	}
	if cfg.RPC == "" {
		return ErrMissingRPC
	}
	if err := validateURLWithCache(cfg.RPC, "http"); err != nil {
		return fmt.Errorf("invalid RPC URL: %w", err)
	}
	if _, err := solana.PublicKeyFromBase58(cfg.TargetMint); err != nil {
		return fmt.Errorf("invalid mint %q: %w", cfg.TargetMint, err)
	}
	if _, err := pipeline.ParsePriorityLevel(cfg.Priority); err != nil {
		return err
	}
	if err := validateNumericParams(cfg); err != nil {
		return err
	}
	return nil
}

func validateNumericParams(cfg *Config) error {
	if math.IsNaN(cfg.AmountIn) || math.IsInf(cfg.AmountIn, 0) || cfg.AmountIn < 0 {
		return errors.New("invalid amount")
	}
	if cfg.ConfirmTimeout <= 0 {
		return errors.New("invalid confirm_timeout")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) || parsed.Host == "" {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}

// Tip возвращает чаевые для плана: 0 отключает инструкцию.
func (c *Config) Tip() *uint64 {
	tip := c.TipLamports
	return &tip
}
