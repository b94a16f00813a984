// internal/wallet/seed.go
package wallet

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
)

// SeedLength: максимальная длина seed в Solana.
const SeedLength = 32

const seedAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// SeedSource выдаёт seed для аккаунта, производного от кошелька.
type SeedSource interface {
	Seed() (string, error)
}

// RandomSeed генерирует 32 случайных алфавитно-цифровых символа.
type RandomSeed struct{}

func (RandomSeed) Seed() (string, error) {
	max := big.NewInt(int64(len(seedAlphabet)))
	buf := make([]byte, SeedLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate seed: %w", err)
		}
		buf[i] = seedAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// SeededAccount: аккаунт, адрес которого выведен из базового ключа и seed.
type SeededAccount struct {
	Seed    string
	Address solana.PublicKey
}

// DeriveSeededAccount вычисляет адрес CreateWithSeed(base, seed, owner).
func DeriveSeededAccount(base solana.PublicKey, source SeedSource, owner solana.PublicKey) (SeededAccount, error) {
	seed, err := source.Seed()
	if err != nil {
		return SeededAccount{}, err
	}
	address, err := solana.CreateWithSeed(base, seed, owner)
	if err != nil {
		return SeededAccount{}, fmt.Errorf("failed to derive account with seed %q: %w", seed, err)
	}
	return SeededAccount{Seed: seed, Address: address}, nil
}
