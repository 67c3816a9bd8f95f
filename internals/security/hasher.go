package security

import (
	"crypto/rand"
	"math/big"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func NewUUID() uuid.UUID {
	return uuid.New()
}

// RandomString returns n characters drawn uniformly from [a-z0-9].
func RandomString(n int) (string, error) {
	limit := big.NewInt(int64(len(idAlphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		out[i] = idAlphabet[idx.Int64()]
	}
	return string(out), nil
}

func HashPassword(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", err
	}
	return hash, nil
}

func ComparePassword(password, hash string) (bool, error) {
	ok, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, err
	}
	return ok, nil
}
