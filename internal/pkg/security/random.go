package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

const alphanumerics = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func GenerateRandomBytes(length uint32) ([]byte, error) {
	key := make([]byte, length)

	_, err := rand.Read(key)
	if err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}

	return key, nil
}

func GenerateRandomBytesURLEncoded(length uint32) (string, error) {
	key, err := GenerateRandomBytes(length)

	if err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}

	return base64.URLEncoding.EncodeToString(key), nil
}

// GenerateRandomString returns a random string of the given length drawn
// from the letters and digits alphabet.
func GenerateRandomString(length uint32) (string, error) {
	max := big.NewInt(int64(len(alphanumerics)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("pick random index: %w", err)
		}
		buf[i] = alphanumerics[n.Int64()]
	}
	return string(buf), nil
}
