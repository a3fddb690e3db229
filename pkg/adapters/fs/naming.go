package fs

import (
	"crypto/rand"
	"math/big"
)

const (
	// NameLength is the number of random characters in a generated file name.
	NameLength = 15

	nameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// randomName draws NameLength letters uniformly from nameAlphabet.
func randomName() (string, error) {
	limit := big.NewInt(int64(len(nameAlphabet)))
	buf := make([]byte, NameLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = nameAlphabet[n.Int64()]
	}
	return string(buf), nil
}
