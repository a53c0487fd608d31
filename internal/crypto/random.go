package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// RandomBytes returns n bytes from the system CSPRNG.
func RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("random bytes: negative length %d", n)
	}
	b := make([]byte, n)
	if _, err := readRandom(b); err != nil {
		return nil, err
	}
	return b, nil
}

func readRandom(b []byte) (int, error) {
	n, err := io.ReadFull(rand.Reader, b)
	if err != nil {
		return n, fmt.Errorf("read random: %w", err)
	}
	return n, nil
}
