package memzero_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"suichat/internal/util/memzero"
)

func TestZero(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i + 1)
	}
	memzero.Zero(key[:])
	require.Equal(t, [32]byte{}, key)

	memzero.Zero(nil)
}
