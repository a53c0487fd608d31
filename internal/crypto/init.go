package crypto

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	ready    atomic.Bool
	initOnce = sync.OnceValue(selfTest)
)

// Init performs the one-time readiness check. Later and concurrent callers
// receive the result of the first run without repeating the work.
func Init() error {
	if err := initOnce(); err != nil {
		return err
	}
	ready.Store(true)
	return nil
}

// Ready reports whether Init has completed successfully.
func Ready() bool { return ready.Load() }

func selfTest() error {
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i)
	}
	a := KeypairFromSeed(seed)
	b := KeypairFromSeed(seed)
	if a != b {
		return errors.New("crypto self-test: seed keypair is not deterministic")
	}
	pub, err := PublicFromSecret(a.SecretKey)
	if err != nil || pub != a.PublicKey {
		return errors.New("crypto self-test: public key does not match secret key")
	}

	msg := []byte("suichat self-test")
	sealed, err := SealedEncrypt(msg, a.PublicKey)
	if err != nil {
		return fmt.Errorf("crypto self-test: %w", err)
	}
	if len(sealed) != len(msg)+SealedOverhead {
		return errors.New("crypto self-test: unexpected sealed box overhead")
	}
	opened, ok := SealedDecrypt(sealed, a.SecretKey)
	if !ok || !bytes.Equal(opened, msg) {
		return errors.New("crypto self-test: sealed box round trip failed")
	}

	var key [KeySize]byte
	var nonce [NonceSize]byte
	if _, err := readRandom(key[:]); err != nil {
		return fmt.Errorf("crypto self-test: %w", err)
	}
	ct := SymmetricEncrypt(msg, &key, &nonce)
	pt, ok := SymmetricDecrypt(ct, &key, &nonce)
	if !ok || !bytes.Equal(pt, msg) {
		return errors.New("crypto self-test: secret box round trip failed")
	}
	return nil
}
