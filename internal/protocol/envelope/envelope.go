package envelope

import (
	"errors"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"suichat/internal/crypto"
	"suichat/internal/domain"
)

// Version is the only envelope format this package produces or accepts.
const Version byte = 0x01

const headerSize = 1 + crypto.NonceSize

// MinSize is the shortest decodable envelope: header plus an empty message's tag.
const MinSize = headerSize + crypto.SymmetricOverhead

// Placeholder is the text shown in place of a message that cannot be decrypted.
const Placeholder = "[unable to decrypt]"

// ErrUndecryptable covers every decryption failure of a stored envelope.
var ErrUndecryptable = errors.New("message cannot be decrypted")

// EncryptMessage seals plaintext under key and returns the base64 envelope.
func EncryptMessage(plaintext string, key domain.RoomKey) (string, error) {
	nonceBytes, err := crypto.RandomBytes(crypto.NonceSize)
	if err != nil {
		return "", err
	}
	var nonce [crypto.NonceSize]byte
	copy(nonce[:], nonceBytes)
	k := [crypto.KeySize]byte(key)

	out := make([]byte, 0, headerSize+len(plaintext)+crypto.SymmetricOverhead)
	out = append(out, Version)
	out = append(out, nonce[:]...)
	out = append(out, crypto.SymmetricEncrypt([]byte(plaintext), &k, &nonce)...)
	return crypto.B64(out), nil
}

// DecryptMessage opens a base64 envelope with key.
func DecryptMessage(envelope string, key domain.RoomKey) (string, error) {
	raw, err := crypto.FromB64(envelope)
	if err != nil {
		return "", ErrUndecryptable
	}
	if len(raw) == 0 {
		return "", ErrUndecryptable
	}
	if raw[0] != Version {
		log.Debug().
			Uint8("version", raw[0]).
			Int("size", len(raw)).
			Msg("envelope: unsupported version")
		return "", ErrUndecryptable
	}
	if len(raw) < MinSize {
		return "", ErrUndecryptable
	}

	var nonce [crypto.NonceSize]byte
	copy(nonce[:], raw[1:headerSize])
	k := [crypto.KeySize]byte(key)

	pt, ok := crypto.SymmetricDecrypt(raw[headerSize:], &k, &nonce)
	if !ok || !utf8.Valid(pt) {
		return "", ErrUndecryptable
	}
	return string(pt), nil
}
