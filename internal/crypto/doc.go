// Package crypto exposes the primitives used by the room encryption core.
//
// Contents
//
//   - Sealed boxes: anonymous public-key encryption to an X25519 key
//     (SealedEncrypt, SealedDecrypt)
//   - Secret boxes: XSalsa20-Poly1305 with an explicit nonce
//     (SymmetricEncrypt, SymmetricDecrypt)
//   - Random bytes and the standard base64 codec (RandomBytes, B64, FromB64)
//   - Deterministic X25519 keypairs from a 32-byte seed (KeypairFromSeed)
//   - Ed25519 signing for the development wallet (GenerateEd25519, SignEd25519)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Initialization
//
// Init runs a one-time self-test of the primitives. It is idempotent and safe
// to call from many goroutines; every caller observes the result of the first
// run. The primitives themselves hold no state.
//
// # Failure signals
//
// Decryption functions report failure with a false ok value instead of an
// error, so a caller cannot distinguish a wrong key from corrupted data.
package crypto
