package crypto

import "encoding/base64"

// strictStd rejects non-canonical padding bits so each value has one encoding.
var strictStd = base64.StdEncoding.Strict()

// B64 encodes b with the standard padded alphabet.
func B64(b []byte) string { return strictStd.EncodeToString(b) }

// FromB64 decodes standard padded base64. URL-safe, unpadded and
// non-canonical input is rejected.
func FromB64(s string) ([]byte, error) { return strictStd.DecodeString(s) }
