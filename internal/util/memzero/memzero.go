// Package memzero wipes secret key material once it is no longer needed.
package memzero

import "runtime"

// Zero overwrites b with zeros. Callers pass k[:] for fixed-size keys.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
