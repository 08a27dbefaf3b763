// Package id provides sortable ID generation utilities.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// encodeUint writes the low 5*len(dst) bits of v as base32 chars, most
// significant group first.
func encodeUint(dst []byte, v uint64) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = crockfordBase32[v&0x1F]
		v >>= 5
	}
}

// encodeBytes packs src into base32 chars, 5 bits per char, MSB first.
// A final partial group is left-aligned and zero-padded.
func encodeBytes(dst, src []byte) {
	var acc uint64
	var bits, i int
	for _, b := range src {
		acc = acc<<8 | uint64(b)
		bits += 8
		for bits >= 5 && i < len(dst) {
			bits -= 5
			dst[i] = crockfordBase32[(acc>>bits)&0x1F]
			i++
		}
	}
	if bits > 0 && i < len(dst) {
		dst[i] = crockfordBase32[(acc<<(5-bits))&0x1F]
	}
}

// randomBytes fills a fresh n-byte slice from crypto/rand, falling back to
// time-based entropy if the system source fails (degraded but functional).
func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		var t [8]byte
		binary.BigEndian.PutUint64(t[:], uint64(time.Now().UnixNano()))
		copy(b, t[:])
	}
	return b
}
