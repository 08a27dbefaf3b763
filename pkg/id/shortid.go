package id

import "time"

// NewShortID generates a compact sortable ID: 16 characters, 6 for the low
// 30 bits of the millisecond timestamp (~34 years of range) and 10 for 48
// bits of randomness. URL-safe and lexicographically sortable by creation
// time within the timestamp range.
func NewShortID() string {
	var short [16]byte
	encodeUint(short[:6], uint64(time.Now().UnixMilli())&0x3FFFFFFF)
	encodeBytes(short[6:], randomBytes(6))
	return string(short[:])
}
