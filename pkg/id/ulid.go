package id

import "time"

// NewULID generates a ULID (Universally Unique Lexicographically Sortable
// Identifier): 26 characters, 10 for the 48-bit millisecond timestamp and
// 16 for 80 bits of randomness. ULIDs sort lexicographically by creation
// time.
func NewULID() string {
	var ulid [26]byte
	encodeUint(ulid[:10], uint64(time.Now().UnixMilli()))
	encodeBytes(ulid[10:], randomBytes(10))
	return string(ulid[:])
}
