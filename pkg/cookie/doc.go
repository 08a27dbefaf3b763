// Package cookie provides HTTP cookie management with optional signing and encryption.
//
// The Manager handles plain, signed, and encrypted cookies, plus flash messages.
// Secrets are optional; signed and encrypted operations return [ErrNoSecret] without one.
//
// # Basic Usage
//
// Plain cookies work without a secret:
//
//	import (
//		"net/http"
//
//		"github.com/dmitrymomot/aria/pkg/cookie"
//	)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		m := cookie.New()
//		m.Set(w, "theme", "dark", cookie.WithMaxAge(86400))
//		value, err := m.Get(r, "theme")
//		if err != nil {
//			// handle error
//		}
//	}
//
// Omitting [WithMaxAge] produces a session cookie that lives until the
// browser closes.
//
// # With Secret
//
// Enable signing and encryption with a 32+ byte secret:
//
//	m := cookie.New(
//		cookie.WithSecret("your-32+-byte-secret-key-here!!"),
//		cookie.WithSecure(true),
//		cookie.WithHTTPOnly(true),
//	)
//
// Signed cookies detect tampering with HMAC-SHA256:
//
//	err := m.SetSigned(w, "session", sessionID, cookie.WithMaxAge(86400))
//	value, err := m.GetSigned(r, "session")
//
// Encrypted cookies carry opaque byte payloads through AES-256-GCM:
//
//	err := m.SetEncrypted(w, "prefs", payload, cookie.WithMaxAge(86400))
//	payload, err := m.GetEncrypted(r, "prefs")
//
// # Flash Messages
//
// Flash messages are encrypted, single-read values that delete themselves
// after reading. They are useful for success/error messages across redirects:
//
//	m.SetFlash(w, "msg", map[string]string{"type": "success", "text": "Saved!"})
//
//	var msg map[string]string
//	err := m.Flash(w, r, "msg", &msg)
//	// The flash cookie is now gone.
//
// # Configuration
//
// Manager options set defaults for every cookie it writes:
//   - [WithSecret]: secret for signing/encryption (32+ bytes)
//   - [WithDomain]: cookie domain
//   - [WithPath]: cookie path (default: "/")
//   - [WithSecure]: Secure flag (HTTPS only)
//   - [WithHTTPOnly]: HttpOnly flag (default: true)
//   - [WithSameSite]: SameSite attribute (default: Lax)
//
// Per-write options adjust a single Set call:
//   - [WithMaxAge]: lifetime in seconds; zero = session cookie, negative = delete
//
// # Errors
//
// The package defines these sentinel errors:
//   - [ErrNotFound]: cookie does not exist
//   - [ErrNoSecret]: secret required for signed/encrypted operations
//   - [ErrBadSig]: signature verification failed (tampering detected)
//   - [ErrDecrypt]: decryption failed (tampering or corruption detected)
//   - [ErrTooLarge]: encoded value exceeds the 4KB browser limit
package cookie
