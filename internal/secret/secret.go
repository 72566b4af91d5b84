// Package secret generates the per-run JWT signing key for the GraphQL engine.
package secret

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// Length is the number of hexadecimal characters in a generated key.
const Length = 128

// For mocking in tests
var randReader io.Reader = rand.Reader

// Generate returns a fresh key of exactly Length lowercase hex characters
// read from the system CSPRNG. Keys are never stored or reused; every
// `nhost dev` invocation invalidates tokens signed with the previous key.
func Generate() (string, error) {
	buf := make([]byte, Length/2)
	if _, err := io.ReadFull(randReader, buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
