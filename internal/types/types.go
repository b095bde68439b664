// README: Common identifier type shared across modules.
package types

import (
	"crypto/rand"
	"encoding/hex"
)

type ID string

// NewID returns a random 32-char hex identifier.
func NewID() ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return ID(hex.EncodeToString(b[:]))
}
