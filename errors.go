package lrudisk

import (
	"errors"
	"fmt"
)

// ErrNoBackingPath is returned by Save and Close on a memory-only cache.
// Non-fatal: nothing was written, the in-memory state is untouched.
var ErrNoBackingPath = errors.New("lrudisk: no backing path configured")

// KeyNotFoundError reports a Delete of an absent key. The store is left
// unchanged.
type KeyNotFoundError struct {
	Key any
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("lrudisk: key not found: %v", e.Key)
}

// IsNotFound reports whether err is a KeyNotFoundError.
func IsNotFound(err error) bool {
	var t *KeyNotFoundError
	return errors.As(err, &t)
}
