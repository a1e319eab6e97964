package hash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// HashString returns a short stable hex digest of s. Used to key per-config
// storage directories.
func HashString(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}
