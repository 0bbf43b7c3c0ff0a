package ulid

import (
	"crypto/rand"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     io.Reader
	entropyOnce sync.Once
	generator   = DefaultGenerator
)

// DefaultEntropy returns a process-wide monotonic reader seeded from crypto/rand.
// Monotonicity guarantees that two ids generated within the same millisecond
// still differ.
func DefaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rand.Reader, 0),
		}
	})
	return entropy
}

// Crockford's Base32, case-insensitive.
var ulidRegex = regexp.MustCompile(`^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]{26}$`)

// ValidID checks if the given string is a valid ULID in either case.
func ValidID(id string) bool {
	upper := strings.ToUpper(id)
	if !ulidRegex.MatchString(upper) {
		return false
	}
	_, err := ulid.ParseStrict(upper)
	return err == nil
}

// GenerateID generates a new 128-bit universal ID.
func GenerateID() string {
	return generator()
}

func DefaultGenerator() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), DefaultEntropy()).String()
}

func ResetGenerator() {
	generator = DefaultGenerator
}

func MockGenerator(mockValue string) {
	generator = func() string {
		return mockValue
	}
}
