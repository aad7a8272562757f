// Package ids provides the uuid-backed id allocator injected into the
// matching engine and the fleet store.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDAllocator allocates random uuid identifiers and short booking numbers
// derived from them.
type UUIDAllocator struct{}

// NewID returns a random uuid string.
func (UUIDAllocator) NewID() string {
	return uuid.NewString()
}

// NewBookingNumber returns a short human-readable booking reference.
func (UUIDAllocator) NewBookingNumber() string {
	return "B-" + strings.ToUpper(uuid.NewString()[:8])
}
