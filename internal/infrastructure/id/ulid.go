package id

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator assigns ULID surrogate IDs to holdings and flows. The IDs
// are stable for the life of the entry, independent of display name and of
// position in the owning collection.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
