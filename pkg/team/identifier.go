package team

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IDGenerator mints identifiers for newly created entities. Identifiers
// are opaque strings carrying only a type prefix; uniqueness within the
// entity type is the only contract.
type IDGenerator interface {
	NewID(prefix string) string
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NanoIDGenerator generates prefixed nanoid identifiers
type NanoIDGenerator struct {
	size int
}

// NewNanoIDGenerator creates the default identifier generator
func NewNanoIDGenerator() *NanoIDGenerator {
	return &NanoIDGenerator{size: 10}
}

// NewID returns a new identifier of the form "<prefix>_<random>"
func (g *NanoIDGenerator) NewID(prefix string) string {
	return prefix + "_" + gonanoid.MustGenerate(idAlphabet, g.size)
}
