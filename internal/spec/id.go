package spec

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// ID is the globally unique identity of one specification fragment: a
// random 128-bit value minted once at registration and never recycled.
// It is comparable, usable as a map key, and displays as 32 lowercase
// hex characters with no separators.
type ID uuid.UUID

// Dummy returns the all-zero placeholder identity. It is stable, never
// produced by Generate, and marks slots whose real identity is not yet
// known.
func Dummy() ID {
	return ID(uuid.Nil)
}

// IDGenerator mints fragment identities. Each Generate call draws a
// fresh random 128-bit value, independent of every other call: there is
// no shared counter and no locking, so issuance stays safe if fragment
// extraction ever runs concurrently. Do not replace this with a
// sequential scheme.
type IDGenerator struct{}

// NewIDGenerator returns a generator. The zero value is also usable.
func NewIDGenerator() *IDGenerator { return &IDGenerator{} }

// Generate mints a fresh identity.
func (g *IDGenerator) Generate() ID {
	return ID(uuid.New())
}

// ParseID reads an identity back from its textual form. Both the
// simplified 32-hex display form and the canonical hyphenated form are
// accepted; anything else is a format error.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("parse specification id %q: %w", s, err)
	}
	return ID(u), nil
}

// IsDummy reports whether the identity is the all-zero placeholder.
func (id ID) IsDummy() bool {
	return id == Dummy()
}

// Compare orders identities bytewise. The order is total and has no
// semantic meaning; it exists for deterministic emission.
func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText implements encoding.TextMarshaler using the display form.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseID.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
