package types

import (
	"encoding/hex"
	"errors"
	"strings"
)

// Address is a 20-byte account or contract identifier, the native key of
// every balance, allowance and ownership entry in the ledger.
type Address [20]byte

// ZeroAddress is the null address. It is never a valid holder; operations
// that accept an optional counterparty (e.g. a mint referrer) use it to
// mean "none".
var ZeroAddress Address

var errBadAddress = errors.New("invalid address")

// ParseAddress decodes a 0x-prefixed or bare 40-character hex address.
func ParseAddress(s string) (Address, error) {
	var a Address
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 40 {
		return a, errBadAddress
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, errBadAddress
	}
	copy(a[:], b)
	return a, nil
}

// MustParseAddress is ParseAddress for static addresses; it panics on
// malformed input and is intended for genesis constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic("types: " + err.Error() + ": " + s)
	}
	return a
}

// IsZero reports whether a is the null address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// String returns the 0x-prefixed lowercase hex form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText implements encoding.TextMarshaler so addresses serialize as
// hex strings in JSON-facing structures.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
