package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the size of an account address in bytes.
const AddressLength = 20

// Address identifies an account on the token ledger. It is written as "0x"
// followed by 40 hex digits.
type Address [AddressLength]byte

// ZeroAddress is the null account. It can never own a campaign or receive
// tokens.
var ZeroAddress Address

// ParseAddress decodes a hex address. The "0x" prefix is optional and the
// digits are case-insensitive.
func ParseAddress(s string) (Address, error) {
	var a Address
	raw := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if len(raw) != AddressLength*2 {
		return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	if _, err := hex.Decode(a[:], []byte(raw)); err != nil {
		return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return a, nil
}

// MustParseAddress is like ParseAddress but panics on malformed input. It is
// meant for constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsZero reports whether a is the null account.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// String returns the lower-case "0x" form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText implements encoding.TextMarshaler.
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
