package tenor

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/iov-one/tenor/errors"
)

// AddressLength is the length in bytes of all addresses.
const AddressLength = 20

// Address represents an actor that can hold funds and authorize
// operations. It is a fixed-length binary identifier.
type Address []byte

// Equals returns true if both addresses hold the same value.
func (a Address) Equals(other Address) bool {
	return bytes.Equal(a, other)
}

// Validate returns an error if this is not a proper address.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "invalid address length: %d", len(a))
	}
	return nil
}

func (a Address) String() string {
	if len(a) == 0 {
		return "(empty)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// MarshalJSON writes the address in its hex representation.
func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + hex.EncodeToString(a) + `"`), nil
}

// UnmarshalJSON reads a hex encoded address.
func (a *Address) UnmarshalJSON(raw []byte) error {
	s := strings.Trim(string(raw), `"`)
	if s == "" || s == "null" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes a hex encoded address.
func ParseAddress(enc string) (Address, error) {
	raw, err := hex.DecodeString(strings.ToLower(enc))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	addr := Address(raw)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// Clone returns an independent copy of the address.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}
