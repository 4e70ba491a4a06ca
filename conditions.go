package tenor

import (
	"crypto/sha256"
	"fmt"
	"regexp"

	"github.com/iov-one/tenor/errors"
)

var validConditionPart = regexp.MustCompile(`^[a-z_\-]{3,10}$`).MatchString

// Condition is a specification of a derived account, for example a vault
// owned by a module rather than a user key. Its address is deterministic,
// so no private key can ever sign for it.
//
// Format: <extension>/<type>/<data>
type Condition []byte

// NewCondition builds a condition from its three parts. Extension and
// type must be short lowercase identifiers.
func NewCondition(ext, typ string, data []byte) Condition {
	if !validConditionPart(ext) || !validConditionPart(typ) {
		panic(fmt.Sprintf("invalid condition: %s/%s", ext, typ))
	}
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// Address derives the account address controlled by this condition.
func (c Condition) Address() Address {
	h := sha256.Sum256(c)
	return Address(h[:AddressLength])
}

// Validate ensures the condition is well formed.
func (c Condition) Validate() error {
	if len(c) == 0 {
		return errors.Wrap(errors.ErrEmpty, "condition")
	}
	ok, err := regexp.Match(`^[a-z_\-]{3,10}/[a-z_\-]{3,10}/`, c)
	if err != nil || !ok {
		return errors.Wrapf(errors.ErrInput, "malformed condition: %X", []byte(c))
	}
	return nil
}

func (c Condition) String() string {
	return string(c)
}
