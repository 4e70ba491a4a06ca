package tenor

import (
	"reflect"

	"github.com/iov-one/tenor/errors"
)

// Msg is a request to change state, the basic building block of every
// operation. Messages are routed by their path.
type Msg interface {
	// Validate performs sanity checks that do not require store access.
	Validate() error

	// Path returns the routing key, conventionally "<module>/<action>".
	Path() string
}

// Tx represents an operation envelope. The transport that produced the
// envelope is out of scope here; the ledger only needs the message.
type Tx interface {
	// GetMsg returns the message enclosed in the transaction.
	GetMsg() (Msg, error)
}

// LoadMsg extracts the message from the transaction, validates it and
// loads it into the destination. Destination must be a non-nil pointer of
// the same type as the enclosed message.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination must be a non-nil pointer, got %T", destination)
	}
	if !reflect.TypeOf(msg).AssignableTo(dst.Type()) {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dst.Elem().Set(reflect.ValueOf(msg).Elem())
	return nil
}
