package tenor

import (
	"encoding/json"

	"github.com/iov-one/tenor/errors"
)

// Handler is a core engine that can process a few specific messages.
// This could represent "direct deposit", or "execute a pending conversion".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of an operation.
// It is its own interface to allow better type control in the next
// arguments in Decorator.
type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute an operation.
type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like panic
// recovery or logging to many handlers.
type Decorator interface {
	Check(ctx Context, db KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, db KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register a handler for all messages it
// should process. It is the setup side of a router.
type Registry interface {
	// Handle assigns the message to the given handler. Message is
	// matched by its path. Registering the same message twice is a
	// programmer error and panics.
	Handle(Msg, Handler)
}

// CheckResult is returned by a successful dry-run of an operation.
type CheckResult struct {
	// Data is an optional handler-specific payload.
	Data []byte
}

// DeliverResult is returned by a successfully executed operation.
type DeliverResult struct {
	// Data is an optional handler-specific payload, for example the
	// key of a created record.
	Data []byte
	// Log is a free-form human readable note.
	Log string
}

// Options are the genesis options. Each extension can look up its key and
// parse the raw JSON as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the value stored under a given key and parses the
// JSON into the given obj. Noop and no error if the key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw := o[key]
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q genesis: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize extensions from
// genesis file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
