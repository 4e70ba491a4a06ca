package tenor

import "github.com/iov-one/tenor/errors"

// Metadata carries the schema version of a persisted entity. It must be
// the first field of every model so that future migrations can dispatch
// on it.
type Metadata struct {
	Schema uint32
}

// Validate ensures the metadata is usable.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be greater than zero")
	}
	return nil
}

// Copy returns an independent copy of the metadata.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
