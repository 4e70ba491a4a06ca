package bond

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
)

const pathRegisterBond = "bond/register"

// RegisterBondMsg adds a new bond type to the registry.
type RegisterBondMsg struct {
	Metadata *tenor.Metadata
	Config   Config
}

var _ tenor.Msg = (*RegisterBondMsg)(nil)

func (RegisterBondMsg) Path() string {
	return pathRegisterBond
}

func (m *RegisterBondMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if err := m.Config.Validate(); err != nil {
		return errors.Wrap(err, "config")
	}
	return nil
}
