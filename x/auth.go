// Package x holds the functional modules of the ledger along with the
// helpers they share, like authentication.
package x

import (
	"context"

	tenor "github.com/iov-one/tenor"
)

// Authenticator exposes who authorized the current operation. The
// transport layer is responsible for declaring the signers; handlers
// only ask questions.
type Authenticator interface {
	// GetAddresses returns all authenticated addresses, in the order
	// they were declared.
	GetAddresses(ctx tenor.Context) []tenor.Address

	// HasAddress returns true if the given address authorized the
	// operation.
	HasAddress(ctx tenor.Context, addr tenor.Address) bool
}

// MainSigner returns the first authenticated address, or nil when the
// operation carries no authentication.
func MainSigner(ctx tenor.Context, auth Authenticator) tenor.Address {
	signers := auth.GetAddresses(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// CtxAuth reads signers directly from the context. The entity that
// builds the context, the daemon or a test, declares them with SetSigners.
type CtxAuth struct {
	Key string
}

var _ Authenticator = CtxAuth{}

// SetSigners returns a context with the given addresses declared as the
// authorized signers.
func (a CtxAuth) SetSigners(ctx tenor.Context, signers ...tenor.Address) tenor.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), signers)
}

func (a CtxAuth) GetAddresses(ctx tenor.Context) []tenor.Address {
	signers, ok := ctx.Value(ctxAuthKey(a.Key)).([]tenor.Address)
	if !ok {
		return nil
	}
	return signers
}

func (a CtxAuth) HasAddress(ctx tenor.Context, addr tenor.Address) bool {
	for _, signer := range a.GetAddresses(ctx) {
		if signer.Equals(addr) {
			return true
		}
	}
	return false
}

type ctxAuthKey string
