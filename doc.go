/*
Package tenor is the kernel of a multi-currency, yield-bearing sovereign
bond deposit ledger.

The root package defines the interfaces that tie the extension modules
together: key-value stores and their cache-wrapping variants, messages,
transactions, handlers and decorators, along with the small shared value
types (addresses, conditions, unix timestamps, model metadata).

Business logic lives in the x/ packages. Each extension owns its models,
messages and handlers and is wired into a router by the app package, which
also provides the transactional executor: every operation is delivered
against a cache-wrapped store and committed only on success, so a failing
operation leaves no partial state behind.
*/
package tenor
