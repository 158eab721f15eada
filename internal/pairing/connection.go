package pairing

import "context"

// Connection is the narrow capability the engine needs from the
// surrounding storage layer: a way to run a closure inside one
// serializable transaction, with the range/taken-code stores bound to
// that same transaction for the closure's duration. The engine never
// holds a Connection past a single borrow_pairing_code call.
type Connection interface {
	Transact(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}
