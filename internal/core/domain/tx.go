package domain

import "context"

// Transactor scopes a function to a single storage transaction. Repositories
// invoked with the callback's context join that transaction; the transaction
// commits when the callback returns nil and rolls back otherwise.
//
// Toggling a completion and rewriting the derived streak pair must happen
// under one Transactor call so a concurrent toggle of the same (user, habit,
// date) can never observe the completion without its recomputed streak.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
