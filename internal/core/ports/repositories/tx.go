package repositories

import "context"

// TxManager runs a function inside a single database transaction. The
// transaction travels in the context, so every repository call made within fn
// joins the same atomic unit. Posting, reversal and reconciliation depend on
// this: either everything inside fn commits, or nothing does.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
