package repositories

import "context"

// TxFn runs with a context carrying the open transaction.
type TxFn func(ctx context.Context) error

// TransactionManager commits fn's work atomically: fn returning an error
// rolls everything back.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
