package tx

import "context"

// Manager wraps transactional boundaries for multi-adapter operations.
// Implementations pass the transaction to fn through the returned context;
// a nested Within joins the outer transaction.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// Func adapts a plain function to Manager.
type Func func(ctx context.Context, fn func(context.Context) error) error

func (f Func) Within(ctx context.Context, fn func(context.Context) error) error {
	return f(ctx, fn)
}
