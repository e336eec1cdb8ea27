// Package swap converts taxed tokens into the native settlement currency
// through one or more exchange routes.
//
// Routes are untrusted: the amount an adapter reports is informational, and
// callers measure proceeds by diffing the destination balance themselves.
package swap

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/bitfsorg/taxreward-go/bank"
)

// Request describes a single conversion.
type Request struct {
	Book         bank.Book        // balances the route may move
	Token        bank.Asset       // token sold, scoped to its mint
	Source       solana.PublicKey // token vault debited AmountIn tokens
	Destination  solana.PublicKey // proceeds vault credited in native currency
	AmountIn     uint64
	MinAmountOut uint64
}

// Adapter is an exchange route.
type Adapter interface {
	// Name identifies the route in logs and metrics.
	Name() string

	// Convert exchanges req.AmountIn tokens for native currency and returns
	// the amount it claims to have delivered.
	Convert(ctx context.Context, req Request) (uint64, error)
}

// Func adapts a function to the Adapter interface.
type Func struct {
	Label string
	Fn    func(ctx context.Context, req Request) (uint64, error)
}

// Name returns the label.
func (f Func) Name() string { return f.Label }

// Convert calls Fn.
func (f Func) Convert(ctx context.Context, req Request) (uint64, error) {
	return f.Fn(ctx, req)
}

// Unavailable is a route that is configured but not integrated yet. It
// always fails, which sends the router on to the next route.
type Unavailable struct {
	Label string
}

// Name returns the label.
func (u Unavailable) Name() string { return u.Label }

// Convert always returns ErrRouteUnavailable.
func (u Unavailable) Convert(context.Context, Request) (uint64, error) {
	return 0, ErrRouteUnavailable
}
