package main

import (
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"

	"github.com/bitfsorg/taxreward-go/config"
	"github.com/bitfsorg/taxreward-go/swap"
)

// buildRouter turns the configured routes into a router, keeping file order.
func buildRouter(routes []config.RouteConfig, log *slog.Logger) (*swap.Router, error) {
	adapters := make([]swap.Adapter, 0, len(routes))
	for _, r := range routes {
		a, err := buildAdapter(r)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return swap.NewRouter(log, adapters...), nil
}

func buildAdapter(r config.RouteConfig) (swap.Adapter, error) {
	if r.Kind == config.KindUnavailable {
		return swap.Unavailable{Label: r.Name}, nil
	}
	venue, err := solana.PublicKeyFromBase58(r.Venue)
	if err != nil {
		return nil, fmt.Errorf("route %q: venue: %w", r.Name, err)
	}
	switch r.Kind {
	case config.KindConstantProduct:
		return swap.ConstantProduct{Label: r.Name, Pool: venue, FeeBps: r.FeeBps}, nil
	case config.KindFixedRate:
		return swap.FixedRate{Label: r.Name, Counterparty: venue, Numerator: r.Numerator, Denominator: r.Denominator}, nil
	default:
		return nil, fmt.Errorf("route %q: %w: unknown kind %q", r.Name, config.ErrInvalidRoute, r.Kind)
	}
}
