package swap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bitfsorg/taxreward-go/bank"
	"github.com/bitfsorg/taxreward-go/logger"
	"github.com/bitfsorg/taxreward-go/metrics"
	"github.com/bitfsorg/taxreward-go/taxerr"
)

// Outcome records which route served a conversion.
type Outcome struct {
	Route    string
	Reported uint64 // amount the route claims to have delivered
}

// Router tries its routes in order; the first success wins. Each attempt
// runs against a buffered view of the request book, so a route that fails
// part-way leaves no balance changes behind for the next one.
type Router struct {
	routes []Adapter
	log    *slog.Logger
}

// NewRouter builds a router. The first route is the primary.
func NewRouter(log *slog.Logger, routes ...Adapter) *Router {
	if log == nil {
		log = logger.Discard()
	}
	return &Router{routes: routes, log: log}
}

// Routes returns the route names in attempt order.
func (r *Router) Routes() []string {
	names := make([]string, len(r.routes))
	for i, a := range r.routes {
		names[i] = a.Name()
	}
	return names
}

// Name identifies the router itself as an adapter.
func (r *Router) Name() string { return "router" }

// Convert implements Adapter.
func (r *Router) Convert(ctx context.Context, req Request) (uint64, error) {
	out, err := r.ConvertVia(ctx, req)
	return out.Reported, err
}

// ConvertVia runs the routes in order and reports the one that succeeded.
// When every route fails the returned error wraps taxerr.ErrSwapFailed and
// joins the individual route errors.
func (r *Router) ConvertVia(ctx context.Context, req Request) (Outcome, error) {
	if len(r.routes) == 0 {
		return Outcome{}, fmt.Errorf("%w: %w", taxerr.ErrSwapFailed, ErrNoRoutes)
	}

	var errs []error
	for _, route := range r.routes {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		overlay := bank.NewOverlay(req.Book)
		attempt := req
		attempt.Book = overlay

		reported, err := route.Convert(ctx, attempt)
		if err != nil {
			overlay.Discard()
			metrics.SwapAttemptsTotal.WithLabelValues(route.Name(), "error").Inc()
			r.log.Warn("swap: route failed", "route", route.Name(), "amount_in", req.AmountIn, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", route.Name(), err))
			continue
		}
		if err := overlay.Commit(); err != nil {
			return Outcome{}, err
		}
		metrics.SwapAttemptsTotal.WithLabelValues(route.Name(), "success").Inc()
		r.log.Debug("swap: route succeeded", "route", route.Name(), "amount_in", req.AmountIn, "reported_out", reported)
		return Outcome{Route: route.Name(), Reported: reported}, nil
	}

	return Outcome{}, fmt.Errorf("%w: %w", taxerr.ErrSwapFailed, errors.Join(errs...))
}
