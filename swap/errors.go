package swap

import "errors"

var (
	// ErrNoRoutes indicates a router without any configured route.
	ErrNoRoutes = errors.New("swap: no routes configured")

	// ErrRouteUnavailable indicates the route is not implemented.
	ErrRouteUnavailable = errors.New("swap: route unavailable")

	// ErrEmptyPool indicates a pool with a zero reserve on either side.
	ErrEmptyPool = errors.New("swap: pool has no liquidity")

	// ErrInvalidRate indicates a fixed rate with a zero denominator.
	ErrInvalidRate = errors.New("swap: invalid rate")
)
