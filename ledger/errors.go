package ledger

import "errors"

var (
	// ErrInvalidConfigData indicates a serialized Config has the wrong size.
	ErrInvalidConfigData = errors.New("ledger: invalid config data")

	// ErrInvalidGlobalData indicates a serialized GlobalState has the wrong size.
	ErrInvalidGlobalData = errors.New("ledger: invalid global state data")

	// ErrInvalidEntryData indicates a serialized Entry has the wrong size.
	ErrInvalidEntryData = errors.New("ledger: invalid entry data")

	// ErrZeroOwner indicates an initialization without an owner identity.
	ErrZeroOwner = errors.New("ledger: owner must not be the zero identity")
)
