package distributor

import "errors"

var (
	// ErrNilStore indicates a Config without a Store.
	ErrNilStore = errors.New("distributor: store is required")

	// ErrNilRouter indicates a Config without an exchange adapter.
	ErrNilRouter = errors.New("distributor: exchange router is required")

	// ErrZeroProgram indicates a Config without a program id.
	ErrZeroProgram = errors.New("distributor: program id is required")
)
