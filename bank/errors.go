package bank

import "errors"

// ErrUnknownAsset indicates an unknown asset kind or a token without a mint.
var ErrUnknownAsset = errors.New("bank: unknown asset")
