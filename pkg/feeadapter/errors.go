// Package feeadapter models the SPL Token-2022 transfer-fee extension as
// an abstract contract the embedder supplies: this repository's curve
// math never touches mint accounts or on-chain state, so every
// computation here works on plain amounts and externally-supplied fee
// parameters.
package feeadapter

import "errors"

// ErrFeeCalculationFailure is raised whenever a transfer-fee computation
// cannot be completed, a basis-point rate at or above 100%, or an
// intermediate that overflows the wide-integer layer.
var ErrFeeCalculationFailure = errors.New("feeadapter: fee calculation failure")
