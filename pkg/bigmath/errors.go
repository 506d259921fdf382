package bigmath

import "errors"

var (
	// ErrArithmeticOverflow is returned whenever a checked operation would
	// wrap around the representable range of the integer type.
	ErrArithmeticOverflow = errors.New("bigmath: arithmetic overflow")

	// ErrDivideByZero is returned by any checked division or ceiling
	// division whose divisor is zero.
	ErrDivideByZero = errors.New("bigmath: divide by zero")

	// ErrConversionFailure is returned when narrowing a wider integer (e.g.
	// U256 to U128, or U128 to uint64) would discard significant bits.
	ErrConversionFailure = errors.New("bigmath: conversion failure")
)
