package types

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrReceiptNotFound is returned when a receipt does not appear within the tick budget
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrTxReverted is returned when a mined transaction failed on-chain
	ErrTxReverted = errors.New("transaction reverted")

	// ErrInvalidSignature is returned when a signature is invalid
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrNoSigner is returned when a signing operation requires a signer and none is configured
	ErrNoSigner = errors.New("no signer configured")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("not found")
)
