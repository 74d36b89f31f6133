package zxinggo

import "errors"

var (
	// ErrNotFound is returned when a barcode is not found in the image.
	ErrNotFound = errors.New("barcode not found")

	// ErrChecksum is returned when a barcode's checksum does not match.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when a barcode cannot be decoded due to format issues.
	ErrFormat = errors.New("format error")

	// ErrWriter is returned when a barcode cannot be encoded.
	ErrWriter = errors.New("writer error")

	// ErrInvalidVersion is returned when a detected grid's inferred QR
	// version falls outside 1..40.
	ErrInvalidVersion = errors.New("invalid QR version")

	// ErrInvalidGridSize is returned when a detected grid's dimension is
	// not of the form 4*version+17.
	ErrInvalidGridSize = errors.New("invalid QR grid size")

	// ErrFormatECC is returned when both copies of the format word fail
	// BCH error correction.
	ErrFormatECC = errors.New("format information uncorrectable")

	// ErrEncoding reports decoded payload bytes that are not valid UTF-8.
	// No function in this module returns it; decoded text is not checked
	// for UTF-8 validity.
	ErrEncoding = errors.New("payload is not valid UTF-8")
)
