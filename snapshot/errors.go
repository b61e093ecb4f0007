package snapshot

import "errors"

var (
	// ErrInvalidMagic is returned when the data is not a snapshot frame.
	ErrInvalidMagic = errors.New("snapshot: invalid magic")
	// ErrInvalidVersion is returned for frames written by a newer format.
	ErrInvalidVersion = errors.New("snapshot: unsupported version")
	// ErrChecksumMismatch is returned when the payload fails the CRC32C check.
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")
	// ErrUnknownCodec is returned when the header names no built-in codec.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")
	// ErrUnknownCompression is returned for unsupported compression ids.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
	// ErrTooLarge is returned when a frame declares a payload above MaxRawLength
	// or beyond what its compressed payload can expand to.
	ErrTooLarge = errors.New("snapshot: payload too large")
	// ErrTruncated is returned when the frame ends early.
	ErrTruncated = errors.New("snapshot: truncated frame")
)
