package protocol

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrTruncatedBuffer     = errors.New("truncated buffer")
	ErrInvalidRecordLength = errors.New("invalid record length")
	ErrInvalidEnumIndex    = errors.New("invalid enum index")
	ErrMagicMismatch       = errors.New("magic number mismatch")
	ErrVersionMismatch     = errors.New("unsupported encoding version")
	ErrChecksumMismatch    = errors.New("checksum mismatch")
	ErrTrailingData        = errors.New("trailing data after snapshot")

	// ErrInvalidValue is returned by the encoder for values the wire format can't express.
	ErrInvalidValue = errors.New("value not encodable")
)

// Enum table names reported by InvalidEnumIndex errors.
const (
	TableRole     = "role"
	TableMaterial = "material"
	TableFunction = "function"
	TablePlayer   = "player"
	TableFrameArg = "frame argument"
)

// DecodeError describes where and why a snapshot failed to decode.
// Kind is one of the Err* sentinels above, so errors.Is works on any
// error returned from Decode.
type DecodeError struct {
	Kind   error
	Offset int
	Detail string

	// Table and Index are set for ErrInvalidEnumIndex only.
	Table string
	Index int
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

func newDecodeError(kind error, offset int, format string, args ...interface{}) *DecodeError {
	return &DecodeError{
		Kind:   kind,
		Offset: offset,
		Detail: fmt.Sprintf(format, args...),
	}
}

func enumError(table string, index int, offset int) *DecodeError {
	return &DecodeError{
		Kind:   ErrInvalidEnumIndex,
		Offset: offset,
		Detail: fmt.Sprintf("%s index %d", table, index),
		Table:  table,
		Index:  index,
	}
}

func invalidValue(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidValue, format, args...)
}
