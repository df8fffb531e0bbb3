package bcbp

import (
	"errors"
	"fmt"

	"github.com/gyeh/bcbpscan/internal/specs"
)

var (
	ErrTruncated        = errors.New("bcbp: payload truncated")
	ErrInvalidLegCount  = errors.New("bcbp: invalid number of legs")
	ErrInvalidFieldSize = errors.New("bcbp: invalid field size")
	ErrOccurrence       = errors.New("bcbp: element occurrence mismatch")
	ErrTooManySegments  = errors.New("bcbp: too many flight segments")
	ErrNoSegments       = errors.New("bcbp: no flight segments")
	ErrFieldTooLong     = errors.New("bcbp: field value too long")
	ErrNilPass          = errors.New("bcbp: nil boarding pass")
)

// ParseError records the element being read and the byte offset into the
// payload at which decoding failed.
type ParseError struct {
	Element specs.Element
	Offset  int
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Element, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
