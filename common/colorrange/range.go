package colorrange

import (
	"errors"
	"fmt"
	"math"

	C "cxd/common/constant"
)

var ErrInvalidRange = errors.New("invalid range")

// Range is a labeled span of data offsets. Start is inclusive and so is End().
// A Range without a Color still covers its bytes; it simply brings no color of its own.
type Range struct {
	Start   int64
	Length  int64
	Color   C.Color
	Comment string
}

func New(start, length int64, color C.Color) Range {
	return Range{Start: start, Length: length, Color: color}
}

// End returns the last offset covered by the range.
func (r Range) End() int64 {
	return r.Start + r.Length - 1
}

func (r Range) Contains(offset int64) bool {
	return r.Start <= offset && offset <= r.End()
}

func (r Range) Validate() error {
	if r.Start < 0 {
		return fmt.Errorf("%w: negative start %d", ErrInvalidRange, r.Start)
	}
	if r.Length <= 0 {
		return fmt.Errorf("%w: length must be positive, got %d", ErrInvalidRange, r.Length)
	}
	if r.Start > math.MaxInt64-r.Length {
		return fmt.Errorf("%w: start %d + length %d overflows", ErrInvalidRange, r.Start, r.Length)
	}
	if r.Color != C.NoColor && !r.Color.IsValid() {
		return fmt.Errorf("%w: unknown color %q", ErrInvalidRange, r.Color)
	}
	return nil
}

// String renders the range as one descriptor line: start,length,color,comment.
func (r Range) String() string {
	return fmt.Sprintf("%d,%d,%s,%s", r.Start, r.Length, r.Color, r.Comment)
}
