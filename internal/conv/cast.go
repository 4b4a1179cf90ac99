package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when a value does not fit the target type.
var ErrOverflow = errors.New("integer overflow")

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint32 (negative)", ErrOverflow, v)
	}
	// On 64-bit systems, int can exceed uint32 max; on 32-bit, this is always false
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint32 (too large)", ErrOverflow, v)
	}
	return uint32(v), nil
}

// Uint32ToInt converts uint32 to int safely.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d cannot be converted to int (too large)", ErrOverflow, v)
	}
	return int(v), nil
}

// ByteSize returns n*elemSize as an int, checking for overflow.
func ByteSize(n, elemSize int) (int, error) {
	if n < 0 || elemSize < 0 {
		return 0, fmt.Errorf("%w: negative size %d x %d", ErrOverflow, n, elemSize)
	}
	if elemSize != 0 && n > math.MaxInt/elemSize {
		return 0, fmt.Errorf("%w: %d x %d bytes", ErrOverflow, n, elemSize)
	}
	return n * elemSize, nil
}
