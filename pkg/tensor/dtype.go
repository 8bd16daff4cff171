package tensor

// DType identifies the numeric storage format of a Tensor's Data slice.
type DType uint8

const (
	// Float64 is the default double-precision floating point type (8 bytes).
	Float64 DType = iota
	// Float32 is the single-precision floating point type (4 bytes).
	Float32
)

// String returns the human-readable name of the DType.
func (dt DType) String() string {
	switch dt {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	default:
		return "unknown"
	}
}

// Size returns the size in bytes of one element of the DType.
func (dt DType) Size() int {
	switch dt {
	case Float64:
		return 8
	case Float32:
		return 4
	default:
		return 0
	}
}
