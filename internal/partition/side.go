package partition

// Side is one of the two partitions. A is encoded as false so that the
// zero value of the type is a valid, meaningful side, matching the
// source's convention of treating side A as the "default" partition.
type Side bool

const (
	A Side = false
	B Side = true
)

// Other returns the opposite side.
func (s Side) Other() Side { return !s }

// String renders the side for logging and diagnostics.
func (s Side) String() string {
	if s == A {
		return "A"
	}
	return "B"
}
