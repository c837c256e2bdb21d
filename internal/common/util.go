package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// It is used to release memory-backed resources eagerly instead of waiting for
// the garbage collector.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
