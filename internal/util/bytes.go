package util

// WipeBytes overwrites the buffer with zeros. Any function that materializes
// key material must call this on every exit path, success or error.
func WipeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// IsZeroed reports whether the buffer contains only zero bytes.
func IsZeroed(buf []byte) bool {
	var acc byte
	for _, b := range buf {
		acc |= b
	}

	return acc == 0
}
