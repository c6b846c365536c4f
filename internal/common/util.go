package common

// WipeByteArray zeroes b in place so secrets do not linger in memory after
// use. Safe to call with nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
