package mandel

// DefaultIterationLimit keeps every escape count within one byte of intensity
const DefaultIterationLimit = 255

// EscapeTime iterates z = z*z + c from zero at most limit times.
// It returns the 0-based iteration at which |z| first exceeds 2 with escaped set.
// If the orbit stays bounded for the whole budget, c is likely a member
// of the set and escaped is false.
func EscapeTime(c complex128, limit uint32) (count uint32, escaped bool) {
	z := complex(0, 0)
	for i := uint32(0); i < limit; i++ {
		z = z*z + c
		if real(z)*real(z)+imag(z)*imag(z) > 4 {
			return i, true
		}
	}
	return 0, false
}

// Intensity is the grayscale level for an escape result: black inside the
// set, brighter the faster the orbit escapes.
func Intensity(count uint32, escaped bool) uint8 {
	if !escaped {
		return 0
	}
	if count > 255 {
		return 0
	}
	return uint8(255 - count)
}
