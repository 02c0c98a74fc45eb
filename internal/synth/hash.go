package synth

// HashString folds s into a non-negative integer using the 31-multiplier
// string hash with 32-bit wraparound. Equal strings always hash equally.
func HashString(s string) int64 {
	var h int32
	for _, c := range s {
		h = (h << 5) - h + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
