package crossing

// Sign returns +1 for v >= 0 (zero included) and -1 otherwise.
// NaN compares false against zero and is therefore negative.
func Sign(v float64) int {
	if v >= 0 {
		return 1
	}
	return -1
}
