package util

// Min returns minimum of two int numbers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns maximum of two int numbers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
