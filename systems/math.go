package systems

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clampAxis clamps v to [-limit, limit], applying the upper bound first.
// With a zero limit every value collapses to 0.
func clampAxis(v, limit float32) float32 {
	if v > limit {
		v = limit
	}
	if v < -limit {
		v = -limit
	}
	return v
}
