package numerics

import "math"

// CumulativeTo is the standard normal CDF at x.
func CumulativeTo(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

func Square(x float64) float64 {
	return x * x
}

// Mean is the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
