// Package numerics provides the Gaussian distribution arithmetic used by the
// factor graph and the Gaussian Elo calculator.
package numerics

import (
	"fmt"
	"math"
)

var logSqrt2Pi = math.Log(math.Sqrt(2 * math.Pi))

// Gaussian is a normal distribution stored in its natural parameterization:
// precision (1/variance) and precision-adjusted mean (mean*precision).
// A zero precision means "no information" and is the identity for Mul.
type Gaussian struct {
	precision     float64
	precisionMean float64
}

// NewGaussian builds a distribution from mean and standard deviation.
func NewGaussian(mean, stdDev float64) Gaussian {
	precision := 1 / (stdDev * stdDev)
	return Gaussian{precision: precision, precisionMean: precision * mean}
}

// FromPrecisionMean builds a distribution from its natural parameters.
func FromPrecisionMean(precisionMean, precision float64) Gaussian {
	return Gaussian{precision: precision, precisionMean: precisionMean}
}

// Uninformative returns the zero-precision distribution.
func Uninformative() Gaussian {
	return Gaussian{}
}

func (g Gaussian) Precision() float64     { return g.precision }
func (g Gaussian) PrecisionMean() float64 { return g.precisionMean }

// Mean returns 0 for a zero-precision distribution rather than NaN.
func (g Gaussian) Mean() float64 {
	if g.precision == 0 {
		return 0
	}
	return g.precisionMean / g.precision
}

// Variance is +Inf for a zero-precision distribution.
func (g Gaussian) Variance() float64 {
	return 1 / g.precision
}

func (g Gaussian) StdDev() float64 {
	return math.Sqrt(g.Variance())
}

// Mul returns the product of two densities (up to normalization).
func (g Gaussian) Mul(o Gaussian) Gaussian {
	return Gaussian{
		precision:     g.precision + o.precision,
		precisionMean: g.precisionMean + o.precisionMean,
	}
}

// Div returns the ratio of two densities (up to normalization).
func (g Gaussian) Div(o Gaussian) Gaussian {
	return Gaussian{
		precision:     g.precision - o.precision,
		precisionMean: g.precisionMean - o.precisionMean,
	}
}

// AbsoluteDifference is the largest change across both natural parameters,
// used as a convergence measure.
func AbsoluteDifference(a, b Gaussian) float64 {
	return math.Max(
		math.Abs(a.precisionMean-b.precisionMean),
		math.Sqrt(math.Abs(a.precision-b.precision)),
	)
}

// LogProductNormalization is the log of the normalization constant of a*b.
// It is 0 when either side carries no information.
func LogProductNormalization(a, b Gaussian) float64 {
	if a.precision == 0 || b.precision == 0 {
		return 0
	}
	varianceSum := a.Variance() + b.Variance()
	meanDiff := a.Mean() - b.Mean()
	return -logSqrt2Pi - math.Log(varianceSum)/2 - Square(meanDiff)/(2*varianceSum)
}

func (g Gaussian) String() string {
	return fmt.Sprintf("μ=%.4f, σ=%.4f", g.Mean(), g.StdDev())
}
