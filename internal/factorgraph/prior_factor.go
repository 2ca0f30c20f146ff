package factorgraph

import (
	"fmt"
	"math"

	"github.com/pable/go-skill-ratings/internal/numerics"
)

// PriorFactor pins a variable to a Gaussian prior, e.g. a player's stored
// skill widened by the dynamics variance.
type PriorFactor struct {
	*GaussianFactor
	prior numerics.Gaussian
}

// NewPriorFactor binds v to a prior N(mean, variance).
func NewPriorFactor(mean, variance float64, v *GaussianVariable) *PriorFactor {
	f := &PriorFactor{
		GaussianFactor: NewGaussianFactor(fmt.Sprintf("Prior value going to %s", v)),
		prior:          numerics.NewGaussian(mean, math.Sqrt(variance)),
	}
	f.CreateVariableToMessageBinding(v)
	return f
}

// UpdateMessageAt replaces the i-th message with the prior, swapping the old
// message's contribution out of the marginal. It returns how far the marginal
// moved.
func (f *PriorFactor) UpdateMessageAt(i int) (float64, error) {
	m, v, err := f.messageAt(i)
	if err != nil {
		return 0, err
	}
	oldMarginal := v.Value()
	newMarginal := oldMarginal.Div(m.Value()).Mul(f.prior)
	v.SetValue(newMarginal)
	m.SetValue(f.prior)
	return numerics.AbsoluteDifference(oldMarginal, newMarginal), nil
}
