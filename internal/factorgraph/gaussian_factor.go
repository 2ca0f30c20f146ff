package factorgraph

import (
	"github.com/pable/go-skill-ratings/internal/numerics"
)

type (
	GaussianVariable = Variable[numerics.Gaussian]
	GaussianMessage  = Message[numerics.Gaussian]
)

// GaussianFactorUpdater is implemented by every concrete factor over
// Gaussian-valued variables.
type GaussianFactorUpdater interface {
	SendMessage(m *GaussianMessage, v *GaussianVariable) float64
	CreateVariableToMessageBinding(v *GaussianVariable) *GaussianMessage
	LogNormalization() float64
}

// GaussianFactor provides the update step shared by concrete factors. Embed
// it and add the factor-specific message computation.
type GaussianFactor struct {
	Factor[numerics.Gaussian]
}

// NewGaussianFactor returns a factor with no bound variables.
func NewGaussianFactor(name string) *GaussianFactor {
	return &GaussianFactor{Factor: newFactor[numerics.Gaussian](name)}
}

// SendMessage multiplies the message into the variable's marginal and
// returns the log-normalization constant of that product.
func (f *GaussianFactor) SendMessage(m *GaussianMessage, v *GaussianVariable) float64 {
	marginal := v.Value()
	value := m.Value()
	logZ := numerics.LogProductNormalization(marginal, value)
	v.SetValue(marginal.Mul(value))
	return logZ
}

// SendMessageAt sends the i-th bound message to its variable.
func (f *GaussianFactor) SendMessageAt(i int) (float64, error) {
	m, v, err := f.messageAt(i)
	if err != nil {
		return 0, err
	}
	return f.SendMessage(m, v), nil
}

// CreateVariableToMessageBinding binds v to a fresh zero-precision message.
func (f *GaussianFactor) CreateVariableToMessageBinding(v *GaussianVariable) *GaussianMessage {
	m := NewMessage(numerics.Uninformative(), "message from %s to %s", f, v)
	return f.bind(v, m)
}

// LogNormalization is 0 unless a concrete factor says otherwise.
func (f *GaussianFactor) LogNormalization() float64 {
	return 0
}
