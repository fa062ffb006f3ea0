package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	assert.Equal(t, 8.97, Total([]Line{{Quantity: 3, UnitPrice: 2.99}}))
	assert.Equal(t, 0.3, Total([]Line{{Quantity: 1, UnitPrice: 0.1}, {Quantity: 1, UnitPrice: 0.2}}))
	assert.Equal(t, 4.13, Total([]Line{{Quantity: 1.5, UnitPrice: 2.75}}))
	assert.Equal(t, float64(0), Total(nil))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 2.5, Round2(2.499999))
}

func TestSumQuantities(t *testing.T) {
	assert.Equal(t, 0.3, SumQuantities([]float64{0.1, 0.2}))
}

func TestValidQuantity(t *testing.T) {
	assert.True(t, ValidQuantity(0))
	assert.True(t, ValidQuantity(2.5))
	assert.True(t, ValidQuantity(MaxQuantity))
	assert.False(t, ValidQuantity(-1))
	assert.False(t, ValidQuantity(MaxQuantity+0.001))
	assert.False(t, ValidQuantity(1e308))
	assert.False(t, ValidQuantity(math.NaN()))
	assert.False(t, ValidQuantity(math.Inf(1)))
	assert.False(t, ValidQuantity(math.Inf(-1)))
}
