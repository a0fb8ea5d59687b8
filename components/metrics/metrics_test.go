package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentOfTotal(t *testing.T) {
	assert.Equal(t, 47.1, PercentOfTotal(300.56, 638.72))
	assert.Equal(t, 50.0, PercentOfTotal(1, 2))
	assert.Equal(t, 0.0, PercentOfTotal(5, 0))
}

func TestRelativeScale(t *testing.T) {
	assert.InDelta(t, 54.1666, RelativeScale(39, 72), 0.001)
	assert.Equal(t, 54.2, Round(RelativeScale(39, 72), 1))
	assert.Equal(t, 100.0, RelativeScale(72, 72))
	assert.Equal(t, 100.0, RelativeScale(90, 72))
	assert.Equal(t, 0.0, RelativeScale(-1, 72))
	assert.Equal(t, 0.0, RelativeScale(39, 0))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.3, Round(1.25, 1))
	assert.Equal(t, -1.3, Round(-1.25, 1))
	assert.Equal(t, 2.0, Round(1.5, -1))
}

func TestSumAndMax(t *testing.T) {
	assert.Equal(t, 0.0, Sum())
	assert.Equal(t, 0.0, Max())
	assert.Equal(t, 72.0, Max(72, 39, 25, 61))
	assert.Equal(t, -1.0, Max(-3, -1, -2))
	assert.InDelta(t, 197.0, Sum(72, 39, 25, 61), 1e-9)
}

func TestSharesOverDefaultSales(t *testing.T) {
	sales := DefaultSales()
	assert.InDelta(t, 638.72, SalesTotal(sales), 1e-9)

	shares := Shares(sales)
	require.Len(t, shares, 4)
	assert.Equal(t, "Direct", shares[0].Name)
	assert.Equal(t, 47.1, shares[0].Percent)
	assert.Equal(t, 21.2, shares[1].Percent)
	assert.Equal(t, 24.1, shares[2].Percent)
	assert.Equal(t, 7.7, shares[3].Percent)
}

func TestScalesOverDefaultLocations(t *testing.T) {
	scales := Scales(DefaultLocations())
	require.Len(t, scales, 4)
	assert.Equal(t, 100.0, scales[0].Width)
	assert.Equal(t, "San Francisco", scales[1].Name)
	assert.Equal(t, 54.2, Round(scales[1].Width, 1))
	for _, s := range scales {
		assert.GreaterOrEqual(t, s.Width, 0.0)
		assert.LessOrEqual(t, s.Width, 100.0)
	}
}

func TestSharesEmpty(t *testing.T) {
	assert.Empty(t, Shares(nil))
	assert.Empty(t, Scales(nil))
}
