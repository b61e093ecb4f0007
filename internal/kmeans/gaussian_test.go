package kmeans

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCov2(t *testing.T) {
	c := Cov2{XX: 2, XY: 1, YY: 3}
	assert.Equal(t, 5.0, c.Det())

	inv, ok := c.Inverse()
	assert.True(t, ok)
	assert.InDelta(t, 0.6, inv.XX, 1e-12)
	assert.InDelta(t, -0.2, inv.XY, 1e-12)
	assert.InDelta(t, 0.4, inv.YY, 1e-12)

	_, ok = Cov2{XX: 1, XY: 1, YY: 1}.Inverse()
	assert.False(t, ok)
	_, ok = Cov2{XX: math.NaN(), YY: 1}.Inverse()
	assert.False(t, ok)
}

func TestCov2_Density(t *testing.T) {
	identity := Cov2{XX: 1, YY: 1}
	assert.InDelta(t, 1/(2*math.Pi), identity.density([]float64{3, 4}, []float64{3, 4}), 1e-12)
	assert.InDelta(t, math.Exp(-0.5)/(2*math.Pi), identity.density([]float64{1, 0}, []float64{0, 0}), 1e-12)

	// Missing coordinates read as zero.
	assert.InDelta(t, math.Exp(-0.5)/(2*math.Pi), identity.density([]float64{1}, []float64{0, 0}), 1e-12)

	assert.Equal(t, 0.0, Cov2{}.density([]float64{0, 0}, []float64{0, 0}))
}

func TestMode(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"hard", ModeHard, true},
		{"KMeans", ModeHard, true},
		{"soft", ModeSoft, true},
		{" gmm ", ModeGMM, true},
		{"em", ModeGMM, true},
		{"dbscan", ModeHard, false},
	} {
		got, ok := ParseMode(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	assert.Equal(t, "soft", ModeSoft.String())
	assert.Equal(t, "unknown(7)", Mode(7).String())

	text, err := ModeGMM.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "gmm", string(text))

	var m Mode
	assert.NoError(t, m.UnmarshalText([]byte("soft")))
	assert.Equal(t, ModeSoft, m)
	assert.Error(t, m.UnmarshalText([]byte("nope")))

	_, err = Mode(7).MarshalText()
	assert.Error(t, err)
}
