package special

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpintZeroOrder(t *testing.T) {
	for _, p := range []float64{1e-3, 0.5, 1, 7.9, 8, 25} {
		assert.Equal(t, math.Exp(-p)/p, Expint(0, p), "p=%v", p)
	}
}

func TestExpintReferenceValues(t *testing.T) {
	cases := []struct {
		k    int
		p    float64
		want float64
	}{
		{1, 0.5, 0.5597735108724453},
		{1, 1.0, 0.21938393439543172},
		{2, 1.0, 0.14849550677601062},
		{3, 4.0, 0.002761360696841183},
		{6, 2.0, 0.018538096760402113},
		{1, 10.0, 4.156969011796016e-06},
		{2, 10.0, 3.8302404276264575e-06},
		{2, 20.0, 9.40485643086849e-11},
		{12, 9.0, 6.034198344476724e-06},
	}
	for _, c := range cases {
		assert.InEpsilon(t, c.want, Expint(c.k, c.p), 1e-9, "E_%d(%v)", c.k, c.p)
	}
}

func TestExpintAtZero(t *testing.T) {
	assert.True(t, math.IsNaN(Expint(1, 0)))
	assert.Equal(t, 1., Expint(2, 0))
	assert.Equal(t, 0.25, Expint(5, 0))
}

func TestExpintNegativeArgument(t *testing.T) {
	for k := range 4 {
		assert.True(t, math.IsNaN(Expint(k, -1)), "k=%d", k)
	}
}

func TestExpintE1SmallArgument(t *testing.T) {
	const eulerGamma = 0.5772156649015329
	prev := math.Inf(1)
	for _, p := range []float64{1e-4, 1e-3, 1e-2, 0.1, 0.3, 0.6, 0.9} {
		v := Expint(1, p)
		require.Less(t, v, prev, "E_1 must decrease, p=%v", p)
		prev = v
	}
	p := 1e-4
	assert.InDelta(t, -eulerGamma-math.Log(p), Expint(1, p), 1e-3)
}

func TestExpintRecurrenceAcrossBranches(t *testing.T) {
	// E_{k+1}(p) = (exp(-p) - p E_k(p)) / k holds on both sides of the asymptotic switch
	for _, p := range []float64{2, 7.5, 12} {
		for k := 1; k < 5; k++ {
			next := (math.Exp(-p) - p*Expint(k, p)) / float64(k)
			assert.InEpsilon(t, next, Expint(k+1, p), 1e-4, "k=%d p=%v", k, p)
		}
	}
}
