package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministic_Sample(t *testing.T) {
	d := NewDeterministic(2.5)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5; i++ {
		assert.Equal(t, 2.5, d.Sample(rng))
	}
	assert.Equal(t, 2.5, d.Mean())
}

func TestExponential_SampleMean(t *testing.T) {
	// Sample mean over many draws converges to 1/rate.
	d := NewExponential(60)
	rng := rand.New(rand.NewSource(42))

	n := 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := d.Sample(rng)
		if v <= 0 {
			t.Fatalf("exponential sample not positive: %v", v)
		}
		sum += v
	}
	assert.InDelta(t, 1.0/60.0, sum/float64(n), 0.001)
	assert.InDelta(t, 1.0/60.0, d.Mean(), 1e-12)
}

func TestGamma_SampleMean(t *testing.T) {
	// Gamma(mean=0.1, cv=2) has mean 0.1 regardless of burstiness.
	d := NewGamma(0.1, 2.0)
	rng := rand.New(rand.NewSource(42))

	n := 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := d.Sample(rng)
		if v < 0 {
			t.Fatalf("gamma sample negative: %v", v)
		}
		sum += v
	}
	assert.InDelta(t, 0.1, sum/float64(n), 0.005)
	assert.InDelta(t, 0.1, d.Mean(), 1e-12)
}

func TestGamma_LowCV_ShapeAboveOne(t *testing.T) {
	// cv < 1 exercises the Marsaglia-Tsang direct path (shape > 1).
	d := NewGamma(1.0, 0.5)
	rng := rand.New(rand.NewSource(7))

	n := 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += d.Sample(rng)
	}
	assert.InDelta(t, 1.0, sum/float64(n), 0.02)
}

func TestNewDistribution_Selection(t *testing.T) {
	cv0, cv1, cv2 := 0.0, 1.0, 2.0

	assert.IsType(t, Exponential{}, NewDistribution(10, nil))
	assert.IsType(t, Exponential{}, NewDistribution(10, &cv1))
	assert.IsType(t, Deterministic{}, NewDistribution(10, &cv0))
	assert.IsType(t, Gamma{}, NewDistribution(10, &cv2))

	assert.InDelta(t, 0.1, NewDistribution(10, &cv0).Mean(), 1e-12)
	assert.InDelta(t, 0.1, NewDistribution(10, &cv2).Mean(), 1e-12)
}
