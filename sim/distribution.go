package sim

import (
	"math"
	"math/rand"
)

// Distribution draws positive duration samples in minutes. It is used for
// both inter-arrival times and station service times, so stations stay
// free of distribution-specific branches.
type Distribution interface {
	// Sample returns the next duration. Always positive.
	Sample(rng *rand.Rand) float64

	// Mean returns the distribution's expected value.
	Mean() float64
}

// Exponential draws exponentially-distributed durations with the given
// rate (mean = 1/rate). CV = 1.
type Exponential struct {
	rate float64
}

// NewExponential creates an Exponential distribution. rate must be > 0.
func NewExponential(rate float64) Exponential {
	return Exponential{rate: rate}
}

func (d Exponential) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() / d.rate
}

func (d Exponential) Mean() float64 {
	return 1.0 / d.rate
}

// Deterministic always returns the same fixed duration. CV = 0.
type Deterministic struct {
	value float64
}

// NewDeterministic creates a Deterministic distribution.
func NewDeterministic(value float64) Deterministic {
	return Deterministic{value: value}
}

func (d Deterministic) Sample(_ *rand.Rand) float64 {
	return d.value
}

func (d Deterministic) Mean() float64 {
	return d.value
}

// Gamma draws Gamma-distributed durations. CV > 1 produces bursty
// samples, CV < 1 smoother-than-Poisson ones. Implemented with
// Marsaglia-Tsang's method for shape >= 1, with the Ahrens-Dieter
// transformation for shape < 1.
type Gamma struct {
	shape float64 // 1/CV² (alpha parameter)
	scale float64 // mean * CV² (beta parameter)
}

// NewGamma creates a Gamma distribution with the given mean and
// coefficient of variation.
func NewGamma(mean, cv float64) Gamma {
	return Gamma{
		shape: 1.0 / (cv * cv),
		scale: mean * cv * cv,
	}
}

func (d Gamma) Sample(rng *rand.Rand) float64 {
	return gammaRand(rng, d.shape, d.scale)
}

func (d Gamma) Mean() float64 {
	return d.shape * d.scale
}

// gammaRand samples from Gamma(shape, scale) using Marsaglia-Tsang's
// method. For shape < 1: Gamma(a) = Gamma(a+1) * U^(1/a).
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		if u == 0 {
			u = math.SmallestNonzeroFloat64 // prevent 0^(1/a) collapsing the sample
		}
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)

	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()

		// Squeeze test
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// NewDistribution builds a Distribution from a rate (events/minute) and
// an optional coefficient of variation:
//
//	cv == nil or *cv == 1 → Exponential(rate)
//	*cv == 0              → Deterministic(1/rate)
//	otherwise             → Gamma(mean=1/rate, cv)
func NewDistribution(rate float64, cv *float64) Distribution {
	if cv == nil || *cv == 1.0 {
		return NewExponential(rate)
	}
	if *cv == 0.0 {
		return NewDeterministic(1.0 / rate)
	}
	return NewGamma(1.0/rate, *cv)
}
