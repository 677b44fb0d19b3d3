package value

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform draws from U(min, max), via gonum's stat/distuv.
type Uniform struct {
	Min, Max float64
}

func (u Uniform) Generate(r *rand.Rand, n int) []float64 {
	d := distuv.Uniform{Min: u.Min, Max: u.Max, Src: r}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

// Normal draws from N(mean, sd^2).
type Normal struct {
	Mean, SD float64
}

func (nd Normal) Generate(r *rand.Rand, n int) []float64 {
	d := distuv.Normal{Mu: nd.Mean, Sigma: nd.SD, Src: r}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

// LogNormal draws from a log-normal distribution parameterized by the
// underlying normal's mean/sd, via gonum's distuv.LogNormal.
type LogNormal struct {
	Mean, SD float64
}

func (ln LogNormal) Generate(r *rand.Rand, n int) []float64 {
	d := distuv.LogNormal{Mu: ln.Mean, Sigma: ln.SD, Src: r}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

// Binomial draws from Binomial(trials, p).
type Binomial struct {
	Trials float64
	P      float64
}

func (b Binomial) Generate(r *rand.Rand, n int) []float64 {
	d := distuv.Binomial{N: b.Trials, P: b.P, Src: r}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

// Beta draws from Beta(alpha, beta) — used for e.g. starting-point-ratio
// priors in DDM models (Z/A).
type Beta struct {
	Alpha, Beta float64
}

func (b Beta) Generate(r *rand.Rand, n int) []float64 {
	d := distuv.Beta{Alpha: b.Alpha, Beta: b.Beta, Src: r}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

// Gamma draws from Gamma(shape, rate) — used for e.g. non-decision-time
// priors.
type Gamma struct {
	Alpha, Beta float64
}

func (g Gamma) Generate(r *rand.Rand, n int) []float64 {
	d := distuv.Gamma{Alpha: g.Alpha, Beta: g.Beta, Src: r}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}
