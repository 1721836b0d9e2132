package pdu

import "math/rand"

// measurementTolerance is the half-width of the sampling band as a fraction
// of the category nominal. Must stay below 0.2 so reaction wheel readings
// remain strictly inside (4.0, 6.0) A around the 5.0 A nominal.
const measurementTolerance = 0.1

// sample draws one per-line current reading for an energised line.
func (c Category) sample(rng *rand.Rand) float64 {
	spread := c.Nominal * measurementTolerance
	return c.Nominal + (rng.Float64()*2-1)*spread
}

// measure derives the ADC vector for a bank: 0.0 for de-energised lines,
// a fresh sample around the nominal for energised ones. Each call samples
// independently.
func (c Category) measure(lines uint16, rng *rand.Rand) []float64 {
	m := make([]float64, c.Width)
	for i := range m {
		if lines&(1<<i) != 0 {
			m[i] = c.sample(rng)
		}
	}
	return m
}
