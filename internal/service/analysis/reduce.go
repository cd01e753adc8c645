package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// missingSentinel marks absent days in NASA POWER series.
const missingSentinel = -999

func validSamples(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v == missingSentinel {
			continue
		}
		out = append(out, v)
	}
	return out
}

// meanValid averages the valid samples; nil when none remain so downstream
// formulas substitute defaults instead of propagating zeros.
func meanValid(values []float64) *float64 {
	v := validSamples(values)
	if len(v) == 0 {
		return nil
	}
	m, err := stats.Mean(v)
	if err != nil {
		return nil
	}
	return &m
}

func sumValid(values []float64) *float64 {
	v := validSamples(values)
	if len(v) == 0 {
		return nil
	}
	s, err := stats.Sum(v)
	if err != nil {
		return nil
	}
	return &s
}

func minValid(values []float64) *float64 {
	v := validSamples(values)
	if len(v) == 0 {
		return nil
	}
	m, err := stats.Min(v)
	if err != nil {
		return nil
	}
	return &m
}

func maxValid(values []float64) *float64 {
	v := validSamples(values)
	if len(v) == 0 {
		return nil
	}
	m, err := stats.Max(v)
	if err != nil {
		return nil
	}
	return &m
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func mapValues(m map[string]float64) []float64 {
	out := make([]float64, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func roundPtr(v *float64, places int32) *float64 {
	if v == nil {
		return nil
	}
	r := round(*v, places)
	return &r
}

func ptr(v float64) *float64 { return &v }
