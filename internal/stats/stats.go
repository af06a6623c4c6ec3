// Package stats wraps the gonum statistics routines used by the analytics
// engine with the degenerate-input guards the engine relies on. Sparse
// historical records routinely produce empty, single-point, or constant
// series, and gonum returns NaN for those; callers here always get a finite,
// neutral result instead.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Regression holds an ordinary-least-squares fit of y against x.
type Regression struct {
	Slope     float64
	Intercept float64
	RSquared  float64
}

// Fit performs an OLS fit of ys against xs.
//
// Degenerate inputs yield a neutral no-trend result rather than an error:
// fewer than two points returns all zeros, identical xs return a zero slope
// with the mean of ys as intercept, and constant ys return RSquared 0.
// Callers treat the zero-value Regression as "no usable trend."
func Fit(xs, ys []float64) Regression {
	if len(xs) != len(ys) || len(xs) < 2 {
		return Regression{}
	}

	meanY := stat.Mean(ys, nil)

	if constant(xs) {
		return Regression{Intercept: meanY}
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	if constant(ys) {
		// Perfectly flat response: slope is 0 and R² is undefined (SS_tot
		// is 0). Report 0, not 1.
		return Regression{Slope: 0, Intercept: meanY, RSquared: 0}
	}

	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	return Regression{Slope: beta, Intercept: alpha, RSquared: r2}
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// Median returns the empirical median, or 0 for an empty slice.
func Median(vals []float64) float64 {
	return Percentile(vals, 0.5)
}

// Percentile returns the empirical p-quantile (0 ≤ p ≤ 1) of vals, or 0 for
// an empty slice. The input is not modified.
func Percentile(vals []float64, p float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

func constant(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}
