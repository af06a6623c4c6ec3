package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestFitDegenerate(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want Regression
	}{
		{
			name: "empty input",
			xs:   nil,
			ys:   nil,
			want: Regression{},
		},
		{
			name: "single point",
			xs:   []float64{5},
			ys:   []float64{10},
			want: Regression{},
		},
		{
			name: "mismatched lengths",
			xs:   []float64{1, 2, 3},
			ys:   []float64{1, 2},
			want: Regression{},
		},
		{
			name: "identical xs",
			xs:   []float64{4, 4, 4},
			ys:   []float64{1, 2, 3},
			want: Regression{Slope: 0, Intercept: 2, RSquared: 0},
		},
		{
			name: "constant ys",
			xs:   []float64{1, 2, 3},
			ys:   []float64{7, 7, 7},
			want: Regression{Slope: 0, Intercept: 7, RSquared: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.xs, tt.ys)
			if !almostEqual(got.Slope, tt.want.Slope, 1e-9) ||
				!almostEqual(got.Intercept, tt.want.Intercept, 1e-9) ||
				!almostEqual(got.RSquared, tt.want.RSquared, 1e-9) {
				t.Errorf("Fit() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFitExactLine(t *testing.T) {
	got := Fit([]float64{1, 2, 3}, []float64{2, 4, 6})

	if !almostEqual(got.Slope, 2, 1e-9) {
		t.Errorf("slope = %v, want 2", got.Slope)
	}
	if !almostEqual(got.Intercept, 0, 1e-9) {
		t.Errorf("intercept = %v, want 0", got.Intercept)
	}
	if !almostEqual(got.RSquared, 1, 1e-9) {
		t.Errorf("r² = %v, want 1", got.RSquared)
	}
}

func TestFitNoisyLine(t *testing.T) {
	// y = 3x + 1 with small symmetric noise; slope and intercept should stay
	// close and R² should be high but below 1.
	xs := []float64{0, 1, 2, 3, 4, 5}
	ys := []float64{1.1, 3.9, 7.1, 9.9, 13.1, 15.9}

	got := Fit(xs, ys)
	if !almostEqual(got.Slope, 3, 0.05) {
		t.Errorf("slope = %v, want ≈3", got.Slope)
	}
	if !almostEqual(got.Intercept, 1, 0.2) {
		t.Errorf("intercept = %v, want ≈1", got.Intercept)
	}
	if got.RSquared < 0.99 || got.RSquared >= 1 {
		t.Errorf("r² = %v, want in [0.99, 1)", got.RSquared)
	}
}

func TestFitNegativeSlope(t *testing.T) {
	got := Fit([]float64{2000, 2001, 2002, 2003}, []float64{40, 38, 36, 34})
	if !almostEqual(got.Slope, -2, 1e-9) {
		t.Errorf("slope = %v, want -2", got.Slope)
	}
	if !almostEqual(got.RSquared, 1, 1e-9) {
		t.Errorf("r² = %v, want 1", got.RSquared)
	}
}

func TestMedianAndPercentile(t *testing.T) {
	if got := Median(nil); got != 0 {
		t.Errorf("Median(nil) = %v, want 0", got)
	}

	vals := []float64{5, 1, 3, 2, 4}
	if got := Median(vals); !almostEqual(got, 3, 1e-9) {
		t.Errorf("Median = %v, want 3", got)
	}

	// Input must not be reordered.
	if vals[0] != 5 || vals[4] != 4 {
		t.Errorf("Median mutated its input: %v", vals)
	}

	if got := Percentile(vals, 1.0); !almostEqual(got, 5, 1e-9) {
		t.Errorf("Percentile(1.0) = %v, want 5", got)
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]float64{1, 2, 3, 4}); !almostEqual(got, 2.5, 1e-9) {
		t.Errorf("Mean = %v, want 2.5", got)
	}
}
