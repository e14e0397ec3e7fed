package weather

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Column projects v out of records, preserving order.
func Column(records []Record, v Variable) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Value(v)
	}
	return out
}

// Correlation returns the Pearson correlation coefficient of x and y.
// It returns NaN when the series differ in length, hold fewer than two
// points, or either has zero variance.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}
	if constant(x) || constant(y) {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

func constant(xs []float64) bool {
	for _, v := range xs[1:] {
		if v != xs[0] {
			return false
		}
	}
	return true
}

// SummaryPairs pairs each record's summary with its value of v, one entry per
// record and in dataset order. No grouping is applied.
func SummaryPairs(records []Record, v Variable) (labels []string, values []float64) {
	labels = make([]string, len(records))
	values = make([]float64, len(records))
	for i, r := range records {
		labels[i] = r.Summary
		values[i] = r.Value(v)
	}
	return labels, values
}
