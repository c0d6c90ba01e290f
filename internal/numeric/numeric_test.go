package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-9)
	assert.Equal(t, 0.0, Mean(nil))
}

func TestMedian_OddAndEven(t *testing.T) {
	assert.Equal(t, 2.0, Median([]float64{3, 1, 2}))
	assert.InDelta(t, 2.5, Median([]float64{1, 2, 3, 4}), 1e-9)
}

func TestStdDev_PopulationFormula(t *testing.T) {
	// population stddev of {2,4,4,4,5,5,7,9} is 2.0
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 2.0, StdDev(xs), 1e-9)
}

func TestPercentile_Type7MatchesNumpy(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.InDelta(t, 1.0, Percentile(xs, 0), 1e-9)
	assert.InDelta(t, 10.0, Percentile(xs, 100), 1e-9)
	assert.InDelta(t, 5.5, Percentile(xs, 50), 1e-9)
}
