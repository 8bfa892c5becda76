package harness

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ConfidenceFactor scales the standard error into the reported half-width
const ConfidenceFactor = 1.95

// Estimate is a sample mean with its confidence half-width, assuming
// i.i.d. samples and a normal approximation.
type Estimate struct {
	Mean      float64
	HalfWidth float64
	Count     int
}

// Summarize computes mean and ConfidenceFactor*stdev/sqrt(count). Fewer than
// two samples give a zero half-width, an empty input a NaN mean.
func Summarize(samples []float64) Estimate {
	n := len(samples)
	if n == 0 {
		return Estimate{Mean: math.NaN()}
	}
	if floats.Min(samples) == floats.Max(samples) {
		return Estimate{Mean: samples[0], Count: n}
	}
	// a single sample always takes the branch above
	mean, variance := stat.MeanVariance(samples, nil)
	std := math.Sqrt(math.Max(variance, 0))
	return Estimate{
		Mean:      mean,
		HalfWidth: ConfidenceFactor * std / math.Sqrt(float64(n)),
		Count:     n,
	}
}

// Flatten concatenates per-task results in task order
func Flatten(results [][]float64) []float64 {
	total := 0
	for _, r := range results {
		total += len(r)
	}
	flat := make([]float64, 0, total)
	for _, r := range results {
		flat = append(flat, r...)
	}
	return flat
}

// Transpose turns worker-major rows into checkpoint-major columns. Every row
// must have the same length.
func Transpose(rows [][]float64) ([][]float64, error) {
	if len(rows) == 0 {
		return [][]float64{}, nil
	}
	width := len(rows[0])
	columns := make([][]float64, width)
	for k := range columns {
		columns[k] = make([]float64, len(rows))
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d checkpoints, row 0 has %d", i, len(row), width)
		}
		for k, v := range row {
			columns[k][i] = v
		}
	}
	return columns, nil
}

// Point is the aggregate of one checkpoint across all workers
type Point struct {
	Epoch int
	Estimate
}

// Curve aggregates each checkpoint column separately. Checkpoint k was taken
// at epoch k*every.
func Curve(rows [][]float64, every int) ([]Point, error) {
	columns, err := Transpose(rows)
	if err != nil {
		return nil, err
	}
	points := make([]Point, len(columns))
	for k, column := range columns {
		points[k] = Point{Epoch: k * every, Estimate: Summarize(column)}
	}
	return points, nil
}
