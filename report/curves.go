// Package report renders computed policies and learning curves to files.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/zeu5/mdp-rl/harness"
)

// Series is one labelled learning curve
type Series struct {
	Name   string
	Points []harness.Point
}

// points adapts a curve to the plotter interfaces, error bars are symmetric
type points []harness.Point

func (p points) Len() int { return len(p) }

func (p points) XY(i int) (float64, float64) {
	return float64(p[i].Epoch), p[i].Mean
}

func (p points) YError(i int) (float64, float64) {
	return p[i].HalfWidth, p[i].HalfWidth
}

// PlotCurves draws every series as a line with confidence error bars and
// saves the figure; the format follows the file extension.
func PlotCurves(plotPath string, series []Series) error {
	p := plot.New()
	p.Title.Text = "Learning curves"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Total Accumulated Discounted Rewards"
	p.Legend.Top = true

	for i, s := range series {
		data := points(s.Points)
		line, err := plotter.NewLine(data)
		if err != nil {
			return fmt.Errorf("series %s: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		bars, err := plotter.NewYErrorBars(data)
		if err != nil {
			return fmt.Errorf("series %s: %w", s.Name, err)
		}
		bars.Color = plotutil.Color(i)
		p.Add(line, bars)
		p.Legend.Add(s.Name, line)
	}

	if dir := filepath.Dir(plotPath); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, plotPath)
}

// WriteCurvesCSV writes one row per series and checkpoint.
func WriteCurvesCSV(w io.Writer, series []Series) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"series", "epoch", "mean", "half_width", "count"}); err != nil {
		return err
	}
	for _, s := range series {
		for _, p := range s.Points {
			record := []string{
				s.Name,
				strconv.Itoa(p.Epoch),
				strconv.FormatFloat(p.Mean, 'g', -1, 64),
				strconv.FormatFloat(p.HalfWidth, 'g', -1, 64),
				strconv.Itoa(p.Count),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
