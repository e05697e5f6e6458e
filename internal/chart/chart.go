// Package chart renders a run's point sequence as a PNG line chart with an
// "Actual Progress" series and a dashed "Projection" overlay on a shared
// label axis.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/thruflo/burndown/internal/progress"
)

// Series names as shown in the legend.
const (
	ActualName     = "Actual Progress"
	ProjectionName = "Projection"
)

// ErrNotEnoughPoints is returned when there is nothing to draw beyond the seed point.
var ErrNotEnoughPoints = errors.New("chart needs at least two points")

var (
	actualColor     = drawing.ColorFromHex("3b82f6")
	projectionColor = drawing.ColorFromHex("94a3b8")
)

// Options controls the rendered image.
type Options struct {
	Title  string
	Width  int
	Height int
}

// Build assembles the chart for points. Index i on the X axis is labelled
// with points[i].Label; nil entries of either series are left out, so the
// projection is drawn as the segment between its two populated points.
func Build(points progress.Series, opts Options) (gochart.Chart, error) {
	if len(points) < 2 {
		return gochart.Chart{}, ErrNotEnoughPoints
	}

	ticks := make([]gochart.Tick, len(points))
	for i, p := range points {
		ticks[i] = gochart.Tick{Value: float64(i), Label: p.Label}
	}

	actualX, actualY := collect(points.Actual())
	projX, projY := collect(points.Projection())

	yMax := 1.0
	for _, y := range append(append([]float64{}, actualY...), projY...) {
		if y > yMax {
			yMax = y
		}
	}

	series := []gochart.Series{
		gochart.ContinuousSeries{
			Name:    ActualName,
			XValues: actualX,
			YValues: actualY,
			Style: gochart.Style{
				StrokeColor: actualColor,
				StrokeWidth: 2,
				FillColor:   actualColor.WithAlpha(38),
				DotColor:    actualColor,
				DotWidth:    4,
			},
		},
	}
	if len(projX) >= 2 {
		series = append(series, gochart.ContinuousSeries{
			Name:    ProjectionName,
			XValues: projX,
			YValues: projY,
			Style: gochart.Style{
				StrokeColor:     projectionColor,
				StrokeWidth:     2,
				StrokeDashArray: []float64{6, 6},
			},
		})
	}

	ch := gochart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(len(points) - 1)},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch, nil
}

// Render writes points as a PNG image to w.
func Render(w io.Writer, points progress.Series, opts Options) error {
	ch, err := Build(points, opts)
	if err != nil {
		return err
	}
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// WriteFile renders points to a PNG file at path. The file is only written
// once rendering has succeeded.
func WriteFile(path string, points progress.Series, opts Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, points, opts); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create chart directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write chart file: %w", err)
	}
	return nil
}

func collect(values []*float64) (xs, ys []float64) {
	for i, v := range values {
		if v == nil {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, *v)
	}
	return xs, ys
}
