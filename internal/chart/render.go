package chart

import (
	"errors"
	"fmt"
	"io"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrNotEnoughData is returned when a figure has too few points to draw.
	ErrNotEnoughData = errors.New("not enough data points to render")
	// ErrUnsupported is returned for trace shapes the PNG renderer cannot draw.
	ErrUnsupported = errors.New("unsupported trace for png rendering")
)

var palette = []drawing.Color{
	gochart.ColorBlue,
	gochart.ColorGreen,
	gochart.ColorOrange,
	gochart.ColorRed,
}

// RenderPNG draws f as a PNG snapshot. Line and marker traces share one set of
// axes; a figure whose first trace is a bar or pie is drawn as that chart.
func RenderPNG(w io.Writer, f Figure, width, height int) error {
	if len(f.Data) == 0 {
		return ErrNotEnoughData
	}

	switch f.Data[0].Type {
	case TypePie:
		return renderPie(w, f, width, height)
	case TypeBar:
		return renderBar(w, f, width, height)
	}

	series := make([]gochart.Series, 0, len(f.Data))
	timeAxis := false
	for i, t := range f.Data {
		if t.Type != TypeScatter {
			return fmt.Errorf("%w: %s mixed with scatter", ErrUnsupported, t.Type)
		}
		// go-chart needs two distinct x values to compute a range.
		if t.Len() < 2 {
			continue
		}
		st := traceStyle(t, palette[i%len(palette)])

		switch xs := t.X.(type) {
		case []string:
			times, err := parseTimes(xs)
			if err != nil {
				return err
			}
			timeAxis = true
			series = append(series, gochart.TimeSeries{Name: t.Name, XValues: times, YValues: t.Y, Style: st})
		case []float64:
			series = append(series, gochart.ContinuousSeries{Name: t.Name, XValues: xs, YValues: t.Y, Style: st})
		default:
			return fmt.Errorf("%w: x values of type %T", ErrUnsupported, t.X)
		}
	}
	if len(series) == 0 {
		return ErrNotEnoughData
	}

	xAxis := gochart.XAxis{Name: axisTitle(f.Layout.XAxis)}
	if timeAxis {
		xAxis.ValueFormatter = gochart.TimeValueFormatter
	}

	ch := gochart.Chart{
		Title:      f.Title(),
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      xAxis,
		YAxis:      gochart.YAxis{Name: axisTitle(f.Layout.YAxis)},
		Series:     series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch.Render(gochart.PNG, w)
}

func renderPie(w io.Writer, f Figure, width, height int) error {
	t := f.Data[0]
	values := make([]gochart.Value, 0, len(t.Values))
	for i, v := range t.Values {
		if v <= 0 {
			continue
		}
		values = append(values, gochart.Value{Label: t.Labels[i], Value: v})
	}
	if len(values) == 0 {
		return ErrNotEnoughData
	}
	pie := gochart.PieChart{
		Title:  f.Title(),
		Width:  width,
		Height: height,
		Values: values,
	}
	return pie.Render(gochart.PNG, w)
}

func renderBar(w io.Writer, f Figure, width, height int) error {
	t := f.Data[0]
	labels, ok := t.X.([]string)
	if !ok {
		return fmt.Errorf("%w: bar x values of type %T", ErrUnsupported, t.X)
	}
	if len(t.Y) == 0 {
		return ErrNotEnoughData
	}
	bars := make([]gochart.Value, len(t.Y))
	for i, v := range t.Y {
		bars[i] = gochart.Value{Label: labels[i], Value: v}
	}
	bc := gochart.BarChart{
		Title:    f.Title(),
		Width:    width,
		Height:   height,
		BarWidth: 8,
		Bars:     bars,
	}
	return bc.Render(gochart.PNG, w)
}

func traceStyle(t Trace, col drawing.Color) gochart.Style {
	if t.Mode == ModeMarkers {
		// points only, no connecting line
		return gochart.Style{StrokeWidth: gochart.Disabled, DotWidth: 3, DotColor: col}
	}
	return gochart.Style{StrokeWidth: 1.5, StrokeColor: col}
}

func parseTimes(xs []string) ([]time.Time, error) {
	out := make([]time.Time, len(xs))
	for i, s := range xs {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("%w: x value %q is not a timestamp", ErrUnsupported, s)
		}
		out[i] = ts
	}
	return out, nil
}

func axisTitle(a *Axis) string {
	if a == nil || a.Title == nil {
		return ""
	}
	return a.Title.Text
}
