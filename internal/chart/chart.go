// Package chart renders plot requests to self-contained HTML pages that embed
// an ECharts option (series data, chart kind and axis labels).
package chart

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"

	"nlcalc/internal/calcerr"
	"nlcalc/internal/expr"
	"nlcalc/internal/stats"
)

// Kind names a chart kind.
type Kind string

const (
	Function  Kind = "function"
	Scatter   Kind = "scatter"
	Histogram Kind = "histogram"
)

// Artifact describes a rendered chart file.
type Artifact struct {
	Kind    Kind   `json:"kind"`
	Path    string `json:"path"`
	Title   string `json:"title"`
	Samples int    `json:"samples"`
	Points  int    `json:"points"`
}

// renderer is satisfied by every go-echarts chart.
type renderer interface {
	Render(w io.Writer) error
}

// Renderer writes one file per chart under Dir.
type Renderer struct {
	dir string
}

// NewRenderer returns a Renderer writing into dir. The directory is created
// on first use.
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Dir returns the output directory.
func (r *Renderer) Dir() string {
	return r.dir
}

// Function renders a sampled function as a line chart. samples is the number
// of points requested; len(points) is what was actually plotted.
func (r *Renderer) Function(ctx context.Context, body string, samples int, points []expr.Point) (Artifact, error) {
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		data[i] = opts.LineData{Value: []float64{p.X, p.Y}}
	}

	title := "y = " + body
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "value"}),
	)
	line.AddSeries(body, data)

	a := Artifact{Kind: Function, Title: title, Samples: samples, Points: len(points)}
	return r.write(ctx, a, line)
}

// Scatter renders paired x, y values.
func (r *Renderer) Scatter(ctx context.Context, x, y []float64) (Artifact, error) {
	if len(x) != len(y) {
		return Artifact{}, calcerr.New(calcerr.Extraction, "scatter has %d x values and %d y values", len(x), len(y))
	}

	data := make([]opts.ScatterData, len(x))
	for i := range x {
		data[i] = opts.ScatterData{Value: []float64{x[i], y[i]}}
	}

	title := fmt.Sprintf("Scatter plot (%d points)", len(x))
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "value"}),
	)
	sc.AddSeries("points", data)

	a := Artifact{Kind: Scatter, Title: title, Samples: len(x), Points: len(x)}
	return r.write(ctx, a, sc)
}

// Histogram renders bucket counts as a bar chart.
func (r *Renderer) Histogram(ctx context.Context, data []float64) (Artifact, error) {
	bins, err := stats.Histogram(data)
	if err != nil {
		return Artifact{}, err
	}

	labels := make([]string, len(bins))
	bars := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = fmt.Sprintf("%s–%s", label(b.Low), label(b.High))
		bars[i] = opts.BarData{Value: b.Count}
	}

	title := fmt.Sprintf("Histogram (%d values)", len(data))
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "frequency"}),
	)
	bar.SetXAxis(labels).AddSeries("frequency", bars)

	a := Artifact{Kind: Histogram, Title: title, Samples: len(data), Points: len(data)}
	return r.write(ctx, a, bar)
}

func label(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// write renders c to a temporary file and renames it into place so readers
// never see a partial chart.
func (r *Renderer) write(ctx context.Context, a Artifact, c renderer) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, calcerr.Wrap(calcerr.IO, err, "write chart")
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return Artifact{}, calcerr.Wrap(calcerr.IO, err, "create chart directory")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Artifact{}, calcerr.Wrap(calcerr.IO, err, "generate chart name")
	}
	path := filepath.Join(r.dir, fmt.Sprintf("%s_%s.html", a.Kind, id))

	tmp, err := os.CreateTemp(r.dir, ".chart-*.html")
	if err != nil {
		return Artifact{}, calcerr.Wrap(calcerr.IO, err, "create chart file")
	}
	defer os.Remove(tmp.Name())

	if err := c.Render(tmp); err != nil {
		tmp.Close()
		return Artifact{}, calcerr.Wrap(calcerr.IO, err, "render chart")
	}
	// CreateTemp creates files with mode 0600.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return Artifact{}, calcerr.Wrap(calcerr.IO, err, "chmod chart file")
	}
	if err := tmp.Close(); err != nil {
		return Artifact{}, calcerr.Wrap(calcerr.IO, err, "close chart file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return Artifact{}, calcerr.Wrap(calcerr.IO, err, "write chart")
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	a.Path = path
	return a, nil
}
