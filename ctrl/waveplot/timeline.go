package main

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Span is one labeled interval on a waveform row, such as the body of a frame or a stretch
// of idle line.
type Span struct {
	Start float64
	End   float64
	Color color.Color
	Label string
}

// Event is one instantaneous occurrence on a waveform row, such as a byte acceptance or a
// frame completion.
type Event struct {
	Time  float64
	Glyph draw.GlyphStyle
}

// WaveRow renders one horizontal row of spans and events at a fixed Y location.
type WaveRow struct {
	Spans     []Span
	Events    []Event
	Location  float64
	Height    vg.Length
	BoxStyle  draw.LineStyle
	TextStyle draw.TextStyle
}

var _ plot.Plotter = &WaveRow{}

func NewWaveRow(spans []Span, events []Event, loc float64, height vg.Length) *WaveRow {
	return &WaveRow{
		Spans:    spans,
		Events:   events,
		Location: loc,
		Height:   height,
		BoxStyle: plotter.DefaultLineStyle,
		TextStyle: text.Style{
			Font:    font.From(plotter.DefaultFont, plotter.DefaultFontSize),
			XAlign:  draw.XCenter,
			YAlign:  draw.YCenter,
			Handler: plot.DefaultTextHandler,
		},
	}
}

func (w *WaveRow) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	y := trY(w.Location)
	if !c.ContainsY(y) {
		return
	}

	for _, span := range w.Spans {
		xStart, xEnd := trX(span.Start), trX(span.End)
		pts := []vg.Point{
			{X: xStart, Y: y - w.Height/2},
			{X: xEnd, Y: y - w.Height/2},
			{X: xEnd, Y: y + w.Height/2},
			{X: xStart, Y: y + w.Height/2},
			{X: xStart, Y: y - w.Height/2},
		}
		c.FillPolygon(span.Color, c.ClipPolygonX(pts[0:4]))
		c.StrokeLines(w.BoxStyle, c.ClipLinesX(pts)...)
		if span.Label != "" {
			c.FillText(w.TextStyle, vg.Point{
				X: (xStart + xEnd) / 2,
				Y: y,
			}, span.Label)
		}
	}

	for _, event := range w.Events {
		c.DrawGlyph(event.Glyph, vg.Point{
			X: trX(event.Time),
			Y: y,
		})
	}
}

type xyconv WaveRow

func (w *xyconv) Len() int {
	return len(w.Events) + len(w.Spans)*2
}

func (w *xyconv) XY(i int) (x, y float64) {
	if i < len(w.Events) {
		return w.Events[i].Time, w.Location
	} else {
		i -= len(w.Events)
	}
	if i < len(w.Spans) {
		return w.Spans[i].Start, w.Location
	} else {
		i -= len(w.Spans)
	}
	if i < len(w.Spans) {
		return w.Spans[i].End, w.Location
	} else {
		panic("invalid index")
	}
}

func (w *WaveRow) DataRange() (xmin, xmax, ymin, ymax float64) {
	return plotter.XYRange((*xyconv)(w))
}
