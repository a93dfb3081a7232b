package main

import (
	"image/color"
	"log"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/celskeggs/uartsim/sim/component"
)

const microsecond = 1000.0

func buildLineRow(events []component.TraceEvent, endTime float64) []Span {
	lowColor := color.RGBA{64, 64, 192, 255}
	highColor := color.RGBA{208, 240, 208, 255}

	var spans []Span
	level := true
	start := 0.0
	for _, ev := range events {
		if ev.Channel != "tx/line" {
			continue
		}
		at := float64(ev.Timestamp.Nanoseconds()) / microsecond
		newLevel := ev.Value == "1"
		if newLevel == level {
			continue
		}
		spanColor := highColor
		if !level {
			spanColor = lowColor
		}
		spans = append(spans, Span{Start: start, End: at, Color: spanColor})
		level = newLevel
		start = at
	}
	spanColor := highColor
	if !level {
		spanColor = lowColor
	}
	spans = append(spans, Span{Start: start, End: endTime, Color: spanColor})
	return spans
}

func buildFrameRow(events []component.TraceEvent) []Event {
	var out []Event
	for i, ev := range events {
		switch ev.Channel {
		case "tx/accept":
			out = append(out, Event{
				Time: float64(ev.Timestamp.Nanoseconds()) / microsecond,
				Glyph: draw.GlyphStyle{
					Color:  color.Black,
					Radius: vg.Points(4),
					Shape:  draw.PyramidGlyph{},
				},
			})
		case "rx/frame":
			frameColor := color.Color(color.RGBA{64, 160, 64, 255})
			for j := i + 1; j < len(events) && events[j].Timestamp == ev.Timestamp; j++ {
				if events[j].Channel == "rx/frame_error" || events[j].Channel == "rx/parity_error" {
					frameColor = color.RGBA{208, 32, 32, 255}
				}
			}
			out = append(out, Event{
				Time: float64(ev.Timestamp.Nanoseconds()) / microsecond,
				Glyph: draw.GlyphStyle{
					Color:  frameColor,
					Radius: vg.Points(4),
					Shape:  draw.RingGlyph{},
				},
			})
		}
	}
	return out
}

func GeneratePlot(tracePath string) (*plot.Plot, error) {
	events, err := component.DecodeTrace(tracePath)
	if err != nil {
		return nil, err
	}
	endTime := 0.0
	if len(events) > 0 {
		endTime = float64(events[len(events)-1].Timestamp.Nanoseconds()) / microsecond
	}

	p := plot.New()
	p.Title.Text = "Serial Line Waveform"
	p.X.Label.Text = "Microseconds"

	p.Add(NewWaveRow(buildLineRow(events, endTime), nil, 0, vg.Points(18)))
	p.Add(NewWaveRow(nil, buildFrameRow(events), 1, vg.Points(18)))
	p.NominalY("TX Line", "Frames")
	return p, nil
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <trace.csv> [--save out.png] [--export out.png]", os.Args[0])
	}
	savePath := ""
	exportPath := ""
	for i := 2; i < len(os.Args); i++ {
		if os.Args[i] == "--save" {
			savePath = os.Args[i+1]
		} else if os.Args[i] == "--export" {
			exportPath = os.Args[i+1]
		}
	}

	p, err := GeneratePlot(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	if savePath != "" {
		if err := SavePlot(p, vg.Points(1440), vg.Points(360), savePath, "png"); err != nil {
			log.Fatal(err)
		}
		log.Printf("Plot saved to %s", savePath)
		return
	}
	if err := DisplayPlot(p, exportPath); err != nil {
		log.Fatal(err)
	}
}
