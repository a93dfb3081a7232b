package main

import (
	"image"
	"image/png"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PlotWidget renders a plot into a window-sized raster and redraws it in the background
// whenever the window is resized.
type PlotWidget struct {
	Plot       *plot.Plot
	DPI        int
	ExportPath string
	AdjWidth   vg.Length
	AdjHeight  vg.Length

	Busy  bool
	Ready chan image.Image
	Image image.Image
}

func (p *PlotWidget) GenImage(w, h vg.Length) image.Image {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(p.DPI))
	p.Plot.Draw(draw.New(c))
	return c.Image()
}

func (p *PlotWidget) OnReady(ready image.Image) {
	if !p.Busy {
		panic("should be busy")
	}
	p.Image = ready
	p.Busy = false
}

func (p *PlotWidget) GetImage(size image.Point) image.Image {
	wAdjusted := vg.Points(float64(size.X) * vg.Inch.Points() / float64(p.DPI))
	hAdjusted := vg.Points(float64(size.Y) * vg.Inch.Points() / float64(p.DPI))
	if p.Image == nil {
		p.Image = p.GenImage(wAdjusted, hAdjusted)
		p.AdjWidth = wAdjusted
		p.AdjHeight = hAdjusted
	} else if (p.AdjWidth != wAdjusted || p.AdjHeight != hAdjusted) && !p.Busy {
		p.Busy = true
		go func() {
			p.Ready <- p.GenImage(wAdjusted, hAdjusted)
		}()
		p.AdjWidth = wAdjusted
		p.AdjHeight = hAdjusted
	}
	return p.Image
}

func (p *PlotWidget) Layout(gtx layout.Context) layout.Dimensions {
	defer op.Save(gtx.Ops).Load()
	paint.NewImageOp(p.GetImage(gtx.Constraints.Max)).Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	return layout.Dimensions{Size: gtx.Constraints.Max}
}

func (p *PlotWidget) Export() {
	if p.ExportPath == "" || p.Image == nil {
		return
	}
	f, err := os.Create(p.ExportPath)
	if err != nil {
		log.Fatal(err)
	}
	err = png.Encode(f, p.Image)
	if err != nil {
		log.Fatal(err)
	}
	err = f.Close()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Image exported to %s", p.ExportPath)
}

// DisplayPlot opens an interactive window showing the plot. Q or Escape closes it; E
// exports the current raster to exportPath if one was given.
func DisplayPlot(p *plot.Plot, exportPath string) error {
	plotWidget := &PlotWidget{
		Plot:       p,
		DPI:        128,
		ExportPath: exportPath,
		Ready:      make(chan image.Image),
	}

	go func() {
		win := app.NewWindow(
			app.Title("Waveform Viewer"),
			app.Size(
				unit.Px(1024),
				unit.Px(512),
			),
		)
		defer win.Close()

		for {
			select {
			case ready := <-plotWidget.Ready:
				plotWidget.OnReady(ready)
				win.Invalidate()
			case e := <-win.Events():
				switch e := e.(type) {
				case system.FrameEvent:
					ops := new(op.Ops)
					gtx := layout.NewContext(ops, e)
					layout.UniformInset(unit.Dp(20)).Layout(gtx, plotWidget.Layout)
					e.Frame(ops)
				case key.Event:
					switch e.Name {
					case "Q", key.NameEscape:
						win.Close()
					case "E":
						if e.State == key.Press {
							plotWidget.Export()
						}
					}
				case system.DestroyEvent:
					os.Exit(0)
				}
			}
		}
	}()

	app.Main()
	return nil
}
