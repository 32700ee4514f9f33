// Package chart renders price history as a three-panel PNG: book prices,
// bid-ask spread, and trade executions on a shared time axis.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"orderbook-pricechart/internal/normalization"
)

// ErrEmptySeries is returned when there is nothing to render.
var ErrEmptySeries = errors.New("empty series: nothing to render")

// Panel colors, matching the engine's reference charts.
var (
	colorBid    = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff} // green
	colorAsk    = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff} // red
	colorMid    = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff} // blue
	colorSpread = color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff} // purple
	colorTrade  = color.NRGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0x99} // orange, translucent
	colorBand   = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x33} // gray bid-ask band
	colorArea   = color.NRGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0x4d} // spread area fill
)

// Options controls the rendered figure.
type Options struct {
	WidthInches  float64 // figure width; default 10
	HeightInches float64 // figure height; default 8
	DPI          int     // raster resolution; default 150
}

// DefaultOptions returns the engine's reference figure geometry.
func DefaultOptions() Options {
	return Options{WidthInches: 10, HeightInches: 8, DPI: 150}
}

func (o *Options) applyDefaults() {
	if o.WidthInches <= 0 {
		o.WidthInches = 10
	}
	if o.HeightInches <= 0 {
		o.HeightInches = 8
	}
	if o.DPI <= 0 {
		o.DPI = 150
	}
}

// Renderer draws price history charts.
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts Options) *Renderer {
	opts.applyDefaults()
	return &Renderer{opts: opts}
}

// RenderFile renders the series and writes a PNG to path.
func (r *Renderer) RenderFile(s *normalization.Series, path string) error {
	if s == nil || s.Len() == 0 {
		return ErrEmptySeries
	}

	pricePanel, err := r.pricePanel(s)
	if err != nil {
		return fmt.Errorf("build price panel: %w", err)
	}
	spreadPanel, err := r.spreadPanel(s)
	if err != nil {
		return fmt.Errorf("build spread panel: %w", err)
	}
	tradePanel, err := r.tradePanel(s)
	if err != nil {
		return fmt.Errorf("build trade panel: %w", err)
	}

	panels := []*plot.Plot{pricePanel, spreadPanel, tradePanel}
	alignTimeAxis(panels, s)

	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(r.opts.WidthInches)*vg.Inch, vg.Length(r.opts.HeightInches)*vg.Inch),
		vgimg.UseDPI(r.opts.DPI),
	)
	dc := draw.New(img)

	rows := [][]*plot.Plot{{pricePanel}, {spreadPanel}, {tradePanel}}
	tiles := draw.Tiles{
		Rows: 3,
		Cols: 1,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(rows, tiles, dc)
	for i := range rows {
		rows[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

// pricePanel draws bid/ask/mid lines with the shaded bid-ask band.
func (r *Renderer) pricePanel(s *normalization.Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Order Book Prices Over Time"
	p.Y.Label.Text = "Price ($)"
	p.Add(plotter.NewGrid())

	// Band is drawn first so the lines sit on top of it.
	band, err := bidAskBand(s)
	if err != nil {
		return nil, err
	}
	if band != nil {
		p.Add(band)
	}

	bidLine, bidPts, err := markedLine(s.TimeMs, s.Bid, colorBid, nil)
	if err != nil {
		return nil, err
	}
	askLine, askPts, err := markedLine(s.TimeMs, s.Ask, colorAsk, nil)
	if err != nil {
		return nil, err
	}
	midLine, midPts, err := markedLine(s.TimeMs, s.Mid, colorMid, []vg.Length{vg.Points(5), vg.Points(3)})
	if err != nil {
		return nil, err
	}

	p.Add(bidLine, bidPts, askLine, askPts, midLine, midPts)
	p.Legend.Add("Bid", bidLine, bidPts)
	p.Legend.Add("Ask", askLine, askPts)
	p.Legend.Add("Mid", midLine, midPts)
	p.Legend.Top = true

	return p, nil
}

// spreadPanel draws the spread line with an area fill down to zero.
func (r *Renderer) spreadPanel(s *normalization.Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Bid-Ask Spread"
	p.Y.Label.Text = "Spread ($)"
	p.Add(plotter.NewGrid())

	area, err := spreadArea(s)
	if err != nil {
		return nil, err
	}
	if area != nil {
		p.Add(area)
	}

	line, pts, err := markedLine(s.TimeMs, s.Spread, colorSpread, nil)
	if err != nil {
		return nil, err
	}
	p.Add(line, pts)

	// Area fill starts at zero.
	p.Y.Min = 0

	return p, nil
}

// tradePanel draws trade prints as bubbles sized by quantity.
func (r *Renderer) tradePanel(s *normalization.Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Trade Executions (bubble size = quantity)"
	p.X.Label.Text = "Time (ms)"
	p.Y.Label.Text = "Trade Price ($)"
	p.Add(plotter.NewGrid())

	if len(s.Trades) == 0 {
		return p, nil
	}

	xys := make(plotter.XYs, len(s.Trades))
	for i, t := range s.Trades {
		xys[i].X = t.TimeMs
		xys[i].Y = t.PriceUS
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle = draw.GlyphStyle{
		Color:  colorTrade,
		Radius: vg.Points(3),
		Shape:  draw.CircleGlyph{},
	}

	radii := bubbleRadii(s.Trades)
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  colorTrade,
			Radius: radii[i],
			Shape:  draw.CircleGlyph{},
		}
	}

	p.Add(scatter)
	p.Legend.Add("Trade (size=qty)", scatter)
	p.Legend.Top = true

	return p, nil
}

// markedLine builds a line with circle markers at each observation.
func markedLine(xs, ys []float64, c color.Color, dashes []vg.Length) (*plotter.Line, *plotter.Scatter, error) {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i].X = xs[i]
		xys[i].Y = ys[i]
	}

	line, pts, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, nil, err
	}
	line.Color = c
	line.Dashes = dashes
	pts.GlyphStyle = draw.GlyphStyle{
		Color:  c,
		Radius: vg.Points(1.5),
		Shape:  draw.CircleGlyph{},
	}
	return line, pts, nil
}

// bidAskBand fills the region between the bid and ask lines.
func bidAskBand(s *normalization.Series) (*plotter.Polygon, error) {
	n := s.Len()
	if n < 2 {
		return nil, nil
	}

	ring := make(plotter.XYs, 0, 2*n)
	for i := 0; i < n; i++ {
		ring = append(ring, plotter.XY{X: s.TimeMs[i], Y: s.Bid[i]})
	}
	for i := n - 1; i >= 0; i-- {
		ring = append(ring, plotter.XY{X: s.TimeMs[i], Y: s.Ask[i]})
	}

	poly, err := plotter.NewPolygon(ring)
	if err != nil {
		return nil, err
	}
	poly.Color = colorBand
	poly.LineStyle.Color = color.Transparent
	return poly, nil
}

// spreadArea fills the region between the spread line and zero.
func spreadArea(s *normalization.Series) (*plotter.Polygon, error) {
	n := s.Len()
	if n < 2 {
		return nil, nil
	}

	ring := make(plotter.XYs, 0, n+2)
	ring = append(ring, plotter.XY{X: s.TimeMs[0], Y: 0})
	for i := 0; i < n; i++ {
		ring = append(ring, plotter.XY{X: s.TimeMs[i], Y: s.Spread[i]})
	}
	ring = append(ring, plotter.XY{X: s.TimeMs[n-1], Y: 0})

	poly, err := plotter.NewPolygon(ring)
	if err != nil {
		return nil, err
	}
	poly.Color = colorArea
	poly.LineStyle.Color = color.Transparent
	return poly, nil
}

// bubbleRadii maps trade quantities to glyph radii. Glyph area is
// proportional to quantity, so radius scales with its square root.
func bubbleRadii(trades []normalization.TradePoint) []vg.Length {
	const (
		minR = 2.0
		maxR = 9.0
	)

	minQ, maxQ := trades[0].Qty, trades[0].Qty
	for _, t := range trades {
		if t.Qty < minQ {
			minQ = t.Qty
		}
		if t.Qty > maxQ {
			maxQ = t.Qty
		}
	}

	radii := make([]vg.Length, len(trades))
	for i, t := range trades {
		if maxQ <= minQ {
			radii[i] = vg.Points((minR + maxR) / 2)
			continue
		}
		frac := math.Sqrt((t.Qty - minQ) / (maxQ - minQ))
		radii[i] = vg.Points(minR + frac*(maxR-minR))
	}
	return radii
}

// alignTimeAxis forces all panels onto the same X range so they stay
// visually aligned after plot.Align.
func alignTimeAxis(panels []*plot.Plot, s *normalization.Series) {
	start, end := s.TimeRange()
	if start == end {
		// Single observation: give the axis some width.
		start -= 1
		end += 1
	}
	for _, p := range panels {
		p.X.Min = start
		p.X.Max = end
	}
}
