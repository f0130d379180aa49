package main

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	exportMargin    = 60.0
	exportFontSize  = 14.0
	exportArrowSize = 10.0
)

// ExportToPNG renders the diagram to a PNG image: boundaries as dashed
// rectangles behind everything, components as outlined boxes with their
// labels, flows as Bézier curves with an arrowhead at the target handle.
func (d *Diagram) ExportToPNG(filename string) error {
	if len(d.nodes) == 0 {
		return fmt.Errorf("nothing to export")
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range d.nodes {
		n := &d.nodes[i]
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X+n.Width)
		maxY = math.Max(maxY, n.Y+n.Height)
	}

	width := int(maxX - minX + 2*exportMargin)
	height := int(maxY - minY + 2*exportMargin)
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    exportFontSize,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	ox := exportMargin - minX
	oy := exportMargin - minY

	// Boundaries first so components and flows draw over them.
	for i := range d.nodes {
		n := &d.nodes[i]
		if n.Kind != KindBoundary {
			continue
		}
		d.drawBoundaryPNG(dc, n, ox, oy)
	}
	for i := range d.flows {
		d.drawFlowPNG(dc, &d.flows[i], ox, oy)
	}
	for i := range d.nodes {
		n := &d.nodes[i]
		if n.Kind != KindComponent {
			continue
		}
		d.drawComponentPNG(dc, n, ox, oy)
	}

	return dc.SavePNG(filename)
}

func (d *Diagram) drawBoundaryPNG(dc *gg.Context, n *Node, ox, oy float64) {
	dc.SetRGB(0.75, 0.2, 0.2)
	dc.SetLineWidth(1.5)
	dc.SetDash(8, 6)
	dc.DrawRectangle(n.X+ox, n.Y+oy, n.Width, n.Height)
	dc.Stroke()
	dc.SetDash()
	if n.Label != "" {
		dc.DrawStringAnchored(n.Label, n.X+ox+8, n.Y+oy+exportFontSize, 0, 0)
	}
}

func (d *Diagram) drawComponentPNG(dc *gg.Context, n *Node, ox, oy float64) {
	dc.SetRGB(0.97, 0.97, 1)
	dc.DrawRoundedRectangle(n.X+ox, n.Y+oy, n.Width, n.Height, 6)
	dc.Fill()
	dc.SetRGB(0.15, 0.15, 0.3)
	dc.SetLineWidth(2)
	dc.DrawRoundedRectangle(n.X+ox, n.Y+oy, n.Width, n.Height, 6)
	dc.Stroke()

	label := n.Label
	if label == "" {
		label = "component"
	}
	cx, cy := n.Center()
	dc.DrawStringAnchored(label, cx+ox, cy+oy, 0.5, 0.35)
}

func (d *Diagram) drawFlowPNG(dc *gg.Context, f *Flow, ox, oy float64) {
	src := d.NodeByID(f.Source)
	dst := d.NodeByID(f.Target)
	if src == nil || dst == nil {
		return
	}
	x0, y0 := HandlePosition(src, f.SourceHandle)
	x3, y3 := HandlePosition(dst, f.TargetHandle)
	ext := curveExtent(x0, y0, x3, y3)
	nx0, ny0 := handleNormal(f.SourceHandle)
	nx3, ny3 := handleNormal(f.TargetHandle)
	x1, y1 := x0+nx0*ext, y0+ny0*ext
	x2, y2 := x3+nx3*ext, y3+ny3*ext

	dc.SetRGB(0.25, 0.25, 0.25)
	dc.SetLineWidth(1.5)
	dc.MoveTo(x0+ox, y0+oy)
	dc.CubicTo(x1+ox, y1+oy, x2+ox, y2+oy, x3+ox, y3+oy)
	dc.Stroke()

	// Arrowhead at the target, pointing in from the last control point.
	angle := math.Atan2(y3-y2, x3-x2)
	left := angle + math.Pi*5/6
	right := angle - math.Pi*5/6
	dc.MoveTo(x3+ox, y3+oy)
	dc.LineTo(x3+ox+exportArrowSize*math.Cos(left), y3+oy+exportArrowSize*math.Sin(left))
	dc.LineTo(x3+ox+exportArrowSize*math.Cos(right), y3+oy+exportArrowSize*math.Sin(right))
	dc.ClosePath()
	dc.Fill()

	if f.Label != "" {
		mx, my, ok := d.FlowMidpoint(f)
		if ok {
			dc.DrawStringAnchored(f.Label, mx+ox, my+oy-6, 0.5, 0)
		}
	}
}
