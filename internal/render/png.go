// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package render

import (
	"image"
	"io"

	ls "github.com/db47h/logicsim"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// padding around the chip, in cells.
const padding = 1

type canvas struct {
	dc      *gg.Context
	cfg     Config
	cs      float64
	originX int
	originY int
}

// center returns the pixel coordinates of the center of cell p.
func (cv *canvas) center(p ls.Point) (float64, float64) {
	return (float64(p.X-cv.originX) + 0.5) * cv.cs, (float64(p.Y-cv.originY) + 0.5) * cv.cs
}

func (cv *canvas) state(high bool) string {
	if high {
		return cv.cfg.Active
	}
	return cv.cfg.Inactive
}

// Image draws c and returns the resulting image.
//
func Image(c *ls.Chip, cfg Config) (image.Image, error) {
	dc, err := draw(c, cfg)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// PNG draws c and writes it to w in PNG format.
//
func PNG(w io.Writer, c *ls.Chip, cfg Config) error {
	dc, err := draw(c, cfg)
	if err != nil {
		return err
	}
	return errors.Wrap(dc.EncodePNG(w), "encode png")
}

func draw(c *ls.Chip, cfg Config) (*gg.Context, error) {
	min, max, ok := Bounds(c)
	if !ok {
		return nil, errors.Errorf("chip %q: nothing to draw", c.Name())
	}
	if cfg.CellSize < 4 {
		return nil, errors.Errorf("cell size %d too small", cfg.CellSize)
	}
	// chip component bodies may extend below their last pin.
	c.Components(func(_ int, cc *ls.Component) bool {
		if y := cc.Position().Y + height(cc) - 1; y > max.Y {
			max.Y = y
		}
		return true
	})
	w := (max.X - min.X + 1 + 2*padding) * cfg.CellSize
	h := (max.Y - min.Y + 1 + 2*padding) * cfg.CellSize

	cv := &canvas{
		dc:      gg.NewContext(w, h),
		cfg:     cfg,
		cs:      float64(cfg.CellSize),
		originX: min.X - padding,
		originY: min.Y - padding,
	}

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse font")
	}
	cv.dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    cv.cs * 0.6,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	cv.dc.SetHexColor(cfg.Background)
	cv.dc.Clear()
	if cfg.ShowGrid {
		cv.grid(w/cfg.CellSize, h/cfg.CellSize)
	}
	c.Wires(func(_ int, wr *ls.Wire) bool {
		cv.wire(wr)
		return true
	})
	c.Components(func(_ int, cc *ls.Component) bool {
		cv.component(cc)
		return true
	})
	return cv.dc, nil
}

func (cv *canvas) grid(cols, rows int) {
	cv.dc.SetHexColor(cv.cfg.Grid)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cv.dc.DrawPoint((float64(x)+0.5)*cv.cs, (float64(y)+0.5)*cv.cs, 1)
		}
	}
	cv.dc.Fill()
}

func (cv *canvas) wire(w *ls.Wire) {
	x0, y0 := cv.center(w.From)
	x1, y1 := cv.center(w.To)
	if w.Visited {
		cv.dc.SetHexColor(cv.state(w.High()))
	} else {
		cv.dc.SetHexColor(cv.cfg.Wire)
	}
	cv.dc.SetLineWidth(cv.cs / 5)
	cv.dc.SetLineCapRound()
	cv.dc.DrawLine(x0, y0, x1, y1)
	cv.dc.Stroke()
}

func (cv *canvas) pins(cc *ls.Component) {
	dots := func(ps []ls.Pin) {
		for i := range ps {
			x, y := cv.center(ps[i].Position)
			cv.dc.SetHexColor(cv.state(ps[i].High()))
			cv.dc.DrawCircle(x, y, cv.cs/6)
			cv.dc.Fill()
		}
	}
	dots(cc.Inputs())
	dots(cc.Outputs())
}

func (cv *canvas) component(cc *ls.Component) {
	x, y := cv.center(cc.Position())
	r := cv.cs * 0.4
	switch cc.Kind() {
	case ls.Switch:
		cv.dc.SetHexColor(cv.state(cc.On()))
		cv.dc.DrawRectangle(x-r, y-r, 2*r, 2*r)
		cv.dc.Fill()
		cv.dc.SetHexColor(cv.cfg.Body)
		cv.dc.DrawRectangle(x-r, y-r, 2*r, 2*r)
		cv.dc.SetLineWidth(1)
		cv.dc.Stroke()
	case ls.Output:
		cv.dc.SetHexColor(cv.state(cc.Level()))
		cv.dc.DrawCircle(x, y, r)
		cv.dc.Fill()
		cv.dc.SetHexColor(cv.cfg.Body)
		cv.dc.DrawCircle(x, y, r)
		cv.dc.SetLineWidth(1)
		cv.dc.Stroke()
	default:
		// gates span their input pins
		top, bottom := y-r, y+r
		if cc.Kind() != ls.Not {
			top, bottom = y-cv.cs-r/2, y+cv.cs+r/2
		}
		if cc.Kind() == ls.ChipKind {
			top, bottom = y-r, y+float64(height(cc)-1)*cv.cs+r
		}
		cv.dc.SetHexColor(cv.cfg.Background)
		cv.dc.DrawRectangle(x-r, top, 2*r, bottom-top)
		cv.dc.Fill()
		cv.dc.SetHexColor(cv.cfg.Body)
		cv.dc.DrawRectangle(x-r, top, 2*r, bottom-top)
		cv.dc.SetLineWidth(1)
		cv.dc.Stroke()
		cv.dc.DrawStringAnchored(label(cc), x, (top+bottom)/2, 0.5, 0.5)
	}
	cv.pins(cc)
}
