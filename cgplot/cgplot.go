/*
 * cgplot.go, part of gocg.
 *
 * Copyright 2024 The gocg developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package cgplot renders fitted force curves to image files.
package cgplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//curve bundles points with their vertical error bars, as the plotter
//error-bar constructor wants them.
type curve struct {
	plotter.XYs
	plotter.YErrors
}

func newCurve(x, y, yerr []float64) (*curve, error) {
	if len(x) != len(y) || (yerr != nil && len(yerr) != len(x)) {
		return nil, fmt.Errorf("ForceCurve: mismatched data lengths")
	}
	c := &curve{
		XYs:     make(plotter.XYs, len(x)),
		YErrors: make(plotter.YErrors, len(x)),
	}
	for i := range x {
		c.XYs[i].X = x[i]
		c.XYs[i].Y = y[i]
		if yerr != nil {
			c.YErrors[i].Low = yerr[i]
			c.YErrors[i].High = yerr[i]
		}
	}
	return c, nil
}

//ForceCurve plots a fitted force curve with its per-point error bars and
//saves it to filename. The image format is taken from the file extension
//(png, pdf, svg and a few others). yerr may be nil for a bare line.
func ForceCurve(filename, title string, x, y, yerr []float64) error {
	data, err := newCurve(x, y, yerr)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = vg.Millimeter * 3
	p.X.Label.Text = "r"
	p.Y.Label.Text = "force"
	p.Add(plotter.NewGrid())
	line, err := plotter.NewLine(data.XYs)
	if err != nil {
		return fmt.Errorf("ForceCurve: %v", err)
	}
	line.Color = color.RGBA{B: 255, A: 255}
	p.Add(line)
	if yerr != nil {
		bars, err := plotter.NewYErrorBars(data)
		if err != nil {
			return fmt.Errorf("ForceCurve: %v", err)
		}
		p.Add(bars)
	}
	if err := p.Save(14*vg.Centimeter, 10*vg.Centimeter, filename); err != nil {
		return fmt.Errorf("ForceCurve: %v", err)
	}
	return nil
}
