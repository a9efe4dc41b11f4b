/*
NAME
  trajectory.go

DESCRIPTION
  trajectory.go renders a single marker's trajectory, decoded by
  container/c3d, as a 2-D line plot of one coordinate pair across
  frames.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package plot renders decoded C3D point trajectories to image files.
package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Sample is one frame's (a, b) coordinate pair for a single marker,
// e.g. (X, Y) or (X, Z).
type Sample struct {
	A, B float64
}

// Trajectory renders samples as a connected line plot and saves it to
// path in the image format that plot.Plot.Save infers from path's
// extension.
func Trajectory(label string, samples []Sample, title, xLabel, yLabel, path string) error {
	if len(samples) == 0 {
		return fmt.Errorf("plot: no samples for %q", label)
	}

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = s.A
		pts[i].Y = s.B
	}

	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("plot: could not create plot for %q: %w", label, err)
	}
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plot: could not build line for %q: %w", label, err)
	}
	p.Add(line)
	p.Legend.Add(label, line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("plot: could not save %q: %w", path, err)
	}
	return nil
}
