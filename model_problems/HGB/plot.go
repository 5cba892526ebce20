package HGB

import (
	"math"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/shearbox/grid"
)

// Profile samples density, dVy and Bz along x1 through the first cell row of
// the block owning the global (0, 0, 0) cell
func (c *HGB) Profile(d *grid.Domain) (X, Rho, DVy, Bz []float64) {
	g, _, j, k := d.GridOwning(0, 0, 0)
	if g == nil {
		return
	}
	for i := g.Is; i <= g.Ie; i++ {
		x1, _, _ := g.CCPos(i, j, k)
		U := g.Cell(i, j, k)
		X = append(X, x1)
		Rho = append(Rho, U.D)
		DVy = append(DVy, c.DVy(g, i, j, k))
		Bz = append(Bz, U.B3c)
	}
	return
}

// PlotProfile draws the x1 profile of density (white), dVy (red) and Bz
// (green), each scaled into [-1,1]
func (c *HGB) PlotProfile(d *grid.Domain, graphDelay ...time.Duration) {
	X, Rho, DVy, Bz := c.Profile(d)
	if len(X) < 2 {
		return
	}
	ch := chart2d.NewChart2D(float32(X[0]), float32(X[len(X)-1]), -1.1, 1.1,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	ch.AddLine(ProfileLine(X, Rho), utils2.WHITE)
	ch.AddLine(ProfileLine(X, DVy), utils2.RED)
	if c.MHD {
		ch.AddLine(ProfileLine(X, Bz), utils2.GREEN)
	}
	if len(graphDelay) != 0 {
		time.Sleep(graphDelay[0])
	}
}

// ProfileLine converts a profile into line segments, with f normalized by its
// largest magnitude
func ProfileLine(X, f []float64) (line []float32) {
	var fmax float64
	for _, v := range f {
		fmax = math.Max(fmax, math.Abs(v))
	}
	scale := 1.
	if fmax > 0 {
		scale = 1. / fmax
	}
	for i := 0; i < len(X)-1; i++ {
		line = append(line,
			float32(X[i]), float32(f[i]*scale),
			float32(X[i+1]), float32(f[i+1]*scale))
	}
	return
}
