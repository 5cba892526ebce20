package HGB

import (
	"math"

	"github.com/notargets/shearbox/grid"
	"github.com/notargets/shearbox/history"
)

// Potential is the tidal potential of the shearing box, with vertical
// gravity when enabled
func (c *HGB) Potential(x1, x2, x3 float64) (phi float64) {
	if !c.FARGO {
		phi -= 1.5 * c.Omega * c.Omega * x1 * x1
	}
	if c.VerticalGravity {
		phi += 0.5 * c.Omega * c.Omega * x3 * x3
	}
	return
}

// DVy is the y velocity with the background shear removed
func (c *HGB) DVy(g *grid.Grid, i, j, k int) float64 {
	U := g.Cell(i, j, k)
	if c.FARGO {
		return U.M2 / U.D
	}
	x1, _, _ := g.CCPos(i, j, k)
	return U.M2/U.D + 1.5*c.Omega*x1
}

// RhoVxDVy is the Reynolds stress
func (c *HGB) RhoVxDVy(g *grid.Grid, i, j, k int) float64 {
	return g.Cell(i, j, k).M1 * c.DVy(g, i, j, k)
}

// RhoDVy2 is the kinetic energy in y velocity fluctuations
func (c *HGB) RhoDVy2(g *grid.Grid, i, j, k int) float64 {
	dVy := c.DVy(g, i, j, k)
	return g.Cell(i, j, k).D * dVy * dVy
}

// ETotal includes the tidal potential energy
func (c *HGB) ETotal(g *grid.Grid, i, j, k int) float64 {
	x1, x2, x3 := g.CCPos(i, j, k)
	U := g.Cell(i, j, k)
	return U.E + U.D*c.Potential(x1, x2, x3)
}

func (c *HGB) Bx(g *grid.Grid, i, j, k int) float64 { return g.Cell(i, j, k).B1c }
func (c *HGB) By(g *grid.Grid, i, j, k int) float64 { return g.Cell(i, j, k).B2c }
func (c *HGB) Bz(g *grid.Grid, i, j, k int) float64 { return g.Cell(i, j, k).B3c }

func (c *HGB) MaxwellStress(g *grid.Grid, i, j, k int) float64 {
	U := g.Cell(i, j, k)
	return -U.B1c * U.B2c
}

// DEw2 is the wave magnetic energy of the figure 9 shwave
func (c *HGB) DEw2(g *grid.Grid, i, j, k int) float64 {
	U := g.Cell(i, j, k)
	dBz := U.B3c - math.Sqrt(15./16.)/(2.*math.Pi)/math.Sqrt(4.*math.Pi)
	return U.B1c*U.B1c + U.B2c*U.B2c + dBz*dBz
}

// DBy is the real part of the By Fourier mode of the figure 11 shwave, whose
// radial wavenumber is swept by the shear
func (c *HGB) DBy(g *grid.Grid, i, j, k int) float64 {
	var (
		t   = g.Time
		fky = 2. * math.Pi / c.Ly
		fkx = -4.*math.Pi/c.Lx + 1.5*c.Omega*fky*t
		fkz = 2. * math.Pi / c.Lz
	)
	x1, x2, x3 := g.CCPos(i, j, k)
	dBy := 2. * (g.Cell(i, j, k).B2c - (0.2 - 0.15*c.Omega*t))
	return dBy * math.Cos(fkx*x1+fky*x2+fkz*x3)
}

// UserExpression returns the named derived quantity for special outputs, or
// nil when the name is not known
func (c *HGB) UserExpression(name string) history.Reducer {
	switch name {
	case "dVy":
		return history.ReducerFunc(c.DVy)
	}
	return nil
}
