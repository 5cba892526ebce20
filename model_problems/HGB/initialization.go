package HGB

import (
	"math"

	"github.com/pkg/errors"

	"github.com/notargets/shearbox/grid"
	"github.com/notargets/shearbox/utils"
)

type FieldType uint8

const (
	FIELD_FROM_PERT         FieldType = iota // Field set by the perturbation
	FIELD_BZ_SIN                             // Bz = B0 sin(kx x1), zero net flux
	FIELD_BZ_UNIFORM                         // Bz = B0
	FIELD_HELICAL                            // B = (0, B0 cos(kx x1), B0 sin(kx x1)), zero net flux with helicity
	FIELD_TOROIDAL_VERTICAL                  // B = (0, B0/sqrt(2), B0/sqrt(2)), net toroidal and vertical flux
)

var FieldPrintNames = []string{
	"Field From Perturbation",
	"Zero Net Flux Vertical Field",
	"Uniform Vertical Field",
	"Zero Net Flux Helical Field",
	"Net Toroidal And Vertical Field",
}

func (ft FieldType) String() string {
	if int(ft) < len(FieldPrintNames) {
		return FieldPrintNames[ft]
	}
	return "Unknown Field"
}

func NewFieldType(ifield int) (ft FieldType, err error) {
	if ifield < 0 || ifield >= len(FieldPrintNames) {
		err = errors.Errorf("unable to use ifield = %d, must be in [0,%d]", ifield, len(FieldPrintNames)-1)
		return
	}
	ft = FieldType(ifield)
	return
}

type PertType uint8

const (
	_                    PertType = iota
	RANDOM                        // Random perturbations to P and V, as HGB
	EPICYCLIC                     // Uniform Vx = amp
	VORTICAL_SHWAVE               // Johnson & Gammie vortical shwave
	FP_DENSITY_WAVE               // Fromang & Papaloizou nonlinear density wave
	JGG_MHD_SHWAVE_FIG9           // JGG second MHD shwave test, initial values known to be wrong
	JGG_MHD_SHWAVE_FIG11          // JGG third MHD shwave test
)

var PertPrintNames = []string{
	"",
	"Random",
	"Epicyclic Wave",
	"Vortical Shwave",
	"Fromang Papaloizou Density Wave",
	"JGG MHD Shwave Figure 9",
	"JGG MHD Shwave Figure 11",
}

func (pt PertType) String() string {
	if pt > 0 && int(pt) < len(PertPrintNames) {
		return PertPrintNames[pt]
	}
	return "Unknown Perturbation"
}

func NewPertType(ipert int) (pt PertType, err error) {
	if ipert < 1 || ipert >= len(PertPrintNames) {
		err = errors.Errorf("unable to use ipert = %d, must be in [1,%d]", ipert, len(PertPrintNames)-1)
		return
	}
	pt = PertType(ipert)
	return
}

// cellState is the primitive state of one cell before conversion
type cellState struct {
	rd, rp        float64
	rvx, rvy, rvz float64
	rbx, rby, rbz float64
}

// InitializeGrid fills one block. Each block draws from its own generator,
// seeded from the global index of its first active cell.
func (c *HGB) InitializeGrid(d *grid.Domain, g *grid.Grid) (err error) {
	var (
		ixs, jxs, kxs = g.Start()
		rng           = utils.NewRan2(utils.Ran2Seed(ixs, jxs, kxs, d.Nx1, d.Nx2))
		field         = c.Field
		amp           = c.PerturbationAmp()
	)
	switch c.Pert {
	case JGG_MHD_SHWAVE_FIG9, JGG_MHD_SHWAVE_FIG11:
		field = FIELD_FROM_PERT
	case FP_DENSITY_WAVE:
		if c.fp == nil {
			return errors.New("FP wave table not loaded")
		}
	}
	utils.Logger().Debugw("initializing block", "grid", g.ID, "seed", utils.Ran2Seed(ixs, jxs, kxs, d.Nx1, d.Nx2))
	g.Cells(func(i, j, k int) {
		x1, x2, x3 := g.CCPos(i, j, k)
		s := c.perturb(g, rng, amp, i, x1, x2, x3)
		c.setConserved(g.Cell(i, j, k), s, x1)
		if c.MHD {
			c.setFaceFields(g, field, s, i, j, k, x1)
		}
	})
	if c.MHD {
		c.setCellCenteredFields(g)
	}
	return
}

func (c *HGB) perturb(g *grid.Grid, rng *utils.Ran2, amp float64, i int, x1, x2, x3 float64) (s cellState) {
	var (
		den, pres = c.Den, c.Pres
		kx, ky    = c.Kx, c.Ky
		kz        = c.Kz
		rval      float64
	)
	s.rd, s.rp = den, pres
	switch c.Pert {
	case RANDOM:
		rval = amp * (rng.Next() - 0.5)
		if c.Adiabatic {
			s.rp = pres * (1. + 2.*rval)
		} else {
			s.rd = den * (1. + 2.*rval)
		}
		// Perturbations to V/Cs are (1/5)amp/sqrt(Gamma), as HGB
		rval = amp * (rng.Next() - 0.5)
		s.rvx = 0.4 * rval * math.Sqrt(pres/den)
		rval = amp * (rng.Next() - 0.5)
		s.rvy = 0.4 * rval * math.Sqrt(pres/den)
		rval = amp * (rng.Next() - 0.5)
		s.rvz = 0.4 * rval * math.Sqrt(pres/den)
	case EPICYCLIC:
		s.rvx = amp
	case VORTICAL_SHWAVE:
		s.rvx = amp * math.Sin(kx*x1+ky*x2)
		s.rvy = -amp * (kx / ky) * math.Sin(kx*x1+ky*x2)
	case FP_DENSITY_WAVE:
		ig := i + g.Idisp
		s.rd = c.fp.D[ig]
		s.rvx = c.fp.Vx[ig]
		s.rvy = c.fp.Vy[ig] + 1.5*c.Omega*x1 // Subtract mean flow
	case JGG_MHD_SHWAVE_FIG9:
		// These are the published initial values, which do not reproduce the
		// published figure
		ph := kx*x1 + ky*x2 + kz*x3
		s.rd = den + 8.9525e-10*math.Cos(ph-math.Pi/4.)
		s.rvx = 8.16589e-8 * math.Cos(ph+math.Pi/4.)
		s.rvy = 8.70641e-8 * math.Cos(ph+math.Pi/4.)
		s.rvz = 0.762537e-8 * math.Cos(ph+math.Pi/4.)
		s.rbx = -1.08076e-7 * math.Cos(kx*(x1-0.5*g.Dx1)+ky*x2+kz*x3-math.Pi/4.)
		s.rby = 1.04172e-7 * math.Cos(kx*x1+ky*(x2-0.5*g.Dx2)+kz*x3-math.Pi/4.)
		s.rbz = -0.320324e-7 * math.Cos(kx*x1+ky*x2+kz*(x3-0.5*g.Dx3)-math.Pi/4.)
		s.rbz += (math.Sqrt(15.) / 16.) * (c.Omega / kz)
	case JGG_MHD_SHWAVE_FIG11:
		ph := kx*x1 + ky*x2 + kz*x3
		s.rd = den + 5.48082e-6*math.Cos(ph)
		s.rvx = -4.5856e-6 * math.Cos(ph)
		s.rvy = 2.29279e-6 * math.Cos(ph)
		s.rvz = 2.29279e-6 * math.Cos(ph)
		s.rbx = 5.48082e-7 * math.Cos(kx*(x1-0.5*g.Dx1)+ky*x2+kz*x3)
		s.rbx += 0.1
		s.rby = 1.0962e-6 * math.Cos(kx*x1+ky*(x2-0.5*g.Dx2)+kz*x3)
		s.rby += 0.2
	}
	return
}

// The background shear is carried in M2 unless the orbital advection scheme
// removes it
func (c *HGB) setConserved(U *grid.Cons, s cellState, x1 float64) {
	U.D = s.rd
	U.M1 = s.rd * s.rvx
	U.M2 = s.rd * s.rvy
	if !c.FARGO {
		U.M2 -= s.rd * (1.5 * c.Omega * x1)
	}
	U.M3 = s.rd * s.rvz
	if c.Adiabatic {
		U.E = s.rp/(c.Gamma-1.) + 0.5*(U.M1*U.M1+U.M2*U.M2+U.M3*U.M3)/s.rd
	}
}

func (c *HGB) setFaceFields(g *grid.Grid, field FieldType, s cellState, i, j, k int, x1 float64) {
	var (
		b1, b2, b3 float64
		B0         = c.B0
		ind        = g.Index(i, j, k)
	)
	switch field {
	case FIELD_FROM_PERT:
		b1, b2, b3 = s.rbx, s.rby, s.rbz
	case FIELD_BZ_SIN:
		b3 = B0 * math.Sin(c.Kx*x1)
	case FIELD_BZ_UNIFORM:
		b3 = B0
	case FIELD_HELICAL:
		b2 = B0 * math.Cos(c.Kx*x1)
		b3 = B0 * math.Sin(c.Kx*x1)
	case FIELD_TOROIDAL_VERTICAL:
		b2 = B0 / math.Sqrt2
		b3 = B0 / math.Sqrt2
	}
	g.B1i[ind], g.B2i[ind], g.B3i[ind] = b1, b2, b3
	if field == FIELD_FROM_PERT {
		// Periodic copy of the first face, which is already set
		if i == g.Ie {
			g.B1i[g.Index(g.Ie+1, j, k)] = g.B1i[g.Index(g.Is, j, k)]
		}
		if j == g.Je {
			g.B2i[g.Index(i, g.Je+1, k)] = g.B2i[g.Index(i, g.Js, k)]
		}
		if k == g.Ke {
			g.B3i[g.Index(i, j, g.Ke+1)] = g.B3i[g.Index(i, j, g.Ks)]
		}
		return
	}
	if i == g.Ie {
		g.B1i[g.Index(g.Ie+1, j, k)] = b1
	}
	if j == g.Je {
		g.B2i[g.Index(i, g.Je+1, k)] = b2
	}
	if k == g.Ke {
		g.B3i[g.Index(i, j, g.Ke+1)] = b3
	}
}

func (c *HGB) setCellCenteredFields(g *grid.Grid) {
	g.Cells(func(i, j, k int) {
		var (
			U   = g.Cell(i, j, k)
			ind = g.Index(i, j, k)
		)
		U.B1c = 0.5 * (g.B1i[ind] + g.B1i[g.Index(i+1, j, k)])
		U.B2c = 0.5 * (g.B2i[ind] + g.B2i[g.Index(i, j+1, k)])
		U.B3c = 0.5 * (g.B3i[ind] + g.B3i[g.Index(i, j, k+1)])
		if c.Adiabatic {
			U.E += 0.5 * (U.B1c*U.B1c + U.B2c*U.B2c + U.B3c*U.B3c)
		}
	})
}
