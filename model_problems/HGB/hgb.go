package HGB

import (
	"math"

	"github.com/pkg/errors"

	"github.com/notargets/shearbox/InputParameters"
	"github.com/notargets/shearbox/grid"
	"github.com/notargets/shearbox/history"
	"github.com/notargets/shearbox/utils"
)

/*
	Initial conditions for the 3D shearing sheet of Hawley, Gammie & Balbus
	(ApJ 440, 742, 1995), with the shwave tests of Johnson, Guan & Gammie
	(ApJS 177, 373, 2008).
*/
type HGB struct {
	Omega            float64
	Amp              float64 // Input amplitude, before any rescaling
	Beta             float64
	B0               float64 // Field strength from beta
	Den, Pres        float64 // Background state
	Gamma, IsoCsound float64
	Nwx, Nwy, Nwz    int
	Field            FieldType
	Pert             PertType
	Adiabatic        bool
	MHD              bool
	FARGO            bool
	VerticalGravity  bool
	Ohmic            bool
	NavierStokes     bool
	EtaOhm, NuV      float64
	DataDir          string // Location of the FP wave tables
	Kx, Ky, Kz       float64
	Lx, Ly, Lz       float64
	fp               *FPWave
}

const (
	FPWaveXmin = -4.7965
	FPWaveXmax = 4.7965
)

func NewHGB(ip *InputParameters.InputParametersHGB, dataDir string) (c *HGB, err error) {
	var (
		pp = &ip.Problem
		ph = &ip.Physics
	)
	c = &HGB{
		Omega:           *pp.Omega,
		Amp:             *pp.Amp,
		Beta:            *pp.Beta,
		Den:             1.,
		Gamma:           *ph.Gamma,
		IsoCsound:       *ph.IsoCsound,
		Nwx:             *pp.Nwx,
		Nwy:             *pp.Nwy,
		Nwz:             *pp.Nwz,
		Adiabatic:       ip.Adiabatic(),
		MHD:             *ph.MHD,
		FARGO:           ph.FARGO,
		VerticalGravity: ph.VerticalGravity,
		Ohmic:           ph.Ohmic,
		NavierStokes:    ph.NavierStokes,
		DataDir:         dataDir,
	}
	if c.Field, err = NewFieldType(*pp.IField); err != nil {
		return nil, err
	}
	if c.Pert, err = NewPertType(*pp.IPert); err != nil {
		return nil, err
	}
	c.readDissipation(ip)
	if c.Adiabatic {
		c.Pres = 1.0e-6
	} else {
		c.Pres = c.IsoCsound * c.IsoCsound
	}
	c.B0 = math.Sqrt(2. * c.Pres / c.Beta)
	return
}

func (c *HGB) readDissipation(ip *InputParameters.InputParametersHGB) {
	c.Omega = *ip.Problem.Omega
	if c.Ohmic {
		c.EtaOhm = *ip.Problem.Eta
	}
	if c.NavierStokes {
		c.NuV = *ip.Problem.Nu
	}
}

// SoundSpeed of the background state
func (c *HGB) SoundSpeed() float64 {
	if c.Adiabatic {
		return math.Sqrt(c.Gamma * c.Pres / c.Den)
	}
	return c.IsoCsound
}

// PerturbationAmp is the amplitude used by the perturbation, rescaled to the
// sound speed for the epicyclic and vortical waves
func (c *HGB) PerturbationAmp() float64 {
	switch c.Pert {
	case EPICYCLIC, VORTICAL_SHWAVE:
		return c.Amp * c.SoundSpeed()
	}
	return c.Amp
}

func (c *HGB) setWaveNumbers(d *grid.Domain) {
	c.Lx, c.Ly, c.Lz = d.Lengths()
	// nwx < 0 gives a leading wave
	c.Kx = (2. * math.Pi / c.Lx) * float64(c.Nwx)
	c.Ky = (2. * math.Pi / c.Ly) * float64(c.Nwy)
	c.Kz = (2. * math.Pi / c.Lz) * float64(c.Nwz)
}

// Problem sets the initial state of every block of the domain, then enrolls
// the tidal potential and the history variables.
func (c *HGB) Problem(d *grid.Domain, reg *history.Registry) (err error) {
	log := utils.Logger()
	if d.Nx2 == 1 {
		return errors.New("HGB only works on a 2D or 3D grid")
	}
	if len(d.Grids) == 0 {
		if err = d.Decompose(1); err != nil {
			return
		}
	}
	c.setWaveNumbers(d)
	if c.Pert == FP_DENSITY_WAVE {
		if err = c.loadFPWave(d); err != nil {
			return
		}
	}
	log.Infow("initializing HGB shearing box",
		"ifield", int(c.Field), "ipert", int(c.Pert), "blocks", len(d.Grids),
		"omega", c.Omega, "B0", c.B0)
	if err = d.ForEachGrid(func(g *grid.Grid) error {
		return c.InitializeGrid(d, g)
	}); err != nil {
		return
	}
	return c.Enroll(d, reg, true)
}

func (c *HGB) loadFPWave(d *grid.Domain) (err error) {
	switch d.Nx1 {
	case 160, 40:
	default:
		return errors.Errorf("ipert=4 requires nx1 of 160 or 40, have %d", d.Nx1)
	}
	if c.fp, err = ReadFPWaveDir(c.DataDir, d.Nx1); err != nil {
		return
	}
	if d.X1min != FPWaveXmin {
		return errors.Errorf("ipert=4 requires x1min=%g", FPWaveXmin)
	}
	if d.X1max != FPWaveXmax {
		return errors.Errorf("ipert=4 requires x1max=%g", FPWaveXmax)
	}
	return
}

// Enroll registers the potential and the history variables. The shwave
// diagnostics are only enrolled on a fresh start.
func (c *HGB) Enroll(d *grid.Domain, reg *history.Registry, fresh bool) (err error) {
	d.StaticGravPot = c.Potential
	type hst struct {
		name string
		fn   history.ReducerFunc
		use  bool
	}
	list := []hst{
		{"<rho Vx dVy>", c.RhoVxDVy, true},
		{"<rho dVy^2>", c.RhoDVy2, true},
		{"<E + rho Phi>", c.ETotal, c.Adiabatic},
		{"<Bx>", c.Bx, c.MHD},
		{"<By>", c.By, c.MHD},
		{"<Bz>", c.Bz, c.MHD},
		{"<-Bx By>", c.MaxwellStress, c.MHD},
		{"<dEw2>", c.DEw2, fresh && c.MHD && c.Pert == JGG_MHD_SHWAVE_FIG9},
		{"<dBy>", c.DBy, fresh && c.MHD && c.Pert == JGG_MHD_SHWAVE_FIG11},
	}
	for _, h := range list {
		if !h.use {
			continue
		}
		if err = reg.Enroll(h.name, h.fn); err != nil {
			return
		}
	}
	return
}

// Restart re-reads the rotation rate and dissipation coefficients and
// re-enrolls the potential and history variables, leaving the grid as read
// from the restart file.
func (c *HGB) Restart(ip *InputParameters.InputParametersHGB, d *grid.Domain, reg *history.Registry) (err error) {
	c.readDissipation(ip)
	c.setWaveNumbers(d)
	return c.Enroll(d, reg, false)
}
