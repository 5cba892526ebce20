package grid

import (
	"github.com/pkg/errors"
)

// Cons is the cell centered conserved state of one cell
type Cons struct {
	D          float64 // Density
	M1, M2, M3 float64 // Momenta
	E          float64 // Total energy
	B1c        float64
	B2c        float64
	B3c        float64
}

type PotentialFunc func(x1, x2, x3 float64) (phi float64)

// Domain is the global mesh, made up of one or more Grid blocks
type Domain struct {
	Nx1, Nx2, Nx3 int
	X1min, X1max  float64
	X2min, X2max  float64
	X3min, X3max  float64
	NGhost        int
	Grids         []*Grid
	StaticGravPot PotentialFunc
}

const DefaultNGhost = 4

func NewDomain(Nx [3]int, Xmin, Xmax [3]float64) (d *Domain, err error) {
	for n := 0; n < 3; n++ {
		if Nx[n] < 1 {
			err = errors.Errorf("cell count in dimension %d must be positive, have %d", n+1, Nx[n])
			return
		}
		if !(Xmax[n] > Xmin[n]) {
			err = errors.Errorf("x%dmax = %g must exceed x%dmin = %g", n+1, Xmax[n], n+1, Xmin[n])
			return
		}
	}
	d = &Domain{
		Nx1: Nx[0], Nx2: Nx[1], Nx3: Nx[2],
		X1min: Xmin[0], X1max: Xmax[0],
		X2min: Xmin[1], X2max: Xmax[1],
		X3min: Xmin[2], X3max: Xmax[2],
		NGhost: DefaultNGhost,
	}
	return
}

// Dims is the number of dimensions with more than one cell
func (d *Domain) Dims() (nd int) {
	for _, n := range []int{d.Nx1, d.Nx2, d.Nx3} {
		if n > 1 {
			nd++
		}
	}
	return
}

func (d *Domain) Lengths() (Lx, Ly, Lz float64) {
	return d.X1max - d.X1min, d.X2max - d.X2min, d.X3max - d.X3min
}

func (d *Domain) CellWidths() (dx1, dx2, dx3 float64) {
	Lx, Ly, Lz := d.Lengths()
	return Lx / float64(d.Nx1), Ly / float64(d.Nx2), Lz / float64(d.Nx3)
}

// Grid is one block of the domain with its own ghost zones
type Grid struct {
	ID                  int
	Nx1, Nx2, Nx3       int
	Is, Ie              int
	Js, Je              int
	Ks, Ke              int
	Idisp, Jdisp, Kdisp int // Global index of local index i is i+Idisp
	Dx1, Dx2, Dx3       float64
	X1min, X2min, X3min float64 // Lower bound of the domain
	Time                float64
	U                   []Cons
	B1i, B2i, B3i       []float64 // Face centered fields, B1i at the x1 face below cell i
	n1, n2, n3          int       // Allocated extents, including ghosts and the extra face
}

func ghosts(Nx, NGhost int) int {
	if Nx > 1 {
		return NGhost
	}
	return 0
}

// NewGrid allocates the block whose first active cell has global index
// (i0, j0, k0) and spans Nx1 x Nx2 x Nx3 cells.
func (d *Domain) NewGrid(id, i0, j0, k0, Nx1, Nx2, Nx3 int) (g *Grid) {
	var (
		ng1, ng2, ng3 = ghosts(d.Nx1, d.NGhost), ghosts(d.Nx2, d.NGhost), ghosts(d.Nx3, d.NGhost)
		dx1, dx2, dx3 = d.CellWidths()
	)
	g = &Grid{
		ID:  id,
		Nx1: Nx1, Nx2: Nx2, Nx3: Nx3,
		Is: ng1, Ie: ng1 + Nx1 - 1,
		Js: ng2, Je: ng2 + Nx2 - 1,
		Ks: ng3, Ke: ng3 + Nx3 - 1,
		Idisp: i0 - ng1, Jdisp: j0 - ng2, Kdisp: k0 - ng3,
		Dx1: dx1, Dx2: dx2, Dx3: dx3,
		X1min: d.X1min, X2min: d.X2min, X3min: d.X3min,
		n1: Nx1 + 2*ng1 + 1,
		n2: Nx2 + 2*ng2 + 1,
		n3: Nx3 + 2*ng3 + 1,
	}
	size := g.n1 * g.n2 * g.n3
	g.U = make([]Cons, size)
	g.B1i = make([]float64, size)
	g.B2i = make([]float64, size)
	g.B3i = make([]float64, size)
	return
}

func (g *Grid) Index(i, j, k int) int {
	return i + g.n1*(j+g.n2*k)
}

func (g *Grid) Cell(i, j, k int) *Cons {
	return &g.U[g.Index(i, j, k)]
}

// CCPos returns the cell center position of local cell (i,j,k)
func (g *Grid) CCPos(i, j, k int) (x1, x2, x3 float64) {
	x1 = g.X1min + (float64(i+g.Idisp)+0.5)*g.Dx1
	x2 = g.X2min + (float64(j+g.Jdisp)+0.5)*g.Dx2
	x3 = g.X3min + (float64(k+g.Kdisp)+0.5)*g.Dx3
	return
}

// Cells visits the active cells in k, j, i order
func (g *Grid) Cells(fn func(i, j, k int)) {
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				fn(i, j, k)
			}
		}
	}
}

func (g *Grid) NCells() int {
	return g.Nx1 * g.Nx2 * g.Nx3
}

// Start is the global index of the first active cell
func (g *Grid) Start() (ixs, jxs, kxs int) {
	return g.Is + g.Idisp, g.Js + g.Jdisp, g.Ks + g.Kdisp
}
