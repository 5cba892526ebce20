package HGB

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"

	"github.com/notargets/shearbox/grid"
)

type FieldStat struct {
	Name         string
	Mean, StdDev float64
	Min, Max     float64
	N            int
}

// Summarize gathers the active cells of every block and reports the spread of
// the initial density, velocity fluctuations and cell centered field
func (c *HGB) Summarize(d *grid.Domain) (stats []FieldStat) {
	type column struct {
		name string
		fn   func(g *grid.Grid, i, j, k int) float64
	}
	cols := []column{
		{"d", func(g *grid.Grid, i, j, k int) float64 { return g.Cell(i, j, k).D }},
		{"Vx", func(g *grid.Grid, i, j, k int) float64 { U := g.Cell(i, j, k); return U.M1 / U.D }},
		{"dVy", c.DVy},
		{"Vz", func(g *grid.Grid, i, j, k int) float64 { U := g.Cell(i, j, k); return U.M3 / U.D }},
	}
	if c.Adiabatic {
		cols = append(cols, column{"E", func(g *grid.Grid, i, j, k int) float64 { return g.Cell(i, j, k).E }})
	}
	if c.MHD {
		cols = append(cols,
			column{"Bx", c.Bx}, column{"By", c.By}, column{"Bz", c.Bz})
	}
	var ncells int
	for _, g := range d.Grids {
		ncells += g.NCells()
	}
	for _, col := range cols {
		x := make([]float64, 0, ncells)
		for _, g := range d.Grids {
			g.Cells(func(i, j, k int) {
				x = append(x, col.fn(g, i, j, k))
			})
		}
		fs := FieldStat{Name: col.name, N: len(x)}
		if len(x) != 0 {
			fs.Mean, fs.StdDev = stat.MeanStdDev(x, nil)
			fs.Min, fs.Max = x[0], x[0]
			for _, v := range x {
				fs.Min = min(fs.Min, v)
				fs.Max = max(fs.Max, v)
			}
		}
		stats = append(stats, fs)
	}
	return
}

func PrintSummary(w io.Writer, stats []FieldStat) {
	fmt.Fprintf(w, "%-6s %14s %14s %14s %14s\n", "Field", "Mean", "StdDev", "Min", "Max")
	for _, fs := range stats {
		fmt.Fprintf(w, "%-6s %14.6e %14.6e %14.6e %14.6e\n", fs.Name, fs.Mean, fs.StdDev, fs.Min, fs.Max)
	}
}
