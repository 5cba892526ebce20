package history

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/shearbox/grid"
)

// Reducer maps one cell of a grid to a scalar. The history output is the
// volume average of the reducer over the domain.
type Reducer interface {
	Reduce(g *grid.Grid, i, j, k int) float64
}

type ReducerFunc func(g *grid.Grid, i, j, k int) float64

func (f ReducerFunc) Reduce(g *grid.Grid, i, j, k int) float64 {
	return f(g, i, j, k)
}

type Entry struct {
	Name    string
	Reducer Reducer
}

// Registry holds the enrolled history variables in enrollment order
type Registry struct {
	entries []Entry
	byName  map[string]int
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

func (r *Registry) Enroll(name string, red Reducer) (err error) {
	if red == nil {
		return errors.Errorf("nil reducer for history variable %q", name)
	}
	if _, ok := r.byName[name]; ok {
		return errors.Errorf("history variable %q already enrolled", name)
	}
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, Entry{Name: name, Reducer: red})
	return
}

func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) Names() (names []string) {
	names = make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return
}

func (r *Registry) Lookup(name string) (red Reducer, ok bool) {
	var ind int
	if ind, ok = r.byName[name]; ok {
		red = r.entries[ind].Reducer
	}
	return
}

// VolumeAverage is the mean of red over every active cell of the domain
func VolumeAverage(d *grid.Domain, red Reducer) (avg float64) {
	var (
		sums   = make([]float64, len(d.Grids))
		ncells int
	)
	for n, g := range d.Grids {
		var sum float64
		g.Cells(func(i, j, k int) {
			sum += red.Reduce(g, i, j, k)
		})
		sums[n] = sum
		ncells += g.NCells()
	}
	if ncells == 0 {
		return
	}
	return floats.Sum(sums) / float64(ncells)
}

// Mass is the first column of every history dump
var Mass = ReducerFunc(func(g *grid.Grid, i, j, k int) float64 {
	return g.Cell(i, j, k).D
})

// Evaluate returns the time, mass and every enrolled variable, in column order
func (r *Registry) Evaluate(d *grid.Domain, time float64) (row []float64) {
	row = make([]float64, 0, len(r.entries)+2)
	row = append(row, time, VolumeAverage(d, Mass))
	for _, e := range r.entries {
		row = append(row, VolumeAverage(d, e.Reducer))
	}
	return
}

func (r *Registry) WriteHeader(w io.Writer) (err error) {
	if _, err = fmt.Fprintf(w, "#   [1]=time    [2]=mass"); err != nil {
		return
	}
	for n, e := range r.entries {
		if _, err = fmt.Fprintf(w, "    [%d]=%s", n+3, e.Name); err != nil {
			return
		}
	}
	_, err = fmt.Fprintln(w)
	return
}

func (r *Registry) WriteRow(w io.Writer, d *grid.Domain, time float64) (err error) {
	for n, v := range r.Evaluate(d, time) {
		sep := " "
		if n == 0 {
			sep = ""
		}
		if _, err = fmt.Fprintf(w, "%s%14.6e", sep, v); err != nil {
			return
		}
	}
	_, err = fmt.Fprintln(w)
	return
}
