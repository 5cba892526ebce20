package grid

import (
	"sync"

	"github.com/pkg/errors"
)

// Split1D returns the [start, end) range of partition p when N items are
// spread over NP partitions, with a maximum imbalance of one item.
func Split1D(N, NP, p int) (bucket [2]int) {
	var (
		Npart            = N / NP
		remainder        = N % NP
		startAdd, endAdd int
	)
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if p+1 > remainder {
			startAdd = remainder
		} else {
			startAdd = p
			endAdd = 1
		}
	}
	bucket[0] = p*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// Decompose splits the domain into NP slabs along its outermost dimension
// that has more than one cell. NP is reduced when there are fewer planes than
// requested partitions.
func (d *Domain) Decompose(NP int) (err error) {
	if NP < 1 {
		err = errors.Errorf("parallel degree must be positive, have %d", NP)
		return
	}
	var (
		planes int
		dim    int
	)
	switch {
	case d.Nx3 > 1:
		planes, dim = d.Nx3, 3
	case d.Nx2 > 1:
		planes, dim = d.Nx2, 2
	default:
		planes, dim = d.Nx1, 1
	}
	if NP > planes {
		NP = planes
	}
	d.Grids = make([]*Grid, NP)
	for np := 0; np < NP; np++ {
		b := Split1D(planes, NP, np)
		n := b[1] - b[0]
		switch dim {
		case 3:
			d.Grids[np] = d.NewGrid(np, 0, 0, b[0], d.Nx1, d.Nx2, n)
		case 2:
			d.Grids[np] = d.NewGrid(np, 0, b[0], 0, d.Nx1, n, d.Nx3)
		default:
			d.Grids[np] = d.NewGrid(np, b[0], 0, 0, n, d.Nx2, d.Nx3)
		}
	}
	return
}

// ForEachGrid runs fn on every block concurrently and returns the first error
func (d *Domain) ForEachGrid(fn func(g *Grid) error) (err error) {
	var (
		wg   sync.WaitGroup
		errs = make([]error, len(d.Grids))
	)
	for np, g := range d.Grids {
		wg.Add(1)
		go func(np int, g *Grid) {
			errs[np] = fn(g)
			wg.Done()
		}(np, g)
	}
	wg.Wait()
	for np, e := range errs {
		if e != nil {
			err = errors.Wrapf(e, "grid %d", np)
			return
		}
	}
	return
}

// GridOwning returns the block holding global cell (ig, jg, kg) and the local
// indices of that cell, or nil if no block owns it.
func (d *Domain) GridOwning(ig, jg, kg int) (g *Grid, i, j, k int) {
	for _, gg := range d.Grids {
		i, j, k = ig-gg.Idisp, jg-gg.Jdisp, kg-gg.Kdisp
		if i >= gg.Is && i <= gg.Ie && j >= gg.Js && j <= gg.Je && k >= gg.Ks && k <= gg.Ke {
			g = gg
			return
		}
	}
	return nil, 0, 0, 0
}
