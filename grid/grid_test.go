package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit1D(t *testing.T) {
	getHisto := func(N, NP int) (histo map[int]int) {
		histo = make(map[int]int)
		for np := 0; np < NP; np++ {
			b := Split1D(N, NP, np)
			histo[b[1]-b[0]]++
		}
		return
	}
	getTotal := func(histo map[int]int) (total int) {
		for key, count := range histo {
			total += key * count
		}
		return
	}
	assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
	assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
	assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
	for n := 64; n < 2000; n++ {
		histo := getHisto(n, 7)
		assert.Equal(t, n, getTotal(histo))
		assert.LessOrEqual(t, len(histo), 2) // Maximum imbalance of 1
	}
	// Partitions are contiguous
	for np := 1; np < 7; np++ {
		assert.Equal(t, Split1D(100, 7, np-1)[1], Split1D(100, 7, np)[0])
	}
}

func TestNewDomain(t *testing.T) {
	_, err := NewDomain([3]int{32, 0, 32}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	assert.Error(t, err)
	_, err = NewDomain([3]int{32, 32, 32}, [3]float64{0, 1, 0}, [3]float64{1, 1, 1})
	assert.Error(t, err)
	d, err := NewDomain([3]int{32, 64, 1}, [3]float64{-0.5, -2, -0.5}, [3]float64{0.5, 2, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Dims())
	dx1, dx2, dx3 := d.CellWidths()
	assert.InDelta(t, 1./32., dx1, 1.e-15)
	assert.InDelta(t, 4./64., dx2, 1.e-15)
	assert.InDelta(t, 1., dx3, 1.e-15)
}

func TestGrid(t *testing.T) {
	d, err := NewDomain([3]int{8, 4, 4}, [3]float64{-0.5, -1, -2}, [3]float64{0.5, 1, 2})
	require.NoError(t, err)
	require.NoError(t, d.Decompose(1))
	g := d.Grids[0]
	assert.Equal(t, DefaultNGhost, g.Is)
	assert.Equal(t, DefaultNGhost+7, g.Ie)
	assert.Equal(t, -DefaultNGhost, g.Idisp)
	ixs, jxs, kxs := g.Start()
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{ixs, jxs, kxs})
	x1, x2, x3 := g.CCPos(g.Is, g.Js, g.Ks)
	assert.InDelta(t, -0.5+0.0625, x1, 1.e-15)
	assert.InDelta(t, -1+0.25, x2, 1.e-15)
	assert.InDelta(t, -2+0.5, x3, 1.e-15)
	x1, _, _ = g.CCPos(g.Ie, g.Js, g.Ks)
	assert.InDelta(t, 0.5-0.0625, x1, 1.e-15)
	var count int
	g.Cells(func(i, j, k int) {
		count++
		g.Cell(i, j, k).D = 1
	})
	assert.Equal(t, g.NCells(), count)
	// Face arrays reach one past the last active cell
	g.B1i[g.Index(g.Ie+1, g.Je, g.Ke)] = 1
	g.B3i[g.Index(g.Ie, g.Je, g.Ke+1)] = 1
}

func TestDecompose(t *testing.T) {
	d, err := NewDomain([3]int{16, 8, 10}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	require.NoError(t, err)
	assert.Error(t, d.Decompose(0))
	require.NoError(t, d.Decompose(3))
	require.Len(t, d.Grids, 3)
	var (
		planes int
		seen   = make(map[[3]int]bool)
	)
	for np, g := range d.Grids {
		assert.Equal(t, np, g.ID)
		assert.Equal(t, 16, g.Nx1)
		assert.Equal(t, 8, g.Nx2)
		planes += g.Nx3
		g.Cells(func(i, j, k int) {
			key := [3]int{i + g.Idisp, j + g.Jdisp, k + g.Kdisp}
			assert.False(t, seen[key])
			seen[key] = true
		})
	}
	assert.Equal(t, 10, planes)
	assert.Len(t, seen, 16*8*10)
	// Cell centers agree with the single block layout
	gl, i, j, k := d.GridOwning(3, 5, 7)
	require.NotNil(t, gl)
	x1, x2, x3 := gl.CCPos(i, j, k)
	assert.InDelta(t, 3.5/16., x1, 1.e-15)
	assert.InDelta(t, 5.5/8., x2, 1.e-15)
	assert.InDelta(t, 7.5/10., x3, 1.e-15)
	gl, _, _, _ = d.GridOwning(16, 0, 0)
	assert.Nil(t, gl)

	// More partitions than planes
	require.NoError(t, d.Decompose(64))
	assert.Len(t, d.Grids, 10)

	// 2D domains split along x2 and carry no ghost cells in x3
	d2, err := NewDomain([3]int{16, 8, 1}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	require.NoError(t, err)
	require.NoError(t, d2.Decompose(2))
	for _, g := range d2.Grids {
		assert.Equal(t, 4, g.Nx2)
		assert.Equal(t, 0, g.Ks)
		assert.Equal(t, 0, g.Ke)
	}
}

func TestForEachGrid(t *testing.T) {
	d, err := NewDomain([3]int{4, 4, 8}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	require.NoError(t, err)
	require.NoError(t, d.Decompose(4))
	err = d.ForEachGrid(func(g *Grid) error {
		g.Cells(func(i, j, k int) {
			x1, _, _ := g.CCPos(i, j, k)
			g.Cell(i, j, k).D = math.Abs(x1)
		})
		return nil
	})
	assert.NoError(t, err)
	err = d.ForEachGrid(func(g *Grid) error {
		if g.ID == 2 {
			return assert.AnError
		}
		return nil
	})
	assert.ErrorIs(t, err, assert.AnError)
}
