package utils

// Long period (> 2x10^18) generator of L'Ecuyer with a Bays-Durham shuffle.
// Each Ran2 carries its own shuffle table and secondary seed, so independent
// streams can coexist. A Ran2 must not be shared between goroutines.
const (
	ran2IM1  = 2147483563
	ran2IM2  = 2147483399
	ran2AM   = 1. / ran2IM1
	ran2IMM1 = ran2IM1 - 1
	ran2IA1  = 40014
	ran2IA2  = 40692
	ran2IQ1  = 53668
	ran2IQ2  = 52774
	ran2IR1  = 12211
	ran2IR2  = 3791
	ran2NTAB = 32
	ran2NDIV = 1 + ran2IMM1/ran2NTAB
	ran2RNMX = 1. - 0x1p-52 // 1 - DBL_EPSILON

	ran2Idum2Start = 123456789
)

type Ran2 struct {
	idum, idum2 int64
	iy          int64
	iv          [ran2NTAB]int64
}

// NewRan2 returns an uninitialized generator, the shuffle table is loaded on
// the first draw. Any seed is accepted; seed <= 0 is the conventional form.
// Seeds are taken modulo IM1, so -IM1 behaves as 0.
func NewRan2(seed int64) (r *Ran2) {
	r = &Ran2{}
	r.Seed(seed)
	return
}

// Seed re-arms the generator. Positive seeds are negated so that the next
// draw always reloads the shuffle table.
func (r *Ran2) Seed(seed int64) {
	if seed > 0 {
		seed = -seed
	}
	r.idum = seed
	r.idum2 = ran2Idum2Start
	r.iy = 0
	r.iv = [ran2NTAB]int64{}
}

func (r *Ran2) Initialized() bool {
	return r.idum > 0
}

// Next returns a uniform deviate in the open interval (0,1)
func (r *Ran2) Next() float64 {
	var (
		j int64
		k int64
	)
	if r.idum <= 0 {
		// Reduce into [1, IM1-1] before negating, so that every int64 seed,
		// math.MinInt64 included, gives a valid Schrage state
		r.idum = -(r.idum % ran2IM1)
		if r.idum < 1 {
			r.idum = 1
		}
		r.idum2 = r.idum
		// Load the shuffle table after 8 warm-ups
		for j = ran2NTAB + 7; j >= 0; j-- {
			k = r.idum / ran2IQ1
			r.idum = ran2IA1*(r.idum-k*ran2IQ1) - k*ran2IR1
			if r.idum < 0 {
				r.idum += ran2IM1
			}
			if j < ran2NTAB {
				r.iv[j] = r.idum
			}
		}
		r.iy = r.iv[0]
	}
	// idum = (IA1*idum) % IM1 by Schrage's method
	k = r.idum / ran2IQ1
	r.idum = ran2IA1*(r.idum-k*ran2IQ1) - k*ran2IR1
	if r.idum < 0 {
		r.idum += ran2IM1
	}
	// idum2 = (IA2*idum2) % IM2 likewise
	k = r.idum2 / ran2IQ2
	r.idum2 = ran2IA2*(r.idum2-k*ran2IQ2) - k*ran2IR2
	if r.idum2 < 0 {
		r.idum2 += ran2IM2
	}
	j = r.iy / ran2NDIV // 0..NTAB-1
	r.iy = r.iv[j] - r.idum2
	r.iv[j] = r.idum
	if r.iy < 1 {
		r.iy += ran2IMM1
	}
	return clampDeviate(ran2AM * float64(r.iy))
}

func clampDeviate(temp float64) float64 {
	if temp > ran2RNMX {
		return ran2RNMX
	}
	return temp
}

func (r *Ran2) Float64() float64 {
	return r.Next()
}

// Uint64 packs two consecutive deviates into one word so that Ran2
// satisfies math/rand/v2.Source.
func (r *Ran2) Uint64() uint64 {
	hi := uint64(r.Next() * (1 << 32))
	lo := uint64(r.Next() * (1 << 32))
	return hi<<32 | lo
}

// Ran2Seed derives the per block seed from the global index of the block's
// first active cell, so that every sub-domain draws from its own stream.
func Ran2Seed(ixs, jxs, kxs, Nx1, Nx2 int) (seed int64) {
	seed = -1 - int64(ixs+Nx1*(jxs+Nx2*kxs))
	return
}

// Deviates fills a slice with N consecutive draws
func (r *Ran2) Deviates(N int) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = r.Next()
	}
	return
}
