package HGB

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FPWave is a tabulated Fromang & Papaloizou density wave profile
type FPWave struct {
	X, D, Vx, Vy []float64
}

func FPWaveFileName(N int) string {
	return fmt.Sprintf("Data-%d-FPwave.dat", N)
}

func ReadFPWaveDir(dataDir string, N int) (fp *FPWave, err error) {
	return ReadFPWave(filepath.Join(dataDir, FPWaveFileName(N)), N)
}

// ReadFPWave reads N rows of four columns: x, density, vx, vy
func ReadFPWave(fileName string, N int) (fp *FPWave, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(fileName); err != nil {
		return nil, errors.Wrapf(err, "error opening %s", fileName)
	}
	defer file.Close()
	reader := bufio.NewReader(file)
	fp = &FPWave{
		X:  make([]float64, N),
		D:  make([]float64, N),
		Vx: make([]float64, N),
		Vy: make([]float64, N),
	}
	for i := 0; i < N; i++ {
		if _, err = fmt.Fscan(reader, &fp.X[i], &fp.D[i], &fp.Vx[i], &fp.Vy[i]); err != nil {
			return nil, errors.Wrapf(err, "reading row %d of %s", i+1, fileName)
		}
	}
	return
}
