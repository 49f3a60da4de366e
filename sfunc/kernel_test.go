package sfunc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/fastsf/utils"
)

func linear3D(cfg *Config) (Ux, Uy, Uz *utils.Array3D) {
	return GenerateVector3D(cfg)
}

func TestDiff3D(t *testing.T) {
	cfg := &Config{Nx: 6, Ny: 5, Nz: 4, Lx: 1, Ly: 1, Lz: 1}
	cfg.SetSpacings()
	Ux, _, _ := linear3D(cfg)
	var (
		x, y, z = 2, 1, 3
		n       = (cfg.Nx - x) * (cfg.Ny - y) * (cfg.Nz - z)
		dst     = make([]float64, n)
	)
	diff3D(dst, Ux, x, y, z)
	// Ux is linear in i, so every difference equals x*dx.
	for i, v := range dst {
		require.InDelta(t, float64(x)*cfg.Dx, v, 1e-14, "element %d", i)
	}
}

func TestDiff2D(t *testing.T) {
	cfg := &Config{Nx: 7, Nz: 6, Lx: 2, Lz: 3, TwoDim: true}
	cfg.SetSpacings()
	T := GenerateScalar2D(cfg)
	var (
		x, z = 3, 2
		n    = (cfg.Nx - x) * (cfg.Nz - z)
		dst  = make([]float64, n)
	)
	diff2D(dst, T, x, z)
	want := float64(x)*cfg.Dx + float64(z)*cfg.Dz
	for i, v := range dst {
		require.InDelta(t, want, v, 1e-14, "element %d", i)
	}
}

func TestProject3DLinearField(t *testing.T) {
	// For the linear field the difference vector is exactly l, so the
	// longitudinal component is r and the transverse magnitude 0.
	cfg := &Config{Nx: 8, Ny: 8, Nz: 8, Lx: 1, Ly: 1, Lz: 1}
	cfg.SetSpacings()
	Ux, Uy, Uz := linear3D(cfg)
	var (
		x, y, z    = 1, 2, 3
		n          = (cfg.Nx - x) * (cfg.Ny - y) * (cfg.Nz - z)
		lx, ly, lz = float64(x) * cfg.Dx, float64(y) * cfg.Dy, float64(z) * cfg.Dz
		r          = math.Sqrt(lx*lx + ly*ly + lz*lz)
		s          scratch
	)
	s.resize(n)
	diff3D(s.dUx, Ux, x, y, z)
	diff3D(s.dUy, Uy, x, y, z)
	diff3D(s.dUz, Uz, x, y, z)
	project3D(&s, lx, ly, lz, r)
	for i := 0; i < n; i++ {
		assert.InDelta(t, r, s.dUpll[i], 1e-13)
		assert.InDelta(t, 0, s.dUx[i], 1e-13)
	}
}

func TestProjectOrigin(t *testing.T) {
	// r = 0 must not divide; the buffers come back zeroed.
	var s scratch
	s.resize(4)
	for i := range s.dUx {
		s.dUx[i] = 1
		s.dUz[i] = 2
	}
	project3D(&s, 0, 0, 0, 0)
	for i := range s.dUpll {
		assert.Zero(t, s.dUpll[i])
		assert.Zero(t, s.dUx[i])
	}
	s.resize(4)
	for i := range s.dUx {
		s.dUx[i] = 1
	}
	project2D(&s, 0, 0, 0)
	for i := range s.dUpll {
		assert.Zero(t, s.dUpll[i])
		assert.Zero(t, s.dUx[i])
	}
}

func TestPowMean(t *testing.T) {
	v := []float64{2, 2, 2, 2}
	assert.InDelta(t, 2, powMean(v, 1), 1e-15)
	assert.InDelta(t, 8, powMean(v, 3), 1e-15)
	// Negative values pass through POW with integer exponents.
	v = []float64{-2, -2}
	assert.InDelta(t, -8, powMean(v, 3), 1e-15)
	assert.InDelta(t, 4, powMean(v, 2), 1e-15)
	// The divisor is the element count.
	v = []float64{1, 2, 3}
	assert.InDelta(t, 2, powMean(v, 1), 1e-15)
}

func TestScratchReuse(t *testing.T) {
	var s scratch
	s.resize(100)
	p := &s.dUx[0]
	s.resize(10)
	assert.Len(t, s.dUx, 10)
	assert.Equal(t, p, &s.dUx[0], "shrinking must not reallocate")
	s.resize(100)
	assert.Len(t, s.dUpll, 100)
}
