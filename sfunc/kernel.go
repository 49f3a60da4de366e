package sfunc

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/fastsf/utils"
)

// scratch holds the per-rank difference buffers. They grow to the largest
// displacement sub-array (the full grid shape at l = 0) and are
// re-sliced per iteration, so each rank allocates at most once.
type scratch struct {
	dUx, dUy, dUz, dUpll []float64
}

func (s *scratch) resize(n int) {
	if cap(s.dUx) < n {
		s.dUx = make([]float64, n)
		s.dUy = make([]float64, n)
		s.dUz = make([]float64, n)
		s.dUpll = make([]float64, n)
	}
	s.dUx = s.dUx[:n]
	s.dUy = s.dUy[:n]
	s.dUz = s.dUz[:n]
	s.dUpll = s.dUpll[:n]
}

// diff3D fills dst with U(x+lx, y+ly, z+lz) - U(x, y, z) over the surviving
// sub-array of shape (Ni-x, Nj-y, Nk-z). The subtraction runs on contiguous
// z lanes of both slices.
func diff3D(dst []float64, U *utils.Array3D, x, y, z int) {
	var (
		mi, mj, mk = U.Ni - x, U.Nj - y, U.Nk - z
		ind        int
	)
	for i := 0; i < mi; i++ {
		for j := 0; j < mj; j++ {
			floats.SubTo(dst[ind:ind+mk], U.Lane(i+x, j+y, z, mk), U.Lane(i, j, 0, mk))
			ind += mk
		}
	}
}

// diff2D is the 2D analog over rows of the (Nr-x, Nc-z) sub-array.
func diff2D(dst []float64, U *utils.Array2D, x, z int) {
	var (
		mr, mc = U.Nr - x, U.Nc - z
		ind    int
	)
	for i := 0; i < mr; i++ {
		floats.SubTo(dst[ind:ind+mc], U.Row(i+x)[z:z+mc], U.Row(i)[:mc])
		ind += mc
	}
}

// project3D forms the longitudinal component dUpll = (l . dU)/r in place,
// then overwrites dUx with the transverse magnitude |dU - dUpll l/r|.
// At r = 0 the buffers are left zeroed; the origin slots are overwritten by
// the orchestrator anyway.
func project3D(s *scratch, lx, ly, lz, r float64) {
	if r == 0 {
		zero(s.dUpll)
		zero(s.dUx)
		return
	}
	floats.ScaleTo(s.dUpll, lx/r, s.dUx)
	floats.AddScaled(s.dUpll, ly/r, s.dUy)
	floats.AddScaled(s.dUpll, lz/r, s.dUz)
	floats.AddScaled(s.dUx, -lx/r, s.dUpll)
	floats.AddScaled(s.dUy, -ly/r, s.dUpll)
	floats.AddScaled(s.dUz, -lz/r, s.dUpll)
	for i, vx := range s.dUx {
		vy, vz := s.dUy[i], s.dUz[i]
		s.dUx[i] = math.Sqrt(vx*vx + vy*vy + vz*vz)
	}
}

// project2D does the same over the (x, z) plane, with dUy unused.
func project2D(s *scratch, lx, lz, r float64) {
	if r == 0 {
		zero(s.dUpll)
		zero(s.dUx)
		return
	}
	floats.ScaleTo(s.dUpll, lx/r, s.dUx)
	floats.AddScaled(s.dUpll, lz/r, s.dUz)
	floats.AddScaled(s.dUx, -lx/r, s.dUpll)
	floats.AddScaled(s.dUz, -lz/r, s.dUpll)
	for i, vx := range s.dUx {
		vz := s.dUz[i]
		s.dUx[i] = math.Sqrt(vx*vx + vz*vz)
	}
}

func zero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}

// powMean is the order-q structure function value at one displacement:
// the mean of v^q over the surviving pairs. POW keeps math.Pow semantics,
// including pow(0, q) for zero transverse differences - those pairs are
// not filtered.
func powMean(v []float64, q int) (s float64) {
	for _, x := range v {
		s += utils.POW(x, q)
	}
	return s / float64(len(v))
}
