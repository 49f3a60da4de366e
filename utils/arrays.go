package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Array2D is a dense (Nr x Nc) array of float64, row-major. It wraps a
// gonum Dense so that 2D fields can flow into mat-based routines, while
// DataP exposes the raw backing slice for kernel loops.
type Array2D struct {
	M      *mat.Dense
	Nr, Nc int
	DataP  []float64
}

func NewArray2D(nr, nc int, dataO ...[]float64) (R *Array2D) {
	var data []float64
	if len(dataO) != 0 {
		data = dataO[0]
		if len(data) != nr*nc {
			panic(fmt.Errorf("mismatch in allocation: NewArray2D nr,nc = %v,%v, len(data[0]) = %v",
				nr, nc, len(data)))
		}
	} else {
		data = make([]float64, nr*nc)
	}
	m := mat.NewDense(nr, nc, data)
	R = &Array2D{
		M:     m,
		Nr:    nr,
		Nc:    nc,
		DataP: m.RawMatrix().Data,
	}
	return
}

func (a *Array2D) Dims() (nr, nc int)      { return a.Nr, a.Nc }
func (a *Array2D) At(i, j int) float64     { return a.DataP[i*a.Nc+j] }
func (a *Array2D) Set(i, j int, v float64) { a.DataP[i*a.Nc+j] = v }

// Row returns the contiguous backing slice for row i.
func (a *Array2D) Row(i int) []float64 { return a.DataP[i*a.Nc : (i+1)*a.Nc] }

// Array3D is a dense (Ni x Nj x Nk) array of float64, row-major with k
// fastest.
type Array3D struct {
	Ni, Nj, Nk int
	DataP      []float64
}

func NewArray3D(ni, nj, nk int, dataO ...[]float64) (R *Array3D) {
	var data []float64
	if len(dataO) != 0 {
		data = dataO[0]
		if len(data) != ni*nj*nk {
			panic(fmt.Errorf("mismatch in allocation: NewArray3D ni,nj,nk = %v,%v,%v, len(data[0]) = %v",
				ni, nj, nk, len(data)))
		}
	} else {
		data = make([]float64, ni*nj*nk)
	}
	R = &Array3D{
		Ni:    ni,
		Nj:    nj,
		Nk:    nk,
		DataP: data,
	}
	return
}

func (a *Array3D) Dims() (ni, nj, nk int)     { return a.Ni, a.Nj, a.Nk }
func (a *Array3D) Index(i, j, k int) int      { return (i*a.Nj+j)*a.Nk + k }
func (a *Array3D) At(i, j, k int) float64     { return a.DataP[a.Index(i, j, k)] }
func (a *Array3D) Set(i, j, k int, v float64) { a.DataP[a.Index(i, j, k)] = v }

// Lane returns the contiguous backing slice a(i, j, k0:k0+n).
func (a *Array3D) Lane(i, j, k0, n int) []float64 {
	base := a.Index(i, j, k0)
	return a.DataP[base : base+n]
}

// SliceK extracts the 2D sub-array a(:, :, k) - used to peel one order out
// of a result tensor for output.
func (a *Array3D) SliceK(k int) (R *Array2D) {
	R = NewArray2D(a.Ni, a.Nj)
	for i := 0; i < a.Ni; i++ {
		for j := 0; j < a.Nj; j++ {
			R.Set(i, j, a.At(i, j, k))
		}
	}
	return
}

// Array4D is a dense (Ni x Nj x Nk x Nl) array of float64, row-major with l
// fastest.
type Array4D struct {
	Ni, Nj, Nk, Nl int
	DataP          []float64
}

func NewArray4D(ni, nj, nk, nl int) (R *Array4D) {
	R = &Array4D{
		Ni:    ni,
		Nj:    nj,
		Nk:    nk,
		Nl:    nl,
		DataP: make([]float64, ni*nj*nk*nl),
	}
	return
}

func (a *Array4D) Dims() (ni, nj, nk, nl int)    { return a.Ni, a.Nj, a.Nk, a.Nl }
func (a *Array4D) Index(i, j, k, l int) int      { return ((i*a.Nj+j)*a.Nk+k)*a.Nl + l }
func (a *Array4D) At(i, j, k, l int) float64     { return a.DataP[a.Index(i, j, k, l)] }
func (a *Array4D) Set(i, j, k, l int, v float64) { a.DataP[a.Index(i, j, k, l)] = v }

// SliceL extracts the 3D sub-array a(:, :, :, l).
func (a *Array4D) SliceL(l int) (R *Array3D) {
	R = NewArray3D(a.Ni, a.Nj, a.Nk)
	for i := 0; i < a.Ni; i++ {
		for j := 0; j < a.Nj; j++ {
			for k := 0; k < a.Nk; k++ {
				R.Set(i, j, k, a.At(i, j, k, l))
			}
		}
	}
	return
}
