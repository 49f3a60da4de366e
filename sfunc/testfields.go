package sfunc

import (
	"fmt"

	"github.com/notargets/fastsf/utils"
)

// The TEST-mode field generators reproduce the analytic inputs whose
// structure functions have closed forms: a linear velocity field gives
// S_pll = r^q with zero transverse part, and a linear scalar field gives
// S = (lx+ly+lz)^q.

// GenerateVector3D builds U = [x, y, z] on the configured grid.
func GenerateVector3D(cfg *Config) (Ux, Uy, Uz *utils.Array3D) {
	fmt.Printf("\nGenerating the 3D velocity field: U = [x, y, z] \n")
	Ux = utils.NewArray3D(cfg.Nx, cfg.Ny, cfg.Nz)
	Uy = utils.NewArray3D(cfg.Nx, cfg.Ny, cfg.Nz)
	Uz = utils.NewArray3D(cfg.Nx, cfg.Ny, cfg.Nz)
	for i := 0; i < cfg.Nx; i++ {
		for j := 0; j < cfg.Ny; j++ {
			for k := 0; k < cfg.Nz; k++ {
				Ux.Set(i, j, k, float64(i)*cfg.Dx)
				Uy.Set(i, j, k, float64(j)*cfg.Dy)
				Uz.Set(i, j, k, float64(k)*cfg.Dz)
			}
		}
	}
	fmt.Printf("\nField has been generated.\n")
	return
}

// GenerateVector2D builds U = [x, z].
func GenerateVector2D(cfg *Config) (Ux, Uz *utils.Array2D) {
	fmt.Printf("\nGenerating the 2D velocity field: U = [x, z] \n")
	Ux = utils.NewArray2D(cfg.Nx, cfg.Nz)
	Uz = utils.NewArray2D(cfg.Nx, cfg.Nz)
	for i := 0; i < cfg.Nx; i++ {
		for k := 0; k < cfg.Nz; k++ {
			Ux.Set(i, k, float64(i)*cfg.Dx)
			Uz.Set(i, k, float64(k)*cfg.Dz)
		}
	}
	fmt.Printf("\nField has been generated.\n")
	return
}

// GenerateScalar3D builds T = x + y + z.
func GenerateScalar3D(cfg *Config) (T *utils.Array3D) {
	fmt.Printf("\nGenerating the scalar field: T = x + y + z \n")
	T = utils.NewArray3D(cfg.Nx, cfg.Ny, cfg.Nz)
	for i := 0; i < cfg.Nx; i++ {
		for j := 0; j < cfg.Ny; j++ {
			for k := 0; k < cfg.Nz; k++ {
				T.Set(i, j, k, float64(i)*cfg.Dx+float64(j)*cfg.Dy+float64(k)*cfg.Dz)
			}
		}
	}
	fmt.Printf("\nField has been generated.\n")
	return
}

// GenerateScalar2D builds T = x + z.
func GenerateScalar2D(cfg *Config) (T *utils.Array2D) {
	fmt.Printf("\nGenerating the scalar field: T = x + z \n")
	T = utils.NewArray2D(cfg.Nx, cfg.Nz)
	for i := 0; i < cfg.Nx; i++ {
		for k := 0; k < cfg.Nz; k++ {
			T.Set(i, k, float64(i)*cfg.Dx+float64(k)*cfg.Dz)
		}
	}
	fmt.Printf("\nField has been generated.\n")
	return
}

// GenerateFields fills the variant-appropriate members of a Fields holder
// with the TEST-mode analytic inputs.
func GenerateFields(cfg *Config) (f *Fields) {
	f = &Fields{}
	switch {
	case cfg.TwoDim && cfg.Scalar:
		f.T2 = GenerateScalar2D(cfg)
	case cfg.TwoDim:
		f.Ux2, f.Uz2 = GenerateVector2D(cfg)
	case cfg.Scalar:
		f.T3 = GenerateScalar3D(cfg)
	default:
		f.Ux3, f.Uy3, f.Uz3 = GenerateVector3D(cfg)
	}
	return
}
