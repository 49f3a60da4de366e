package sfunc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/notargets/fastsf/utils"
)

// Fields holds whichever input arrays the selected variant needs. The 3D
// vector variants use Ux3, Uy3, Uz3; 2D vector uses Ux2, Uz2; the scalar
// variants use T3 or T2.
type Fields struct {
	Ux3, Uy3, Uz3 *utils.Array3D
	T3            *utils.Array3D
	Ux2, Uz2      *utils.Array2D
	T2            *utils.Array2D
}

// Result owns the dense structure function tensors. Only the tensors of
// the computed variant are allocated; 3D tensors are indexed
// (lx, ly, lz, p) and 2D tensors (lx, lz, p) with p 0-based from q1.
type Result struct {
	Pll3, Perp3, Scalar3 *utils.Array4D
	Pll2, Perp2, Scalar2 *utils.Array3D
}

// allocResult sizes and zeroes the output tensors for the selected variant.
// In the rank model these allocations belong to rank 0; worker rank bodies
// only ever touch them through the gather path on rank 0.
func allocResult(cfg *Config) (res *Result) {
	var (
		m = cfg.NOrders()
	)
	res = &Result{}
	if cfg.TwoDim {
		if cfg.Scalar {
			res.Scalar2 = utils.NewArray3D(cfg.Nx/2, cfg.Nz/2, m)
		} else {
			res.Pll2 = utils.NewArray3D(cfg.Nx/2, cfg.Nz/2, m)
			if !cfg.LongOnly {
				res.Perp2 = utils.NewArray3D(cfg.Nx/2, cfg.Nz/2, m)
			}
		}
		return
	}
	if cfg.Scalar {
		res.Scalar3 = utils.NewArray4D(cfg.Nx/2, cfg.Ny/2, cfg.Nz/2, m)
	} else {
		res.Pll3 = utils.NewArray4D(cfg.Nx/2, cfg.Ny/2, cfg.Nz/2, m)
		if !cfg.LongOnly {
			res.Perp3 = utils.NewArray4D(cfg.Nx/2, cfg.Ny/2, cfg.Nz/2, m)
		}
	}
	return
}

// Compute validates the decomposition, allocates the result tensors and
// runs the SPMD rank bodies to completion.
func Compute(cfg *Config, f *Fields, lg *zap.SugaredLogger) (res *Result, err error) {
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	if err = checkFields(cfg, f); err != nil {
		return nil, err
	}
	res = allocResult(cfg)
	comm := utils.NewComm[Sample](cfg.P)
	lg.Debugw("process grid", "P", cfg.P, "px", cfg.Px, "py", cfg.Py(),
		"perRank", cfg.Nx*cfg.N2()/(4*cfg.P))
	err = utils.RunSPMD(cfg.P, func(myRank int) error {
		// Rank 0 is the only rank holding result tensors; the others pass
		// nil and publish through the gathers.
		var (
			pll3, perp3, st3 *utils.Array4D
			pll2, perp2, st2 *utils.Array3D
		)
		if myRank == 0 {
			pll3, perp3, st3 = res.Pll3, res.Perp3, res.Scalar3
			pll2, perp2, st2 = res.Pll2, res.Perp2, res.Scalar2
		}
		switch {
		case cfg.TwoDim && cfg.Scalar:
			sfScalar2D(cfg, comm, myRank, f.T2, st2)
		case cfg.TwoDim:
			sfVector2D(cfg, comm, myRank, f.Ux2, f.Uz2, pll2, perp2)
		case cfg.Scalar:
			sfScalar3D(cfg, comm, myRank, f.T3, st3)
		default:
			sfVector3D(cfg, comm, myRank, f.Ux3, f.Uy3, f.Uz3, pll3, perp3)
		}
		return nil
	})
	return
}

// checkFields verifies that the variant's input arrays are present and
// match the configured grid.
func checkFields(cfg *Config, f *Fields) error {
	want2D := func(a *utils.Array2D, name string) error {
		if a == nil {
			return fmt.Errorf("missing input field %s", name)
		}
		if a.Nr != cfg.Nx || a.Nc != cfg.Nz {
			return fmt.Errorf("field %s has shape (%d, %d), want (%d, %d)",
				name, a.Nr, a.Nc, cfg.Nx, cfg.Nz)
		}
		return nil
	}
	want3D := func(a *utils.Array3D, name string) error {
		if a == nil {
			return fmt.Errorf("missing input field %s", name)
		}
		if a.Ni != cfg.Nx || a.Nj != cfg.Ny || a.Nk != cfg.Nz {
			return fmt.Errorf("field %s has shape (%d, %d, %d), want (%d, %d, %d)",
				name, a.Ni, a.Nj, a.Nk, cfg.Nx, cfg.Ny, cfg.Nz)
		}
		return nil
	}
	switch {
	case cfg.TwoDim && cfg.Scalar:
		return want2D(f.T2, "T")
	case cfg.TwoDim:
		if err := want2D(f.Ux2, "Ux"); err != nil {
			return err
		}
		return want2D(f.Uz2, "Uz")
	case cfg.Scalar:
		return want3D(f.T3, "T")
	default:
		if err := want3D(f.Ux3, "Ux"); err != nil {
			return err
		}
		if err := want3D(f.Uy3, "Uy"); err != nil {
			return err
		}
		return want3D(f.Uz3, "Uz")
	}
}
