package sfunc

import (
	"math"

	"github.com/notargets/fastsf/utils"
)

// sfVector2D is the rank body for the 2D vector variants. The partitioner's
// second coordinate is the z displacement here; there is no inner loop.
func sfVector2D(cfg *Config, comm *utils.Comm[Sample], myRank int,
	Ux, Uz *utils.Array2D, pll, perp *utils.Array3D) {
	var (
		s     scratch
		disps = LocalDisplacements(cfg, myRank)
		both  = !cfg.LongOnly
	)
	for _, d := range disps {
		x, z := d.X, d.Y
		var (
			count  = (cfg.Nx - x) * (cfg.Nz - z)
			lx, lz = float64(x) * cfg.Dx, float64(z) * cfg.Dz
			r      = math.Sqrt(lx*lx + lz*lz)
		)
		s.resize(count)
		diff2D(s.dUx, Ux, x, z)
		diff2D(s.dUz, Uz, x, z)
		project2D(&s, lx, lz, r)
		for p := 0; p <= cfg.Q2-cfg.Q1; p++ {
			smp := Sample{X: x, Z: z, P: p,
				SPll: powMean(s.dUpll, cfg.Q1+p)}
			if both {
				smp.SPerp = powMean(s.dUx, cfg.Q1+p)
			}
			gatherWrite3D(comm, myRank, smp, pll, perp)
		}
	}
	if myRank == 0 {
		zeroOrigin3D(pll, perp)
	}
}

// sfScalar2D is the rank body for the 2D scalar variant.
func sfScalar2D(cfg *Config, comm *utils.Comm[Sample], myRank int,
	T *utils.Array2D, st *utils.Array3D) {
	var (
		s     scratch
		disps = LocalDisplacements(cfg, myRank)
	)
	for _, d := range disps {
		x, z := d.X, d.Y
		count := (cfg.Nx - x) * (cfg.Nz - z)
		s.resize(count)
		diff2D(s.dUx, T, x, z)
		for p := 0; p <= cfg.Q2-cfg.Q1; p++ {
			smp := Sample{X: x, Z: z, P: p,
				SPll: powMean(s.dUx, cfg.Q1+p)}
			gatherWrite3D(comm, myRank, smp, st, nil)
		}
	}
	if myRank == 0 {
		zeroOrigin3D(st, nil)
	}
}

func zeroOrigin3D(pll, perp *utils.Array3D) {
	for k := 0; k < pll.Nk; k++ {
		pll.Set(0, 0, k, 0)
		if perp != nil {
			perp.Set(0, 0, k, 0)
		}
	}
}
