package sfunc

import (
	"math"

	"github.com/notargets/fastsf/utils"
)

// sfVector3D is the rank body for the 3D vector variants. It walks the
// rank's displacement list, forms the difference buffers for every z in the
// half-domain, projects, reduces per order and gathers. perp is nil for the
// longitudinal-only variant; pll and perp are non-nil on rank 0 only.
func sfVector3D(cfg *Config, comm *utils.Comm[Sample], myRank int,
	Ux, Uy, Uz *utils.Array3D, pll, perp *utils.Array4D) {
	var (
		s     scratch
		disps = LocalDisplacements(cfg, myRank)
		both  = !cfg.LongOnly
	)
	for _, d := range disps {
		x, y := d.X, d.Y
		for z := 0; z < cfg.Nz/2; z++ {
			var (
				count      = (cfg.Nx - x) * (cfg.Ny - y) * (cfg.Nz - z)
				lx, ly, lz = float64(x) * cfg.Dx, float64(y) * cfg.Dy, float64(z) * cfg.Dz
				r          = math.Sqrt(lx*lx + ly*ly + lz*lz)
			)
			s.resize(count)
			diff3D(s.dUx, Ux, x, y, z)
			diff3D(s.dUy, Uy, x, y, z)
			diff3D(s.dUz, Uz, x, y, z)
			project3D(&s, lx, ly, lz, r)
			for p := 0; p <= cfg.Q2-cfg.Q1; p++ {
				smp := Sample{X: x, Y: y, Z: z, P: p,
					SPll: powMean(s.dUpll, cfg.Q1+p)}
				if both {
					smp.SPerp = powMean(s.dUx, cfg.Q1+p)
				}
				gatherWrite4D(comm, myRank, smp, pll, perp)
			}
		}
	}
	if myRank == 0 {
		zeroOrigin4D(pll, perp)
	}
}

// sfScalar3D is the rank body for the 3D scalar variant.
func sfScalar3D(cfg *Config, comm *utils.Comm[Sample], myRank int,
	T *utils.Array3D, st *utils.Array4D) {
	var (
		s     scratch
		disps = LocalDisplacements(cfg, myRank)
	)
	for _, d := range disps {
		x, y := d.X, d.Y
		for z := 0; z < cfg.Nz/2; z++ {
			count := (cfg.Nx - x) * (cfg.Ny - y) * (cfg.Nz - z)
			s.resize(count)
			diff3D(s.dUx, T, x, y, z)
			for p := 0; p <= cfg.Q2-cfg.Q1; p++ {
				smp := Sample{X: x, Y: y, Z: z, P: p,
					SPll: powMean(s.dUx, cfg.Q1+p)}
				gatherWrite4D(comm, myRank, smp, st, nil)
			}
		}
	}
	if myRank == 0 {
		zeroOrigin4D(st, nil)
	}
}

// zeroOrigin4D applies the l = 0 convention: the origin holds no pair
// separation, so every order slot is forced to zero.
func zeroOrigin4D(pll, perp *utils.Array4D) {
	for l := 0; l < pll.Nl; l++ {
		pll.Set(0, 0, 0, l, 0)
		if perp != nil {
			perp.Set(0, 0, 0, l, 0)
		}
	}
}
