package sfunc

import "github.com/notargets/fastsf/utils"

// Sample is one per-rank contribution to a collective gather: the
// displacement indices, the order slot p (0-based from q1), and the
// structure function values at that displacement. The scalar variants carry
// their value in SPll; SPerp rides along only for the both-components
// vector variants.
type Sample struct {
	X, Y, Z int
	P       int
	SPll    float64
	SPerp   float64
}

// gatherWrite4D runs one collective and, on rank 0, scatters the P
// contributions into the 3D result tensors. Each rank owns a distinct
// (x, y) pair per iteration, so the write slots never collide.
func gatherWrite4D(comm *utils.Comm[Sample], myRank int, s Sample, pll, perp *utils.Array4D) {
	all := comm.Gather(myRank, s)
	if myRank != 0 {
		return
	}
	for _, g := range all {
		pll.Set(g.X, g.Y, g.Z, g.P, g.SPll)
		if perp != nil {
			perp.Set(g.X, g.Y, g.Z, g.P, g.SPerp)
		}
	}
}

// gatherWrite3D is the 2D-variant analog; the tensors are indexed
// (lx, lz, p).
func gatherWrite3D(comm *utils.Comm[Sample], myRank int, s Sample, pll, perp *utils.Array3D) {
	all := comm.Gather(myRank, s)
	if myRank != 0 {
		return
	}
	for _, g := range all {
		pll.Set(g.X, g.Z, g.P, g.SPll)
		if perp != nil {
			perp.Set(g.X, g.Z, g.P, g.SPerp)
		}
	}
}
