package sfunc

// Displacement is one (x, y) pair of outer-axis grid displacements owned by
// a rank. In the 2D variants the second coordinate is the z displacement.
type Displacement struct {
	X, Y int
}

// RankCoords maps a linear rank id onto the (rankx, ranky) process grid
// coordinates, with py ranks along the second axis.
func RankCoords(rank, py int) (rankx, ranky int) {
	ranky = rank % py
	rankx = (rank - ranky) / py
	return
}

// axisIndexList builds the 1D displacement index list along one axis for
// process coordinate rankc, with half the axis size and np processes along
// it. Even slots walk rankc + i*np from the low end; each odd slot holds the
// mirror complement half-1-list[i-1] of its predecessor, so every rank carries a
// heavy (small displacement) and a light (large displacement) index in each
// pair and the per-rank work stays near constant.
func axisIndexList(half, np, rankc int) (list []int) {
	listSize := half / np
	list = make([]int, listSize)
	for i := 0; i < listSize; i += 2 {
		list[i] = rankc + i*np
		if i+1 < listSize {
			list[i+1] = half - 1 - list[i]
		}
	}
	return
}

// LocalDisplacements is the displacement list rank owns: the row-major
// product of its x index list with its y (or z) index list. Every rank's
// list has the same length (Nx*N2)/(4*P).
func LocalDisplacements(cfg *Config, rank int) (list []Displacement) {
	var (
		py = cfg.Py()
		nx = cfg.Nx / (2 * cfg.Px)
		ny = cfg.N2() / (2 * py)
	)
	rankx, ranky := RankCoords(rank, py)
	xl := axisIndexList(cfg.Nx/2, cfg.Px, rankx)
	yl := axisIndexList(cfg.N2()/2, py, ranky)
	list = make([]Displacement, 0, nx*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			list = append(list, Displacement{X: xl[i], Y: yl[j]})
		}
	}
	return
}

// AllDisplacements returns every rank's list, indexed by rank.
func AllDisplacements(cfg *Config) (lists [][]Displacement) {
	lists = make([][]Displacement, cfg.P)
	for rank := 0; rank < cfg.P; rank++ {
		lists[rank] = LocalDisplacements(cfg, rank)
	}
	return
}
