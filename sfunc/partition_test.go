package sfunc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisIndexList(t *testing.T) {
	// Union over all process coordinates covers [0, half) exactly once,
	// and each even/odd pair sums to half-1 (small-l with large-l).
	for _, tc := range []struct{ half, np int }{
		{4, 2}, {8, 2}, {16, 4}, {32, 8}, {8, 8}, {4, 4},
	} {
		seen := make(map[int]int)
		for c := 0; c < tc.np; c++ {
			list := axisIndexList(tc.half, tc.np, c)
			assert.Equal(t, tc.half/tc.np, len(list))
			for i := 0; i+1 < len(list); i += 2 {
				assert.Equal(t, tc.half-1, list[i]+list[i+1])
			}
			for _, v := range list {
				seen[v]++
			}
		}
		for v := 0; v < tc.half; v++ {
			assert.Equal(t, 1, seen[v], "half=%d np=%d index %d", tc.half, tc.np, v)
		}
	}
}

func TestAxisIndexListDegenerate(t *testing.T) {
	// np == half leaves only the even slot per rank.
	for c := 0; c < 8; c++ {
		list := axisIndexList(8, 8, c)
		require.Len(t, list, 1)
		assert.Equal(t, c, list[0])
	}
}

func TestPartitionExhaustive(t *testing.T) {
	// Aggregating all ranks' displacement lists must reproduce the half
	// domain exactly once - as a set and as a multiset.
	for _, tc := range []struct{ nx, ny, px, np int }{
		{8, 8, 2, 4},
		{32, 16, 4, 8},
		{64, 64, 8, 16},
	} {
		cfg := &Config{Nx: tc.nx, Ny: tc.ny, Nz: 8, P: tc.np, Px: tc.px}
		lists := AllDisplacements(cfg)
		require.Len(t, lists, tc.np)
		counts := make(map[Displacement]int)
		perRank := tc.nx * tc.ny / (4 * tc.np)
		for _, list := range lists {
			assert.Equal(t, perRank, len(list))
			for _, d := range list {
				counts[d]++
			}
		}
		require.Equal(t, tc.nx*tc.ny/4, len(counts))
		for x := 0; x < tc.nx/2; x++ {
			for y := 0; y < tc.ny/2; y++ {
				assert.Equal(t, 1, counts[Displacement{X: x, Y: y}],
					"nx=%d ny=%d displacement (%d,%d)", tc.nx, tc.ny, x, y)
			}
		}
	}
}

func TestPartitionRowMajorOrder(t *testing.T) {
	// Within a rank the list is the row-major product of the axis lists.
	cfg := &Config{Nx: 8, Ny: 8, Nz: 8, P: 4, Px: 2}
	rankx, ranky := RankCoords(3, cfg.Py())
	assert.Equal(t, 1, rankx)
	assert.Equal(t, 1, ranky)
	xl := axisIndexList(4, 2, 1)
	yl := axisIndexList(4, 2, 1)
	list := LocalDisplacements(cfg, 3)
	require.Len(t, list, 4)
	n := 0
	for i := 0; i < len(xl); i++ {
		for j := 0; j < len(yl); j++ {
			assert.Equal(t, Displacement{X: xl[i], Y: yl[j]}, list[n])
			n++
		}
	}
}

func TestPartitionLoadBalance(t *testing.T) {
	// With even per-axis list lengths the complement pairing makes the
	// summed pair work (Nx-x)*(Ny-y) identical on every rank.
	cfg := &Config{Nx: 32, Ny: 32, Nz: 2, P: 8, Px: 4}
	lists := AllDisplacements(cfg)
	var total float64
	work := make([]float64, cfg.P)
	for rank, list := range lists {
		for _, d := range list {
			w := float64((cfg.Nx - d.X) * (cfg.Ny - d.Y))
			work[rank] += w
			total += w
		}
	}
	mean := total / float64(cfg.P)
	for rank, w := range work {
		assert.InDelta(t, mean, w, 1e-9, "rank %d work %v vs mean %v", rank, w, mean)
	}
}
