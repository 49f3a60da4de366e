package utils

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommGatherOrdering(t *testing.T) {
	// Rank 0 receives contributions indexed by rank, every iteration,
	// regardless of goroutine scheduling.
	const np = 8
	const iters = 50
	comm := NewComm[int](np)
	collected := make([][]int, 0, iters)
	var wg sync.WaitGroup
	wg.Add(np)
	for n := 0; n < np; n++ {
		n := n
		go func() {
			defer wg.Done()
			for it := 0; it < iters; it++ {
				all := comm.Gather(n, n*1000+it)
				if n == 0 {
					collected = append(collected, all)
				} else {
					assert.Nil(t, all)
				}
			}
		}()
	}
	wg.Wait()
	require.Len(t, collected, iters)
	for it, all := range collected {
		for rank, v := range all {
			assert.Equal(t, rank*1000+it, v)
		}
	}
}

func TestCommSingleRank(t *testing.T) {
	comm := NewComm[float64](1)
	all := comm.Gather(0, 3.5)
	require.Len(t, all, 1)
	assert.Equal(t, 3.5, all[0])
}

func TestCommBounds(t *testing.T) {
	assert.Panics(t, func() { NewComm[int](0) })
	comm := NewComm[int](2)
	assert.Panics(t, func() { comm.Gather(2, 0) })
}

func TestRunSPMD(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = map[int]bool{}
	)
	err := RunSPMD(6, func(myRank int) error {
		mu.Lock()
		defer mu.Unlock()
		seen[myRank] = true
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, seen, 6)

	boom := errors.New("boom")
	err = RunSPMD(3, func(myRank int) error {
		if myRank == 1 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
