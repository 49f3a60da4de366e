package utils

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Comm connects NP SPMD rank goroutines through one channel lane per rank.
// The lanes have capacity 1, so a rank can run at most one Gather ahead of
// the root's consumption - the collective sequence stays lock-step the way
// an MPI_Gather schedule does.
type Comm[T any] struct {
	NP    int
	lanes []chan T
}

func NewComm[T any](np int) (c *Comm[T]) {
	if np < 1 {
		panic(fmt.Sprintf("communicator size %d out of bounds", np))
	}
	c = &Comm[T]{
		NP:    np,
		lanes: make([]chan T, np),
	}
	for n := 0; n < np; n++ {
		c.lanes[n] = make(chan T, 1)
	}
	return
}

// Gather contributes one value from myRank. On rank 0 it returns the NP
// contributions indexed by rank; on every other rank it returns nil. All
// ranks must call Gather the same number of times in the same order.
func (c *Comm[T]) Gather(myRank int, val T) (all []T) {
	if myRank < 0 || myRank > c.NP-1 {
		panic(fmt.Sprintf("rank %d out of bounds", myRank))
	}
	c.lanes[myRank] <- val
	if myRank == 0 {
		all = make([]T, c.NP)
		for n := 0; n < c.NP; n++ {
			all[n] = <-c.lanes[n]
		}
	}
	return
}

// RunSPMD launches np rank goroutines running the same body on rank ids
// 0..np-1 and waits for all of them. Rank bodies that can fail must do so
// before their first collective call, otherwise the surviving ranks would
// block inside Gather.
func RunSPMD(np int, body func(myRank int) error) error {
	eg := new(errgroup.Group)
	for n := 0; n < np; n++ {
		n := n
		eg.Go(func() error {
			return body(n)
		})
	}
	return eg.Wait()
}
