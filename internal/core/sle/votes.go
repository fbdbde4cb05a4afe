package sle

import (
	"github.com/holiman/uint256"
)

// Checkpoint records a delegate's voting power as of a block height.
type Checkpoint struct {
	Block uint64
	Votes uint256.Int
}

// VoteHistory is a delegate's append-only checkpoint sequence. Blocks are
// strictly increasing; a write in the block of the final entry overwrites
// it instead of appending.
type VoteHistory struct {
	Checkpoints []Checkpoint
}

// Current returns the latest recorded voting power, zero if none.
func (h *VoteHistory) Current() *uint256.Int {
	if len(h.Checkpoints) == 0 {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(&h.Checkpoints[len(h.Checkpoints)-1].Votes)
}

// At returns the voting power in effect at the given block: the value of
// the latest checkpoint with Block <= block, zero if the history starts
// after it.
func (h *VoteHistory) At(block uint64) *uint256.Int {
	n := len(h.Checkpoints)
	if n == 0 || h.Checkpoints[0].Block > block {
		return new(uint256.Int)
	}
	if h.Checkpoints[n-1].Block <= block {
		return new(uint256.Int).Set(&h.Checkpoints[n-1].Votes)
	}
	// Invariant: cp[lo].Block <= block < cp[hi].Block.
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if h.Checkpoints[mid].Block <= block {
			lo = mid
		} else {
			hi = mid
		}
	}
	return new(uint256.Int).Set(&h.Checkpoints[lo].Votes)
}

// Write records votes at block, overwriting the final checkpoint when it
// is for the same block.
func (h *VoteHistory) Write(block uint64, votes *uint256.Int) {
	if n := len(h.Checkpoints); n > 0 && h.Checkpoints[n-1].Block == block {
		h.Checkpoints[n-1].Votes.Set(votes)
		return
	}
	var cp Checkpoint
	cp.Block = block
	cp.Votes.Set(votes)
	h.Checkpoints = append(h.Checkpoints, cp)
}
