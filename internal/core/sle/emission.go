package sle

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// EmitterState is the emission module singleton: the admin allowed to
// install schedules and set claim floors.
type EmitterState struct {
	Owner        types.Address
	PendingOwner types.Address
}

// EmissionSchedule is a collection's time-bounded linear reward policy.
// Admin calls overwrite the whole schedule; there is no history.
type EmissionSchedule struct {
	Active           bool
	Start            uint64
	End              uint64
	InitialAllotment uint256.Int
	Multiplier       uint64
	PerDay           uint256.Int

	// MinClaimFloor suppresses dust accruals: accumulated amounts below
	// it read as zero. Defaults to zero; set separately from the
	// schedule itself.
	MinClaimFloor uint256.Int
}

// ClaimCheckpoint is a token id's last successful claim time. A missing
// entry (or zero LastClaim) means the token has never claimed, which
// both starts accrual at the schedule start and arms the one-time
// initial allotment.
type ClaimCheckpoint struct {
	LastClaim uint64
}
