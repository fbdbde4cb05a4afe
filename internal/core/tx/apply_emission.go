package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/keylet"
	"github.com/magiclamp-finance/lampd/internal/core/sle"
	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// accruedAmount computes a token's claimable reward under a schedule.
// Accrual runs over [max(lastClaim, start), min(now, end)] in whole
// days; the initial allotment is granted once, on the first claim.
// Amounts under the claim floor read as zero.
func accruedAmount(sched *sle.EmissionSchedule, lastClaim, now uint64) *uint256.Int {
	zero := new(uint256.Int)
	if !sched.Active {
		return zero
	}
	t1 := lastClaim
	if sched.Start > t1 {
		t1 = sched.Start
	}
	t2 := now
	if sched.End < t2 {
		t2 = sched.End
	}
	if t2 <= t1 {
		return zero
	}

	days := (t2 - t1) / secondsPerDay
	total := new(uint256.Int).Mul(&sched.PerDay, uint256.NewInt(days))
	if lastClaim == 0 {
		total.Add(total, &sched.InitialAllotment)
	}
	if !sched.MinClaimFloor.IsZero() && total.Lt(&sched.MinClaimFloor) {
		return zero
	}
	return total
}

// requireEmitterOwner loads the emitter state and checks the caller.
func requireEmitterOwner(ctx *ApplyContext) (*sle.EmitterState, Result) {
	es, res := loadEmitterState(ctx.View, ctx.Config.Emitter)
	if !res.IsSuccess() {
		return nil, res
	}
	if es.Owner != ctx.Caller {
		return nil, ErrNotOwner
	}
	return es, Success
}

func (op *EmissionSet) Apply(ctx *ApplyContext) Result {
	if _, res := requireEmitterOwner(ctx); !res.IsSuccess() {
		return res
	}
	k := keylet.Schedule(ctx.Config.Emitter, op.Collection)

	// A rewrite keeps the previously configured claim floor.
	var prev sle.EmissionSchedule
	res := loadEntry(ctx.View, k, &prev)
	if !res.IsSuccess() && res != ErrNotFound {
		return res
	}

	var sched sle.EmissionSchedule
	sched.Active = op.Active
	sched.Start = op.Start
	sched.End = op.Start + op.Duration
	sched.InitialAllotment.Set(op.InitialAllotment)
	sched.Multiplier = op.Multiplier
	sched.PerDay.Set(op.PerDay)
	sched.MinClaimFloor.Set(&prev.MinClaimFloor)
	return storeEntry(ctx.View, k, &sched)
}

func (op *EmissionSetClaimFloor) Apply(ctx *ApplyContext) Result {
	if _, res := requireEmitterOwner(ctx); !res.IsSuccess() {
		return res
	}
	k := keylet.Schedule(ctx.Config.Emitter, op.Collection)
	var sched sle.EmissionSchedule
	if res := loadEntry(ctx.View, k, &sched); !res.IsSuccess() {
		return res
	}
	sched.MinClaimFloor.Set(op.Floor)
	return storeEntry(ctx.View, k, &sched)
}

func (op *EmissionClaim) Apply(ctx *ApplyContext) Result {
	var sched sle.EmissionSchedule
	if res := loadEntry(ctx.View, keylet.Schedule(ctx.Config.Emitter, op.Collection), &sched); !res.IsSuccess() {
		return res
	}

	total := new(uint256.Int)
	for _, id := range op.IDs {
		owner, res := nftOwner(ctx.View, op.Collection, id)
		if !res.IsSuccess() {
			return res
		}
		if owner != ctx.Caller {
			return ErrNotTokenHolder
		}

		ck := keylet.Claim(ctx.Config.Emitter, op.Collection, id)
		var cp sle.ClaimCheckpoint
		res = loadEntry(ctx.View, ck, &cp)
		if !res.IsSuccess() && res != ErrNotFound {
			return res
		}

		total.Add(total, accruedAmount(&sched, cp.LastClaim, ctx.Now()))
		cp.LastClaim = ctx.Now()
		if res := storeEntry(ctx.View, ck, &cp); !res.IsSuccess() {
			return res
		}
	}

	return mintRegistryFungible(ctx.View, ctx.Config.Emitter, ctx.Caller, total)
}

func (op *EmissionAuthorizeOwnership) Apply(ctx *ApplyContext) Result {
	es, res := requireEmitterOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	es.PendingOwner = op.NewOwner
	return storeEmitterState(ctx.View, ctx.Config.Emitter, es)
}

func (op *EmissionAssumeOwnership) Apply(ctx *ApplyContext) Result {
	es, res := loadEmitterState(ctx.View, ctx.Config.Emitter)
	if !res.IsSuccess() {
		return res
	}
	if es.PendingOwner.IsZero() || es.PendingOwner != ctx.Caller {
		return ErrNotPendingOwner
	}
	es.Owner = ctx.Caller
	es.PendingOwner = types.ZeroAddress
	return storeEmitterState(ctx.View, ctx.Config.Emitter, es)
}
