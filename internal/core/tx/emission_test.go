package tx

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// setTestSchedule installs a 100 day schedule paying 10 GNI per day
// with a 100 GNI initial allotment, starting at the sale start.
func setTestSchedule(t *testing.T, e *Engine, start uint64) {
	t.Helper()
	apply(t, e, &EmissionSet{
		BaseOp:           NewBaseOp(TypeEmissionSet, testOwner),
		Collection:       testCollection,
		Active:           true,
		InitialAllotment: units(100),
		Multiplier:       40,
		Start:            start,
		Duration:         100 * secondsPerDay,
		PerDay:           units(10),
	}, Success)
}

func emissionOf(t *testing.T, e *Engine, addr types.Address) *uint256.Int {
	t.Helper()
	bal, res := e.EmissionBalance(addr)
	require.True(t, res.IsSuccess())
	return bal
}

func TestEmissionSetRequiresOwner(t *testing.T) {
	e := newTestEngine(t)

	res := e.Apply(&EmissionSet{
		BaseOp:           NewBaseOp(TypeEmissionSet, alice),
		Collection:       testCollection,
		Active:           true,
		InitialAllotment: units(100),
		Start:            testSaleStart,
		Duration:         secondsPerDay,
		PerDay:           units(10),
	})
	assert.Equal(t, ErrNotOwner, res.Result)
}

func TestEmissionClaimFirstDay(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 1, types.ZeroAddress)
	setTestSchedule(t, e, testSaleStart)

	// One hour in: no whole day yet, the allotment alone pays out.
	apply(t, e, &EmissionClaim{
		BaseOp:     NewBaseOp(TypeEmissionClaim, alice),
		Collection: testCollection,
		IDs:        []uint64{0},
	}, Success)
	assert.Equal(t, units(100), emissionOf(t, e, alice))

	// An immediate second claim yields nothing.
	apply(t, e, &EmissionClaim{
		BaseOp:     NewBaseOp(TypeEmissionClaim, alice),
		Collection: testCollection,
		IDs:        []uint64{0},
	}, Success)
	assert.Equal(t, units(100), emissionOf(t, e, alice))
}

func TestEmissionClaimAccruesDaily(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 1, types.ZeroAddress)
	setTestSchedule(t, e, testSaleStart)

	apply(t, e, &EmissionClaim{
		BaseOp:     NewBaseOp(TypeEmissionClaim, alice),
		Collection: testCollection,
		IDs:        []uint64{0},
	}, Success)

	// Three more days vest three daily payments, no second allotment.
	e.SetEnvironment(2, e.Config().Timestamp+3*secondsPerDay)
	apply(t, e, &EmissionClaim{
		BaseOp:     NewBaseOp(TypeEmissionClaim, alice),
		Collection: testCollection,
		IDs:        []uint64{0},
	}, Success)
	assert.Equal(t, units(130), emissionOf(t, e, alice))
}

func TestEmissionAccruedQuery(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 1, types.ZeroAddress)
	setTestSchedule(t, e, testSaleStart)

	acc, res := e.Accumulated(testCollection, 0)
	require.True(t, res.IsSuccess())
	assert.Equal(t, units(100), acc)
}

func TestEmissionClaimEndsWithWindow(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 1, types.ZeroAddress)
	setTestSchedule(t, e, testSaleStart)

	// Far past the end only the window's days count.
	e.SetEnvironment(2, testSaleStart+400*secondsPerDay)
	apply(t, e, &EmissionClaim{
		BaseOp:     NewBaseOp(TypeEmissionClaim, alice),
		Collection: testCollection,
		IDs:        []uint64{0},
	}, Success)
	assert.Equal(t, units(100+100*10), emissionOf(t, e, alice))

	// The window is exhausted.
	e.SetEnvironment(3, testSaleStart+500*secondsPerDay)
	apply(t, e, &EmissionClaim{
		BaseOp:     NewBaseOp(TypeEmissionClaim, alice),
		Collection: testCollection,
		IDs:        []uint64{0},
	}, Success)
	assert.Equal(t, units(1100), emissionOf(t, e, alice))
}

func TestEmissionClaimBeforeStartForfeitsAllotment(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 1, types.ZeroAddress)

	// Schedule starts a day from now.
	start := e.Config().Timestamp + secondsPerDay
	setTestSchedule(t, e, start)

	// Claiming inside the dead zone pays nothing but stamps the
	// checkpoint, spending the one-time allotment.
	apply(t, e, &EmissionClaim{
		BaseOp:     NewBaseOp(TypeEmissionClaim, alice),
		Collection: testCollection,
		IDs:        []uint64{0},
	}, Success)
	assert.True(t, emissionOf(t, e, alice).IsZero())

	e.SetEnvironment(2, start+2*secondsPerDay)
	apply(t, e, &EmissionClaim{
		BaseOp:     NewBaseOp(TypeEmissionClaim, alice),
		Collection: testCollection,
		IDs:        []uint64{0},
	}, Success)
	assert.Equal(t, units(20), emissionOf(t, e, alice))
}

func TestEmissionClaimFloor(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 1, types.ZeroAddress)
	setTestSchedule(t, e, testSaleStart)

	apply(t, e, &EmissionSetClaimFloor{
		BaseOp:     NewBaseOp(TypeEmissionSetClaimFloor, testOwner),
		Collection: testCollection,
		Floor:      units(1000),
	}, Success)

	// The allotment plus one day sits under the floor.
	e.SetEnvironment(2, e.Config().Timestamp+secondsPerDay)
	apply(t, e, &EmissionClaim{
		BaseOp:     NewBaseOp(TypeEmissionClaim, alice),
		Collection: testCollection,
		IDs:        []uint64{0},
	}, Success)
	assert.True(t, emissionOf(t, e, alice).IsZero())
}

func TestEmissionSetPreservesFloor(t *testing.T) {
	e := newTestEngine(t)
	setTestSchedule(t, e, testSaleStart)

	apply(t, e, &EmissionSetClaimFloor{
		BaseOp:     NewBaseOp(TypeEmissionSetClaimFloor, testOwner),
		Collection: testCollection,
		Floor:      units(500_000),
	}, Success)

	// Rewriting the schedule keeps the standing floor.
	setTestSchedule(t, e, testSaleStart)

	mintLamps(t, e, alice, 1, types.ZeroAddress)
	e.SetEnvironment(2, e.Config().Timestamp+10*secondsPerDay)
	apply(t, e, &EmissionClaim{
		BaseOp:     NewBaseOp(TypeEmissionClaim, alice),
		Collection: testCollection,
		IDs:        []uint64{0},
	}, Success)
	assert.True(t, emissionOf(t, e, alice).IsZero())
}

func TestEmissionClaimNotHolder(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 1, types.ZeroAddress)
	setTestSchedule(t, e, testSaleStart)

	res := e.Apply(&EmissionClaim{
		BaseOp:     NewBaseOp(TypeEmissionClaim, bob),
		Collection: testCollection,
		IDs:        []uint64{0},
	})
	assert.Equal(t, ErrNotTokenHolder, res.Result)
}

func TestEmissionClaimWithoutSchedule(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 1, types.ZeroAddress)

	res := e.Apply(&EmissionClaim{
		BaseOp:     NewBaseOp(TypeEmissionClaim, alice),
		Collection: testCollection,
		IDs:        []uint64{0},
	})
	assert.Equal(t, ErrNotFound, res.Result)
}

func TestEmissionOwnershipHandover(t *testing.T) {
	e := newTestEngine(t)

	apply(t, e, &EmissionAuthorizeOwnership{
		BaseOp:   NewBaseOp(TypeEmissionAuthorizeOwnership, testOwner),
		NewOwner: bob,
	}, Success)

	res := e.Apply(&EmissionAssumeOwnership{BaseOp: NewBaseOp(TypeEmissionAssumeOwnership, carol)})
	assert.Equal(t, ErrNotPendingOwner, res.Result)

	apply(t, e, &EmissionAssumeOwnership{BaseOp: NewBaseOp(TypeEmissionAssumeOwnership, bob)}, Success)
	setTestScheduleAs(t, e, bob)
}

// setTestScheduleAs installs the standard schedule as a given caller.
func setTestScheduleAs(t *testing.T, e *Engine, caller types.Address) {
	t.Helper()
	apply(t, e, &EmissionSet{
		BaseOp:           NewBaseOp(TypeEmissionSet, caller),
		Collection:       testCollection,
		Active:           true,
		InitialAllotment: units(100),
		Multiplier:       40,
		Start:            testSaleStart,
		Duration:         100 * secondsPerDay,
		PerDay:           units(10),
	}, Success)
}
