package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magiclamp-finance/lampd/internal/core/keylet"
	"github.com/magiclamp-finance/lampd/internal/ledger"
	"github.com/magiclamp-finance/lampd/internal/storage/statestore"
)

func newTableFixture(t *testing.T) (*ledger.Ledger, *ApplyStateTable) {
	t.Helper()
	led, err := ledger.New(statestore.NewMemoryBackend(), 0)
	require.NoError(t, err)
	return led, NewApplyStateTable(led)
}

func TestApplyStateTableBuffersWrites(t *testing.T) {
	led, table := newTableFixture(t)
	k := keylet.Native(alice)

	require.NoError(t, table.Insert(k, []byte("one")))

	// The write is visible through the table but not in the base view.
	data, err := table.Read(k)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)

	data, err = led.Read(k)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, table.Apply())

	data, err = led.Read(k)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
}

func TestApplyStateTableDiscard(t *testing.T) {
	led, table := newTableFixture(t)
	k := keylet.Native(alice)

	require.NoError(t, table.Insert(k, []byte("one")))

	// Dropping the table without Apply leaves the base untouched.
	table = nil
	_ = table

	exists, err := led.Exists(k)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApplyStateTableUpdateThenErase(t *testing.T) {
	led, table := newTableFixture(t)
	k := keylet.Native(alice)
	require.NoError(t, led.Insert(k, []byte("base")))

	require.NoError(t, table.Update(k, []byte("updated")))
	require.NoError(t, table.Erase(k))

	exists, err := table.Exists(k)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.True(t, table.IsErased(k))

	require.NoError(t, table.Apply())

	exists, err = led.Exists(k)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApplyStateTableInsertEraseCancels(t *testing.T) {
	led, table := newTableFixture(t)
	k := keylet.Native(alice)

	require.NoError(t, table.Insert(k, []byte("one")))
	require.NoError(t, table.Erase(k))
	require.NoError(t, table.Apply())

	exists, err := led.Exists(k)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApplyStateTableInsertOverExisting(t *testing.T) {
	led, table := newTableFixture(t)
	k := keylet.Native(alice)
	require.NoError(t, led.Insert(k, []byte("base")))

	assert.Error(t, table.Insert(k, []byte("two")))
}

func TestEngineRollsBackOnFailure(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, alice, units(1000))

	// The transfer moves the allowance check past the balance debit
	// path, so a failure midway must leave every entry as it was.
	apply(t, e, &TokenApprove{
		BaseOp:  NewBaseOp(TypeTokenApprove, alice),
		Spender: bob,
		Amount:  units(5000),
	}, Success)

	res := e.Apply(&TokenTransferFrom{
		BaseOp: NewBaseOp(TypeTokenTransferFrom, bob),
		From:   alice,
		To:     carol,
		Amount: units(2000),
	})
	assert.Equal(t, ErrInsufficientFunds, res.Result)
	assert.False(t, res.Applied)

	assert.Equal(t, units(1000), balanceOf(t, e, alice))
	assert.True(t, balanceOf(t, e, carol).IsZero())

	allowance, qres := e.Allowance(alice, bob)
	require.True(t, qres.IsSuccess())
	assert.Equal(t, units(5000), allowance)
}

func TestEngineReentrancyGuard(t *testing.T) {
	e := newTestEngine(t)
	e.applying = true
	res := e.Apply(&TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, alice),
		To:     bob,
		Amount: units(1),
	})
	assert.Equal(t, ErrReentrancy, res.Result)
}
