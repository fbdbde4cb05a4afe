package statestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) [32]byte {
	var k [32]byte
	k[0] = b
	return k
}

func TestMemoryBackendCRUD(t *testing.T) {
	m := NewMemoryBackend()
	k := testKey(1)

	_, err := m.Get(k)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Put(k, []byte("v1")))

	got, err := m.Get(k)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	has, err := m.Has(k)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, m.Put(k, []byte("v2")))
	got, err = m.Get(k)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, m.Delete(k))
	has, err = m.Has(k)
	require.NoError(t, err)
	assert.False(t, has)

	// Deleting a missing key is a no-op.
	require.NoError(t, m.Delete(k))
}

func TestMemoryBackendCopiesValues(t *testing.T) {
	m := NewMemoryBackend()
	k := testKey(2)

	src := []byte("original")
	require.NoError(t, m.Put(k, src))
	src[0] = 'X'

	got, err := m.Get(k)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)

	// Mutating the returned slice leaves the store intact.
	got[0] = 'Y'
	again, err := m.Get(k)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestMemoryBackendForEach(t *testing.T) {
	m := NewMemoryBackend()
	for i := byte(0); i < 5; i++ {
		require.NoError(t, m.Put(testKey(i), []byte{i}))
	}

	seen := 0
	err := m.ForEach(func(key [32]byte, value []byte) bool {
		seen++
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 5, seen)

	// Early stop.
	seen = 0
	err = m.ForEach(func(key [32]byte, value []byte) bool {
		seen++
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

func TestMemoryBackendClosed(t *testing.T) {
	m := NewMemoryBackend()
	require.NoError(t, m.Close())

	err := m.Put(testKey(1), []byte("v"))
	assert.ErrorIs(t, err, ErrBackendClosed)
	_, err = m.Get(testKey(1))
	assert.ErrorIs(t, err, ErrBackendClosed)
}

func TestOpenFactory(t *testing.T) {
	b, err := Open(Config{Type: "memory"})
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, "memory", b.Name())

	_, err = Open(Config{Type: "cassandra"})
	assert.Error(t, err)
}
