package buddy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetDefault swaps out the default pool for one test and restores it
// afterwards, closing anything the test created.
func resetDefault(t *testing.T) {
	t.Helper()
	old := defaultPool
	defaultPool = nil
	t.Cleanup(func() {
		if defaultPool != nil {
			defaultPool.Close()
		}
		defaultPool = old
	})
}

func TestDefaultPoolInit(t *testing.T) {
	resetDefault(t)

	require.NoError(t, Init(1<<20))
	// re-initialization is a hard failure, never a silent re-run
	assert.ErrorIs(t, Init(1<<20), ErrInitialized)
	assert.ErrorIs(t, Init(0), ErrInitialized)
}

func TestDefaultPoolInitErrors(t *testing.T) {
	resetDefault(t)
	assert.ErrorIs(t, Init(1<<37), ErrTooBig)
	// a failed Init must leave the pool uninitialized
	assert.Nil(t, defaultPool)
	require.NoError(t, Init(1<<20))
}

func TestDefaultPoolOps(t *testing.T) {
	resetDefault(t)
	require.NoError(t, Init(1<<20))
	initial := Available()

	b, err := Alloc(100)
	require.NoError(t, err)
	assert.Equal(t, 100, len(b))

	z, err := AllocZero(4, 25)
	require.NoError(t, err)
	for i, c := range z {
		require.Zero(t, c, "byte %d not zeroed", i)
	}

	r, err := Realloc(b, 500)
	require.NoError(t, err)
	assert.Equal(t, 500, len(r))

	Free(r)
	Free(z)
	assert.Equal(t, initial, Available())
	assert.Equal(t, 1, Dump().FreeBlocks)
}

func TestDefaultPoolLazyInit(t *testing.T) {
	resetDefault(t)

	// first allocation builds the default-sized pool on its own
	b, err := Alloc(64)
	require.NoError(t, err)
	require.NotNil(t, defaultPool)
	assert.Equal(t, DefaultPoolSize, len(defaultPool.arena))
	Free(b)
}

func TestDefaultPoolFreeBeforeInit(t *testing.T) {
	resetDefault(t)

	// free before any initialization is a deliberate no-op
	assert.NotPanics(t, func() { Free(nil) })
	assert.NotPanics(t, func() { Free(make([]byte, 16)) })
	assert.Nil(t, defaultPool)
	assert.Zero(t, Available())
	assert.Zero(t, Dump().FreeBlocks)
}
