package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveRelease(t *testing.T) {
	const size = 1 << 20
	buf, err := Reserve(size)
	require.NoError(t, err)
	require.Len(t, buf, size)

	// region must be writable end to end
	buf[0] = 0xAA
	buf[size/2] = 0xBB
	buf[size-1] = 0xCC
	assert.Equal(t, byte(0xAA), buf[0])
	assert.Equal(t, byte(0xCC), buf[size-1])

	assert.NoError(t, Release(buf))
}
