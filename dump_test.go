package buddy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	p := newTestPool(t, 1024)

	r := p.Dump()
	require.Len(t, r.Classes, 11) // classes 0..10
	assert.Equal(t, 1, r.FreeBlocks)
	assert.Equal(t, []int64{0}, r.Classes[10].Offsets)
	for k := 0; k < 10; k++ {
		assert.Empty(t, r.Classes[k].Offsets, "class %d", k)
	}

	// one 128-byte allocation leaves the three split remainders free
	b, err := p.Alloc(100)
	require.NoError(t, err)
	r = p.Dump()
	assert.Equal(t, 3, r.FreeBlocks)
	assert.Equal(t, []int64{128}, r.Classes[7].Offsets)
	assert.Equal(t, []int64{256}, r.Classes[8].Offsets)
	assert.Equal(t, []int64{512}, r.Classes[9].Offsets)

	p.Free(b)
	assert.Equal(t, 1, p.Dump().FreeBlocks)
}

func TestDumpString(t *testing.T) {
	p := newTestPool(t, 1024)
	s := p.Dump().String()
	assert.Contains(t, s, "list 10: [free kval=10 off=0]")
	assert.Contains(t, s, "free blocks: 1")
	assert.Equal(t, 12, strings.Count(s, "\n")) // 11 class lines + summary
}
