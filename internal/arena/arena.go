// Package arena reserves the contiguous backing region for a pool.
//
// The contract is one-shot, non-relocating and contiguous: Reserve is
// called at most once per pool, the region never moves, and it is only
// given back on Release. On unix the region is an anonymous private
// mapping; elsewhere it is a heap slab. Either way the memory is not
// guaranteed to be zeroed.
package arena
