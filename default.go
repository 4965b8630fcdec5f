package buddy

import "fmt"

// The package-level functions operate on a single process-wide pool,
// created either explicitly with Init or lazily, at DefaultPoolSize,
// by the first allocation. Like Pool itself they are not safe for
// concurrent use.
var defaultPool *Pool

// Init creates the default pool with the given size (0 means
// DefaultPoolSize). It fails with ErrInitialized if the default pool
// already exists; re-initialization is never performed silently.
func Init(size int) error {
	if defaultPool != nil {
		return ErrInitialized
	}
	p, err := New(size)
	if err != nil {
		return err
	}
	defaultPool = p
	return nil
}

func getDefault() (*Pool, error) {
	if defaultPool == nil {
		p, err := New(0)
		if err != nil {
			return nil, fmt.Errorf("buddy: lazy init failed: %w", err)
		}
		defaultPool = p
	}
	return defaultPool, nil
}

// Alloc reserves a block from the default pool, creating it at
// DefaultPoolSize first if needed.
func Alloc(size int) ([]byte, error) {
	p, err := getDefault()
	if err != nil {
		return nil, err
	}
	return p.Alloc(size)
}

// AllocZero reserves a zero-filled block of count*size bytes from the
// default pool.
func AllocZero(count, size int) ([]byte, error) {
	p, err := getDefault()
	if err != nil {
		return nil, err
	}
	return p.AllocZero(count, size)
}

// Realloc resizes a block of the default pool. See Pool.Realloc.
func Realloc(block []byte, size int) ([]byte, error) {
	p, err := getDefault()
	if err != nil {
		return nil, err
	}
	return p.Realloc(block, size)
}

// Free returns a block to the default pool. A no-op if the default
// pool was never created.
func Free(block []byte) {
	if defaultPool == nil {
		return
	}
	defaultPool.Free(block)
}

// Dump reports the default pool's free lists. Empty if the default
// pool was never created.
func Dump() Report {
	if defaultPool == nil {
		return Report{}
	}
	return defaultPool.Dump()
}

// Available returns the free payload bytes of the default pool.
func Available() int {
	if defaultPool == nil {
		return 0
	}
	return defaultPool.Available()
}
