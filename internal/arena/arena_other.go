//go:build !unix

package arena

import "github.com/bytedance/gopkg/lang/dirtmake"

// Reserve obtains a region of exactly size bytes from the heap,
// without zeroing it.
func Reserve(size int) ([]byte, error) {
	return dirtmake.Bytes(size, size), nil
}

// Release is a no-op; the region is reclaimed by the GC once the pool
// drops it.
func Release(buf []byte) error {
	return nil
}
