//go:build unix

package arena

import "golang.org/x/sys/unix"

// Reserve obtains a region of exactly size bytes as an anonymous
// private mapping.
func Reserve(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

// Release returns a region obtained from Reserve to the OS.
func Release(buf []byte) error {
	return unix.Munmap(buf)
}
