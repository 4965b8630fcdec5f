// Package buddy implements a fixed-pool memory allocator based on the
// buddy system (Knuth, The Art of Computer Programming, Vol. 1, §2.5).
//
// A Pool manages one contiguous region carved into power-of-two-sized
// blocks. Every block, reserved or free, starts with a small header
// holding its tag and size class (kval: the block size is 2^kval bytes,
// header included). Free blocks of each class are kept on a circular
// doubly-linked list threaded through the headers; links are arena
// offsets, never raw pointers. A request is served by unlinking the
// smallest sufficient free block and splitting it down; a release
// merges the block with its buddy (the equal-sized neighbor whose
// offset differs by exactly 2^kval) as far up as possible.
//
// A Pool is not safe for concurrent use. All operations are O(log n)
// in the pool size.
package buddy

import (
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/memtools/buddy/internal/arena"
)

const (
	// HeaderSize is the per-block overhead. Every allocation of n bytes
	// occupies a block of 2^k bytes where 2^k >= n+HeaderSize.
	HeaderSize = 24

	// DefaultPoolSize is the pool size used when New is given size 0.
	DefaultPoolSize = 512 * 1024 * 1024

	// maxKval bounds the pool size: at most 2^(maxKval-1) bytes (64GB).
	maxKval     = 37
	maxPoolSize = int64(1) << (maxKval - 1)

	// minPoolSize is the smallest arena that can split once and still
	// hold a header in each half.
	minPoolSize = 64
)

// Block tags. Deliberately non-trivial values so stale or foreign
// memory is unlikely to pass for a valid header.
const (
	tagFree     uint32 = 0xF4EEB10C
	tagReserved uint32 = 0xA110C8ED
)

// header is the block header embedded in the arena at each block start.
// next and prev are arena offsets of the neighboring free blocks, or a
// negative sentinel ref (^kval) pointing at the class's list head in
// Pool.avail. They are meaningful only while the block is free.
type header struct {
	tag  uint32
	kval uint32
	next int64
	prev int64
}

// list is a free-list head. An empty class k list is self-linked:
// both fields hold the sentinel ref ^int64(k).
type list struct {
	next int64
	prev int64
}

// Pool is a buddy-system allocator over a single contiguous arena.
// The zero value is not usable; construct with New or NewWithArena.
type Pool struct {
	// arena is the managed region. Its length is always a power of two.
	arena []byte

	// arenaStart is a cached pointer to the start of the arena,
	// used for header access and offset recovery in Free.
	arenaStart unsafe.Pointer

	// lgSize is log2 of the arena length.
	lgSize int

	// avail holds the free-list sentinels for classes 0..lgSize.
	avail []list

	// owned reports whether the arena was reserved by New and must be
	// returned to the OS on Close.
	owned bool
}

// New creates a pool of the given size, reserving the backing region
// from the OS. A size of 0 means DefaultPoolSize. The effective size is
// rounded up to a power of two. The region is reserved exactly once and
// never grows, shrinks or moves for the life of the pool.
func New(size int) (*Pool, error) {
	if size < 0 {
		return nil, ErrBadArgument
	}
	if size == 0 {
		size = DefaultPoolSize
	}
	if int64(size) > maxPoolSize {
		return nil, ErrTooBig
	}
	if size < minPoolSize {
		size = minPoolSize
	}
	size = 1 << kvalFor(uint64(size))

	buf, err := arena.Reserve(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReservation, err)
	}
	return newPool(buf, true), nil
}

// NewWithArena creates a pool over caller-provided memory. The arena
// length must be a power of two between 64 bytes and 64GB. The caller
// must keep the slice alive for the life of the pool and must not
// touch it except through blocks returned by Alloc.
func NewWithArena(buf []byte) (*Pool, error) {
	n := len(buf)
	if n < minPoolSize || n&(n-1) != 0 {
		return nil, fmt.Errorf("arena length must be a power of two >= %d, got %d", minPoolSize, n)
	}
	if int64(n) > maxPoolSize {
		return nil, ErrTooBig
	}
	return newPool(buf, false), nil
}

func newPool(buf []byte, owned bool) *Pool {
	lg := kvalFor(uint64(len(buf)))
	p := &Pool{
		arena:      buf,
		arenaStart: unsafe.Pointer(&buf[0]),
		lgSize:     lg,
		avail:      make([]list, lg+1),
		owned:      owned,
	}
	for k := range p.avail {
		p.avail[k] = list{next: ^int64(k), prev: ^int64(k)}
	}

	// One free block spanning the whole arena.
	h := p.hdr(0)
	h.tag = tagFree
	h.kval = uint32(lg)
	p.pushFront(lg, 0)
	return p
}

// Close releases a pool created by New back to the OS. For pools over
// caller-provided arenas it only detaches the pool from the memory.
// The pool must not hand out new blocks afterwards; Alloc fails with
// ErrClosed and Free becomes a no-op.
func (p *Pool) Close() error {
	if p == nil || p.arena == nil {
		return nil
	}
	buf := p.arena
	p.arena = nil
	p.arenaStart = nil
	p.avail = nil
	if !p.owned {
		return nil
	}
	return arena.Release(buf)
}

// Alloc reserves a block of at least size bytes. The returned slice has
// len size and cap equal to the block's full payload (2^k - HeaderSize).
// It fails with ErrTooLarge if no block of the pool could ever satisfy
// the request, and ErrNoSpace if the pool is currently exhausted.
func (p *Pool) Alloc(size int) ([]byte, error) {
	if p == nil || p.arena == nil {
		return nil, ErrClosed
	}
	if size <= 0 {
		return nil, ErrBadArgument
	}
	k := kvalFor(uint64(size) + HeaderSize)
	if k > p.lgSize {
		return nil, ErrTooLarge
	}

	// Find the smallest class j >= k with a free block.
	j := k
	for j <= p.lgSize && p.listEmpty(j) {
		j++
	}
	if j > p.lgSize {
		return nil, ErrNoSpace
	}

	// Unlink the head block and reserve it at its final class.
	off := p.avail[j].next
	p.unlink(off)
	h := p.hdr(off)
	h.tag = tagReserved
	h.kval = uint32(k)

	// Split down: the lower half keeps the block's offset, the upper
	// half becomes a new free block one class below.
	for j > k {
		j--
		upper := off + int64(1)<<j
		uh := p.hdr(upper)
		uh.tag = tagFree
		uh.kval = uint32(j)
		p.pushFront(j, upper)
	}

	end := off + int64(1)<<k
	return p.arena[off+HeaderSize : end : end][:size], nil
}

// Free returns a block to the pool, merging it with its buddy as far up
// the size classes as possible. Freeing a nil or empty slice, or any
// slice after the pool was closed, is a no-op. Freeing a corrupt,
// foreign or already-freed block panics.
//
// The block must be the original slice returned by Alloc. Do not
// reslice (e.g. block[n:]) before calling Free: the header is recovered
// from the slice's data pointer.
func (p *Pool) Free(block []byte) {
	if p == nil || p.arena == nil || cap(block) == 0 {
		return
	}
	dataPtr := *(*uintptr)(unsafe.Pointer(&block))
	off := int64(dataPtr-uintptr(p.arenaStart)) - HeaderSize
	if off < 0 || off >= int64(len(p.arena)) {
		panic("buddy: block not in arena")
	}

	h := p.hdr(off)
	switch h.tag {
	case tagReserved:
	case tagFree:
		panic("buddy: double free")
	default:
		panic("buddy: invalid block")
	}
	k := int(h.kval)
	if k > p.lgSize || off&((int64(1)<<k)-1) != 0 {
		panic("buddy: misaligned block")
	}
	if cap(block) > (1<<k)-HeaderSize {
		panic("buddy: corrupted size")
	}

	// Coalesce while the buddy is free and of the same class. A free
	// buddy of a smaller class is a remnant of a split and ends the
	// merge; the merged block always keeps the lower offset.
	for k < p.lgSize {
		bud := off ^ (int64(1) << k)
		bh := p.hdr(bud)
		if bh.tag != tagFree || int(bh.kval) != k {
			break
		}
		p.unlink(bud)
		k++
		if bud < off {
			off = bud
		}
	}

	h = p.hdr(off)
	h.tag = tagFree
	h.kval = uint32(k)
	p.pushFront(k, off)
}

// Available returns the total payload bytes currently free, i.e. the
// sum over all free blocks of their size minus HeaderSize.
func (p *Pool) Available() int {
	if p == nil || p.arena == nil {
		return 0
	}
	total := 0
	for k := 0; k <= p.lgSize; k++ {
		for off := p.avail[k].next; off >= 0; off = p.hdr(off).next {
			total += (1 << k) - HeaderSize
		}
	}
	return total
}

// hdr interprets the arena bytes at off as a block header. Offsets are
// always multiples of the block size, so the header is 8-byte aligned.
func (p *Pool) hdr(off int64) *header {
	return (*header)(unsafe.Add(p.arenaStart, uintptr(off)))
}

func (p *Pool) listEmpty(k int) bool {
	return p.avail[k].next == ^int64(k)
}

// setNext and setPrev patch a link on either a block header (ref >= 0,
// an arena offset) or a class sentinel (ref < 0, encoded as ^kval).
func (p *Pool) setNext(ref, v int64) {
	if ref < 0 {
		p.avail[^ref].next = v
		return
	}
	p.hdr(ref).next = v
}

func (p *Pool) setPrev(ref, v int64) {
	if ref < 0 {
		p.avail[^ref].prev = v
		return
	}
	p.hdr(ref).prev = v
}

// pushFront inserts the free block at off at the head of class k's list.
func (p *Pool) pushFront(k int, off int64) {
	s := ^int64(k)
	first := p.avail[k].next
	h := p.hdr(off)
	h.next = first
	h.prev = s
	p.setPrev(first, off)
	p.avail[k].next = off
}

// unlink splices the free block at off out of its list in O(1).
func (p *Pool) unlink(off int64) {
	h := p.hdr(off)
	p.setNext(h.prev, h.next)
	p.setPrev(h.next, h.prev)
}

// kvalFor returns the smallest k such that 2^k >= n.
func kvalFor(n uint64) int {
	if n <= 1 {
		return 0
	}
	return bits.Len64(n - 1)
}
