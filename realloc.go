package buddy

import "unsafe"

// AllocZero reserves a block of count*size bytes and zero-fills exactly
// that many bytes. Nothing is written unless the allocation succeeds.
func (p *Pool) AllocZero(count, size int) ([]byte, error) {
	if count <= 0 || size <= 0 {
		return nil, ErrBadArgument
	}
	total := count * size
	if total/count != size {
		return nil, ErrTooLarge
	}
	b, err := p.Alloc(total)
	if err != nil {
		return nil, err
	}
	for i := range b {
		b[i] = 0
	}
	return b, nil
}

// Realloc resizes a block. Its semantics follow realloc:
//
//   - a nil block with size 0 fails with ErrBadArgument;
//   - size 0 frees the block and returns a nil slice;
//   - a nil block is equivalent to Alloc(size);
//   - if the new size maps to the block's current size class the block
//     is returned as-is, resliced to the new length, with no copy;
//   - otherwise a new block is allocated, the data copied, and the old
//     block freed only after the copy.
//
// When the size class changes, the copy length is the new size, capped
// at the old block's payload. Like Free, Realloc requires the original
// slice returned by Alloc.
func (p *Pool) Realloc(block []byte, size int) ([]byte, error) {
	if p == nil || p.arena == nil {
		return nil, ErrClosed
	}
	if cap(block) == 0 {
		if size == 0 {
			return nil, ErrBadArgument
		}
		return p.Alloc(size)
	}
	if size == 0 {
		p.Free(block)
		return nil, nil
	}
	if size < 0 {
		return nil, ErrBadArgument
	}

	dataPtr := *(*uintptr)(unsafe.Pointer(&block))
	off := int64(dataPtr-uintptr(p.arenaStart)) - HeaderSize
	if off < 0 || off >= int64(len(p.arena)) {
		panic("buddy: block not in arena")
	}
	h := p.hdr(off)
	if h.tag != tagReserved {
		panic("buddy: invalid block")
	}
	k := int(h.kval)

	if kvalFor(uint64(size)+HeaderSize) == k {
		return block[:size], nil
	}

	nb, err := p.Alloc(size)
	if err != nil {
		return nil, err
	}
	n := size
	if payload := (1 << k) - HeaderSize; n > payload {
		n = payload
	}
	old := p.arena[off+HeaderSize : off+(int64(1)<<k)]
	copy(nb, old[:n])
	p.Free(block)
	return nb, nil
}
