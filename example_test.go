package buddy

import "fmt"

func Example() {
	p, _ := NewWithArena(make([]byte, 1024))

	b1, _ := p.Alloc(100) // 100+24 rounds up to a 128-byte block
	b2, _ := p.Alloc(100)

	fmt.Printf("b1: len=%d cap=%d\n", len(b1), cap(b1))
	fmt.Printf("b2: len=%d cap=%d\n", len(b2), cap(b2))

	p.Free(b1)
	p.Free(b2)

	fmt.Printf("free blocks: %d\n", p.Dump().FreeBlocks)
	fmt.Printf("available: %d\n", p.Available())

	// Output:
	// b1: len=100 cap=104
	// b2: len=100 cap=104
	// free blocks: 1
	// available: 1000
}
