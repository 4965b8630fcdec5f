package buddy

import (
	"fmt"
	"strings"
)

// Report is a snapshot of the pool's free lists, one entry per size
// class. It is purely diagnostic and says nothing about reserved
// blocks.
type Report struct {
	// Classes holds one entry per size class, from 0 up to the pool's
	// own class.
	Classes []ClassReport

	// FreeBlocks is the total number of free blocks across all classes.
	FreeBlocks int
}

// ClassReport lists the free blocks of one size class in list order
// (most recently freed first).
type ClassReport struct {
	Kval    int
	Offsets []int64
}

// Dump walks every free list and returns the per-class block offsets.
func (p *Pool) Dump() Report {
	var r Report
	if p == nil || p.arena == nil {
		return r
	}
	r.Classes = make([]ClassReport, 0, p.lgSize+1)
	for k := 0; k <= p.lgSize; k++ {
		c := ClassReport{Kval: k}
		for off := p.avail[k].next; off >= 0; off = p.hdr(off).next {
			c.Offsets = append(c.Offsets, off)
		}
		r.FreeBlocks += len(c.Offsets)
		r.Classes = append(r.Classes, c)
	}
	return r
}

// String renders the report as one line per size class.
func (r Report) String() string {
	var sb strings.Builder
	for _, c := range r.Classes {
		fmt.Fprintf(&sb, "list %2d:", c.Kval)
		for _, off := range c.Offsets {
			fmt.Fprintf(&sb, " [free kval=%d off=%d]", c.Kval, off)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "free blocks: %d\n", r.FreeBlocks)
	return sb.String()
}
