// blockpool.go implements a size-keyed pool of raw byte blocks.

// Package blockpool recycles flat byte buffers (e.g. converter back
// buffers) across conversions. Blocks released at the pool's current size
// are kept for reuse; blocks of any other size are discarded, so a
// resolution change naturally drains the stale blocks.
package blockpool

import (
	"context"

	"github.com/xaionaro-go/xsync"
)

// Block is one raw allocation fetched from a Pool.
type Block struct {
	pool *Pool
	data []byte
}

func (b *Block) Data() []byte { return b.data }
func (b *Block) Size() int    { return len(b.data) }

// Release returns the block to its pool.
func (b *Block) Release(ctx context.Context) {
	b.pool.release(ctx, b)
}

// Pool is a simple raw memory block pool.
type Pool struct {
	locker      xsync.Mutex
	currentSize int
	freeBlocks  []*Block
}

func NewPool() *Pool {
	return &Pool{}
}

// Fetch returns a block of exactly the requested size, reusing a free one
// when possible.
func (p *Pool) Fetch(ctx context.Context, size int) *Block {
	return xsync.DoA1R1(ctx, &p.locker, p.fetchLocked, size)
}

func (p *Pool) fetchLocked(size int) *Block {
	if size != p.currentSize {
		p.freeBlocks = p.freeBlocks[:0]
		p.currentSize = size
	}
	if l := len(p.freeBlocks); l > 0 {
		b := p.freeBlocks[l-1]
		p.freeBlocks = p.freeBlocks[:l-1]
		return b
	}
	return &Block{
		pool: p,
		data: make([]byte, size),
	}
}

func (p *Pool) release(ctx context.Context, b *Block) {
	xsync.DoA1(ctx, &p.locker, p.releaseLocked, b)
}

func (p *Pool) releaseLocked(b *Block) {
	// keep the block only if it still matches the current size
	if len(b.data) != p.currentSize {
		return
	}
	p.freeBlocks = append(p.freeBlocks, b)
}
