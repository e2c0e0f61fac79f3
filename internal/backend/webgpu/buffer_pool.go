//go:build windows

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// maxPooled bounds the number of idle buffers kept per usage.
const maxPooled = 32

type pooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
}

// bufferPool recycles output and staging buffers between kernel calls.
// Buffers are keyed by usage flags and reused when large enough.
type bufferPool struct {
	device *wgpu.Device

	mu   sync.Mutex
	idle map[wgpu.BufferUsage][]pooledBuffer

	hits   uint64
	misses uint64
}

func newBufferPool(device *wgpu.Device) *bufferPool {
	return &bufferPool{
		device: device,
		idle:   make(map[wgpu.BufferUsage][]pooledBuffer),
	}
}

// acquire returns a buffer of at least size bytes with exactly the given usage.
func (p *bufferPool) acquire(size uint64, usage wgpu.BufferUsage) pooledBuffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	list := p.idle[usage]
	for i, pb := range list {
		if pb.size >= size {
			p.idle[usage] = append(list[:i], list[i+1:]...)
			p.hits++
			return pb
		}
	}

	p.misses++
	return pooledBuffer{
		buffer: p.device.CreateBuffer(&wgpu.BufferDescriptor{Usage: usage, Size: size}),
		size:   size,
	}
}

// release returns pb to the pool, or frees it when the pool is full.
func (p *bufferPool) release(pb pooledBuffer, usage wgpu.BufferUsage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.idle[usage]) >= maxPooled {
		pb.buffer.Release()
		return
	}
	p.idle[usage] = append(p.idle[usage], pb)
}

// clear frees every idle buffer.
func (p *bufferPool) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for usage, list := range p.idle {
		for _, pb := range list {
			pb.buffer.Release()
		}
		delete(p.idle, usage)
	}
}

// stats returns pool hits and misses.
func (p *bufferPool) stats() (hits, misses uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses
}
