//go:build windows

package webgpu

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
)

// launch describes one compute dispatch: read-only storage inputs bound
// first, then the output, then the uniform parameters.
type launch struct {
	name   string
	code   string
	inputs [][]float32
	out    []float32
	params []byte
	groups [3]uint32
}

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	// Auto layout (nil layout)
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU buffer initialized with data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mappedPtr), size), data)
	buffer.Unmap()

	return buffer
}

// readBuffer copies size bytes of src back to CPU memory through a staging buffer.
func (b *Backend) readBuffer(src *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingUsage := wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst
	staging := b.pool.acquire(size, stagingUsage)
	defer b.pool.release(staging, stagingUsage)

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging.buffer, 0, size)
	b.queue.Submit(encoder.Finish(nil))

	if err := staging.buffer.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("webgpu: map staging buffer: %w", err)
	}
	defer staging.buffer.Unmap()

	mappedPtr := staging.buffer.GetMappedRange(0, size)
	result := make([]byte, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(result, unsafe.Slice((*byte)(mappedPtr), size))
	return result, nil
}

// run executes l and decodes the result into l.out.
func (b *Backend) run(l launch) error {
	shader := b.compileShader(l.name, l.code)
	pipeline := b.getOrCreatePipeline(l.name, shader)

	entries := make([]wgpu.BindGroupEntry, 0, len(l.inputs)+2)
	for i, data := range l.inputs {
		raw := float32Bytes(data)
		buf := b.createBuffer(raw, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		defer buf.Release()
		//nolint:gosec // G115: binding index is small
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), buf, 0, uint64(len(raw))))
	}

	outSize := byteSize(len(l.out))
	outUsage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
	result := b.pool.acquire(outSize, outUsage)
	defer b.pool.release(result, outUsage)

	params := b.createBuffer(l.params, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	defer params.Release()

	//nolint:gosec // G115: binding index is small
	outBinding := uint32(len(l.inputs))
	entries = append(entries,
		wgpu.BufferBindingEntry(outBinding, result.buffer, 0, outSize),
		wgpu.BufferBindingEntry(outBinding+1, params, 0, uint64(len(l.params))),
	)

	bindGroup := b.device.CreateBindGroupSimple(pipeline.GetBindGroupLayout(0), entries)
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(l.groups[0], l.groups[1], l.groups[2])
	pass.End()
	b.queue.Submit(encoder.Finish(nil))

	raw, err := b.readBuffer(result.buffer, outSize)
	if err != nil {
		return fmt.Errorf("webgpu: %s: %w", l.name, err)
	}
	decodeFloat32(l.out, raw)
	return nil
}
