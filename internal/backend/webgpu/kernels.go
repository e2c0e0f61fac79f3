//go:build windows

package webgpu

import (
	"github.com/born-ml/dlr/internal/backend/cpu"
	"github.com/born-ml/dlr/internal/diag"
)

// Conv2D is the GPU counterpart of cpu.Conv2D for float32 buffers.
func (b *Backend) Conv2D(out, in, kernel, bias []float32, p cpu.Conv2DParams, opts ...diag.Option) error {
	o := diag.Apply(opts)
	o.Dump("webgpu.conv2d", "out_size", p.OutSize, "in_size", p.InSize, "kernel_size", p.KernelSize,
		"in_channel", p.InChannels, "out_channel", p.OutChannels, "stride", p.Stride, "padding", p.Padding)
	if o.Rigor {
		if err := p.Validate(len(out), len(in), len(kernel), len(bias)); err != nil {
			return err
		}
	}

	return b.run(launch{
		name:   "conv2d",
		code:   conv2dShader,
		inputs: [][]float32{in, kernel, biasOrZeros(bias, p.OutChannels)},
		out:    out[:p.OutChannels*p.OutSize*p.OutSize],
		params: conv2dUniform(p),
		groups: [3]uint32{groups(p.OutSize, tileSize), groups(p.OutSize, tileSize), groups(p.OutChannels, 1)},
	})
}

// Deconv2D is the GPU counterpart of cpu.Deconv2D for float32 buffers.
func (b *Backend) Deconv2D(out, in, kernel, bias []float32, p cpu.Deconv2DParams, opts ...diag.Option) error {
	o := diag.Apply(opts)
	o.Dump("webgpu.deconv2d", "out_size", p.OutSize, "in_size", p.InSize, "kernel_size", p.KernelSize,
		"in_channel", p.InChannels, "out_channel", p.OutChannels, "stride", p.Stride, "padding", p.Padding)
	if o.Rigor {
		if err := p.Validate(len(out), len(in), len(kernel), len(bias)); err != nil {
			return err
		}
	}

	return b.run(launch{
		name:   "deconv2d",
		code:   deconv2dShader,
		inputs: [][]float32{in, kernel, biasOrZeros(bias, p.OutChannels)},
		out:    out[:p.OutChannels*p.OutSize*p.OutSize],
		params: deconv2dUniform(p),
		groups: [3]uint32{groups(p.OutSize, tileSize), groups(p.OutSize, tileSize), groups(p.OutChannels, 1)},
	})
}

// MaxPool2D is the GPU counterpart of cpu.MaxPool2D for float32 buffers.
func (b *Backend) MaxPool2D(out, in []float32, p cpu.Pool2DParams, opts ...diag.Option) error {
	return b.pool2d("maxpool2d", poolMax, out, in, p, opts)
}

// AvgPool2D is the GPU counterpart of cpu.AvgPool2D for float32 buffers.
func (b *Backend) AvgPool2D(out, in []float32, p cpu.Pool2DParams, opts ...diag.Option) error {
	return b.pool2d("avgpool2d", poolAvg, out, in, p, opts)
}

func (b *Backend) pool2d(op string, mode uint32, out, in []float32, p cpu.Pool2DParams, opts []diag.Option) error {
	o := diag.Apply(opts)
	o.Dump("webgpu."+op, "out_size", p.OutSize, "in_size", p.InSize, "kernel_size", p.KernelSize,
		"channel", p.Channels, "stride", p.Stride, "padding", p.Padding, "post", p.Post.String())
	if o.Rigor {
		if err := p.Validate(op, len(out), len(in)); err != nil {
			return err
		}
		if p.SizeMismatch() {
			o.Warn(op, "out_size does not match computed output size",
				"declared", p.OutSize, "expected", p.ExpectedOutSize())
		}
	}

	return b.run(launch{
		name:   "pool2d",
		code:   pool2dShader,
		inputs: [][]float32{in},
		out:    out[:p.Channels*p.OutSize*p.OutSize],
		params: pool2dUniform(p, mode),
		groups: [3]uint32{groups(p.OutSize, tileSize), groups(p.OutSize, tileSize), groups(p.Channels, 1)},
	})
}

// Activate is the GPU counterpart of cpu.Activate for float32 buffers.
func (b *Backend) Activate(out, in []float32, p cpu.ActivationParams, act cpu.PostActivation, opts ...diag.Option) error {
	o := diag.Apply(opts)
	op := act.Kind.String()
	o.Dump("webgpu."+op, "channel", p.Channels, "size", p.Size, "square", p.Square, "activation", act.String())
	if o.Rigor {
		if err := p.Validate(op, len(out), len(in)); err != nil {
			return err
		}
		if err := cpu.ValidateActivation(op, act); err != nil {
			return err
		}
	}

	n := p.NumElements()
	return b.run(launch{
		name:   "activation",
		code:   activationShader,
		inputs: [][]float32{in[:n]},
		out:    out[:n],
		params: activationUniform(n, act),
		groups: [3]uint32{groups(n, workgroupSize), 1, 1},
	})
}
