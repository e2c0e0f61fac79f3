//go:build !windows

package webgpu

import (
	"github.com/born-ml/dlr/internal/backend/cpu"
	"github.com/born-ml/dlr/internal/diag"
)

// Backend is unavailable on this platform. Every method returns ErrUnavailable.
type Backend struct{}

// New always returns ErrUnavailable on this platform.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

// IsAvailable always returns false on this platform.
func IsAvailable() bool {
	return false
}

// Release is a no-op.
func (b *Backend) Release() {}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU (unavailable)"
}

// PoolStats always returns zeros.
func (b *Backend) PoolStats() (hits, misses uint64) {
	return 0, 0
}

// Conv2D returns ErrUnavailable.
func (b *Backend) Conv2D(_, _, _, _ []float32, _ cpu.Conv2DParams, _ ...diag.Option) error {
	return ErrUnavailable
}

// Deconv2D returns ErrUnavailable.
func (b *Backend) Deconv2D(_, _, _, _ []float32, _ cpu.Deconv2DParams, _ ...diag.Option) error {
	return ErrUnavailable
}

// MaxPool2D returns ErrUnavailable.
func (b *Backend) MaxPool2D(_, _ []float32, _ cpu.Pool2DParams, _ ...diag.Option) error {
	return ErrUnavailable
}

// AvgPool2D returns ErrUnavailable.
func (b *Backend) AvgPool2D(_, _ []float32, _ cpu.Pool2DParams, _ ...diag.Option) error {
	return ErrUnavailable
}

// Activate returns ErrUnavailable.
func (b *Backend) Activate(_, _ []float32, _ cpu.ActivationParams, _ cpu.PostActivation, _ ...diag.Option) error {
	return ErrUnavailable
}
