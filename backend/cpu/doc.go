// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu describes the pure Go CPU kernels.
//
// # Overview
//
// The CPU kernels are exposed through package nn. They are:
//   - Pure Go implementation (no CGO)
//   - Direct sliding-window loops with virtual zero padding
//   - Generic over int32, int64, float32 and float64
//   - Optionally parallel across independent outputs
//
// This package lists them with their rigor-mode checks, which is what the
// dlr kernels command prints.
//
// # Thread Safety
//
// The CPU kernels are safe for concurrent use. Each call works only on the
// buffers it is given and does not share mutable state.
package cpu
