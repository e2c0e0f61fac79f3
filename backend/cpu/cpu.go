// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/dlr/internal/backend/cpu"
)

// Kernel describes one CPU kernel: its name, family, whether it accepts a
// fused post-activation and the conditions checked under rigor mode.
type Kernel = internalcpu.Kernel

// Kernels returns every CPU kernel in a fixed order.
//
// Example:
//
//	for _, k := range cpu.Kernels() {
//	    fmt.Println(k.Name, k.Family)
//	}
func Kernels() []Kernel {
	return internalcpu.Kernels()
}

// Lookup returns the kernel with the given name.
func Lookup(name string) (Kernel, bool) {
	for _, k := range internalcpu.Kernels() {
		if k.Name == name {
			return k, true
		}
	}
	return Kernel{}, false
}
