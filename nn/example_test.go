package nn_test

import (
	"fmt"

	"github.com/born-ml/dlr/nn"
)

func ExampleConv2D() {
	// 3x3 input, 3x3 box kernel, padding 1: each output is a neighbourhood sum.
	in := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	kernel := []float32{1, 1, 1, 1, 1, 1, 1, 1, 1}

	p := nn.Conv2DParams{OutSize: 3, InSize: 3, KernelSize: 3, InChannels: 1, OutChannels: 1, Stride: 1, Padding: 1}
	out := make([]float32, 9)
	if err := nn.Conv2D(out, in, kernel, nil, p, nn.WithRigor()); err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: [12 21 16 27 45 33 24 39 28]
}

func ExampleMaxPool2D() {
	in := make([]float32, 16)
	for i := range in {
		in[i] = float32(i + 1)
	}

	p := nn.Pool2DParams{OutSize: 2, InSize: 4, KernelSize: 2, Channels: 1, Stride: 2, KernelParity: nn.ParityEven}
	out := make([]float32, 4)
	if err := nn.MaxPool2D(out, in, p, nn.WithRigor()); err != nil {
		panic(err)
	}
	fmt.Println(out)

	if err := nn.AvgPool2D(out, in, p, nn.WithRigor()); err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output:
	// [6 8 14 16]
	// [3.5 5.5 11.5 13.5]
}

func ExampleLeakyReLU() {
	in := []float32{-2, -1, 0, 1, 2}
	out := make([]float32, len(in))

	p := nn.ActivationParams{Channels: 1, Size: len(in)}
	if err := nn.LeakyReLU(out, in, p, nn.DefaultNegativeSlope); err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: [-0.02 -0.01 0 1 2]
}

func ExampleLinear() {
	weight := []int32{1, 0, 0, 1}
	bias := []int32{1, -1}
	out := make([]int32, 2)

	p := nn.LinearParams{InSize: 2, OutSize: 2}
	if err := nn.Linear(out, []int32{3, 4}, weight, bias, p); err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: [4 3]
}

func ExampleConcat2D() {
	a := []int32{1, 2, 3, 4} // 2x2
	b := []int32{5, 6}       // 2x1

	p := nn.Concat2DParams{RowsA: 2, ColsA: 2, RowsB: 2, ColsB: 1, Dim: 1}
	out := make([]int32, 6)
	if err := nn.Concat2D(out, a, b, p); err != nil {
		panic(err)
	}
	fmt.Println(p.OutShape(), out)
	// Output: [2 x 3] [1 2 5 3 4 6]
}

func ExampleConv2DOutputSize() {
	size, _ := nn.Conv2DOutputSize(32, 3, 1, 1)
	fmt.Println(size)

	_, err := nn.Conv2DOutputSize(32, 2, 1, 0, nn.WithRigor())
	fmt.Println(err)
	// Output:
	// 32
	// conv2d_output_size: kernel_size odd: kernel_size=2
}
