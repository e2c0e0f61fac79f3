package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/dlr/tensor"
)

func TestLayouts(t *testing.T) {
	assert.Equal(t, tensor.Shape{3, 32, 32}, tensor.CHW(3, 32))
	assert.Equal(t, 16*3*5*5, tensor.OIHW(16, 3, 5).NumElements())

	buf := []int32{0, 1, 2, 3, 4, 5}
	assert.Equal(t, []int32{2, 3}, tensor.Channel(buf, 1, 2))
}

func TestDataTypeOf(t *testing.T) {
	assert.Equal(t, tensor.Int32, tensor.DataTypeOf[int32]())
	assert.Equal(t, tensor.Float64, tensor.DataTypeOf[float64]())
	assert.Equal(t, "float32", tensor.DataTypeOf[float32]().String())
}
