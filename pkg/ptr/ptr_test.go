package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr_ReturnsIndependentCopy(t *testing.T) {
	v := int64(7)
	p := Ptr(v)
	v = 8

	assert.Equal(t, int64(7), *p)
}

func TestValue(t *testing.T) {
	assert.Equal(t, int64(3), Value(Ptr(int64(3))))

	var nilID *int64
	assert.Equal(t, int64(0), Value(nilID))
}
