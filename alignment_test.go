package ftmalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignUp(t *testing.T) {
	cases := []struct{ x, a, want int }{
		{0, 16, 0},
		{1, 16, 16},
		{15, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{4096, 4096, 4096},
		{4097, 4096, 8192},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, alignUp(c.x, c.a), "alignUp(%d, %d)", c.x, c.a)
	}
}

func TestCeilToPages(t *testing.T) {
	assert.Equal(t, 4096, ceilToPages(1, 4096))
	assert.Equal(t, 4096, ceilToPages(4096, 4096))
	assert.Equal(t, 8192, ceilToPages(4097, 4096))
}

func TestPayloadAlignment(t *testing.T) {
	assert.GreaterOrEqual(t, payloadAlignment, 16)
	assert.Equal(t, 0, payloadAlignment&(payloadAlignment-1), "must be a power of two")
}
