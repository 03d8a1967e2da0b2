package databases

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMongoPaginateSkip(t *testing.T) {
	assert.Equal(t, int64(0), newMongoPaginate(50, 1).skip())
	assert.Equal(t, int64(20), newMongoPaginate(10, 3).skip())
	assert.Equal(t, int64(0), newMongoPaginate(0, 0).skip())
}

func TestMongoPaginateHugePageDoesNotOverflow(t *testing.T) {
	for _, limit := range []int{1, 50, 1000} {
		p := newMongoPaginate(limit, math.MaxInt64)
		assert.GreaterOrEqual(t, p.skip(), int64(0), "limit %d", limit)
		assert.Equal(t, int64(limit), p.limit)
	}
}
