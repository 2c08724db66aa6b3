package slideshow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		page, n, expected int
	}{
		{-1, 5, 4},
		{7, 5, 2},
		{0, 5, 0},
		{5, 5, 0},
		{-5, 5, 0},
		{-6, 5, 4},
		{-101, 3, 1},
		{3, 1, 0},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, Wrap(test.page, test.n), "Wrap(%d, %d)", test.page, test.n)
	}
}

func TestIndexAlwaysInRange(t *testing.T) {
	for n := 1; n <= 7; n++ {
		for page := -50; page <= 50; page++ {
			i, ok := Pager{page: page}.Index(n)
			assert.True(t, ok)
			assert.GreaterOrEqual(t, i, 0)
			assert.Less(t, i, n)
		}
	}
}

func TestIndexEmptySequence(t *testing.T) {
	_, ok := Pager{page: 3}.Index(0)
	assert.False(t, ok)
}

func TestAdvancePeriodicity(t *testing.T) {
	const n = 6
	p := Pager{}
	start, _ := p.Index(n)
	for i := 0; i < n; i++ {
		p = p.Advance(1)
	}
	end, _ := p.Index(n)
	assert.Equal(t, start, end)
	assert.Equal(t, n, p.Page())
}

func TestAdvanceDirection(t *testing.T) {
	p := Pager{}.Advance(1)
	assert.Equal(t, Forward, p.Direction())

	p = p.Advance(-1)
	assert.Equal(t, Backward, p.Direction())
	assert.Equal(t, 0, p.Page())

	p = p.Advance(-1)
	i, _ := p.Index(5)
	assert.Equal(t, 4, i)

	p = p.Advance(0)
	assert.Equal(t, None, p.Direction())
}

func TestJumpTo(t *testing.T) {
	const n = 5
	for k := 0; k < n; k++ {
		p := Pager{page: -13, direction: Backward}.JumpTo(k)
		i, ok := p.Index(n)
		assert.True(t, ok)
		assert.Equal(t, k, i)
		assert.Equal(t, None, p.Direction())
	}
}
