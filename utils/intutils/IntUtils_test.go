package intutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMax(t *testing.T) {
	assert.Equal(t, -2, Min(3, -2, 7))
	assert.Equal(t, 7, Max(3, -2, 7))
	assert.Equal(t, 4, Max(4))
}

func TestArange(t *testing.T) {
	assert.Equal(t, []int{2, 3, 4}, Arange(2, 5))
	assert.Empty(t, Arange(5, 5))
}
