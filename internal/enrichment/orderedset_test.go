package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedSet_FirstSeenOrder(t *testing.T) {
	s := NewOrderedSet[string]()

	assert.True(t, s.Add("b"))
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("b"))
	assert.True(t, s.Add("c"))

	assert.Equal(t, []string{"b", "a", "c"}, s.Values())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("d"))
}

func TestOrderedSet_ValuesIsCopy(t *testing.T) {
	s := NewOrderedSet[int]()
	s.Add(1)
	s.Add(2)

	values := s.Values()
	values[0] = 99

	assert.Equal(t, []int{1, 2}, s.Values())
}

func TestOrderedSet_Empty(t *testing.T) {
	s := NewOrderedSet[string]()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []string{}, s.Values())
}
