package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/variantcl/variantcl/alphabet"
	"github.com/variantcl/variantcl/anahash"
)

func val(s string) anahash.Value {
	h := anahash.Empty()
	for i := 0; i < len(s); i++ {
		h = h.Insert(anahash.Character(alphabet.Class(s[i] - 'a')))
	}
	return h
}

func TestCacheMarkAndVisited(t *testing.T) {
	c := NewCache(10)
	h := val("house")
	assert.False(t, c.Visited(h))
	c.Mark(h)
	assert.True(t, c.Visited(h))
}

func TestCacheFlushesPastCapacity(t *testing.T) {
	c := NewCache(2)
	c.Mark(val("a"))
	c.Mark(val("b"))
	c.Mark(val("c"))
	c.Check()
	assert.False(t, c.Visited(val("a")), "cache should have flushed once over capacity")
}

func TestCacheUnboundedWhenZero(t *testing.T) {
	c := NewCache(0)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		c.Mark(val(s))
	}
	c.Check()
	assert.True(t, c.Visited(val("a")))
}
