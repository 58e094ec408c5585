package markdown

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFIFOCache_GetPut(t *testing.T) {
	c := newFIFOCache(2)

	_, ok := c.get("a")
	assert.False(t, ok)

	c.put("a", "1")
	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, 1, c.len())
}

func TestFIFOCache_EvictsOldestInsert(t *testing.T) {
	c := newFIFOCache(2)
	c.put("a", "1")
	c.put("b", "2")

	// reads do not refresh position
	c.get("a")
	c.put("c", "3")

	_, ok := c.get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = c.get("b")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.len())
}

func TestFIFOCache_UpdateKeepsPosition(t *testing.T) {
	c := newFIFOCache(2)
	c.put("a", "1")
	c.put("b", "2")
	c.put("a", "updated")
	c.put("c", "3")

	_, ok := c.get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.len())
}

func TestFIFOCache_Clear(t *testing.T) {
	c := newFIFOCache(10)
	for i := 0; i < 5; i++ {
		c.put(fmt.Sprintf("k%d", i), "v")
	}
	c.clear()

	assert.Equal(t, 0, c.len())
	_, ok := c.get("k0")
	assert.False(t, ok)
}
