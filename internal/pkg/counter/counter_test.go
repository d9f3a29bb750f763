package counter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chatwrapped/internal/pkg/counter"
)

func TestMostCommonOrdersByCountThenInsertion(t *testing.T) {
	c := counter.New()
	c.Add("alpha")
	c.Add("beta")
	c.Add("beta")
	c.Add("gamma")
	c.Add("delta")
	c.Add("delta")

	entries := c.MostCommon(0)
	assert.Equal(t, []counter.Entry{
		{Name: "beta", Count: 2},
		{Name: "delta", Count: 2},
		{Name: "alpha", Count: 1},
		{Name: "gamma", Count: 1},
	}, entries)
}

func TestMostCommonLimit(t *testing.T) {
	c := counter.New()
	c.AddN("a", 3)
	c.AddN("b", 2)
	c.AddN("c", 1)

	entries := c.MostCommon(2)
	assert.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, "b", entries[1].Name)
}

func TestCountAndTotal(t *testing.T) {
	c := counter.New()
	assert.Equal(t, 0, c.Count("missing"))
	c.Add("x")
	c.AddN("y", 4)
	assert.Equal(t, 1, c.Count("x"))
	assert.Equal(t, 4, c.Count("y"))
	assert.Equal(t, 5, c.Total())
	assert.Equal(t, 2, c.Len())
}

func TestTopMap(t *testing.T) {
	c := counter.New()
	c.AddN("a", 3)
	c.AddN("b", 2)
	c.AddN("c", 1)
	assert.Equal(t, map[string]int{"a": 3, "b": 2}, c.TopMap(2))
}
