// Package counter provides an insertion-order-preserving frequency table.
// Keys are discovered at runtime (domains, keywords, model names); ties in
// MostCommon keep first-encountered order so repeated runs over the same
// input produce identical rankings.
package counter

import "sort"

// Entry is a single key with its accumulated count.
type Entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Counter accumulates counts per string key.
type Counter struct {
	counts map[string]int
	order  []string
}

// New returns an empty Counter.
func New() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add increments the count for name by one.
func (c *Counter) Add(name string) {
	c.AddN(name, 1)
}

// AddN increments the count for name by n.
func (c *Counter) AddN(name string, n int) {
	if _, seen := c.counts[name]; !seen {
		c.order = append(c.order, name)
	}
	c.counts[name] += n
}

// Count returns the accumulated count for name, zero when absent.
func (c *Counter) Count(name string) int {
	return c.counts[name]
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.order)
}

// Total returns the sum of all counts.
func (c *Counter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// MostCommon returns entries sorted by descending count; ties keep insertion
// order. n <= 0 returns all entries.
func (c *Counter) MostCommon(n int) []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, name := range c.order {
		entries = append(entries, Entry{Name: name, Count: c.counts[name]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// TopMap returns the top n entries as a name to count map, for blocks that
// publish plain objects rather than ranked lists.
func (c *Counter) TopMap(n int) map[string]int {
	top := make(map[string]int)
	for _, e := range c.MostCommon(n) {
		top[e.Name] = e.Count
	}
	return top
}
