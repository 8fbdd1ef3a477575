// Package cache models a set-associative cache that only tracks tags. It
// counts hits, misses and evictions of the accesses it is given and never
// stores data.
package cache

import (
	"github.com/sarchlab/cachesim/mem/addressing"
	"github.com/sarchlab/cachesim/mem/cache/internal/tagging"
	"github.com/sarchlab/cachesim/sim/hooking"
)

// Outcome classifies a single access.
type Outcome = tagging.Outcome

// Outcomes of an access. A MissEvict is a miss that also evicted a line.
const (
	Hit       = tagging.Hit
	MissFill  = tagging.MissFill
	MissEvict = tagging.MissEvict
)

// AccessResult describes one resolved access.
type AccessResult struct {
	// Time is the logical clock value stamped on the access.
	Time           uint64
	Address        uint64
	Tag            uint64
	SetID          uint64
	WayID          int
	Outcome        Outcome
	EvictedTag     uint64
	EvictedAddress uint64
}

// IsHit returns true if the access hit.
func (r AccessResult) IsHit() bool {
	return r.Outcome == Hit
}

// IsEviction returns true if the access evicted a valid line.
func (r AccessResult) IsEviction() bool {
	return r.Outcome == MissEvict
}

// Statistics holds the aggregate counters of a cache.
type Statistics struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Accesses returns the number of accesses counted.
func (s Statistics) Accesses() uint64 {
	return s.Hits + s.Misses
}

// Comp is a cache. It is not safe for concurrent use.
type Comp struct {
	hooking.HookableBase

	name      string
	setBits   int
	numWays   int
	blockBits int
	decoder   addressing.Decoder
	tags      *tagging.TagArray

	clock uint64
	stats Statistics
}

// Name returns the name of the cache.
func (c *Comp) Name() string {
	return c.name
}

// SetBits returns the number of set index bits.
func (c *Comp) SetBits() int {
	return c.setBits
}

// NumWays returns the number of lines per set.
func (c *Comp) NumWays() int {
	return c.numWays
}

// BlockBits returns the number of block offset bits.
func (c *Comp) BlockBits() int {
	return c.blockBits
}

// NumSets returns the number of sets.
func (c *Comp) NumSets() int {
	return c.tags.NumSets()
}

// TotalSize returns the number of bytes the cache covers.
func (c *Comp) TotalSize() uint64 {
	return c.tags.TotalSize()
}

// Now returns the logical clock, which equals the number of accesses so far.
func (c *Comp) Now() uint64 {
	return c.clock
}

// Stats returns the counters.
func (c *Comp) Stats() Statistics {
	return c.stats
}

// Touch simulates one access to addr. The clock advances by one, the set that
// addr maps to is updated and exactly one of hits and misses grows.
func (c *Comp) Touch(addr uint64) AccessResult {
	c.clock++

	decoded := c.decoder.Decode(addr)
	access := c.tags.Access(int(decoded.SetID), decoded.Tag, c.clock)

	result := AccessResult{
		Time:    c.clock,
		Address: addr,
		Tag:     decoded.Tag,
		SetID:   decoded.SetID,
		WayID:   access.WayID,
		Outcome: access.Outcome,
	}

	switch access.Outcome {
	case Hit:
		c.stats.Hits++
	case MissFill:
		c.stats.Misses++
	case MissEvict:
		c.stats.Misses++
		c.stats.Evictions++
		result.EvictedTag = access.EvictedTag
		result.EvictedAddress = c.decoder.Compose(
			access.EvictedTag, decoded.SetID)
	}

	c.traceAccess(result)

	return result
}

// Lookup reports whether the block holding addr is resident. It does not
// advance the clock or change any line.
func (c *Comp) Lookup(addr uint64) bool {
	decoded := c.decoder.Decode(addr)
	_, found := c.tags.Lookup(int(decoded.SetID), decoded.Tag)

	return found
}

// Reset invalidates every line and zeroes the clock and the counters.
func (c *Comp) Reset() {
	c.tags.Reset()
	c.clock = 0
	c.stats = Statistics{}
}
