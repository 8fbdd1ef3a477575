package cache

// A Snapshot is a plain copy of the state of a cache. It holds no references
// into the cache and can be serialized.
type Snapshot struct {
	Name      string
	SetBits   int
	NumWays   int
	BlockBits int
	Now       uint64
	Stats     Statistics
	Lines     []LineState
}

// LineState is a valid line in a Snapshot.
type LineState struct {
	SetID    int
	WayID    int
	Tag      uint64
	Address  uint64
	LastUsed uint64
}

// Snapshot copies the geometry, the clock, the counters and every valid line,
// ordered by set and way.
func (c *Comp) Snapshot() Snapshot {
	s := Snapshot{
		Name:      c.name,
		SetBits:   c.setBits,
		NumWays:   c.numWays,
		BlockBits: c.blockBits,
		Now:       c.clock,
		Stats:     c.stats,
	}

	for setID := 0; setID < c.tags.NumSets(); setID++ {
		for wayID, line := range c.tags.GetSet(setID).Lines {
			if !line.IsValid {
				continue
			}

			s.Lines = append(s.Lines, LineState{
				SetID:    setID,
				WayID:    wayID,
				Tag:      line.Tag,
				Address:  c.decoder.Compose(line.Tag, uint64(setID)),
				LastUsed: line.LastUsed,
			})
		}
	}

	return s
}
