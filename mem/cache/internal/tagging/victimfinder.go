package tagging

// A VictimFinder decides which line of a full set should be evicted.
type VictimFinder interface {
	FindVictim(set Set) int
}

// LRUVictimFinder evicts the least recently used line.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed lru evictor
func NewLRUVictimFinder() *LRUVictimFinder {
	e := new(LRUVictimFinder)
	return e
}

// FindVictim returns the way with the smallest LastUsed stamp. Ties go to the
// lowest way.
func (e *LRUVictimFinder) FindVictim(set Set) int {
	victim := 0
	oldest := set.Lines[0].LastUsed

	for i := 1; i < len(set.Lines); i++ {
		if set.Lines[i].LastUsed < oldest {
			oldest = set.Lines[i].LastUsed
			victim = i
		}
	}

	return victim
}
