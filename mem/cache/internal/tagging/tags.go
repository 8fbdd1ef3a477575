// Package tagging keeps the tag side of a set-associative cache: which block
// each line holds and when the line was last used.
package tagging

// Outcome classifies what an access did to a set.
type Outcome int

// Outcomes of an access.
const (
	// Hit means a valid line already held the tag.
	Hit Outcome = iota

	// MissFill means the tag was placed in a line that was invalid.
	MissFill

	// MissEvict means the tag replaced the tag of a valid line.
	MissEvict
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case MissFill:
		return "miss"
	case MissEvict:
		return "miss_evict"
	default:
		return "unknown"
	}
}

// IsHit returns true if the outcome is a hit.
func (o Outcome) IsHit() bool {
	return o == Hit
}

// A Line is the information that is associated with a cache line. Lines start
// invalid and are never invalidated again except by a reset.
type Line struct {
	Tag      uint64
	LastUsed uint64
	IsValid  bool
}

// A Set is a list of lines where a certain piece of memory can be stored at.
// Lines aliases the storage owned by the tag array, so writing through a Set
// updates the array.
type Set struct {
	ID    int
	Lines []Line
}

// Access describes the result of accessing a set.
type Access struct {
	WayID      int
	Outcome    Outcome
	EvictedTag uint64
}

// Lookup returns the way that holds a valid copy of tag.
func (s Set) Lookup(tag uint64) (wayID int, found bool) {
	for i := range s.Lines {
		if s.Lines[i].IsValid && s.Lines[i].Tag == tag {
			return i, true
		}
	}

	return 0, false
}

// FindInvalid returns the first way that does not hold data.
func (s Set) FindInvalid() (wayID int, found bool) {
	for i := range s.Lines {
		if !s.Lines[i].IsValid {
			return i, true
		}
	}

	return 0, false
}

// Access looks up tag, filling an invalid line or evicting the line picked by
// victimFinder on a miss. The touched line is stamped with now.
func (s Set) Access(tag, now uint64, victimFinder VictimFinder) Access {
	if wayID, found := s.Lookup(tag); found {
		s.Lines[wayID].LastUsed = now
		return Access{WayID: wayID, Outcome: Hit}
	}

	if wayID, found := s.FindInvalid(); found {
		s.Lines[wayID] = Line{Tag: tag, LastUsed: now, IsValid: true}
		return Access{WayID: wayID, Outcome: MissFill}
	}

	wayID := victimFinder.FindVictim(s)
	victim := &s.Lines[wayID]
	evicted := victim.Tag
	victim.Tag = tag
	victim.LastUsed = now

	return Access{WayID: wayID, Outcome: MissEvict, EvictedTag: evicted}
}

// A TagArray owns the lines of every set in one flat slice. Line j of set i
// lives at index i*numWays+j.
type TagArray struct {
	numSets      int
	numWays      int
	blockSize    uint64
	lines        []Line
	victimFinder VictimFinder
}

// NewTagArray allocates numSets*numWays invalid lines.
func NewTagArray(
	numSets int,
	numWays int,
	blockSize uint64,
	victimFinder VictimFinder,
) *TagArray {
	t := &TagArray{
		numSets:      numSets,
		numWays:      numWays,
		blockSize:    blockSize,
		victimFinder: victimFinder,
	}

	t.Reset()

	return t
}

// NumSets returns the number of sets.
func (t *TagArray) NumSets() int {
	return t.numSets
}

// NumWays returns the number of lines per set.
func (t *TagArray) NumWays() int {
	return t.numWays
}

// TotalSize returns the maximum number of bytes can be stored in the cache
func (t *TagArray) TotalSize() uint64 {
	return uint64(t.numSets) * uint64(t.numWays) * t.blockSize
}

// GetSet returns the set with the given ID.
func (t *TagArray) GetSet(setID int) Set {
	begin := setID * t.numWays
	end := begin + t.numWays

	return Set{ID: setID, Lines: t.lines[begin:end:end]}
}

// Access resolves an access to tag in set setID at logical time now.
func (t *TagArray) Access(setID int, tag, now uint64) Access {
	return t.GetSet(setID).Access(tag, now, t.victimFinder)
}

// Lookup reports whether tag is resident in set setID without updating
// anything.
func (t *TagArray) Lookup(setID int, tag uint64) (Line, bool) {
	set := t.GetSet(setID)

	wayID, found := set.Lookup(tag)
	if !found {
		return Line{}, false
	}

	return set.Lines[wayID], true
}

// Reset will mark all the lines invalid.
func (t *TagArray) Reset() {
	t.lines = make([]Line, t.numSets*t.numWays)
}
