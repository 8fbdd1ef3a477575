package cache

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/sarchlab/cachesim/mem/addressing"
	"github.com/sarchlab/cachesim/mem/cache/internal/tagging"
)

// DefaultMaxNumLines is the largest number of lines a cache may allocate
// unless the builder is told otherwise.
const DefaultMaxNumLines = 1 << 26

// ErrLineBudgetExceeded is the cause of an AllocationError when the cache
// would need more lines than the builder allows.
var ErrLineBudgetExceeded = errors.New("line budget exceeded")

// Builder can build caches.
type Builder struct {
	setBits         int
	numWays         int
	blockBits       int
	maxNumLines     uint64
	replaceStrategy string
	victimFinder    tagging.VictimFinder
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		setBits:         0,
		numWays:         1,
		blockBits:       0,
		maxNumLines:     DefaultMaxNumLines,
		replaceStrategy: "lru",
	}
}

// WithSetBits sets the number of set index bits. The cache has 2^setBits
// sets.
func (b Builder) WithSetBits(setBits int) Builder {
	b.setBits = setBits
	return b
}

// WithNumWays sets the number of lines per set.
func (b Builder) WithNumWays(numWays int) Builder {
	b.numWays = numWays
	return b
}

// WithBlockBits sets the number of block offset bits. Blocks are
// 2^blockBits bytes.
func (b Builder) WithBlockBits(blockBits int) Builder {
	b.blockBits = blockBits
	return b
}

// WithMaxNumLines caps the number of lines the cache may allocate.
func (b Builder) WithMaxNumLines(maxNumLines uint64) Builder {
	b.maxNumLines = maxNumLines
	return b
}

// WithReplaceStrategy selects the eviction policy. Only "lru" is supported.
func (b Builder) WithReplaceStrategy(strategy string) Builder {
	b.replaceStrategy = strategy
	return b
}

// WithVictimFinder overrides the replace strategy with a custom victim
// finder.
func (b Builder) WithVictimFinder(victimFinder tagging.VictimFinder) Builder {
	b.victimFinder = victimFinder
	return b
}

// Build builds a cache. It returns a *ConfigurationError if the geometry is
// invalid and an *AllocationError if the lines cannot be allocated.
func (b Builder) Build(name string) (*Comp, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	victimFinder, err := b.createVictimFinder()
	if err != nil {
		return nil, err
	}

	tags, err := b.allocateTags(victimFinder)
	if err != nil {
		return nil, err
	}

	comp := &Comp{
		name:      name,
		setBits:   b.setBits,
		numWays:   b.numWays,
		blockBits: b.blockBits,
		decoder: addressing.Decoder{
			SetBits:   uint(b.setBits),
			BlockBits: uint(b.blockBits),
		},
		tags: tags,
	}

	return comp, nil
}

func (b Builder) validate() error {
	switch {
	case b.setBits < 0:
		return b.configError("set bits must not be negative")
	case b.numWays < 1:
		return b.configError("a set needs at least one line")
	case b.blockBits < 0:
		return b.configError("block bits must not be negative")
	case b.setBits+b.blockBits >= addressing.AddressWidth:
		return b.configError(fmt.Sprintf(
			"set bits plus block bits must be below %d",
			addressing.AddressWidth))
	}

	return nil
}

func (b Builder) configError(reason string) *ConfigurationError {
	return &ConfigurationError{
		SetBits:   b.setBits,
		NumWays:   b.numWays,
		BlockBits: b.blockBits,
		Reason:    reason,
	}
}

func (b Builder) createVictimFinder() (tagging.VictimFinder, error) {
	if b.victimFinder != nil {
		return b.victimFinder, nil
	}

	switch b.replaceStrategy {
	case "lru":
		return tagging.NewLRUVictimFinder(), nil
	default:
		return nil, b.configError(
			"unknown replace strategy: " + b.replaceStrategy)
	}
}

func (b Builder) allocateTags(
	victimFinder tagging.VictimFinder,
) (tags *tagging.TagArray, err error) {
	numSets := uint64(1) << b.setBits
	numWays := uint64(b.numWays)

	hi, numLines := bits.Mul64(numSets, numWays)
	if hi != 0 || numLines > b.maxNumLines {
		return nil, &AllocationError{
			NumSets: numSets,
			NumWays: numWays,
			Cause: fmt.Errorf("%w: %d lines allowed",
				ErrLineBudgetExceeded, b.maxNumLines),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			tags = nil
			err = &AllocationError{
				NumSets: numSets,
				NumWays: numWays,
				Cause:   fmt.Errorf("%v", r),
			}
		}
	}()

	tags = tagging.NewTagArray(
		int(numSets),
		b.numWays,
		uint64(1)<<b.blockBits,
		victimFinder,
	)

	return tags, nil
}
