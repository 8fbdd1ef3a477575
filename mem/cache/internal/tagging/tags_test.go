package tagging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TagArray", func() {
	var (
		tags *TagArray
	)

	BeforeEach(func() {
		tags = NewTagArray(1024, 4, 64, NewLRUVictimFinder())
	})

	It("should be able to get total size", func() {
		Expect(tags.TotalSize()).To(Equal(uint64(262144)))
	})

	It("should start with every line invalid", func() {
		for i := 0; i < tags.NumSets(); i++ {
			for _, line := range tags.GetSet(i).Lines {
				Expect(line.IsValid).To(BeFalse())
			}
		}
	})

	It("should give each set its own lines", func() {
		set := tags.GetSet(3)
		set.Lines[0] = Line{Tag: 0x100, IsValid: true}

		Expect(tags.lines[3*4]).To(Equal(Line{Tag: 0x100, IsValid: true}))
		Expect(tags.GetSet(2).Lines[0].IsValid).To(BeFalse())
		Expect(set.Lines).To(HaveCap(4))
	})

	It("should lookup", func() {
		tags.GetSet(1).Lines[2] = Line{Tag: 0x100, LastUsed: 5, IsValid: true}

		line, ok := tags.Lookup(1, 0x100)

		Expect(ok).To(BeTrue())
		Expect(line.LastUsed).To(Equal(uint64(5)))
	})

	It("should not find a tag held by an invalid line", func() {
		tags.GetSet(1).Lines[0] = Line{Tag: 0x100}

		line, ok := tags.Lookup(1, 0x100)

		Expect(ok).To(BeFalse())
		Expect(line).To(BeZero())
	})

	It("should not find a tag in another set", func() {
		tags.Access(1, 0x100, 1)

		_, ok := tags.Lookup(2, 0x100)

		Expect(ok).To(BeFalse())
	})

	It("should fill invalid lines in order", func() {
		for i := 0; i < 4; i++ {
			access := tags.Access(0, uint64(i), uint64(i+1))

			Expect(access.Outcome).To(Equal(MissFill))
			Expect(access.WayID).To(Equal(i))
		}
	})

	It("should hit and refresh the stamp", func() {
		tags.Access(0, 0x7, 1)

		access := tags.Access(0, 0x7, 9)

		Expect(access).To(Equal(Access{WayID: 0, Outcome: Hit}))
		Expect(tags.GetSet(0).Lines[0].LastUsed).To(Equal(uint64(9)))
	})

	It("should evict the least recently used line when full", func() {
		for i := 0; i < 4; i++ {
			tags.Access(0, uint64(i), uint64(i+1))
		}
		tags.Access(0, 0, 5)

		access := tags.Access(0, 0x99, 6)

		Expect(access).To(Equal(Access{
			WayID:      1,
			Outcome:    MissEvict,
			EvictedTag: 1,
		}))
		line := tags.GetSet(0).Lines[1]
		Expect(line).To(Equal(Line{Tag: 0x99, LastUsed: 6, IsValid: true}))
	})

	It("should reset", func() {
		tags.Access(7, 0x1, 1)

		tags.Reset()

		_, ok := tags.Lookup(7, 0x1)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Set", func() {
	It("should prefer a hit over an invalid line", func() {
		set := Set{Lines: []Line{
			{},
			{Tag: 0x3, LastUsed: 1, IsValid: true},
		}}

		access := set.Access(0x3, 2, NewLRUVictimFinder())

		Expect(access.Outcome).To(Equal(Hit))
		Expect(access.WayID).To(Equal(1))
		Expect(set.Lines[0].IsValid).To(BeFalse())
	})

	It("should keep at most one copy of a tag", func() {
		set := Set{Lines: make([]Line, 2)}
		vf := NewLRUVictimFinder()

		set.Access(0xa, 1, vf)
		set.Access(0xa, 2, vf)
		set.Access(0xa, 3, vf)

		Expect(set.Lines[1].IsValid).To(BeFalse())
	})

	It("should work with a single line", func() {
		set := Set{Lines: make([]Line, 1)}
		vf := NewLRUVictimFinder()

		Expect(set.Access(0x10, 1, vf).Outcome).To(Equal(MissFill))
		Expect(set.Access(0x10, 2, vf).Outcome).To(Equal(Hit))

		access := set.Access(0x20, 3, vf)
		Expect(access.Outcome).To(Equal(MissEvict))
		Expect(access.EvictedTag).To(Equal(uint64(0x10)))
	})
})

var _ = Describe("Outcome", func() {
	It("should print", func() {
		Expect(Hit.String()).To(Equal("hit"))
		Expect(MissFill.String()).To(Equal("miss"))
		Expect(MissEvict.String()).To(Equal("miss_evict"))
		Expect(Outcome(9).String()).To(Equal("unknown"))
	})

	It("should tell hits", func() {
		Expect(Hit.IsHit()).To(BeTrue())
		Expect(MissEvict.IsHit()).To(BeFalse())
	})
})
