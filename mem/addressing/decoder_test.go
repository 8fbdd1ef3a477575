package addressing_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/mem/addressing"
)

var _ = Describe("Decoder", func() {
	It("should treat the whole address as tag with no set and block bits", func() {
		d := addressing.Decoder{}

		Expect(d.Decode(0x10)).To(Equal(addressing.Decoded{Tag: 0x10}))
	})

	It("should split offset, set and tag", func() {
		d := addressing.Decoder{SetBits: 4, BlockBits: 4}

		decoded := d.Decode(0x7ff0_1234)

		Expect(decoded.Offset).To(Equal(uint64(0x4)))
		Expect(decoded.SetID).To(Equal(uint64(0x3)))
		Expect(decoded.Tag).To(Equal(uint64(0x7ff012)))
	})

	It("should map 0 and 16 to the same set when s=1, b=4", func() {
		d := addressing.Decoder{SetBits: 1, BlockBits: 4}

		Expect(d.SetID(0)).To(Equal(uint64(0)))
		Expect(d.SetID(16)).To(Equal(uint64(1)))
		Expect(d.Tag(0)).To(Equal(uint64(0)))
		Expect(d.Tag(16)).To(Equal(uint64(0)))
		Expect(d.SetID(32)).To(Equal(uint64(0)))
		Expect(d.Tag(32)).To(Equal(uint64(1)))
	})

	It("should handle the top address", func() {
		d := addressing.Decoder{SetBits: 31, BlockBits: 32}

		decoded := d.Decode(^uint64(0))

		Expect(decoded.Offset).To(Equal(uint64(0xffff_ffff)))
		Expect(decoded.SetID).To(Equal(uint64(0x7fff_ffff)))
		Expect(decoded.Tag).To(Equal(uint64(1)))
	})

	It("should clear the offset of a block address", func() {
		d := addressing.Decoder{SetBits: 2, BlockBits: 6}

		Expect(d.BlockAddress(0x1234)).To(Equal(uint64(0x1200)))
	})

	It("should compose the block address back", func() {
		d := addressing.Decoder{SetBits: 3, BlockBits: 5}
		addr := uint64(0xdead_beef)
		decoded := d.Decode(addr)

		Expect(d.Compose(decoded.Tag, decoded.SetID)).
			To(Equal(d.BlockAddress(addr)))
	})
})
