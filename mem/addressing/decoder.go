// Package addressing splits memory addresses into the fields a
// set-associative cache indexes with.
package addressing

// AddressWidth is the number of bits in a simulated address.
const AddressWidth = 64

// Decoded holds the three fields of an address.
type Decoded struct {
	Tag    uint64
	SetID  uint64
	Offset uint64
}

// Decoder breaks an address into tag, set index and block offset. The low
// BlockBits bits are the offset, the next SetBits bits are the set index and
// everything above is the tag.
//
// SetBits+BlockBits must be below AddressWidth. Callers validate this before
// constructing a Decoder.
type Decoder struct {
	SetBits   uint
	BlockBits uint
}

// Decode returns the fields of addr.
func (d Decoder) Decode(addr uint64) Decoded {
	return Decoded{
		Tag:    d.Tag(addr),
		SetID:  d.SetID(addr),
		Offset: d.Offset(addr),
	}
}

// Tag returns the bits above the set index.
func (d Decoder) Tag(addr uint64) uint64 {
	return addr >> (d.SetBits + d.BlockBits)
}

// SetID returns the set that addr maps to.
func (d Decoder) SetID(addr uint64) uint64 {
	return (addr >> d.BlockBits) & mask(d.SetBits)
}

// Offset returns the position of addr inside its block.
func (d Decoder) Offset(addr uint64) uint64 {
	return addr & mask(d.BlockBits)
}

// BlockAddress returns addr with the offset bits cleared.
func (d Decoder) BlockAddress(addr uint64) uint64 {
	return addr &^ mask(d.BlockBits)
}

// Compose rebuilds the block address that holds the given tag in the given
// set.
func (d Decoder) Compose(tag, setID uint64) uint64 {
	return tag<<(d.SetBits+d.BlockBits) | (setID&mask(d.SetBits))<<d.BlockBits
}

func mask(bits uint) uint64 {
	return (uint64(1) << bits) - 1
}
