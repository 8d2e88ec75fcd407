package hash

// Hasher is a hash algorithm capability. Code is the multicodec table code of
// the algorithm and Size the length in bytes of the sums it produces.
type Hasher interface {
	Code() uint64
	Size() uint64
	Sum(bytes []byte) (Digest, error)
}

type Digest interface {
	Code() uint64
	Size() uint64
	// Digest is the bare hash sum.
	Digest() []byte
	// Bytes is the multihash encoding of the sum.
	Bytes() []byte
}

type digest struct {
	code   uint64
	size   uint64
	digest []byte
	bytes  []byte
}

func (d *digest) Code() uint64 {
	return d.code
}

func (d *digest) Size() uint64 {
	return d.size
}

func (d *digest) Digest() []byte {
	return d.digest
}

func (d *digest) Bytes() []byte {
	return d.bytes
}

func NewDigest(code uint64, size uint64, digst []byte, bytes []byte) Digest {
	return &digest{code, size, digst, bytes}
}
