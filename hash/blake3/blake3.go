package blake3

import (
	"github.com/multiformats/go-multihash"
	"github.com/storacha/go-dagblock/hash"
	"github.com/zeebo/blake3"
)

// blake3
const Code = 0x1e

// blake3 hash is variable length, we use the default 32-byte sum
const Size = 32

type hasher struct{}

func (hasher) Code() uint64 {
	return Code
}

func (hasher) Size() uint64 {
	return Size
}

func (hasher) Sum(b []byte) (hash.Digest, error) {
	sum := blake3.Sum256(b)

	d, err := multihash.Encode(sum[:], Code)
	if err != nil {
		return nil, err
	}

	return hash.NewDigest(Code, Size, sum[:], d), nil
}

var Hasher = hasher{}
