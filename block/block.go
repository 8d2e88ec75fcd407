// Package block pairs content identifiers with the bytes they identify.
//
// A RawBlock is the unverified wire/storage form: a link and bytes, with no
// claim they correspond. A Block is additionally bound to a codec and a hash
// algorithm and can only be obtained through a path that establishes the
// binding: Encode derives the link from the bytes, FromRaw checks an
// externally supplied pair and fails if the codec code, hash code or digest
// disagree.
package block

import (
	"bytes"

	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime/datamodel"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	mh "github.com/multiformats/go-multihash"
	"github.com/pkg/errors"

	"github.com/storacha/go-dagblock/codec"
	"github.com/storacha/go-dagblock/hash"
)

type RawBlock interface {
	Link() datamodel.Link
	Bytes() []byte
}

type rawblock struct {
	link  datamodel.Link
	bytes []byte
}

func (b *rawblock) Link() datamodel.Link {
	return b.link
}

func (b *rawblock) Bytes() []byte {
	return b.bytes
}

// NewRawBlock pairs a link with bytes. No verification is performed - the
// caller asserts the pair corresponds.
func NewRawBlock(link datamodel.Link, bytes []byte) RawBlock {
	return &rawblock{link, bytes}
}

type Block interface {
	RawBlock
	Codec() codec.Codec
	Hasher() hash.Hasher
	// Value decodes the block bytes with the bound codec.
	Value() (datamodel.Node, error)
	// Raw discards the codec and hash bindings.
	Raw() RawBlock
}

type block struct {
	raw RawBlock
	cdc codec.Codec
	hsh hash.Hasher
}

func (b *block) Link() datamodel.Link {
	return b.raw.Link()
}

func (b *block) Bytes() []byte {
	return b.raw.Bytes()
}

func (b *block) Codec() codec.Codec {
	return b.cdc
}

func (b *block) Hasher() hash.Hasher {
	return b.hsh
}

func (b *block) Value() (datamodel.Node, error) {
	n, err := b.cdc.Decode(b.raw.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "decoding block %s", b.raw.Link())
	}
	return n, nil
}

func (b *block) Raw() RawBlock {
	return b.raw
}

// Encode constructs a block from a value. The bytes are produced by the
// codec, the digest is computed over them and the link is built fresh from
// the codec and hash codes, so the pairing holds by construction and is not
// checked.
func Encode(n datamodel.Node, cdc codec.Codec, hasher hash.Hasher) (Block, error) {
	data, err := cdc.Encode(n)
	if err != nil {
		return nil, err
	}
	digest, err := hasher.Sum(data)
	if err != nil {
		return nil, err
	}
	c := cid.NewCidV1(cdc.Code(), mh.Multihash(digest.Bytes()))
	return &block{&rawblock{cidlink.Link{Cid: c}, data}, cdc, hasher}, nil
}

// FromRaw verifies an externally supplied raw block against the given codec
// and hash bindings. The checks run in order: codec code, hash algorithm
// code, then the digest recomputed over the bytes. The first mismatch aborts
// with the corresponding typed error.
func FromRaw(raw RawBlock, cdc codec.Codec, hasher hash.Hasher) (Block, error) {
	cl, ok := raw.Link().(cidlink.Link)
	if !ok {
		return nil, errors.New("unsupported link type")
	}
	prefix := cl.Cid.Prefix()
	if prefix.Codec != cdc.Code() {
		return nil, CodecMismatchError{Expected: cdc.Code(), Actual: prefix.Codec}
	}
	if prefix.MhType != hasher.Code() {
		return nil, HashMismatchError{Expected: hasher.Code(), Actual: prefix.MhType}
	}
	digest, err := hasher.Sum(raw.Bytes())
	if err != nil {
		return nil, err
	}
	decoded, err := mh.Decode(cl.Cid.Hash())
	if err != nil {
		return nil, errors.Wrapf(err, "decoding multihash of %s", raw.Link())
	}
	if !bytes.Equal(decoded.Digest, digest.Digest()) {
		return nil, DigestMismatchError{
			Link:     raw.Link(),
			Expected: decoded.Digest,
			Actual:   digest.Digest(),
		}
	}
	return &block{raw, cdc, hasher}, nil
}
