package block

import (
	"fmt"

	"github.com/ipld/go-ipld-prime/datamodel"
	"github.com/multiformats/go-base32"
)

// CodecMismatchError is returned when a raw block's CID carries a different
// codec code than the codec the block is being bound to.
type CodecMismatchError struct {
	Expected uint64
	Actual   uint64
}

func (e CodecMismatchError) Name() string {
	return "CodecMismatch"
}

func (e CodecMismatchError) Error() string {
	return fmt.Sprintf("expected CID with %X codec, got %X", e.Expected, e.Actual)
}

// HashMismatchError is returned when a raw block's CID carries a different
// hash algorithm code than the hasher the block is being bound to.
type HashMismatchError struct {
	Expected uint64
	Actual   uint64
}

func (e HashMismatchError) Name() string {
	return "HashMismatch"
}

func (e HashMismatchError) Error() string {
	return fmt.Sprintf("expected CID with %X hashing algorithm, got %X", e.Expected, e.Actual)
}

// DigestMismatchError is returned when the digest recomputed over a raw
// block's bytes does not equal the digest stored in its CID. It indicates the
// bytes were altered or mislabeled.
type DigestMismatchError struct {
	Link     datamodel.Link
	Expected []byte
	Actual   []byte
}

func (e DigestMismatchError) Name() string {
	return "DigestMismatch"
}

func (e DigestMismatchError) Error() string {
	return fmt.Sprintf(
		"block %s: expected %s hash digest instead of %s",
		e.Link,
		base32.StdEncoding.EncodeToString(e.Expected),
		base32.StdEncoding.EncodeToString(e.Actual),
	)
}
