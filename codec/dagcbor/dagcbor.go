// Package dagcbor provides a codec capability for DAG-CBOR, delegating to the
// go-ipld-prime implementation.
package dagcbor

import (
	"bytes"
	"fmt"

	ipldcbor "github.com/ipld/go-ipld-prime/codec/dagcbor"
	"github.com/ipld/go-ipld-prime/datamodel"
	basicnode "github.com/ipld/go-ipld-prime/node/basic"
	"github.com/multiformats/go-multicodec"
)

// Code is the multicodec table code for DAG-CBOR.
const Code = uint64(multicodec.DagCbor)

type dagcbor struct{}

func (dagcbor) Code() uint64 {
	return Code
}

func (dagcbor) Encode(n datamodel.Node) ([]byte, error) {
	return Encode(n)
}

func (dagcbor) Decode(b []byte) (datamodel.Node, error) {
	return Decode(b)
}

var Codec = dagcbor{}

// Encode serializes a data model value to DAG-CBOR bytes.
func Encode(n datamodel.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := ipldcbor.Encode(n, &buf); err != nil {
		return nil, fmt.Errorf("encoding dag-cbor: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode deserializes DAG-CBOR bytes to a data model value.
func Decode(b []byte) (datamodel.Node, error) {
	nb := basicnode.Prototype.Any.NewBuilder()
	if err := ipldcbor.Decode(nb, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("decoding dag-cbor: %w", err)
	}
	return nb.Build(), nil
}
