package codec

import (
	"github.com/ipld/go-ipld-prime/datamodel"
)

// Encoder serializes data model values to bytes. Code is the multicodec table
// code identifying the encoding.
type Encoder interface {
	Code() uint64
	Encode(n datamodel.Node) ([]byte, error)
}

// Decoder deserializes bytes to data model values. Code is the multicodec
// table code identifying the encoding.
type Decoder interface {
	Code() uint64
	Decode(b []byte) (datamodel.Node, error)
}

// Codec is a bidirectional transform between data model values and one byte
// encoding.
type Codec interface {
	Encoder
	Decoder
}
