// Package dagjson implements the DAG-JSON encoding of the IPLD data model.
//
// The encoding is standard JSON with one reserved convention: an object with
// exactly one entry whose key is "/" and whose value is a string denotes a
// link, the string being the standard padded base64 encoding of the CID's
// byte serialization. Any other object shape, including an object whose sole
// "/" entry holds a non-string value, is an ordinary map.
//
// The format is lossy for two kinds. Bytes are encoded as bare base64 strings
// and decode as strings. Integers are bound to the int64 range of the Go data
// model binding; integer literals beyond that range fail to decode. NaN and
// infinite floats have no JSON representation and fail to encode.
//
// Map keys are sorted lexicographically at encode time regardless of the
// in-memory entry order, so encoding is deterministic.
package dagjson

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime/codec/json"
	"github.com/ipld/go-ipld-prime/datamodel"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	basicnode "github.com/ipld/go-ipld-prime/node/basic"
	"github.com/multiformats/go-multicodec"
)

// Code is the multicodec table code for DAG-JSON.
const Code = uint64(multicodec.DagJson)

// LinkKey is the reserved object key denoting a link.
const LinkKey = "/"

type dagjson struct{}

func (dagjson) Code() uint64 {
	return Code
}

func (dagjson) Encode(n datamodel.Node) ([]byte, error) {
	return Encode(n)
}

func (dagjson) Decode(b []byte) (datamodel.Node, error) {
	return Decode(b)
}

var Codec = dagjson{}

// Encode serializes a data model value to DAG-JSON bytes.
func Encode(n datamodel.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshal(n, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode deserializes DAG-JSON bytes to a data model value.
func Decode(b []byte) (datamodel.Node, error) {
	nb := basicnode.Prototype.Any.NewBuilder()
	if err := json.Decode(nb, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("decoding dag-json: %w", err)
	}
	out := basicnode.Prototype.Any.NewBuilder()
	if err := unmarshal(nb.Build(), out); err != nil {
		return nil, err
	}
	return out.Build(), nil
}

// marshal renders a value as JSON text: links become single-entry "/"
// objects, bytes become base64 strings, map entries are re-ordered
// lexicographically by key and floats always carry a fractional or exponent
// marker so they decode back as floats. String escaping is delegated to the
// go-ipld-prime JSON encoder.
func marshal(n datamodel.Node, buf *bytes.Buffer) error {
	switch n.Kind() {
	case datamodel.Kind_Null:
		buf.WriteString("null")
		return nil
	case datamodel.Kind_Bool:
		v, err := n.AsBool()
		if err != nil {
			return err
		}
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case datamodel.Kind_Int:
		v, err := n.AsInt()
		if err != nil {
			return err
		}
		buf.WriteString(strconv.FormatInt(v, 10))
		return nil
	case datamodel.Kind_Float:
		v, err := n.AsFloat()
		if err != nil {
			return err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NonFiniteFloatError{Value: v}
		}
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
		return nil
	case datamodel.Kind_String:
		return json.Encode(n, buf)
	case datamodel.Kind_Bytes:
		v, err := n.AsBytes()
		if err != nil {
			return err
		}
		buf.WriteByte('"')
		buf.WriteString(base64.StdEncoding.EncodeToString(v))
		buf.WriteByte('"')
		return nil
	case datamodel.Kind_Link:
		lnk, err := n.AsLink()
		if err != nil {
			return err
		}
		buf.WriteString(`{"` + LinkKey + `":"`)
		buf.WriteString(base64.StdEncoding.EncodeToString([]byte(lnk.Binary())))
		buf.WriteString(`"}`)
		return nil
	case datamodel.Kind_List:
		buf.WriteByte('[')
		it := n.ListIterator()
		for !it.Done() {
			i, v, err := it.Next()
			if err != nil {
				return err
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshal(v, buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case datamodel.Kind_Map:
		keys := make([]string, 0, n.Length())
		vals := make(map[string]datamodel.Node, n.Length())
		it := n.MapIterator()
		for !it.Done() {
			k, v, err := it.Next()
			if err != nil {
				return err
			}
			ks, err := k.AsString()
			if err != nil {
				return err
			}
			keys = append(keys, ks)
			vals[ks] = v
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := json.Encode(basicnode.NewString(k), buf); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := marshal(vals[k], buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("cannot encode kind: %s", n.Kind())
	}
}

// unmarshal rewrites a parsed JSON tree into a data model value, restoring
// links from objects matching the reserved convention.
func unmarshal(n datamodel.Node, na datamodel.NodeAssembler) error {
	switch n.Kind() {
	case datamodel.Kind_Map:
		if n.Length() == 1 {
			it := n.MapIterator()
			k, v, err := it.Next()
			if err != nil {
				return err
			}
			ks, err := k.AsString()
			if err != nil {
				return err
			}
			if ks == LinkKey && v.Kind() == datamodel.Kind_String {
				s, err := v.AsString()
				if err != nil {
					return err
				}
				raw, err := base64.StdEncoding.DecodeString(s)
				if err != nil {
					return InvalidLinkEncodingError{Value: s, Cause: err}
				}
				c, err := cid.Cast(raw)
				if err != nil {
					return InvalidLinkCidError{Value: s, Cause: err}
				}
				return na.AssignLink(cidlink.Link{Cid: c})
			}
		}
		ma, err := na.BeginMap(n.Length())
		if err != nil {
			return err
		}
		it := n.MapIterator()
		for !it.Done() {
			k, v, err := it.Next()
			if err != nil {
				return err
			}
			ks, err := k.AsString()
			if err != nil {
				return err
			}
			if err := ma.AssembleKey().AssignString(ks); err != nil {
				return err
			}
			if err := unmarshal(v, ma.AssembleValue()); err != nil {
				return err
			}
		}
		return ma.Finish()
	case datamodel.Kind_List:
		la, err := na.BeginList(n.Length())
		if err != nil {
			return err
		}
		it := n.ListIterator()
		for !it.Done() {
			_, v, err := it.Next()
			if err != nil {
				return err
			}
			if err := unmarshal(v, la.AssembleValue()); err != nil {
				return err
			}
		}
		return la.Finish()
	default:
		return na.AssignNode(n)
	}
}
