package car

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"iter"

	cbor "github.com/ipfs/go-ipld-cbor"
	"github.com/ipld/go-car/util"
	"github.com/ipld/go-ipld-prime/datamodel"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/multiformats/go-multibase"

	"github.com/storacha/go-dagblock/block"
)

// ContentType is the value the HTTP Content-Type header should have for CARs.
// See https://www.iana.org/assignments/media-types/application/vnd.ipld.car
const ContentType = "application/vnd.ipld.car"

func init() {
	cbor.RegisterCborType(carHeader{})
}

type carHeader struct {
	Roots   []datamodel.Link
	Version uint64
}

// Encode writes a CAR v1 archive of the given blocks. The archive is streamed
// through the returned reader.
func Encode(roots []datamodel.Link, blocks iter.Seq2[block.RawBlock, error]) io.Reader {
	reader, writer := io.Pipe()
	go func() {
		h := carHeader{Roots: roots, Version: 1}
		hb, err := cbor.DumpObject(h)
		if err != nil {
			writer.CloseWithError(fmt.Errorf("writing CAR header: %s", err))
			return
		}
		if err := util.LdWrite(writer, hb); err != nil {
			writer.CloseWithError(fmt.Errorf("writing CAR header: %s", err))
			return
		}
		for b, err := range blocks {
			if err != nil {
				writer.CloseWithError(fmt.Errorf("writing CAR blocks: %s", err))
				return
			}
			if err := util.LdWrite(writer, []byte(b.Link().Binary()), b.Bytes()); err != nil {
				writer.CloseWithError(fmt.Errorf("writing CAR blocks: %s", err))
				return
			}
		}
		writer.Close()
	}()
	return reader
}

// Decode reads a CAR v1 archive, yielding its blocks. Every block's digest is
// recomputed and checked against its CID as it is read, so a block obtained
// from the iterator is known to be unaltered.
func Decode(reader io.Reader) ([]datamodel.Link, iter.Seq2[block.RawBlock, error], error) {
	br := bufio.NewReader(reader)

	hb, err := util.LdRead(br)
	if err != nil {
		return nil, nil, err
	}

	var ch carHeader
	if err := cbor.DecodeInto(hb, &ch); err != nil {
		return nil, nil, fmt.Errorf("invalid header: %v", err)
	}

	if ch.Version != 1 {
		return nil, nil, fmt.Errorf("invalid car version: %d", ch.Version)
	}

	return ch.Roots, func(yield func(block.RawBlock, error) bool) {
		for {
			cid, bytes, err := util.ReadNode(br)
			if err != nil {
				if err != io.EOF {
					yield(nil, err)
				}
				return
			}

			hashed, err := cid.Prefix().Sum(bytes)
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}

			if !hashed.Equals(cid) {
				err := fmt.Errorf("mismatch in content integrity, name: %s, data: %s", cid, hashed)
				if !yield(nil, err) {
					return
				}
				continue
			}

			if !yield(block.NewRawBlock(cidlink.Link{Cid: cid}, bytes), nil) {
				return
			}
		}
	}, nil
}

// EncodeString encodes a gzipped CAR as a multibase Base64 string, suitable
// for header-sized transports.
func EncodeString(roots []datamodel.Link, blocks iter.Seq2[block.RawBlock, error]) (string, error) {
	data := Encode(roots, blocks)

	var b bytes.Buffer
	gz := gzip.NewWriter(&b)
	_, err := io.Copy(gz, data)
	if err != nil {
		gz.Close()
		return "", fmt.Errorf("compressing CAR data: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("closing gzip writer: %w", err)
	}

	s, err := multibase.Encode(multibase.Base64, b.Bytes())
	if err != nil {
		return "", fmt.Errorf("multibase encoding: %w", err)
	}
	return s, nil
}

// DecodeString decodes a CAR from the string form produced by EncodeString.
func DecodeString(s string) ([]datamodel.Link, iter.Seq2[block.RawBlock, error], error) {
	_, data, err := multibase.Decode(s)
	if err != nil {
		return nil, nil, fmt.Errorf("multibase decoding: %w", err)
	}
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	return Decode(gz)
}
