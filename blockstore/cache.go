package blockstore

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ipld/go-ipld-prime/datamodel"

	"github.com/storacha/go-dagblock/codec"
)

var NodeCacheSize = 100

// NodeCache reads blocks through an underlying reader and memoizes their
// decoded values in an LRU keyed by link string.
type NodeCache struct {
	blocks BlockReader
	dec    codec.Decoder
	data   *lru.Cache[string, datamodel.Node]
}

// Get returns the decoded value of the block identified by link, from cache
// when possible. The second return is false when the underlying reader does
// not hold the block.
func (c *NodeCache) Get(link datamodel.Link) (datamodel.Node, bool, error) {
	if n, ok := c.data.Get(link.String()); ok {
		return n, true, nil
	}
	b, ok, err := c.blocks.Get(link)
	if err != nil || !ok {
		return nil, ok, err
	}
	n, err := c.dec.Decode(b.Bytes())
	if err != nil {
		return nil, true, fmt.Errorf("decoding block %s: %w", link, err)
	}
	c.data.Add(link.String(), n)
	return n, true, nil
}

// NewNodeCache creates an LRU cache of decoded values over the given block
// reader. The size parameter controls the maximum number of values that can
// be cached. Pass a value less than 1 to use the default cache size
// [NodeCacheSize].
func NewNodeCache(blocks BlockReader, dec codec.Decoder, size int) (*NodeCache, error) {
	if size <= 0 {
		size = NodeCacheSize
	}
	cache, err := lru.New[string, datamodel.Node](size)
	if err != nil {
		return nil, fmt.Errorf("creating node LRU: %w", err)
	}
	return &NodeCache{blocks: blocks, dec: dec, data: cache}, nil
}
