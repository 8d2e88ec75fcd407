package blockstore

import (
	"fmt"
	"iter"
	"sync"

	"github.com/ipld/go-ipld-prime/datamodel"

	"github.com/storacha/go-dagblock/block"
	"github.com/storacha/go-dagblock/codec"
	"github.com/storacha/go-dagblock/hash"
)

type BlockReader interface {
	Get(link datamodel.Link) (block.RawBlock, bool, error)
	Iterator() iter.Seq2[block.RawBlock, error]
}

type BlockWriter interface {
	Put(b block.RawBlock) error
}

type BlockStore interface {
	BlockReader
	BlockWriter
}

type blockreader struct {
	keys []string
	blks map[string]block.RawBlock
}

func (br *blockreader) Get(link datamodel.Link) (block.RawBlock, bool, error) {
	b, ok := br.blks[link.String()]
	return b, ok, nil
}

func (br *blockreader) Iterator() iter.Seq2[block.RawBlock, error] {
	return func(yield func(block.RawBlock, error) bool) {
		for _, k := range br.keys {
			v, ok := br.blks[k]
			var err error
			if !ok {
				err = fmt.Errorf("missing block for key: %s", k)
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

type blockstore struct {
	sync.RWMutex
	blockreader
}

func (bs *blockstore) Put(b block.RawBlock) error {
	bs.Lock()
	defer bs.Unlock()

	_, ok := bs.blks[b.Link().String()]
	if ok {
		return nil
	}

	bs.blks[b.Link().String()] = b
	bs.keys = append(bs.keys, b.Link().String())

	return nil
}

func (bs *blockstore) Get(link datamodel.Link) (block.RawBlock, bool, error) {
	bs.RLock()
	defer bs.RUnlock()
	return bs.blockreader.Get(link)
}

func (bs *blockstore) Iterator() iter.Seq2[block.RawBlock, error] {
	bs.RLock()
	defer bs.RUnlock()
	keys := make([]string, len(bs.keys))
	copy(keys, bs.keys)
	return func(yield func(block.RawBlock, error) bool) {
		for _, k := range keys {
			bs.RLock()
			v, ok := bs.blks[k]
			bs.RUnlock()
			var err error
			if !ok {
				err = fmt.Errorf("missing block for key: %s", k)
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

// Option is an option configuring a block reader/writer.
type Option func(cfg *bsConfig) error

type bsConfig struct {
	blks     []block.RawBlock
	blksiter iter.Seq2[block.RawBlock, error]
}

// WithBlocks configures the blocks the blockstore should contain.
func WithBlocks(blks []block.RawBlock) Option {
	return func(cfg *bsConfig) error {
		cfg.blks = blks
		return nil
	}
}

// WithBlocksIterator configures the blocks the blockstore should contain.
func WithBlocksIterator(blks iter.Seq2[block.RawBlock, error]) Option {
	return func(cfg *bsConfig) error {
		cfg.blksiter = blks
		return nil
	}
}

func NewBlockStore(options ...Option) (BlockStore, error) {
	cfg := bsConfig{}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	bs := &blockstore{
		blockreader: blockreader{
			keys: []string{},
			blks: map[string]block.RawBlock{},
		},
	}
	for _, b := range cfg.blks {
		err := bs.Put(b)
		if err != nil {
			return nil, err
		}
	}
	if cfg.blksiter != nil {
		for b, err := range cfg.blksiter {
			if err != nil {
				return nil, err
			}
			err := bs.Put(b)
			if err != nil {
				return nil, err
			}
		}
	}
	return bs, nil
}

func NewBlockReader(options ...Option) (BlockReader, error) {
	cfg := bsConfig{}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	keys := []string{}
	blks := map[string]block.RawBlock{}

	put := func(b block.RawBlock) {
		_, ok := blks[b.Link().String()]
		if ok {
			return
		}
		blks[b.Link().String()] = b
		keys = append(keys, b.Link().String())
	}

	for _, b := range cfg.blks {
		put(b)
	}
	if cfg.blksiter != nil {
		for b, err := range cfg.blksiter {
			if err != nil {
				return nil, err
			}
			put(b)
		}
	}

	return &blockreader{keys, blks}, nil
}

// NewVerifiedBlockReader is like NewBlockReader except every ingested block
// is verified against the given codec and hash bindings. Construction fails
// on the first block whose CID does not correspond to its bytes.
func NewVerifiedBlockReader(cdc codec.Codec, hasher hash.Hasher, options ...Option) (BlockReader, error) {
	cfg := bsConfig{}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	keys := []string{}
	blks := map[string]block.RawBlock{}

	put := func(b block.RawBlock) error {
		_, ok := blks[b.Link().String()]
		if ok {
			return nil
		}
		if _, err := block.FromRaw(b, cdc, hasher); err != nil {
			return fmt.Errorf("verifying block %s: %w", b.Link(), err)
		}
		blks[b.Link().String()] = b
		keys = append(keys, b.Link().String())
		return nil
	}

	for _, b := range cfg.blks {
		if err := put(b); err != nil {
			return nil, err
		}
	}
	if cfg.blksiter != nil {
		for b, err := range cfg.blksiter {
			if err != nil {
				return nil, err
			}
			if err := put(b); err != nil {
				return nil, err
			}
		}
	}

	return &blockreader{keys, blks}, nil
}

func WriteInto(blks iter.Seq2[block.RawBlock, error], bs BlockWriter) error {
	for b, err := range blks {
		if err != nil {
			return err
		}
		if err := bs.Put(b); err != nil {
			return fmt.Errorf("putting block: %s", err)
		}
	}
	return nil
}
