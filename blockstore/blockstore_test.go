package blockstore_test

import (
	"testing"

	"github.com/ipld/go-ipld-prime/datamodel"
	basicnode "github.com/ipld/go-ipld-prime/node/basic"
	"github.com/stretchr/testify/require"

	"github.com/storacha/go-dagblock/block"
	"github.com/storacha/go-dagblock/blockstore"
	"github.com/storacha/go-dagblock/codec/dagjson"
	"github.com/storacha/go-dagblock/hash/sha256"
	"github.com/storacha/go-dagblock/testing/helpers"
)

func TestBlockStorePutGet(t *testing.T) {
	bs, err := blockstore.NewBlockStore()
	require.NoError(t, err)

	b := helpers.RandomRawBlock(32)
	require.NoError(t, bs.Put(b))

	got, ok, err := bs.Get(b.Link())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, b.Bytes(), got.Bytes())

	_, ok, err = bs.Get(helpers.RandomCID())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBlockStoreIterationOrder(t *testing.T) {
	blks := []block.RawBlock{
		helpers.RandomRawBlock(32),
		helpers.RandomRawBlock(32),
		helpers.RandomRawBlock(32),
	}
	bs, err := blockstore.NewBlockStore(blockstore.WithBlocks(blks))
	require.NoError(t, err)

	var links []datamodel.Link
	for b, err := range bs.Iterator() {
		require.NoError(t, err)
		links = append(links, b.Link())
	}
	require.Len(t, links, 3)
	for i, b := range blks {
		require.Equal(t, b.Link(), links[i])
	}
}

func TestBlockStoreDedupe(t *testing.T) {
	b := helpers.RandomRawBlock(32)
	bs, err := blockstore.NewBlockStore(blockstore.WithBlocks([]block.RawBlock{b, b}))
	require.NoError(t, err)

	count := 0
	for _, err := range bs.Iterator() {
		require.NoError(t, err)
		count++
	}
	require.Equal(t, 1, count)
}

func TestBlockReaderFromIterator(t *testing.T) {
	blks := []block.RawBlock{helpers.RandomRawBlock(32), helpers.RandomRawBlock(32)}
	src, err := blockstore.NewBlockStore(blockstore.WithBlocks(blks))
	require.NoError(t, err)

	br, err := blockstore.NewBlockReader(blockstore.WithBlocksIterator(src.Iterator()))
	require.NoError(t, err)

	for _, b := range blks {
		_, ok, err := br.Get(b.Link())
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestWriteInto(t *testing.T) {
	blks := []block.RawBlock{helpers.RandomRawBlock(32), helpers.RandomRawBlock(32)}
	src, err := blockstore.NewBlockStore(blockstore.WithBlocks(blks))
	require.NoError(t, err)

	dst, err := blockstore.NewBlockStore()
	require.NoError(t, err)
	require.NoError(t, blockstore.WriteInto(src.Iterator(), dst))

	for _, b := range blks {
		_, ok, err := dst.Get(b.Link())
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestVerifiedBlockReader(t *testing.T) {
	good, err := block.Encode(basicnode.NewString("hello"), dagjson.Codec, sha256.Hasher)
	require.NoError(t, err)

	br, err := blockstore.NewVerifiedBlockReader(
		dagjson.Codec, sha256.Hasher,
		blockstore.WithBlocks([]block.RawBlock{good.Raw()}),
	)
	require.NoError(t, err)

	_, ok, err := br.Get(good.Link())
	require.NoError(t, err)
	require.True(t, ok)

	tampered := append([]byte{}, good.Bytes()...)
	tampered[0] ^= 0xff
	bad := block.NewRawBlock(good.Link(), tampered)

	_, err = blockstore.NewVerifiedBlockReader(
		dagjson.Codec, sha256.Hasher,
		blockstore.WithBlocks([]block.RawBlock{bad}),
	)
	require.Error(t, err)
}

func TestNodeCache(t *testing.T) {
	n := basicnode.NewString("cached value")
	b, err := block.Encode(n, dagjson.Codec, sha256.Hasher)
	require.NoError(t, err)

	bs, err := blockstore.NewBlockStore(blockstore.WithBlocks([]block.RawBlock{b.Raw()}))
	require.NoError(t, err)

	cache, err := blockstore.NewNodeCache(bs, dagjson.Codec, 0)
	require.NoError(t, err)

	got, ok, err := cache.Get(b.Link())
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, datamodel.DeepEqual(n, got))

	// second read is served from cache
	got, ok, err = cache.Get(b.Link())
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, datamodel.DeepEqual(n, got))

	_, ok, err = cache.Get(helpers.RandomCID())
	require.NoError(t, err)
	require.False(t, ok)
}
