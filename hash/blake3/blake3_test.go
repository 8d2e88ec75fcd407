package blake3_test

import (
	"testing"

	mh "github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"

	"github.com/storacha/go-dagblock/hash/blake3"
)

func TestSum(t *testing.T) {
	data := []byte("hello world")

	d, err := blake3.Hasher.Sum(data)
	require.NoError(t, err)
	require.Equal(t, uint64(blake3.Code), d.Code())
	require.Equal(t, uint64(blake3.Size), d.Size())

	// agree with go-multihash's blake3 implementation
	sum, err := mh.Sum(data, mh.BLAKE3, blake3.Size)
	require.NoError(t, err)
	decoded, err := mh.Decode(sum)
	require.NoError(t, err)
	require.Equal(t, decoded.Digest, d.Digest())
	require.Equal(t, []byte(sum), d.Bytes())
}
