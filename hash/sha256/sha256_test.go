package sha256_test

import (
	"encoding/hex"
	"testing"

	mh "github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"

	"github.com/storacha/go-dagblock/hash/sha256"
)

func TestSum(t *testing.T) {
	d, err := sha256.Hasher.Sum([]byte("hello world"))
	require.NoError(t, err)

	require.Equal(t, uint64(sha256.Code), d.Code())
	require.Equal(t, uint64(sha256.Size), d.Size())
	require.Equal(
		t,
		"b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		hex.EncodeToString(d.Digest()),
	)

	decoded, err := mh.Decode(d.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint64(sha256.Code), decoded.Code)
	require.Equal(t, d.Digest(), decoded.Digest)
}
