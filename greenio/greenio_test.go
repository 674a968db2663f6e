package greenio_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jsonwc/cst/greenio"
	"github.com/jsonwc/cst/parser"
)

func TestHashIsStableAcrossEquivalentSource(t *testing.T) {
	a := parser.Parse(`[1, 2, 3]`)
	b := parser.Parse(`[1, 2, 3]`)

	hashA, err := greenio.Hash(a)
	require.NoError(t, err)
	hashB, err := greenio.Hash(b)
	require.NoError(t, err)
	require.Equal(t, hashA, hashB, "identical source must hash identically")
}

func TestHashDiffersOnContentChange(t *testing.T) {
	a := parser.Parse(`[1, 2, 3]`)
	b := parser.Parse(`[1, 2, 4]`)

	hashA, err := greenio.Hash(a)
	require.NoError(t, err)
	hashB, err := greenio.Hash(b)
	require.NoError(t, err)
	require.NotEqual(t, hashA, hashB)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	root := parser.Parse(`{"a": [1, true, "x"], "b": false}`)
	canon := greenio.CanonicalizeRoot(root)

	data, err := greenio.Marshal(canon)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := greenio.Unmarshal(data)
	require.NoError(t, err)
	if diff := cmp.Diff(canon, decoded); diff != "" {
		t.Errorf("round-tripped tree differs (-want +got):\n%s", diff)
	}
}

func TestMarshalIsDeterministic(t *testing.T) {
	root := parser.Parse(`{"z": 1, "a": 2, "m": [true, false, undefined]}`)
	canon := greenio.CanonicalizeRoot(root)

	first, err := greenio.Marshal(canon)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := greenio.Marshal(canon)
		require.NoError(t, err)
		require.True(t, bytes.Equal(first, again), "encoding %d differed", i)
	}
}

func TestContainerWriteReadRoundTrip(t *testing.T) {
	root := parser.Parse(`[1, 2, {"k": "v"}]`)

	var buf bytes.Buffer
	digest, err := greenio.Write(&buf, root)
	require.NoError(t, err)

	decoded, readDigest, err := greenio.Read(&buf)
	require.NoError(t, err)
	require.Equal(t, digest, readDigest)
	if diff := cmp.Diff(greenio.CanonicalizeRoot(root), decoded); diff != "" {
		t.Errorf("container round-trip tree differs (-want +got):\n%s", diff)
	}
}

func TestContainerReadRejectsCorruptBody(t *testing.T) {
	root := parser.Parse(`[1]`)

	var buf bytes.Buffer
	_, err := greenio.Write(&buf, root)
	require.NoError(t, err)

	corrupt := buf.Bytes()
	corrupt[len(corrupt)-1] ^= 0xFF

	_, _, err = greenio.Read(bytes.NewReader(corrupt))
	require.Error(t, err)
}

func TestContainerReadRejectsBadMagic(t *testing.T) {
	_, _, err := greenio.Read(bytes.NewReader([]byte("NOPE0000000000000000000000000000000000000000")))
	require.Error(t, err)
}

func TestCanonicalizeHandlesColonlessKeyValue(t *testing.T) {
	// {0} parses to a KeyValue whose synthetic extra section has a nil
	// Colon token; canonicalization must not panic on that typed nil.
	root := parser.Parse(`{0}`)
	require.NotPanics(t, func() {
		_ = greenio.CanonicalizeRoot(root)
	})
}

func TestCanonicalizeHandlesUnterminatedList(t *testing.T) {
	root := parser.Parse(`[1, 2`)
	require.NotPanics(t, func() {
		canon := greenio.CanonicalizeRoot(root)
		_, err := greenio.Marshal(canon)
		require.NoError(t, err)
	})
}
