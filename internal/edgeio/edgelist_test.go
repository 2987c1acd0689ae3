package edgeio

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEdgeListBasic(t *testing.T) {
	r := strings.NewReader("# a comment\n0 1\n1,2\n\n2\t3\n")
	edges, err := ParseEdgeList(r)
	require.NoError(t, err)
	require.Len(t, edges, 3)
	assert.Equal(t, int64(0), edges[0].U)
	assert.Equal(t, int64(1), edges[0].V)
	assert.Equal(t, int64(1), edges[1].U)
	assert.Equal(t, int64(2), edges[1].V)
	assert.Equal(t, int64(2), edges[2].U)
	assert.Equal(t, int64(3), edges[2].V)
}

func TestParseEdgeListMalformedLine(t *testing.T) {
	r := strings.NewReader("0\n")
	_, err := ParseEdgeList(r)
	assert.Error(t, err)
}

func TestParseEdgeListInvalidVertex(t *testing.T) {
	r := strings.NewReader("0 abc\n")
	_, err := ParseEdgeList(r)
	assert.Error(t, err)
}

func TestReadWriteEdgeListRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edges.txt")

	edges, err := ParseEdgeList(strings.NewReader("0 1\n1 2\n2 0\n"))
	require.NoError(t, err)

	require.NoError(t, WriteEdgeList(path, edges))

	got, err := ReadEdgeList(path)
	require.NoError(t, err)
	assert.Equal(t, edges, got)
}

func TestReadEdgeListMissingFile(t *testing.T) {
	_, err := ReadEdgeList("/nonexistent/edges.txt")
	assert.Error(t, err)
}
