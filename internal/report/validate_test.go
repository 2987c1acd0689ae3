package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csrbfs/bfs500/internal/bfs"
	"github.com/csrbfs/bfs500/internal/graph"
)

func TestValidateCSRTriangle(t *testing.T) {
	c, err := graph.Build(context.Background(), buildEdges([][2]int64{{0, 1}, {1, 2}, {2, 0}}), 2, graph.Tunables{})
	require.NoError(t, err)
	defer c.Destroy()

	assert.NoError(t, ValidateCSR(c))
}

func TestValidateCSRSelfLoopsAndDuplicatesArePacked(t *testing.T) {
	c, err := graph.Build(context.Background(), buildEdges([][2]int64{{0, 0}, {1, 1}, {0, 1}, {0, 1}, {1, 0}}), 2, graph.Tunables{})
	require.NoError(t, err)
	defer c.Destroy()

	assert.NoError(t, ValidateCSR(c))
}

func TestValidateCSRDenseK6(t *testing.T) {
	var pairs [][2]int64
	for i := int64(0); i < 6; i++ {
		for j := i + 1; j < 6; j++ {
			pairs = append(pairs, [2]int64{i, j})
		}
	}
	c, err := graph.Build(context.Background(), buildEdges(pairs), 4, graph.Tunables{})
	require.NoError(t, err)
	defer c.Destroy()

	assert.NoError(t, ValidateCSR(c))
}

func TestValidateTreePathOf5(t *testing.T) {
	c, err := graph.Build(context.Background(), buildEdges([][2]int64{{0, 1}, {1, 2}, {2, 3}, {3, 4}}), 3, graph.Tunables{})
	require.NoError(t, err)
	defer c.Destroy()

	tree, err := bfs.MakeBFSTree(context.Background(), c, 0, 3, bfs.Tunables{})
	require.NoError(t, err)

	assert.NoError(t, ValidateTree(c, tree))
}

func TestValidateTreeDisconnectedReachability(t *testing.T) {
	c, err := graph.Build(context.Background(), buildEdges([][2]int64{{0, 1}, {2, 3}}), 3, graph.Tunables{})
	require.NoError(t, err)
	defer c.Destroy()

	tree, err := bfs.MakeBFSTree(context.Background(), c, 0, 3, bfs.Tunables{})
	require.NoError(t, err)

	assert.NoError(t, ValidateTree(c, tree))
}

func TestValidateTreeDetectsBadParent(t *testing.T) {
	c, err := graph.Build(context.Background(), buildEdges([][2]int64{{0, 1}, {1, 2}}), 2, graph.Tunables{})
	require.NoError(t, err)
	defer c.Destroy()

	tree, err := bfs.MakeBFSTree(context.Background(), c, 0, 2, bfs.Tunables{})
	require.NoError(t, err)

	tree.Parent[2] = 0 // 0 and 2 are not adjacent
	assert.Error(t, ValidateTree(c, tree))
}

func TestValidateTreeDetectsMissedVertex(t *testing.T) {
	c, err := graph.Build(context.Background(), buildEdges([][2]int64{{0, 1}, {1, 2}}), 2, graph.Tunables{})
	require.NoError(t, err)
	defer c.Destroy()

	tree, err := bfs.MakeBFSTree(context.Background(), c, 0, 2, bfs.Tunables{})
	require.NoError(t, err)

	tree.Parent[2] = -1 // pretend vertex 2 was never visited
	assert.Error(t, ValidateTree(c, tree))
}
