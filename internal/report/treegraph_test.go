package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csrbfs/bfs500/internal/bfs"
	"github.com/csrbfs/bfs500/internal/graph"
)

func buildEdges(pairs [][2]int64) graph.EdgeList {
	el := make(graph.EdgeList, len(pairs))
	for i, p := range pairs {
		el[i] = graph.Edge{U: p[0], V: p[1]}
	}
	return el
}

func TestBuildTreeGraphPathOf5(t *testing.T) {
	c, err := graph.Build(context.Background(), buildEdges([][2]int64{{0, 1}, {1, 2}, {2, 3}, {3, 4}}), 3, graph.Tunables{})
	require.NoError(t, err)
	defer c.Destroy()

	tree, err := bfs.MakeBFSTree(context.Background(), c, 0, 3, bfs.Tunables{})
	require.NoError(t, err)

	tg := BuildTreeGraph(tree)
	assert.Equal(t, int64(0), tg.Source)
	assert.Equal(t, int64(5), tg.VisitedCount)
	assert.Equal(t, int64(0), tg.UnreachedCount)
	assert.Len(t, tg.Nodes, 5)
	assert.Len(t, tg.Edges, 4)

	byID := make(map[int64]*Node, len(tg.Nodes))
	for _, n := range tg.Nodes {
		byID[n.ID] = n
	}
	for v, wantDepth := range map[int64]int64{0: 0, 1: 1, 2: 2, 3: 3, 4: 4} {
		require.Contains(t, byID, v)
		assert.Equal(t, wantDepth, byID[v].Depth)
	}
	assert.True(t, byID[0].Root)
	assert.False(t, byID[4].Root)
}

func TestBuildTreeGraphDisconnected(t *testing.T) {
	c, err := graph.Build(context.Background(), buildEdges([][2]int64{{0, 1}, {2, 3}}), 3, graph.Tunables{})
	require.NoError(t, err)
	defer c.Destroy()

	tree, err := bfs.MakeBFSTree(context.Background(), c, 0, 3, bfs.Tunables{})
	require.NoError(t, err)

	tg := BuildTreeGraph(tree)
	assert.Equal(t, int64(2), tg.VisitedCount)
	assert.Equal(t, int64(2), tg.UnreachedCount)
	assert.Len(t, tg.Edges, 1)
}

func TestBuildTreeGraphStarSourceNotZero(t *testing.T) {
	c, err := graph.Build(context.Background(), buildEdges([][2]int64{{0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5}}), 4, graph.Tunables{})
	require.NoError(t, err)
	defer c.Destroy()

	tree, err := bfs.MakeBFSTree(context.Background(), c, 3, 4, bfs.Tunables{})
	require.NoError(t, err)

	tg := BuildTreeGraph(tree)
	assert.Equal(t, int64(3), tg.Source)
	assert.Equal(t, int64(6), tg.VisitedCount)

	byID := make(map[int64]*Node, len(tg.Nodes))
	for _, n := range tg.Nodes {
		byID[n.ID] = n
	}
	assert.Equal(t, int64(0), byID[3].Depth)
	assert.True(t, byID[3].Root)
	assert.Equal(t, int64(1), byID[0].Depth)
	for _, k := range []int64{1, 2, 4, 5} {
		assert.Equal(t, int64(2), byID[k].Depth)
	}
}
